// pkg/physics/body.go
package physics

const (
	// PixelPerMeter converts simulated meters to screen pixels.
	PixelPerMeter = 2.0
	// Gravity is the gravitational acceleration in m/s^2.
	Gravity = 9.81
)

// Body integrates linear and angular motion for a single object.
// Velocity is in m/s, angular values in degrees.
type Body struct {
	Velocity            Vector2D
	AngularVelocity     float64
	Acceleration        Vector2D
	AngularAcceleration float64
	Mass                float64
}

// NewBody creates a body at rest with the given mass in kg.
func NewBody(mass float64) *Body {
	return &Body{Mass: mass}
}

// ApplyForce accumulates F/m into the pending acceleration.
// Applying a force to a massless body is a programming error.
func (b *Body) ApplyForce(force Vector2D) {
	if b.Mass == 0 {
		panic("physics: ApplyForce on body with zero mass")
	}
	b.Acceleration = b.Acceleration.Add(force.Div(b.Mass))
}

// ApplyAcceleration accumulates an acceleration in m/s^2.
func (b *Body) ApplyAcceleration(a Vector2D) {
	b.Acceleration = b.Acceleration.Add(a)
}

// ApplyAngularAcceleration accumulates an angular acceleration in deg/s^2.
func (b *Body) ApplyAngularAcceleration(alpha float64) {
	b.AngularAcceleration += alpha
}

// ApplyGravity accumulates standard gravity along direction.
func (b *Body) ApplyGravity(direction Vector2D) {
	b.ApplyAcceleration(direction.Scale(Gravity))
}

// Integrate advances the body by dt seconds and returns the positional
// displacement in pixels and the rotation delta in degrees.
// Pending accelerations are consumed.
func (b *Body) Integrate(dt float64) (Vector2D, float64) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.AngularVelocity += b.AngularAcceleration * dt

	// trapezoidal average over the step
	avgVelocity := b.Velocity.Sub(b.Acceleration.Scale(dt / 2))
	avgAngular := b.AngularVelocity - b.AngularAcceleration*dt/2

	b.Acceleration = Zero
	b.AngularAcceleration = 0

	return avgVelocity.Scale(dt * PixelPerMeter), avgAngular * dt
}

// Stop zeroes velocities and pending accelerations.
func (b *Body) Stop() {
	b.Velocity = Zero
	b.AngularVelocity = 0
	b.Acceleration = Zero
	b.AngularAcceleration = 0
}

// Speed returns the magnitude of the linear velocity in m/s.
func (b *Body) Speed() float64 {
	return b.Velocity.Length()
}
