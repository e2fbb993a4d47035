package entity

import (
	"time"

	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/replay"
)

// RocketState is the flight phase of a rocket.
type RocketState int

// Rocket states.
const (
	Unstarted RocketState = iota
	Started
	Landed
	Crashed
	Success
)

func (s RocketState) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Started:
		return "started"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Terminal reports whether the flight has ended.
func (s RocketState) Terminal() bool {
	return s == Crashed || s == Success
}

// RocketConfig holds the tunable flight parameters.
type RocketConfig struct {
	// BaseMass is the dry mass without the tank, in kg.
	BaseMass float64 `mapstructure:"base_mass" json:"base_mass"`
	// AngularAcceleration is applied per held roll key, in deg/s^2.
	AngularAcceleration float64 `mapstructure:"angular_acceleration" json:"angular_acceleration"`
	// LandingSpeed is the exclusive upper speed bound for a soft touchdown, in m/s.
	LandingSpeed float64 `mapstructure:"landing_speed" json:"landing_speed"`
	// LandingAngle is the inclusive tilt bound for a soft touchdown, in degrees.
	LandingAngle float64 `mapstructure:"landing_angle" json:"landing_angle"`
	// RefillPercent of the tank is added per second while landed.
	RefillPercent float64 `mapstructure:"refill_percent" json:"refill_percent"`
}

// DefaultRocketConfig returns parameters giving roughly 1.5 g of thrust on
// a full tank.
func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		BaseMass:            120000,
		AngularAcceleration: 20,
		LandingSpeed:        8,
		LandingAngle:        3,
		RefillPercent:       10,
	}
}

const (
	rocketHeight   = 100.0
	trailPeriod    = 0.15
	trailShortSize = 75.0
	trailLongSize  = 100.0
)

// Rocket is the player controlled lander.
type Rocket struct {
	Object
	Body *physics.Body
	Tank *FuelTank

	cfg      RocketConfig
	state    RocketState
	start    *Platform
	landing  *Platform
	recorder *replay.Recorder
	saver    replay.Saver

	elapsed     time.Duration
	thrusting   bool
	savePressed bool
	emptyFired  bool
	trailTimer  float64
	trailLong   bool
}

// NewRocket places a rocket on the start platform. saver may be nil, in which
// case save requests are ignored.
func NewRocket(start, landing *Platform, cfg RocketConfig, saver replay.Saver) *Rocket {
	r := &Rocket{
		Object: NewObject(physics.Zero, physics.Size{
			Width:  start.Size.Width * 2 / 3,
			Height: rocketHeight,
		}),
		Body:     physics.NewBody(cfg.BaseMass + TankEmptyMass),
		Tank:     NewFuelTank(),
		cfg:      cfg,
		start:    start,
		landing:  landing,
		recorder: replay.NewRecorder(),
		saver:    saver,
	}
	r.placeOnStart()
	r.Body.Mass = r.cfg.BaseMass + r.Tank.Mass()
	return r
}

// State returns the current flight phase.
func (r *Rocket) State() RocketState { return r.state }

// Elapsed returns the flight time accumulated while started.
func (r *Rocket) Elapsed() time.Duration { return r.elapsed }

// Recorder exposes the input recorder.
func (r *Rocket) Recorder() *replay.Recorder { return r.recorder }

// Thrusting reports whether thrust was applied on the last tick.
func (r *Rocket) Thrusting() bool { return r.thrusting }

// Position returns the top-left corner in world space.
func (r *Rocket) Position() physics.Vector2D { return r.Pos }

// Velocity returns the linear velocity in m/s.
func (r *Rocket) Velocity() physics.Vector2D { return r.Body.Velocity }

// RenderPriority implements Entity.
func (r *Rocket) RenderPriority() int { return 0 }

func (r *Rocket) placeOnStart() {
	r.Pos = r.start.Pos.
		Add(physics.Up.Scale(r.Size.Height)).
		Add(physics.Right.Scale((r.start.Size.Width - r.Size.Width) / 2))
	r.Rotation = 0
	r.Body.Stop()
}

// Update advances the rocket by one tick.
func (r *Rocket) Update(w World, dt float64) {
	in := w.Input()
	r.handleSave(w, in)

	if in.IsActive(input.Reset) {
		r.Reset(w)
		return
	}

	switch r.state {
	case Unstarted, Landed:
		r.placeOnStart()
		if r.state == Landed {
			r.Tank.Fill(r.cfg.RefillPercent * dt)
		}
		if in.IsActive(input.Thrust) {
			if !r.recorder.IsRecording() {
				r.recorder.Start()
				r.elapsed = 0
			}
			r.setState(w, Started, event.RocketLaunched)
		}
	}

	if r.recorder.IsRecording() {
		r.recorder.Record(input.AllActive(in))
	}

	r.thrusting = false
	if r.state == Started {
		r.fly(w, in, dt)
	}
	r.animateTrail(dt)
}

func (r *Rocket) fly(w World, in input.Source, dt float64) {
	r.Body.Mass = r.cfg.BaseMass + r.Tank.Mass()

	if in.IsActive(input.Thrust) {
		if thrust := r.Tank.Thrust(dt); thrust > 0 {
			r.Body.ApplyForce(physics.Up.Rotate(r.Rotation).Scale(thrust))
			r.thrusting = true
		}
		if r.Tank.IsEmpty() && !r.emptyFired {
			r.emptyFired = true
			r.publishFlight(w, event.FuelEmpty)
		}
	}
	if in.IsActive(input.RollLeft) {
		r.Body.ApplyAngularAcceleration(-r.cfg.AngularAcceleration)
	}
	if in.IsActive(input.RollRight) {
		r.Body.ApplyAngularAcceleration(r.cfg.AngularAcceleration)
	}
	r.Body.ApplyGravity(physics.Down)

	disp, spin := r.Body.Integrate(dt)
	r.Pos = r.Pos.Add(disp)
	r.Rotation += spin
	r.elapsed += time.Duration(dt * float64(time.Second))

	CheckCollisions(w, r)
}

// IsPointInside reports whether p lies within the rotated rocket hull.
func (r *Rocket) IsPointInside(p physics.Vector2D) bool {
	local := r.WorldToObject(p)
	return local.X >= 0 && local.X <= r.Size.Width &&
		local.Y >= 0 && local.Y <= r.Size.Height
}

// OnCollision classifies a touchdown. Only a started rocket reacts.
func (r *Rocket) OnCollision(w World, other Collider) {
	if r.state != Started {
		return
	}
	publish(w, event.NewCollisionEvent(r, other, w.CurrentTick()))

	speed := r.Body.Speed()
	tilt := physics.NormalizeDegrees(r.Rotation)
	if tilt < 0 {
		tilt = -tilt
	}
	soft := speed < r.cfg.LandingSpeed && tilt <= r.cfg.LandingAngle

	switch {
	case soft && other == Collider(r.start):
		r.Rotation = 0
		r.Body.Stop()
		r.setState(w, Landed, event.RocketLanded)
	case soft && other == Collider(r.landing):
		r.Body.Stop()
		r.recorder.Stop()
		r.setState(w, Success, event.RocketSucceeded)
	default:
		r.Body.Stop()
		r.recorder.Stop()
		r.setState(w, Crashed, event.RocketCrashed)
	}
}

// Reset returns the rocket to the start platform with a full tank. Recorded
// inputs are kept so the flight can still be saved.
func (r *Rocket) Reset(w World) {
	prev := r.state
	r.placeOnStart()
	r.Tank.Refill()
	r.Body.Mass = r.cfg.BaseMass + r.Tank.Mass()
	r.recorder.Stop()
	r.elapsed = 0
	r.thrusting = false
	r.emptyFired = false
	r.state = Unstarted
	if prev != Unstarted {
		r.publishFlight(w, event.RocketReset)
	}
}

func (r *Rocket) handleSave(w World, in input.Source) {
	pressed := in.IsActive(input.SaveReplay)
	defer func() { r.savePressed = pressed }()
	if !pressed || r.savePressed {
		return
	}

	path, err := r.recorder.Save(w.Context(), r.saver)
	switch {
	case err != nil:
		publish(w, event.NewReplayEvent(event.ReplayFailed, r, path, len(r.recorder.Entries()), err))
	case path != "":
		publish(w, event.NewReplayEvent(event.ReplaySaved, r, path, len(r.recorder.Entries()), nil))
	}
}

func (r *Rocket) setState(w World, s RocketState, t event.Type) {
	if r.state == s {
		return
	}
	r.state = s
	r.publishFlight(w, t)
}

func (r *Rocket) publishFlight(w World, t event.Type) {
	publish(w, event.NewFlightEvent(t, r, w.CurrentTick(),
		r.Body.Speed(), r.Rotation, r.Tank.Level(), r.elapsed))
}

func (r *Rocket) animateTrail(dt float64) {
	if !r.thrusting {
		r.trailTimer = 0
		return
	}
	r.trailTimer += dt
	for r.trailTimer >= trailPeriod {
		r.trailLong = !r.trailLong
		r.trailTimer -= trailPeriod
	}
}

// Draw renders the hull and, while thrusting, the exhaust trail below it.
func (r *Rocket) Draw(rd Renderer) {
	pivot := r.WorldCenter()
	rd.DrawImage(ImageRocket, r.Bounds(), r.Rotation, pivot)
	if !r.thrusting {
		return
	}

	height := trailShortSize
	if r.trailLong {
		height = trailLongSize
	}
	origin := r.Pos.
		Add(physics.Right.Scale(r.Size.Width / 4)).
		Add(physics.Down.Scale(r.Size.Height))
	trail := physics.NewRect(origin, physics.Size{Width: r.Size.Width / 2, Height: height})
	rd.DrawImage(ImageTrail, trail, r.Rotation, pivot)
}
