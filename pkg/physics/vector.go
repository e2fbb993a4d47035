// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components.
// Screen space is y-down; positive angles rotate clockwise on screen.
type Vector2D struct {
	X float64
	Y float64
}

// Unit directions in screen space.
var (
	Zero  = Vector2D{}
	Up    = Vector2D{X: 0, Y: -1}
	Down  = Vector2D{X: 0, Y: 1}
	Left  = Vector2D{X: -1, Y: 0}
	Right = Vector2D{X: 1, Y: 0}
)

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Div divides the vector by a scalar value
func (v Vector2D) Div(divisor float64) Vector2D {
	return Vector2D{
		X: v.X / divisor,
		Y: v.Y / divisor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product.
// It is positive when other lies clockwise of v on screen.
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate rotates the vector around the origin by angle degrees, clockwise on screen.
func (v Vector2D) Rotate(degrees float64) Vector2D {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateAround rotates the vector around center by angle degrees.
func (v Vector2D) RotateAround(degrees float64, center Vector2D) Vector2D {
	return v.Sub(center).Rotate(degrees).Add(center)
}

// AngleTo returns the signed angle in degrees from v to other.
// Zero-length vectors yield 0.
func (v Vector2D) AngleTo(other Vector2D) float64 {
	denom := v.Length() * other.Length()
	if denom == 0 {
		return 0
	}
	cos := math.Max(-1, math.Min(1, v.Dot(other)/denom))
	angle := math.Acos(cos) * 180 / math.Pi
	if v.Cross(other) < 0 {
		return -angle
	}
	return angle
}

// NormalizeDegrees maps an angle into the range (-180, 180].
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
