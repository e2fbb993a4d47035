// pkg/physics/rect.go
package physics

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Vector returns the size as a vector from the origin.
func (s Size) Vector() Vector2D {
	return Vector2D{X: s.Width, Y: s.Height}
}

// Rect is an axis-aligned rectangle given by two corners.
type Rect struct {
	TopLeft     Vector2D
	BottomRight Vector2D
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(topLeft Vector2D, size Size) Rect {
	return Rect{
		TopLeft:     topLeft,
		BottomRight: topLeft.Add(size.Vector()),
	}
}

// TopRight returns the top-right corner.
func (r Rect) TopRight() Vector2D {
	return Vector2D{X: r.BottomRight.X, Y: r.TopLeft.Y}
}

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Vector2D {
	return Vector2D{X: r.TopLeft.X, Y: r.BottomRight.Y}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Vector2D {
	return [4]Vector2D{r.TopLeft, r.TopRight(), r.BottomRight, r.BottomLeft()}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{
		Width:  r.BottomRight.X - r.TopLeft.X,
		Height: r.BottomRight.Y - r.TopLeft.Y,
	}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vector2D {
	return r.TopLeft.Add(r.BottomRight).Scale(0.5)
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.TopLeft.X && p.X <= r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y <= r.BottomRight.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.Contains(other.TopLeft) && r.Contains(other.BottomRight)
}

// Intersects reports whether any corner of either rectangle lies inside the other.
// Crossing configurations with no contained corner are not detected.
func (r Rect) Intersects(other Rect) bool {
	for _, c := range other.Corners() {
		if r.Contains(c) {
			return true
		}
	}
	for _, c := range r.Corners() {
		if other.Contains(c) {
			return true
		}
	}
	return false
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset Vector2D) Rect {
	return Rect{
		TopLeft:     r.TopLeft.Add(offset),
		BottomRight: r.BottomRight.Add(offset),
	}
}
