package entity

import (
	"math"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// terrainStep is the horizontal resolution of the drawn silhouette.
const terrainStep = 4.0

// Terrain is a static collider whose surface is an analytic function of x.
type Terrain struct {
	Object
}

// NewTerrain creates terrain spanning a world of the given size.
func NewTerrain(size physics.Size) *Terrain {
	return &Terrain{Object: NewObject(physics.Zero, size)}
}

// HeightAt returns the surface height above the bottom edge at x. It never
// returns a negative value and depends on nothing but x and the terrain size.
func (t *Terrain) HeightAt(x float64) float64 {
	width, height := t.Size.Width, t.Size.Height
	a := height / 7
	s := 0.02

	h := a/2 +
		a*math.Sin(x*s) +
		math.Abs(a*0.75*math.Cos(x*s*1.7)) +
		a/2*math.Cos(x*s/3) +
		a/4*math.Sin(x*s*1.5)
	if width > 0 {
		h += x / width * height / 3
	}
	return math.Max(h, 0)
}

// SurfacePoint returns the world point on the surface at x.
func (t *Terrain) SurfacePoint(x float64) physics.Vector2D {
	return physics.Vector2D{X: x, Y: t.Size.Height - t.HeightAt(x)}
}

// IsPointInside reports whether p lies strictly below the surface.
func (t *Terrain) IsPointInside(p physics.Vector2D) bool {
	return t.Size.Height-t.HeightAt(p.X) < p.Y
}

// OnCollision implements Collider. Terrain does not react.
func (t *Terrain) OnCollision(w World, other Collider) {}

// Update implements Entity.
func (t *Terrain) Update(w World, dt float64) {}

// RenderPriority implements Entity.
func (t *Terrain) RenderPriority() int { return 100 }

// Draw renders the silhouette as a polyline.
func (t *Terrain) Draw(r Renderer) {
	prev := t.SurfacePoint(0)
	for x := terrainStep; x <= t.Size.Width+terrainStep; x += terrainStep {
		next := t.SurfacePoint(x)
		r.DrawLine(prev, next, ColorTerrain, 2)
		prev = next
	}
}
