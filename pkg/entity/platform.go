package entity

import (
	"image/color"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// PlatformSize is the footprint of every platform.
var PlatformSize = physics.Size{Width: 50, Height: 3}

// Platform is a flat pad resting on the terrain surface.
type Platform struct {
	Object
	Color color.Color
}

// NewPlatform centers a platform horizontally on x with its bottom on the surface.
func NewPlatform(terrain *Terrain, x float64, c color.Color) *Platform {
	pos := terrain.SurfacePoint(x).
		Add(physics.Left.Scale(PlatformSize.Width / 2)).
		Add(physics.Up.Scale(PlatformSize.Height))
	return &Platform{
		Object: NewObject(pos, PlatformSize),
		Color:  c,
	}
}

// IsPointInside reports whether p lies on or inside the platform rectangle.
func (p *Platform) IsPointInside(pt physics.Vector2D) bool {
	local := p.WorldToObject(pt)
	return local.X >= 0 && local.X <= p.Size.Width &&
		local.Y >= 0 && local.Y <= p.Size.Height
}

// OnCollision implements Collider.
func (p *Platform) OnCollision(w World, other Collider) {}

// Update implements Entity.
func (p *Platform) Update(w World, dt float64) {}

// RenderPriority implements Entity.
func (p *Platform) RenderPriority() int { return 50 }

// Draw implements Entity.
func (p *Platform) Draw(r Renderer) {
	r.FillRectangle(p.Bounds(), p.Color)
}
