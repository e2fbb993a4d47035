package render

import (
	"github.com/opd-ai/go-lander/pkg/physics"
)

// topMargin is the share of the screen height kept free above a tracked
// object before the view starts to scroll.
const topMargin = 0.1

// Camera keeps a tracked object in view by scrolling vertically. While the
// object stays within the screen below the top margin the view rests at the
// origin; otherwise the view follows so the object sits just under the margin.
type Camera struct {
	visible physics.Rect
}

// NewCamera creates a camera resting at the origin.
func NewCamera() *Camera {
	return &Camera{}
}

// Follow updates the visible area for a screen of the given size and the
// world bounds of the tracked object.
func (c *Camera) Follow(screen physics.Size, target physics.Rect) {
	home := physics.NewRect(physics.Zero, screen)
	if c.visible.Size() != screen {
		c.visible = home
	}

	safe := physics.Rect{
		TopLeft:     physics.Down.Scale(screen.Height * topMargin),
		BottomRight: home.BottomRight,
	}
	if safe.ContainsRect(target) {
		c.visible = home
		return
	}

	shift := c.visible.TopLeft.Y + screen.Height*topMargin - target.TopLeft.Y
	c.visible = c.visible.Translate(physics.Up.Scale(shift))
}

// Visible returns the world rectangle currently on screen.
func (c *Camera) Visible() physics.Rect {
	return c.visible
}

// Offset returns the translation from world to screen coordinates.
func (c *Camera) Offset() physics.Vector2D {
	return physics.Zero.Sub(c.visible.TopLeft)
}

// WorldToScreen maps a world point onto the screen.
func (c *Camera) WorldToScreen(p physics.Vector2D) physics.Vector2D {
	return p.Add(c.Offset())
}
