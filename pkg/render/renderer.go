// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
)

// Target is a renderer that draws world objects shifted by a camera offset.
type Target interface {
	entity.Renderer
	SetOffset(offset physics.Vector2D)
}

// NullRenderer discards drawing but counts calls, for headless runs.
type NullRenderer struct {
	logger *logging.Logger
	size   physics.Size
	offset physics.Vector2D
	calls  map[string]int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(size physics.Size, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		size:   size,
		calls:  make(map[string]int),
	}
}

func (d *NullRenderer) record(kind string) {
	d.calls[kind]++
}

// Calls returns how many times the named draw call was made.
func (d *NullRenderer) Calls(kind string) int {
	return d.calls[kind]
}

// Offset returns the last camera offset.
func (d *NullRenderer) Offset() physics.Vector2D {
	return d.offset
}

// SetOffset implements Target.
func (d *NullRenderer) SetOffset(offset physics.Vector2D) {
	d.offset = offset
}

// DrawImage implements entity.Renderer.
func (d *NullRenderer) DrawImage(image entity.ImageID, dest physics.Rect, rotation float64, pivot physics.Vector2D) {
	d.record("image")
	d.logger.Debug(context.Background(), "DrawImage called",
		"image", string(image),
		"x", dest.TopLeft.X+d.offset.X,
		"y", dest.TopLeft.Y+d.offset.Y,
		"rotation", rotation,
	)
}

// DrawLine implements entity.Renderer.
func (d *NullRenderer) DrawLine(from, to physics.Vector2D, c color.Color, width float64) {
	d.record("line")
}

// DrawRectangle implements entity.Renderer.
func (d *NullRenderer) DrawRectangle(rect physics.Rect, c color.Color, width float64) {
	d.record("rect")
}

// FillRectangle implements entity.Renderer.
func (d *NullRenderer) FillRectangle(rect physics.Rect, c color.Color) {
	d.record("fill")
}

// DrawArc implements entity.Renderer.
func (d *NullRenderer) DrawArc(start, center physics.Vector2D, sweep float64, c color.Color, width float64) {
	d.record("arc")
}

// DrawEllipse implements entity.Renderer.
func (d *NullRenderer) DrawEllipse(center physics.Vector2D, rx, ry float64, c color.Color) {
	d.record("ellipse")
}

// DrawText implements entity.Renderer.
func (d *NullRenderer) DrawText(text string, format entity.TextFormat, dest physics.Rect, c color.Color) {
	d.record("text")
	d.logger.Debug(context.Background(), "DrawText called", "text", text)
}

// CreateTextFormat implements entity.Renderer.
func (d *NullRenderer) CreateTextFormat(font string, size float64) entity.TextFormat {
	return entity.TextFormat{Font: font, Size: size}
}

// Size implements entity.Renderer.
func (d *NullRenderer) Size() physics.Size {
	return d.size
}
