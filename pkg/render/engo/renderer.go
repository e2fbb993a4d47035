// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/physics"
)

// arcStep is the sweep covered by one arc segment, in degrees.
const arcStep = 10.0

// Sink receives the entities the renderer creates. *common.RenderSystem
// satisfies it.
type Sink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// sprite is one pooled ECS entity.
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer implements render.Target on top of the engo render system.
// engo is retained mode, so each draw call claims a pooled entity; entities
// not claimed during a frame are hidden by End.
type EngoRenderer struct {
	sink   Sink
	assets *AssetManager
	size   physics.Size
	offset physics.Vector2D

	pool []*sprite
	used int
}

// NewEngoRenderer creates a renderer adding its entities to sink.
func NewEngoRenderer(sink Sink, assets *AssetManager, size physics.Size) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		sink:   sink,
		assets: assets,
		size:   size,
	}
}

// Begin starts a frame.
func (r *EngoRenderer) Begin() {
	r.used = 0
}

// End hides every entity the frame did not use.
func (r *EngoRenderer) End() {
	for _, s := range r.pool[r.used:] {
		s.render.Hidden = true
	}
}

// Used returns the number of entities drawn this frame.
func (r *EngoRenderer) Used() int {
	return r.used
}

// next claims a pooled entity, growing the pool when needed. Later claims
// are drawn on top.
func (r *EngoRenderer) next(d common.Drawable, c color.Color) *sprite {
	if r.used == len(r.pool) {
		s := &sprite{basic: ecs.NewBasic()}
		r.pool = append(r.pool, s)
		if r.sink != nil {
			r.sink.Add(&s.basic, &s.render, &s.space)
		}
	}
	s := r.pool[r.used]
	r.used++

	s.render.Drawable = d
	s.render.Color = c
	s.render.Hidden = false
	s.render.Scale = engo.Point{X: 1, Y: 1}
	s.render.SetZIndex(float32(r.used))
	s.space = common.SpaceComponent{}
	return s
}

// SetOffset implements render.Target.
func (r *EngoRenderer) SetOffset(offset physics.Vector2D) {
	r.offset = offset
}

// Size implements entity.Renderer.
func (r *EngoRenderer) Size() physics.Size {
	return r.size
}

func point(v physics.Vector2D) engo.Point {
	return engo.Point{X: float32(v.X), Y: float32(v.Y)}
}

// imagePlacement positions a rectangle rotated about pivot. engo rotates
// around the entity position, so the top-left corner is rotated first.
func imagePlacement(dest physics.Rect, rotation float64, pivot physics.Vector2D) common.SpaceComponent {
	size := dest.Size()
	return common.SpaceComponent{
		Position: point(dest.TopLeft.RotateAround(rotation, pivot)),
		Width:    float32(size.Width),
		Height:   float32(size.Height),
		Rotation: float32(rotation),
	}
}

// linePlacement turns a segment into a thin rotated rectangle.
func linePlacement(from, to physics.Vector2D, width float64) common.SpaceComponent {
	if width <= 0 {
		width = 1
	}
	d := to.Sub(from)
	angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
	topLeft := from.Add(physics.Vector2D{Y: -width / 2}.Rotate(angle))
	return common.SpaceComponent{
		Position: point(topLeft),
		Width:    float32(d.Length()),
		Height:   float32(width),
		Rotation: float32(angle),
	}
}

// DrawImage implements entity.Renderer.
func (r *EngoRenderer) DrawImage(image entity.ImageID, dest physics.Rect, rotation float64, pivot physics.Vector2D) {
	tex := r.assets.Sprite(image)
	if tex == nil {
		return
	}
	s := r.next(tex, color.White)
	s.space = imagePlacement(dest.Translate(r.offset), rotation, pivot.Add(r.offset))
	if w, h := tex.Width(), tex.Height(); w > 0 && h > 0 {
		s.render.Scale = engo.Point{X: s.space.Width / w, Y: s.space.Height / h}
	}
}

// DrawLine implements entity.Renderer.
func (r *EngoRenderer) DrawLine(from, to physics.Vector2D, c color.Color, width float64) {
	s := r.next(common.Rectangle{}, c)
	s.space = linePlacement(from.Add(r.offset), to.Add(r.offset), width)
}

// DrawRectangle implements entity.Renderer.
func (r *EngoRenderer) DrawRectangle(rect physics.Rect, c color.Color, width float64) {
	corners := rect.Corners()
	for i := range corners {
		r.DrawLine(corners[i], corners[(i+1)%len(corners)], c, width)
	}
}

// FillRectangle implements entity.Renderer.
func (r *EngoRenderer) FillRectangle(rect physics.Rect, c color.Color) {
	s := r.next(common.Rectangle{}, c)
	s.space = imagePlacement(rect.Translate(r.offset), 0, physics.Zero)
}

// DrawArc implements entity.Renderer as a chain of short segments.
func (r *EngoRenderer) DrawArc(start, center physics.Vector2D, sweep float64, c color.Color, width float64) {
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	prev := start
	for i := 1; i <= steps; i++ {
		p := start.RotateAround(sweep*float64(i)/float64(steps), center)
		r.DrawLine(prev, p, c, width)
		prev = p
	}
}

// DrawEllipse implements entity.Renderer as an unfilled ellipse outline.
func (r *EngoRenderer) DrawEllipse(center physics.Vector2D, rx, ry float64, c color.Color) {
	s := r.next(common.Circle{BorderWidth: 1, BorderColor: c}, color.Transparent)
	s.space = imagePlacement(physics.Rect{
		TopLeft:     physics.Vector2D{X: center.X - rx, Y: center.Y - ry},
		BottomRight: physics.Vector2D{X: center.X + rx, Y: center.Y + ry},
	}.Translate(r.offset), 0, physics.Zero)
}

// DrawText implements entity.Renderer.
func (r *EngoRenderer) DrawText(text string, format entity.TextFormat, dest physics.Rect, c color.Color) {
	font := r.assets.Font(format, c)
	if font == nil {
		return
	}
	s := r.next(common.Text{Font: font, Text: text}, color.White)
	s.space = imagePlacement(dest.Translate(r.offset), 0, physics.Zero)
}

// CreateTextFormat implements entity.Renderer.
func (r *EngoRenderer) CreateTextFormat(font string, size float64) entity.TextFormat {
	return entity.TextFormat{Font: font, Size: size}
}
