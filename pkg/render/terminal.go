package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/physics"
)

// Glyphs used for sprites.
var imageGlyphs = map[entity.ImageID]rune{
	entity.ImageRocket: 'A',
	entity.ImageTrail:  '*',
	entity.ImageArrow:  '>',
}

// TerminalRenderer draws the world onto a tcell screen, scaling the world
// size onto the cell grid.
type TerminalRenderer struct {
	screen tcell.Screen
	world  physics.Size
	offset physics.Vector2D
	cols   int
	rows   int
}

// NewTerminalRenderer creates a renderer mapping a world of the given size
// onto screen.
func NewTerminalRenderer(screen tcell.Screen, world physics.Size) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		world:  world,
	}
	r.cols, r.rows = screen.Size()
	return r
}

// Begin clears the screen and picks up the current terminal size.
func (r *TerminalRenderer) Begin() {
	r.cols, r.rows = r.screen.Size()
	r.screen.Clear()
}

// End presents the frame.
func (r *TerminalRenderer) End() {
	r.screen.Show()
}

// SetOffset implements Target.
func (r *TerminalRenderer) SetOffset(offset physics.Vector2D) {
	r.offset = offset
}

// Size implements entity.Renderer. Entities see the world size, not cells.
func (r *TerminalRenderer) Size() physics.Size {
	return r.world
}

// toCell converts a world point to a cell.
func (r *TerminalRenderer) toCell(p physics.Vector2D) (int, int) {
	p = p.Add(r.offset)
	x := math.Floor(p.X * float64(r.cols) / r.world.Width)
	y := math.Floor(p.Y * float64(r.rows) / r.world.Height)
	return int(x), int(y)
}

// cellCenter converts a cell back to the world point at its center.
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x)+0.5)*r.world.Width/float64(r.cols) - r.offset.X,
		Y: (float64(y)+0.5)*r.world.Height/float64(r.rows) - r.offset.Y,
	}
}

func (r *TerminalRenderer) plot(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func styleFor(c color.Color) tcell.Style {
	if c == nil {
		return tcell.StyleDefault
	}
	cr, cg, cb, _ := c.RGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr>>8), int32(cg>>8), int32(cb>>8)))
}

// DrawImage implements entity.Renderer by filling the rotated destination
// with the sprite glyph.
func (r *TerminalRenderer) DrawImage(image entity.ImageID, dest physics.Rect, rotation float64, pivot physics.Vector2D) {
	glyph, ok := imageGlyphs[image]
	if !ok {
		glyph = '?'
	}
	style := tcell.StyleDefault.Bold(true)

	var corners [4]physics.Vector2D
	for i, c := range dest.Corners() {
		corners[i] = c.RotateAround(rotation, pivot)
	}
	x0, y0, x1, y1 := r.cellBounds(corners[:])

	plotted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			local := r.cellCenter(x, y).RotateAround(-rotation, pivot)
			if dest.Contains(local) {
				r.plot(x, y, glyph, style)
				plotted = true
			}
		}
	}
	if !plotted {
		x, y := r.toCell(dest.Center().RotateAround(rotation, pivot))
		r.plot(x, y, glyph, style)
	}
}

func (r *TerminalRenderer) cellBounds(points []physics.Vector2D) (x0, y0, x1, y1 int) {
	x0, y0 = math.MaxInt, math.MaxInt
	x1, y1 = math.MinInt, math.MinInt
	for _, p := range points {
		x, y := r.toCell(p)
		x0, y0 = min(x0, x), min(y0, y)
		x1, y1 = max(x1, x), max(y1, y)
	}
	return x0, y0, x1, y1
}

func lineGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// DrawLine implements entity.Renderer with Bresenham's algorithm on cells.
func (r *TerminalRenderer) DrawLine(from, to physics.Vector2D, c color.Color, width float64) {
	x0, y0 := r.toCell(from)
	x1, y1 := r.toCell(to)
	r.cellLine(x0, y0, x1, y1, lineGlyph(x1-x0, y1-y0), styleFor(c))
}

func (r *TerminalRenderer) cellLine(x0, y0, x1, y1 int, glyph rune, style tcell.Style) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.plot(x0, y0, glyph, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawRectangle implements entity.Renderer.
func (r *TerminalRenderer) DrawRectangle(rect physics.Rect, c color.Color, width float64) {
	corners := rect.Corners()
	for i := range corners {
		r.DrawLine(corners[i], corners[(i+1)%len(corners)], c, width)
	}
}

// FillRectangle implements entity.Renderer. Every cell touched by the
// rectangle is filled so thin shapes stay visible.
func (r *TerminalRenderer) FillRectangle(rect physics.Rect, c color.Color) {
	x0, y0 := r.toCell(rect.TopLeft)
	x1, y1 := r.toCell(rect.BottomRight)
	style := styleFor(c)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.plot(x, y, '=', style)
		}
	}
}

// DrawArc implements entity.Renderer by sampling the arc.
func (r *TerminalRenderer) DrawArc(start, center physics.Vector2D, sweep float64, c color.Color, width float64) {
	style := styleFor(c)
	steps := int(math.Ceil(math.Abs(sweep) / 10))
	for i := 0; i <= steps; i++ {
		angle := 0.0
		if steps > 0 {
			angle = sweep * float64(i) / float64(steps)
		}
		x, y := r.toCell(start.RotateAround(angle, center))
		r.plot(x, y, 'o', style)
	}
}

// DrawEllipse implements entity.Renderer by sampling the outline.
func (r *TerminalRenderer) DrawEllipse(center physics.Vector2D, rx, ry float64, c color.Color) {
	style := styleFor(c)
	for deg := 0.0; deg < 360; deg += 10 {
		rad := deg * math.Pi / 180
		p := physics.Vector2D{X: center.X + rx*math.Cos(rad), Y: center.Y + ry*math.Sin(rad)}
		x, y := r.toCell(p)
		r.plot(x, y, '.', style)
	}
}

// DrawText implements entity.Renderer. Lines that would run past the right
// edge are shifted left to fit.
func (r *TerminalRenderer) DrawText(text string, format entity.TextFormat, dest physics.Rect, c color.Color) {
	style := styleFor(c)
	x0, y := r.toCell(dest.TopLeft)
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		x := x0
		if x+len(runes) > r.cols {
			x = max(0, r.cols-len(runes))
		}
		for i, ch := range runes {
			r.plot(x+i, y, ch, style)
		}
		y++
	}
}

// CreateTextFormat implements entity.Renderer. Terminals have one font.
func (r *TerminalRenderer) CreateTextFormat(font string, size float64) entity.TextFormat {
	return entity.TextFormat{Font: font, Size: size}
}
