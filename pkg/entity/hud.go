package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// HUD fonts.
const (
	FontSevenSegment = "NI7SEG"
)

var (
	panelSize      = physics.Size{Width: 200, Height: 60}
	timerSize      = physics.Size{Width: 280, Height: 30}
	instrumentSize = physics.Size{Width: 100, Height: 100}
	arrowSize      = physics.Size{Width: 100, Height: 30}
)

// FormatReading renders v as -###.# with both parts truncated toward zero.
func FormatReading(v float64) string {
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	whole := int(v)
	tenth := int(v*10) % 10
	fmt.Fprintf(&b, "%3d.%d", absInt(whole), absInt(tenth))
	return b.String()
}

// FormatElapsed renders d as MM:SS.mmm.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InstrumentPanel shows speed and attitude readouts plus a dial in the top
// right corner of the screen.
type InstrumentPanel struct {
	Object
	rocket *Rocket
	format *TextFormat
}

// NewInstrumentPanel creates a panel tracking rocket.
func NewInstrumentPanel(rocket *Rocket) *InstrumentPanel {
	p := &InstrumentPanel{
		Object: NewObject(physics.Zero, panelSize),
		rocket: rocket,
	}
	p.ScreenSpace = true
	return p
}

// RenderPriority implements Entity.
func (p *InstrumentPanel) RenderPriority() int { return -98 }

// Update implements Entity.
func (p *InstrumentPanel) Update(w World, dt float64) {}

// Text returns the readout lines.
func (p *InstrumentPanel) Text() string {
	rot := physics.NormalizeDegrees(p.rocket.Rotation)
	return fmt.Sprintf("Velocity: %s m/s\nAngle: %s°\nFuel: %3.0f%%\nState: %s",
		FormatReading(p.rocket.Body.Speed()),
		FormatReading(rot),
		p.rocket.Tank.Level()*100,
		p.rocket.State())
}

// Draw implements Entity.
func (p *InstrumentPanel) Draw(r Renderer) {
	screen := r.Size()
	p.Pos = physics.Vector2D{X: screen.Width - p.Size.Width, Y: 30}

	if p.format == nil {
		f := r.CreateTextFormat(FontSevenSegment, 15)
		p.format = &f
	}
	r.DrawText(p.Text(), *p.format, p.Bounds(), ColorText)

	dial := physics.NewRect(p.Pos.Add(physics.Vector2D{X: 50, Y: 80}), instrumentSize)
	center := dial.Center()
	top := physics.Vector2D{X: center.X, Y: dial.TopLeft.Y}
	radius := instrumentSize.Height / 2
	tick := radius / 5

	r.DrawEllipse(center, radius, radius, ColorInstrument)
	for _, dir := range []physics.Vector2D{physics.Down, physics.Left, physics.Up, physics.Right} {
		edge := center.Sub(dir.Scale(radius))
		r.DrawLine(edge, edge.Add(dir.Scale(tick)), ColorInstrument, 2)
	}

	arm := top.Sub(center)
	r.DrawArc(top, center, p.rocket.Body.AngularVelocity*10, ColorSpin, 5)

	attitude := arm.Rotate(p.rocket.Rotation)
	r.DrawLine(center.Sub(attitude), center.Add(attitude), ColorAttitude, 2)

	// the arrow sprite points right at zero rotation
	arrow := physics.NewRect(center.Sub(physics.Vector2D{X: arrowSize.Width / 2, Y: arrowSize.Height / 2}), arrowSize)
	r.DrawImage(ImageArrow, arrow, -90+physics.Up.AngleTo(p.rocket.Body.Velocity), center)
}

// FlightTimer shows the rocket's elapsed flight time.
type FlightTimer struct {
	Object
	rocket *Rocket
	format *TextFormat
}

// NewFlightTimer creates a timer overlay tracking rocket.
func NewFlightTimer(rocket *Rocket) *FlightTimer {
	t := &FlightTimer{
		Object: NewObject(physics.Zero, timerSize),
		rocket: rocket,
	}
	t.ScreenSpace = true
	return t
}

// RenderPriority implements Entity.
func (t *FlightTimer) RenderPriority() int { return -99 }

// Update implements Entity.
func (t *FlightTimer) Update(w World, dt float64) {}

// Text returns the timer label.
func (t *FlightTimer) Text() string {
	return "Time passed: " + FormatElapsed(t.rocket.Elapsed())
}

// Draw implements Entity.
func (t *FlightTimer) Draw(r Renderer) {
	t.Pos = physics.Vector2D{X: r.Size().Width - t.Size.Width, Y: 0}
	if t.format == nil {
		f := r.CreateTextFormat(FontSevenSegment, 20)
		t.format = &f
	}
	r.DrawText(t.Text(), *t.format, t.Bounds(), ColorText)
}
