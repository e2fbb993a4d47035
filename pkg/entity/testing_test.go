package entity

import (
	"context"
	"fmt"
	"image/color"

	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/replay"
)

const testDT = 0.005

var testWorldSize = physics.Size{Width: 1000, Height: 700}

// testWorld is a minimal World driven by a latch.
type testWorld struct {
	colliders []Collider
	in        *input.Latch
	bus       *event.Bus
	tick      uint64
	events    []event.Event
}

func newTestWorld(colliders ...Collider) *testWorld {
	w := &testWorld{
		colliders: colliders,
		in:        input.NewLatch(),
		bus:       event.NewEventBus(),
	}
	for _, t := range []event.Type{
		event.RocketLaunched, event.RocketLanded, event.RocketCrashed,
		event.RocketSucceeded, event.RocketReset, event.FuelEmpty,
		event.EntityCollision, event.ReplaySaved, event.ReplayFailed,
	} {
		w.bus.Subscribe(t, func(e event.Event) { w.events = append(w.events, e) })
	}
	return w
}

func (w *testWorld) Colliders() []Collider    { return w.colliders }
func (w *testWorld) Input() input.Source      { return w.in }
func (w *testWorld) Bus() *event.Bus          { return w.bus }
func (w *testWorld) CurrentTick() uint64      { return w.tick }
func (w *testWorld) Context() context.Context { return context.Background() }

// step runs one tick of e with mask held.
func (w *testWorld) step(e Entity, mask input.Type) {
	w.in.Set(mask)
	w.in.Tick()
	e.Update(w, testDT)
	w.tick++
}

func (w *testWorld) eventTypes() []event.Type {
	out := make([]event.Type, 0, len(w.events))
	for _, e := range w.events {
		out = append(out, e.GetType())
	}
	return out
}

type testScene struct {
	terrain *Terrain
	start   *Platform
	landing *Platform
	rocket  *Rocket
	world   *testWorld
}

func newTestScene(saver *memorySaver) *testScene {
	terrain := NewTerrain(testWorldSize)
	start := NewPlatform(terrain, 162, ColorPlatform)
	landing := NewPlatform(terrain, 835, ColorLanding)
	var rocket *Rocket
	if saver != nil {
		rocket = NewRocket(start, landing, DefaultRocketConfig(), saver)
	} else {
		rocket = NewRocket(start, landing, DefaultRocketConfig(), nil)
	}
	return &testScene{
		terrain: terrain,
		start:   start,
		landing: landing,
		rocket:  rocket,
		world:   newTestWorld(terrain, start, landing, rocket),
	}
}

// drawCall records one renderer invocation.
type drawCall struct {
	Kind  string
	Image ImageID
	Rect  physics.Rect
	From  physics.Vector2D
	To    physics.Vector2D
	Angle float64
	Text  string
	Color color.Color
}

// recordingRenderer captures draw calls for inspection.
type recordingRenderer struct {
	size    physics.Size
	calls   []drawCall
	formats int
}

func (r *recordingRenderer) DrawImage(image ImageID, dest physics.Rect, rotation float64, pivot physics.Vector2D) {
	r.calls = append(r.calls, drawCall{Kind: "image", Image: image, Rect: dest, Angle: rotation, From: pivot})
}

func (r *recordingRenderer) DrawLine(from, to physics.Vector2D, c color.Color, width float64) {
	r.calls = append(r.calls, drawCall{Kind: "line", From: from, To: to, Color: c})
}

func (r *recordingRenderer) DrawRectangle(rect physics.Rect, c color.Color, width float64) {
	r.calls = append(r.calls, drawCall{Kind: "rect", Rect: rect, Color: c})
}

func (r *recordingRenderer) FillRectangle(rect physics.Rect, c color.Color) {
	r.calls = append(r.calls, drawCall{Kind: "fill", Rect: rect, Color: c})
}

func (r *recordingRenderer) DrawArc(start, center physics.Vector2D, sweep float64, c color.Color, width float64) {
	r.calls = append(r.calls, drawCall{Kind: "arc", From: start, To: center, Angle: sweep, Color: c})
}

func (r *recordingRenderer) DrawEllipse(center physics.Vector2D, rx, ry float64, c color.Color) {
	r.calls = append(r.calls, drawCall{Kind: "ellipse", From: center, Color: c})
}

func (r *recordingRenderer) DrawText(text string, format TextFormat, dest physics.Rect, c color.Color) {
	r.calls = append(r.calls, drawCall{Kind: "text", Text: text, Rect: dest, Color: c})
}

func (r *recordingRenderer) CreateTextFormat(font string, size float64) TextFormat {
	r.formats++
	return TextFormat{Font: font, Size: size}
}

func (r *recordingRenderer) Size() physics.Size { return r.size }

func (r *recordingRenderer) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// memorySaver is an in-memory replay.Saver.
type memorySaver struct {
	saved [][]byte
	err   error
}

func (s *memorySaver) Save(ctx context.Context, entries []replay.Entry) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, replay.Encode(entries))
	return fmt.Sprintf("memory-%d.sav", len(s.saved)), nil
}
