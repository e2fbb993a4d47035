// Package engine provides unit tests for game.go and driver.go
package engine

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/render"
	"github.com/opd-ai/go-lander/pkg/replay"
)

func newTestGame(t *testing.T, src input.Source) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Replay.Dir = t.TempDir()
	logger := logging.Discard()
	return NewGame(cfg, Options{
		Logger: logger,
		Input:  src,
		Store:  replay.NewStore(replay.StoreOptions{Dir: cfg.Replay.Dir, Logger: logger}),
	})
}

// flightScript climbs, rolls, coasts and falls back down.
func flightScript() *input.Script {
	return input.NewScript().
		Repeat(input.Thrust, 300).
		Repeat(input.Thrust|input.RollRight, 40).
		Repeat(input.Thrust, 200).
		Repeat(input.RollLeft, 40).
		Repeat(input.None, 1500)
}

func TestNewGame_InitializesScene(t *testing.T) {
	game := newTestGame(t, nil)

	want := []entity.Entity{
		game.Terrain, game.Start, game.Landing, game.Rocket,
	}
	objects := game.Objects()
	if len(objects) != 6 {
		t.Fatalf("expected 6 objects, got %d", len(objects))
	}
	for i, e := range want {
		if objects[i] != e {
			t.Errorf("objects[%d] = %T, want %T", i, objects[i], e)
		}
	}
	if _, ok := objects[4].(*entity.InstrumentPanel); !ok {
		t.Errorf("objects[4] = %T, want instrument panel", objects[4])
	}
	if _, ok := objects[5].(*entity.FlightTimer); !ok {
		t.Errorf("objects[5] = %T, want flight timer", objects[5])
	}

	colliders := game.Colliders()
	if len(colliders) != 4 {
		t.Errorf("expected 4 colliders, got %d", len(colliders))
	}
	if game.TimeStep() != 0.005 {
		t.Errorf("TimeStep() = %v, want 0.005", game.TimeStep())
	}
	if game.Rocket.State() != entity.Unstarted {
		t.Errorf("rocket state = %v, want unstarted", game.Rocket.State())
	}
}

func TestGame_AddObject_StableByPriority(t *testing.T) {
	game := newTestGame(t, nil)
	extra := entity.NewPlatform(game.Terrain, 500, entity.ColorPlatform)
	game.AddObject(extra)

	objects := game.Objects()
	if objects[3] != extra {
		t.Errorf("equal priority objects should keep insertion order, got %T at 3", objects[3])
	}
	for i := 1; i < len(objects); i++ {
		if objects[i-1].RenderPriority() < objects[i].RenderPriority() {
			t.Errorf("objects out of order at %d", i)
		}
	}
	if len(game.Colliders()) != 5 {
		t.Errorf("platform should be registered as collider")
	}
}

// countingSource counts Tick calls.
type countingSource struct {
	ticks int
	mask  input.Type
}

func (c *countingSource) Tick()                         { c.ticks++ }
func (c *countingSource) IsActive(kind input.Type) bool { return c.mask.Has(kind) }

func TestGame_StepSamplesInputOnce(t *testing.T) {
	src := &countingSource{}
	game := newTestGame(t, src)

	for i := 0; i < 10; i++ {
		game.Step()
	}
	if src.ticks != 10 {
		t.Errorf("input ticked %d times over 10 steps", src.ticks)
	}
	if game.CurrentTick() != 10 {
		t.Errorf("CurrentTick() = %d, want 10", game.CurrentTick())
	}
}

func TestGame_Deterministic(t *testing.T) {
	a := newTestGame(t, flightScript())
	b := newTestGame(t, flightScript())

	for i := 0; i < 2080; i++ {
		a.Step()
		b.Step()
		if a.Rocket.Pos != b.Rocket.Pos || a.Rocket.Rotation != b.Rocket.Rotation {
			t.Fatalf("tick %d: runs diverged: %v vs %v", i, a.Rocket.Pos, b.Rocket.Pos)
		}
	}
	if a.Rocket.State() == entity.Unstarted {
		t.Error("scripted flight never launched")
	}
}

func TestGame_ReplayReproducesFlight(t *testing.T) {
	script := flightScript()
	n := script.Len()

	recorded := newTestGame(t, script)
	for i := 0; i < n; i++ {
		recorded.Step()
	}
	recorded.Rocket.Recorder().Stop()
	entries := recorded.Rocket.Recorder().Entries()
	if len(entries) == 0 {
		t.Fatal("nothing recorded")
	}

	replayed := newTestGame(t, nil)
	// Disturb the starting state; the leading reset must undo it.
	replayed.Rocket.Tank.Thrust(10)
	replayed.PlayReplay(entries)
	if replayed.CurrentTick() != 0 {
		t.Fatalf("PlayReplay should restart the tick count")
	}
	for i := 0; i < n+1; i++ {
		replayed.Step()
	}

	got, want := replayed.Rocket, recorded.Rocket
	if got.Pos != want.Pos || got.Rotation != want.Rotation {
		t.Errorf("replay ended at %v rot %v, want %v rot %v", got.Pos, got.Rotation, want.Pos, want.Rotation)
	}
	if got.Body.Velocity != want.Body.Velocity {
		t.Errorf("velocity %v, want %v", got.Body.Velocity, want.Body.Velocity)
	}
	if got.Tank.Volume() != want.Tank.Volume() {
		t.Errorf("fuel %v, want %v", got.Tank.Volume(), want.Tank.Volume())
	}
	if got.State() != want.State() || got.Elapsed() != want.Elapsed() {
		t.Errorf("state %v after %v, want %v after %v", got.State(), got.Elapsed(), want.State(), want.Elapsed())
	}
}

func TestGame_LoadReplayFromStore(t *testing.T) {
	game := newTestGame(t, nil)
	var loaded []event.Event
	game.EventBus.Subscribe(event.ReplayLoaded, func(e event.Event) { loaded = append(loaded, e) })

	ctx := context.Background()
	path, err := game.Store.Save(ctx, []replay.Entry{{Ticks: 3, Inputs: input.Thrust}})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	game.Step()
	if err := game.LoadReplay(ctx, path); err != nil {
		t.Fatalf("LoadReplay failed: %v", err)
	}
	if _, ok := game.Input().(*replay.Player); !ok {
		t.Errorf("Input() = %T, want replay player", game.Input())
	}
	if game.CurrentTick() != 0 {
		t.Errorf("CurrentTick() = %d, want 0 after loading", game.CurrentTick())
	}
	if len(loaded) != 1 || loaded[0].(*event.ReplayEvent).Entries != 1 {
		t.Errorf("loaded events = %v", loaded)
	}

	game.Step()
	game.Step()
	if game.Rocket.State() != entity.Started {
		t.Errorf("replayed thrust should launch, state %v", game.Rocket.State())
	}
}

func TestGame_LoadReplayMissingFile(t *testing.T) {
	live := input.NewLatch()
	game := newTestGame(t, live)
	var failed int
	game.EventBus.Subscribe(event.ReplayFailed, func(event.Event) { failed++ })

	err := game.LoadReplay(context.Background(), "does-not-exist.sav")
	if !errors.Is(err, replay.ErrOpenReplay) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadReplay error = %v", err)
	}
	if game.Input() != input.Source(live) {
		t.Error("live input should stay in control after a failed load")
	}
	if failed != 1 {
		t.Errorf("ReplayFailed events = %d, want 1", failed)
	}
}

func TestGame_SaveReplayKeyWritesFile(t *testing.T) {
	script := input.NewScript().
		Repeat(input.Thrust, 20).
		Repeat(input.Reset, 1).
		Repeat(input.SaveReplay, 1)
	game := newTestGame(t, script)

	for i := 0; i < script.Len(); i++ {
		game.Step()
	}

	paths, err := game.Store.List()
	if err != nil || len(paths) != 1 {
		t.Fatalf("List() = %v, %v; want one replay", paths, err)
	}
	entries, err := game.Store.Load(context.Background(), paths[0])
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if replay.TotalTicks(entries) != 20 {
		t.Errorf("saved %d ticks, want 20", replay.TotalTicks(entries))
	}
}

func TestGame_ReplayOperationsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, slog.LevelInfo)
	cfg := config.DefaultConfig()
	cfg.Replay.Dir = t.TempDir()
	script := input.NewScript().
		Repeat(input.Thrust, 10).
		Repeat(input.Reset, 1).
		Repeat(input.SaveReplay, 1)
	game := NewGame(cfg, Options{
		Logger: logger,
		Input:  script,
		Store:  replay.NewStore(replay.StoreOptions{Dir: cfg.Replay.Dir, Logger: logger}),
	})

	for i := 0; i < script.Len(); i++ {
		game.Step()
	}
	path, err := game.Store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if err := game.LoadReplay(context.Background(), path); err != nil {
		t.Fatalf("LoadReplay failed: %v", err)
	}

	out := buf.String()
	for _, msg := range []string{"replay saved", "replay loaded"} {
		if got := strings.Count(out, `"msg":"`+msg+`"`); got != 1 {
			t.Errorf("%q logged %d times, want 1", msg, got)
		}
	}
}

func TestGame_HoverAIStaysAloft(t *testing.T) {
	game := newTestGame(t, nil)
	game.SetInput(input.NewHoverAI(game.Rocket, input.NewLatch(), 42))

	launched := false
	for i := 0; i < 2000; i++ {
		game.Step()
		if game.Rocket.State() == entity.Started {
			launched = true
		}
		if game.Rocket.State() == entity.Crashed {
			t.Fatalf("hover AI crashed at tick %d", i)
		}
	}
	if !launched {
		t.Error("hover AI never launched")
	}
}

// offsetSpy records the camera offset seen by text and sprite draws.
type offsetSpy struct {
	*render.NullRenderer
	textOffsets  []physics.Vector2D
	imageOffsets []physics.Vector2D
}

func (s *offsetSpy) DrawText(text string, f entity.TextFormat, dest physics.Rect, c color.Color) {
	s.textOffsets = append(s.textOffsets, s.Offset())
}

func (s *offsetSpy) DrawImage(id entity.ImageID, dest physics.Rect, rot float64, pivot physics.Vector2D) {
	s.imageOffsets = append(s.imageOffsets, s.Offset())
}

func TestGame_DrawAppliesCameraToWorldOnly(t *testing.T) {
	game := newTestGame(t, nil)
	spy := &offsetSpy{NullRenderer: render.NewNullRenderer(physics.Size{Width: 1000, Height: 700}, nil)}

	// Lift the rocket above the screen so the camera scrolls.
	game.Rocket.Pos.Y = -400
	game.Draw(spy)

	if len(spy.imageOffsets) == 0 || spy.imageOffsets[0].Y != 470 {
		t.Errorf("rocket offsets = %v, want y 470", spy.imageOffsets)
	}
	if len(spy.textOffsets) != 2 {
		t.Fatalf("expected 2 overlay texts, got %d", len(spy.textOffsets))
	}
	for _, off := range spy.textOffsets {
		if off != physics.Zero {
			t.Errorf("overlay drawn with offset %v", off)
		}
	}
	if spy.Offset() != physics.Zero {
		t.Error("Draw should leave the offset cleared")
	}
}

func TestDriver_Advance(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	game := newTestGame(t, nil)
	d := NewDriver(game, clock)

	steps := []struct {
		at   time.Duration
		want int
	}{
		{0, 0},
		{4 * time.Millisecond, 0},
		{12 * time.Millisecond, 2},
		{12 * time.Millisecond, 0},
		{1000 * time.Millisecond, 198},
	}
	for _, s := range steps {
		now = time.Unix(0, 0).Add(s.at)
		if got := d.Advance(); got != s.want {
			t.Errorf("Advance() at %v = %d, want %d", s.at, got, s.want)
		}
	}
	if game.CurrentTick() != 200 {
		t.Errorf("CurrentTick() = %d, want 200", game.CurrentTick())
	}

	d.SetInput(input.NewLatch())
	now = now.Add(4 * time.Millisecond)
	if got := d.Advance(); got != 0 {
		t.Errorf("Advance() right after restart = %d, want 0", got)
	}
	now = now.Add(1 * time.Millisecond)
	if got := d.Advance(); got != 1 {
		t.Errorf("Advance() 5ms after restart = %d, want 1", got)
	}
}

func TestDriver_Frame(t *testing.T) {
	now := time.Unix(0, 0)
	game := newTestGame(t, nil)
	d := NewDriver(game, func() time.Time { return now })
	r := render.NewNullRenderer(physics.Size{Width: 1000, Height: 700}, nil)

	now = now.Add(50 * time.Millisecond)
	if ran := d.Frame(r); ran != 10 {
		t.Errorf("Frame ran %d ticks, want 10", ran)
	}
	if r.Calls("image") == 0 || r.Calls("text") != 2 {
		t.Errorf("frame drew %d images and %d texts", r.Calls("image"), r.Calls("text"))
	}

	d.RunTicks(5)
	if game.CurrentTick() != 15 {
		t.Errorf("CurrentTick() = %d, want 15", game.CurrentTick())
	}
}
