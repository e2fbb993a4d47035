package engo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/replay"
)

func TestKeyboard_Tick(t *testing.T) {
	tests := []struct {
		name string
		held []string
		want input.Type
	}{
		{"nothing", nil, input.None},
		{"space thrusts", []string{ButtonSpace}, input.Thrust},
		{"up thrusts", []string{ButtonUp}, input.Thrust},
		{"left rolls", []string{ButtonLeft}, input.RollLeft},
		{"both rolls cancel", []string{ButtonLeft, ButtonRight}, input.None},
		{"escape resets", []string{ButtonEscape}, input.Reset},
		{"f5 saves", []string{ButtonSave, ButtonRight}, input.SaveReplay | input.RollRight},
		{"f9 is not a tick input", []string{ButtonLoadReplay}, input.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := map[string]bool{}
			for _, b := range tt.held {
				held[b] = true
			}
			kb := NewKeyboard(func(name string) bool { return held[name] })
			kb.Tick()
			for _, kind := range input.Kinds {
				if got := kb.IsActive(kind); got != tt.want.Has(kind) {
					t.Errorf("IsActive(%v) = %v", kind, got)
				}
			}
		})
	}
}

type sceneFixture struct {
	scene   *GameScene
	driver  *engine.Driver
	now     *time.Time
	pressed *bool
}

// newTestScene wires a scene the way Setup does, minus the GL parts.
func newTestScene(t *testing.T) sceneFixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Replay.Dir = t.TempDir()
	game := engine.NewGame(cfg, engine.Options{Logger: logging.Discard()})

	now := time.Unix(0, 0)
	driver := engine.NewDriver(game, func() time.Time { return now })
	scene := NewGameScene(context.Background(), driver, logging.Discard())
	scene.renderer = NewEngoRenderer(&fakeSink{}, scene.assets, game.Terrain.Size)
	pressed := false
	scene.loadPressed = func() bool { return pressed }

	return sceneFixture{scene: scene, driver: driver, now: &now, pressed: &pressed}
}

func TestGameScene_Type(t *testing.T) {
	f := newTestScene(t)
	if f.scene.Type() != "LanderScene" {
		t.Errorf("Type() = %q", f.scene.Type())
	}
}

func TestGameScene_FrameAdvancesAndDraws(t *testing.T) {
	f := newTestScene(t)

	*f.now = f.now.Add(100 * time.Millisecond)
	f.scene.Frame()

	if got := f.driver.Game().CurrentTick(); got != 20 {
		t.Errorf("CurrentTick() = %d, want 20", got)
	}
	// terrain polyline, platforms and the panel dial are shapes
	if f.scene.renderer.Used() < 10 {
		t.Errorf("frame drew only %d entities", f.scene.renderer.Used())
	}
}

func TestGameScene_LoadReplayKey(t *testing.T) {
	f := newTestScene(t)
	game := f.driver.Game()
	if _, err := game.Store.Save(context.Background(), []replay.Entry{{Ticks: 10, Inputs: input.Thrust}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	*f.now = f.now.Add(50 * time.Millisecond)
	*f.pressed = true
	f.scene.Frame()

	if _, ok := game.Input().(*replay.Player); !ok {
		t.Fatalf("Input() = %T, want replay player", game.Input())
	}
	// the driver clock restarted with the replay
	if game.CurrentTick() != 0 {
		t.Errorf("CurrentTick() = %d, want 0", game.CurrentTick())
	}
}

func TestGameScene_LoadReplayWithoutSaves(t *testing.T) {
	f := newTestScene(t)
	game := f.driver.Game()
	live := game.Input()

	*f.pressed = true
	f.scene.Frame()

	if game.Input() != live {
		t.Error("input should stay live when there is nothing to load")
	}
	if _, err := game.Store.Latest(); !errors.Is(err, replay.ErrNoReplays) {
		t.Errorf("Latest() error = %v", err)
	}
}
