package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/render"
)

// Driver converts wall clock time into fixed simulation ticks. It is owned
// by the frontend's main loop and is not safe for concurrent use.
type Driver struct {
	game  *Game
	tick  time.Duration
	now   func() time.Time
	epoch time.Time
}

// NewDriver creates a driver for game. A nil now uses time.Now.
func NewDriver(game *Game, now func() time.Time) *Driver {
	if now == nil {
		now = time.Now
	}
	tick := game.Config.TickDuration()
	if tick <= 0 {
		tick = 5 * time.Millisecond
	}
	return &Driver{
		game:  game,
		tick:  tick,
		now:   now,
		epoch: now(),
	}
}

// Game returns the driven game.
func (d *Driver) Game() *Game {
	return d.game
}

// Expected returns how many ticks should have run by now: whole elapsed
// milliseconds since the epoch divided by the tick length.
func (d *Driver) Expected() uint64 {
	elapsed := d.now().Sub(d.epoch).Milliseconds()
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / d.tick.Milliseconds())
}

// Advance runs every tick that is due and returns how many ran.
func (d *Driver) Advance() int {
	expected := d.Expected()
	ran := 0
	for d.game.CurrentTick() < expected {
		d.game.Step()
		ran++
	}
	return ran
}

// Frame advances the simulation and draws it.
func (d *Driver) Frame(r render.Target) int {
	ran := d.Advance()
	d.game.Draw(r)
	return ran
}

// Restart resets the clock epoch to now. Call it whenever the game's tick
// count is reset.
func (d *Driver) Restart() {
	d.epoch = d.now()
}

// SetInput swaps the live source and restarts the clock.
func (d *Driver) SetInput(src input.Source) {
	d.game.SetInput(src)
	d.Restart()
}

// LoadReplay plays the replay at path from the next frame on.
func (d *Driver) LoadReplay(ctx context.Context, path string) error {
	if err := d.game.LoadReplay(ctx, path); err != nil {
		return err
	}
	d.Restart()
	return nil
}

// RunTicks steps the game n times regardless of the clock. Headless runs
// and tests use it.
func (d *Driver) RunTicks(n int) {
	for i := 0; i < n; i++ {
		d.game.Step()
	}
}
