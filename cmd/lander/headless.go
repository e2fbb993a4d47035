package main

import (
	"context"
	"fmt"
	"io"

	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/render"
)

// runHeadless simulates ticks without a display and prints the outcome.
func runHeadless(ctx context.Context, driver *engine.Driver, ticks int, logger *logging.Logger, out io.Writer) error {
	game := driver.Game()
	driver.RunTicks(ticks)

	size := physics.Size{Width: float64(game.Config.Window.Width), Height: float64(game.Config.Window.Height)}
	r := render.NewNullRenderer(size, logger)
	game.Draw(r)

	rocket := game.Rocket
	logger.Info(ctx, "headless run finished",
		"ticks", game.CurrentTick(),
		"state", rocket.State().String(),
		"elapsed", rocket.Elapsed().String(),
	)
	_, err := fmt.Fprintf(out, "ticks=%d state=%s elapsed=%s pos=(%.1f, %.1f) speed=%.2f fuel=%.0f%%\n",
		game.CurrentTick(),
		rocket.State(),
		rocket.Elapsed(),
		rocket.Pos.X, rocket.Pos.Y,
		rocket.Body.Speed(),
		rocket.Tank.Level()*100,
	)
	return err
}
