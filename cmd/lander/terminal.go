package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/render"
)

// frameInterval paces terminal redraws at about 60 FPS.
const frameInterval = 16 * time.Millisecond

// runTerminal plays the game in the terminal until the player quits.
func runTerminal(ctx context.Context, driver *engine.Driver, keys *render.TerminalKeyboard, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init terminal screen")
	}
	defer screen.Fini()

	cfg := driver.Game().Config
	world := physics.Size{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	r := render.NewTerminalRenderer(screen, world)

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, events, done)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	driver.Restart()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch keys.HandleKey(ev) {
				case render.ActionQuit:
					logger.Info(ctx, "player quit", "ticks", driver.Game().CurrentTick())
					return nil
				case render.ActionLoadReplay:
					if err := loadReplay(ctx, driver, "latest"); err != nil {
						logger.Warn(ctx, "replay not loaded", "error", err.Error())
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case sig := <-sigChan:
			logger.Info(ctx, "received signal", "signal", sig.String())
			return nil

		case <-ticker.C:
			r.Begin()
			driver.Frame(r)
			r.End()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil (the screen was
// finalized) or done is closed, then closes events.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
