// cmd/lander/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/go-lander/pkg/audio"
	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/render"
	engorender "github.com/opd-ai/go-lander/pkg/render/engo"
	"github.com/opd-ai/go-lander/pkg/replay"
)

// options are the parsed command line flags.
type options struct {
	configPath string
	renderer   string
	replayPath string
	ai         string
	seed       uint64
	ticks      int
	mute       bool
	logFile    string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("lander", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "config.json", "Path to configuration file")
	fs.StringVar(&o.renderer, "renderer", "", "Renderer: 'engo', 'terminal' or 'headless' (overrides config)")
	fs.StringVar(&o.replayPath, "replay", "", "Replay file to play, or 'latest'")
	fs.StringVar(&o.ai, "ai", "", "Computer pilot: 'hover'")
	fs.Uint64Var(&o.seed, "seed", 1, "Seed for the computer pilot")
	fs.IntVar(&o.ticks, "ticks", 2000, "Ticks to simulate (headless only)")
	fs.BoolVar(&o.mute, "mute", false, "Disable sound")
	fs.StringVar(&o.logFile, "log", "lander.log", "Log file used by the terminal renderer")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.ai != "" && o.ai != "hover" {
		return o, fmt.Errorf("unknown pilot %q", o.ai)
	}
	return o, nil
}

func loadConfig(path string) (*config.GameConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// defaults plus LANDER_* environment overrides
		return config.LoadConfig("")
	}
	return config.LoadConfig(path)
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "lander: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.renderer != "" {
		cfg.Renderer = opts.renderer
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// the terminal renderer owns stderr's screen, so it logs to a file
	var logOut io.Writer = os.Stderr
	if cfg.Renderer == config.RendererTerminal {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logging.WrapError(err, "open log file %s", opts.logFile)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewLoggerWithWriter(logOut, logging.ParseLevel(cfg.LogLevel))
	ctx := logging.WithSessionID(context.Background(), "")

	logger.Info(ctx, "starting lander",
		"renderer", cfg.Renderer,
		"config_path", opts.configPath,
		"tick_millis", cfg.Simulation.TickMillis,
	)

	var live input.Source
	var termKeys *render.TerminalKeyboard
	switch cfg.Renderer {
	case config.RendererEngo:
		live = engorender.NewKeyboard(nil)
	case config.RendererTerminal:
		termKeys = render.NewTerminalKeyboard(render.DefaultKeyHold, nil)
		live = termKeys
	default:
		live = input.NewLatch()
	}

	var pilot *input.HoverAI
	if opts.ai == "hover" {
		pilot = input.NewHoverAI(nil, live, opts.seed)
		live = pilot
	}

	bus := event.NewEventBus()
	store := replay.NewStore(replay.StoreOptions{
		Dir:         cfg.Replay.Dir,
		MaxFailures: cfg.Replay.MaxFailures,
		Timeout:     cfg.Replay.Timeout,
		Logger:      logger,
	})
	game := engine.NewGame(cfg, engine.Options{
		Logger:  logger,
		Bus:     bus,
		Store:   store,
		Input:   live,
		Context: ctx,
	})
	if pilot != nil {
		pilot.SetTarget(game.Rocket)
	}

	if cfg.Renderer != config.RendererHeadless && !opts.mute {
		sounds := audio.NewSoundManager(cfg.Audio, nil, logger)
		if err := sounds.Initialize(); err != nil {
			// the game runs without sound
			logger.Warn(ctx, "audio unavailable", "error", err.Error())
		}
		sounds.Subscribe(bus)
		defer sounds.Cleanup()
	}

	driver := engine.NewDriver(game, nil)
	if opts.replayPath != "" {
		if err := loadReplay(ctx, driver, opts.replayPath); err != nil {
			logger.Warn(ctx, "starting with live input", "error", err.Error())
		}
	}

	switch cfg.Renderer {
	case config.RendererEngo:
		scene := engorender.NewGameScene(ctx, driver, logger)
		engorender.Run(cfg.Window, scene)
		return nil
	case config.RendererTerminal:
		return runTerminal(ctx, driver, termKeys, logger)
	default:
		return runHeadless(ctx, driver, opts.ticks, logger, os.Stdout)
	}
}

// loadReplay resolves "latest" against the store and plays the file.
func loadReplay(ctx context.Context, driver *engine.Driver, path string) error {
	if path == "latest" {
		latest, err := driver.Game().Store.Latest()
		if err != nil {
			return err
		}
		path = latest
	}
	return driver.LoadReplay(ctx, path)
}
