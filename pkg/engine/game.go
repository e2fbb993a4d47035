// pkg/engine/game.go
package engine

import (
	"context"
	"sort"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/render"
	"github.com/opd-ai/go-lander/pkg/replay"
)

// Options carries the collaborators of a Game. Zero values get defaults.
type Options struct {
	Logger *logging.Logger
	Bus    *event.Bus
	Store  *replay.Store
	// Input is the live source. Nil means a Latch nobody presses.
	Input input.Source
	// Context is handed to entities for blocking work such as saving replays.
	Context context.Context
}

// Game owns the simulated world: the ordered object list, the colliders and
// the input source sampled once per tick.
type Game struct {
	Config   *config.GameConfig
	EventBus *event.Bus
	Logger   *logging.Logger
	Store    *replay.Store
	Camera   *render.Camera

	Terrain *entity.Terrain
	Start   *entity.Platform
	Landing *entity.Platform
	Rocket  *entity.Rocket

	objects   []entity.Entity
	colliders []entity.Collider
	live      input.Source
	input     input.Source
	tick      uint64
	timeStep  float64
	ctx       context.Context
}

// NewGame builds the lander scene described by cfg.
func NewGame(cfg *config.GameConfig, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewEventBus()
	}
	if opts.Store == nil {
		opts.Store = replay.NewStore(replay.StoreOptions{
			Dir:         cfg.Replay.Dir,
			MaxFailures: cfg.Replay.MaxFailures,
			Timeout:     cfg.Replay.Timeout,
			Logger:      opts.Logger,
		})
	}
	if opts.Input == nil {
		opts.Input = input.NewLatch()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	g := &Game{
		Config:   cfg,
		EventBus: opts.Bus,
		Logger:   opts.Logger,
		Store:    opts.Store,
		Camera:   render.NewCamera(),
		live:     opts.Input,
		input:    opts.Input,
		timeStep: cfg.TickDuration().Seconds(),
		ctx:      opts.Context,
	}

	size := physics.Size{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	g.Terrain = entity.NewTerrain(size)
	g.Start = entity.NewPlatform(g.Terrain, cfg.Terrain.StartX, entity.ColorPlatform)
	g.Landing = entity.NewPlatform(g.Terrain, cfg.Terrain.LandingX, entity.ColorLanding)
	g.Rocket = entity.NewRocket(g.Start, g.Landing, cfg.Rocket, g.Store)

	g.AddObject(g.Terrain)
	g.AddObject(g.Start)
	g.AddObject(g.Landing)
	g.AddObject(g.Rocket)
	g.AddObject(entity.NewInstrumentPanel(g.Rocket))
	g.AddObject(entity.NewFlightTimer(g.Rocket))

	g.subscribeLogging()
	return g
}

// AddObject inserts e behind every object of equal or higher render
// priority. Colliders are registered for collision checks as well.
func (g *Game) AddObject(e entity.Entity) {
	prio := e.RenderPriority()
	i := sort.Search(len(g.objects), func(i int) bool {
		return g.objects[i].RenderPriority() < prio
	})
	g.objects = append(g.objects, nil)
	copy(g.objects[i+1:], g.objects[i:])
	g.objects[i] = e

	if c, ok := e.(entity.Collider); ok {
		g.colliders = append(g.colliders, c)
	}
}

// Objects returns the objects in draw order.
func (g *Game) Objects() []entity.Entity {
	return g.objects
}

// Colliders implements entity.World.
func (g *Game) Colliders() []entity.Collider {
	return g.colliders
}

// Input implements entity.World.
func (g *Game) Input() input.Source {
	return g.input
}

// Bus implements entity.World.
func (g *Game) Bus() *event.Bus {
	return g.EventBus
}

// CurrentTick implements entity.World.
func (g *Game) CurrentTick() uint64 {
	return g.tick
}

// Context implements entity.World.
func (g *Game) Context() context.Context {
	return g.ctx
}

// TimeStep returns the seconds simulated by one tick.
func (g *Game) TimeStep() float64 {
	return g.timeStep
}

// Step advances the simulation by one fixed tick: the input source is
// sampled once, then every enabled object updates in draw order.
func (g *Game) Step() {
	g.input.Tick()
	for _, obj := range g.objects {
		if obj.Base().Enabled {
			obj.Update(g, g.timeStep)
		}
	}
	g.tick++
}

// SetInput replaces the live input source and restarts the tick count.
func (g *Game) SetInput(src input.Source) {
	g.live = src
	g.input = src
	g.tick = 0
}

// LiveInput returns the source used when no replay is playing.
func (g *Game) LiveInput() input.Source {
	return g.live
}

// PlayReplay feeds entries through a Player backed by the live source and
// restarts the tick count so playback starts from the first tick.
func (g *Game) PlayReplay(entries []replay.Entry) *replay.Player {
	player := replay.NewPlayer(entries, g.live)
	g.input = player
	g.tick = 0
	return player
}

// LoadReplay reads a replay file and plays it. On failure the live source
// stays in control.
func (g *Game) LoadReplay(ctx context.Context, path string) error {
	entries, err := g.Store.Load(ctx, path)
	if err != nil {
		g.EventBus.Publish(event.NewReplayEvent(event.ReplayFailed, g, path, 0, err))
		return err
	}
	g.PlayReplay(entries)
	g.EventBus.Publish(event.NewReplayEvent(event.ReplayLoaded, g, path, len(entries), nil))
	return nil
}

// Draw renders every visible object. World objects are shifted by the
// camera, which follows the rocket; screen space objects are not.
func (g *Game) Draw(r render.Target) {
	g.Camera.Follow(r.Size(), g.Rocket.Bounds())
	offset := g.Camera.Offset()

	for _, obj := range g.objects {
		base := obj.Base()
		if !base.Visible {
			continue
		}
		if base.ScreenSpace {
			r.SetOffset(physics.Zero)
		} else {
			r.SetOffset(offset)
		}
		obj.Draw(r)
	}
	r.SetOffset(physics.Zero)
}

func (g *Game) subscribeLogging() {
	flight := func(e event.Event) {
		fe, ok := e.(*event.FlightEvent)
		if !ok {
			return
		}
		g.Logger.Info(g.ctx, "flight event",
			"event", string(fe.GetType()),
			"tick", fe.Tick,
			"speed", fe.Speed,
			"rotation", fe.Rotation,
			"fuel", fe.Fuel,
			"elapsed", fe.Elapsed.String(),
		)
	}
	for _, t := range []event.Type{
		event.RocketLaunched, event.RocketLanded, event.RocketCrashed,
		event.RocketSucceeded, event.RocketReset, event.FuelEmpty,
	} {
		g.EventBus.Subscribe(t, flight)
	}

	// successful saves and loads are logged by the store
	g.EventBus.Subscribe(event.ReplayFailed, func(e event.Event) {
		if re, ok := e.(*event.ReplayEvent); ok {
			g.Logger.Error(g.ctx, "replay operation failed", re.Err, "path", re.Path)
		}
	})
}
