// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/logging"
)

// GameScene runs a lander game inside an engo window.
type GameScene struct {
	driver *engine.Driver
	logger *logging.Logger
	ctx    context.Context

	assets   *AssetManager
	renderer *EngoRenderer

	// PickReplay chooses the file F9 loads. It defaults to the newest
	// replay in the game's store.
	PickReplay func() (string, error)

	loadPressed func() bool
}

// NewGameScene creates a new game scene
func NewGameScene(ctx context.Context, driver *engine.Driver, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	store := driver.Game().Store
	return &GameScene{
		driver:     driver,
		logger:     logger,
		ctx:        ctx,
		assets:     NewAssetManager(),
		PickReplay: store.Latest,
		loadPressed: func() bool {
			return engo.Input.Button(ButtonLoadReplay).JustPressed()
		},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "LanderScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	if err := scene.assets.LoadAssets(); err != nil {
		// shapes still render without sprites and text
		scene.logger.Error(scene.ctx, "failed to load assets", err)
	}
	size := scene.driver.Game().Terrain.Size
	scene.renderer = NewEngoRenderer(rs, scene.assets, size)

	SetupInputBindings()
	world.AddSystem(&frameSystem{scene: scene})

	// the first frame may come long after the driver was created
	scene.driver.Restart()
}

// Frame handles frontend keys, advances the simulation and redraws it.
func (scene *GameScene) Frame() {
	if scene.loadPressed() {
		scene.loadReplay()
	}
	scene.renderer.Begin()
	scene.driver.Frame(scene.renderer)
	scene.renderer.End()
}

func (scene *GameScene) loadReplay() {
	path, err := scene.PickReplay()
	if err != nil {
		scene.logger.Warn(scene.ctx, "no replay to load", "error", err.Error())
		return
	}
	// failures are published on the bus and logged by the game
	_ = scene.driver.LoadReplay(scene.ctx, path)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.logger.Info(scene.ctx, "window closed", "ticks", scene.driver.Game().CurrentTick())
}

// frameSystem drives the scene once per engo frame.
type frameSystem struct {
	scene *GameScene
}

// Update satisfies the ecs.System interface
func (fs *frameSystem) Update(dt float32) {
	fs.scene.Frame()
}

// Remove satisfies the ecs.System interface
func (fs *frameSystem) Remove(basic ecs.BasicEntity) {}

// Run opens a window configured by cfg and blocks until it closes.
func Run(cfg config.WindowConfig, scene *GameScene) {
	engo.Run(engo.RunOptions{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Fullscreen:   cfg.Fullscreen,
		VSync:        cfg.VSync,
		NotResizable: true,
	}, scene)
}
