// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LANDER_WINDOW_WIDTH.
const EnvPrefix = "LANDER"

// Renderer names accepted by the renderer setting.
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// GameConfig contains configuration for a lander session
type GameConfig struct {
	Window     WindowConfig        `mapstructure:"window" json:"window"`
	Simulation SimulationConfig    `mapstructure:"simulation" json:"simulation"`
	Rocket     entity.RocketConfig `mapstructure:"rocket" json:"rocket"`
	Terrain    TerrainConfig       `mapstructure:"terrain" json:"terrain"`
	Replay     ReplayConfig        `mapstructure:"replay" json:"replay"`
	Audio      AudioConfig         `mapstructure:"audio" json:"audio"`
	LogLevel   string              `mapstructure:"log_level" json:"log_level"`
	Renderer   string              `mapstructure:"renderer" json:"renderer"`
}

// WindowConfig contains the desktop window settings. The world spans the
// window size.
type WindowConfig struct {
	Title      string `mapstructure:"title" json:"title"`
	Width      int    `mapstructure:"width" json:"width"`
	Height     int    `mapstructure:"height" json:"height"`
	Fullscreen bool   `mapstructure:"fullscreen" json:"fullscreen"`
	VSync      bool   `mapstructure:"vsync" json:"vsync"`
}

// SimulationConfig contains the fixed step settings
type SimulationConfig struct {
	TickMillis int `mapstructure:"tick_millis" json:"tick_millis"`
}

// TerrainConfig places the two platforms.
type TerrainConfig struct {
	StartX   float64 `mapstructure:"start_x" json:"start_x"`
	LandingX float64 `mapstructure:"landing_x" json:"landing_x"`
}

// ReplayConfig contains replay storage settings
type ReplayConfig struct {
	Dir         string        `mapstructure:"dir" json:"dir"`
	MaxFailures uint32        `mapstructure:"max_failures" json:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
}

// AudioConfig contains sound cue settings
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled" json:"enabled"`
	SampleRate int     `mapstructure:"sample_rate" json:"sample_rate"`
	Volume     float64 `mapstructure:"volume" json:"volume"`
}

// TickDuration returns the fixed simulation step.
func (c *GameConfig) TickDuration() time.Duration {
	return time.Duration(c.Simulation.TickMillis) * time.Millisecond
}

// DefaultConfig returns a default lander configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Title:  "Lander",
			Width:  1000,
			Height: 700,
			VSync:  true,
		},
		Simulation: SimulationConfig{
			TickMillis: 5,
		},
		Rocket: entity.DefaultRocketConfig(),
		Terrain: TerrainConfig{
			StartX:   162,
			LandingX: 835,
		},
		Replay: ReplayConfig{
			Dir:         "saves",
			MaxFailures: 3,
			Timeout:     30 * time.Second,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.3,
		},
		LogLevel: "INFO",
		Renderer: RendererEngo,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("window.vsync", d.Window.VSync)

	v.SetDefault("simulation.tick_millis", d.Simulation.TickMillis)

	v.SetDefault("rocket.base_mass", d.Rocket.BaseMass)
	v.SetDefault("rocket.angular_acceleration", d.Rocket.AngularAcceleration)
	v.SetDefault("rocket.landing_speed", d.Rocket.LandingSpeed)
	v.SetDefault("rocket.landing_angle", d.Rocket.LandingAngle)
	v.SetDefault("rocket.refill_percent", d.Rocket.RefillPercent)

	v.SetDefault("terrain.start_x", d.Terrain.StartX)
	v.SetDefault("terrain.landing_x", d.Terrain.LandingX)

	v.SetDefault("replay.dir", d.Replay.Dir)
	v.SetDefault("replay.max_failures", d.Replay.MaxFailures)
	v.SetDefault("replay.timeout", d.Replay.Timeout)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("renderer", d.Renderer)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig builds a configuration from defaults, an optional JSON file and
// LANDER_* environment variables, in increasing precedence. An empty path
// skips the file.
func LoadConfig(path string) (*GameConfig, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg GameConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks that the configuration can drive a session.
func (c *GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Simulation.TickMillis > 0,
		"simulation.tick_millis %d must be positive", c.Simulation.TickMillis)
	check(c.Rocket.BaseMass > 0, "rocket.base_mass %g must be positive", c.Rocket.BaseMass)
	check(c.Rocket.LandingSpeed > 0, "rocket.landing_speed %g must be positive", c.Rocket.LandingSpeed)
	check(c.Rocket.LandingAngle >= 0, "rocket.landing_angle %g must not be negative", c.Rocket.LandingAngle)
	check(c.Rocket.RefillPercent >= 0, "rocket.refill_percent %g must not be negative", c.Rocket.RefillPercent)

	width := float64(c.Window.Width)
	check(c.Terrain.StartX >= 0 && c.Terrain.StartX <= width,
		"terrain.start_x %g outside world width %g", c.Terrain.StartX, width)
	check(c.Terrain.LandingX >= 0 && c.Terrain.LandingX <= width,
		"terrain.landing_x %g outside world width %g", c.Terrain.LandingX, width)

	check(c.Replay.Dir != "", "replay.dir must be set")
	check(c.Replay.MaxFailures > 0, "replay.max_failures must be positive")
	check(c.Replay.Timeout > 0, "replay.timeout %v must be positive", c.Replay.Timeout)

	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "audio.sample_rate %d must be positive", c.Audio.SampleRate)
		check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume %g must be within [0, 1]", c.Audio.Volume)
	}

	switch c.Renderer {
	case RendererEngo, RendererTerminal, RendererHeadless:
	default:
		problems = append(problems, fmt.Sprintf("renderer %q must be one of engo, terminal, headless", c.Renderer))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
