package voxmorph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShapeConfig names a .vox file in the catalog.
type ShapeConfig struct {
	Id   ShapeId `yaml:"id"`
	Path string  `yaml:"path"`
}

// GridConfig sizes the resting instance grid.
type GridConfig struct {
	Width   int     `yaml:"width"`
	Depth   int     `yaml:"depth"`
	Spacing float32 `yaml:"spacing"`
}

// AnimationConfig tunes transition and bob behavior.
type AnimationConfig struct {
	ShapeSpeed     float32 `yaml:"shape_speed"`
	DisperseSpeed  float32 `yaml:"disperse_speed"`
	DisperseRadius float32 `yaml:"disperse_radius"`
	DisperseSkip   float32 `yaml:"disperse_skip"`
	DelayScale     float32 `yaml:"delay_scale"`
	BobHeight      float32 `yaml:"bob_height"`
}

// LogConfig configures the default logger.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

// Config is the scene description loaded at startup.
type Config struct {
	Grid      GridConfig        `yaml:"grid"`
	Shapes    []ShapeConfig     `yaml:"shapes"`
	Triggers  map[int64]ShapeId `yaml:"triggers"`
	Animation AnimationConfig   `yaml:"animation"`
	Log       LogConfig         `yaml:"log"`
}

// DefaultConfig matches the built-in demo scene: a 35x35 grid with a gentle
// vertical bob and the stock transition tuning.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{Width: 35, Depth: 35, Spacing: 1},
		Animation: AnimationConfig{
			ShapeSpeed:     DefaultShapeSpeed,
			DisperseSpeed:  DefaultDisperseSpeed,
			DisperseRadius: DefaultDisperseRadius,
			DisperseSkip:   DefaultDisperseSkip,
			DelayScale:     DefaultDelayScale,
			BobHeight:      1,
		},
	}
}

// LoadConfig reads a YAML scene config, filling absent fields from defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	def := DefaultConfig()
	if cfg.Grid.Width <= 0 {
		cfg.Grid.Width = def.Grid.Width
	}
	if cfg.Grid.Depth <= 0 {
		cfg.Grid.Depth = def.Grid.Depth
	}
	if cfg.Grid.Spacing <= 0 {
		cfg.Grid.Spacing = def.Grid.Spacing
	}
	a := &cfg.Animation
	d := def.Animation
	if a.ShapeSpeed <= 0 {
		a.ShapeSpeed = d.ShapeSpeed
	}
	if a.DisperseSpeed <= 0 {
		a.DisperseSpeed = d.DisperseSpeed
	}
	if a.DisperseRadius <= 0 {
		a.DisperseRadius = d.DisperseRadius
	}
	if a.DisperseSkip <= 0 {
		a.DisperseSkip = d.DisperseSkip
	}
	if a.DelayScale == 0 {
		a.DelayScale = d.DelayScale
	}
	if a.BobHeight == 0 {
		a.BobHeight = d.BobHeight
	}
}
