package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the viewer looks for a config file, relative to the
// working directory.
const DefaultPath = "config/physics.yaml"

// Gravity modes. Standard integrates a mass-independent acceleration; legacy
// subtracts mass/gravity per tick like the first version of the simulation.
const (
	GravityStandard = "standard"
	GravityLegacy   = "legacy"
)

// Config holds the simulation tunables. They are read once at startup.
type Config struct {
	TickRate         float32    `yaml:"tick_rate"`
	Gravity          float32    `yaml:"gravity"`
	GravityMode      string     `yaml:"gravity_mode"`
	TerminalVelocity float32    `yaml:"terminal_velocity"`
	Restitution      float32    `yaml:"restitution"`
	MaxObjects       int        `yaml:"max_objects"`
	MaxDepth         int        `yaml:"max_depth"`
	WorldMin         [3]float32 `yaml:"world_min"`
	WorldMax         [3]float32 `yaml:"world_max"`
	Tolerance        float32    `yaml:"tolerance"`
}

// Default returns the tuning the simulation shipped with.
func Default() Config {
	return Config{
		TickRate:         30,
		Gravity:          9.8,
		GravityMode:      GravityStandard,
		TerminalVelocity: 100,
		Restitution:      0.3,
		MaxObjects:       50,
		MaxDepth:         5,
		WorldMin:         [3]float32{-50, -50, -50},
		WorldMax:         [3]float32{50, 50, 50},
		Tolerance:        0,
	}
}

// Load reads a YAML config from path on top of Default(). A missing file is
// not an error and yields the defaults; a malformed or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default() and validates the result. Unknown
// keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks ranges the simulation depends on.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("config: tick_rate must be positive, got %v", c.TickRate)
	case c.Gravity <= 0:
		return fmt.Errorf("config: gravity must be positive, got %v", c.Gravity)
	case c.GravityMode != GravityStandard && c.GravityMode != GravityLegacy:
		return fmt.Errorf("config: gravity_mode must be %q or %q, got %q", GravityStandard, GravityLegacy, c.GravityMode)
	case c.TerminalVelocity <= 0:
		return fmt.Errorf("config: terminal_velocity must be positive, got %v", c.TerminalVelocity)
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("config: restitution must be within [0,1], got %v", c.Restitution)
	case c.MaxObjects < 1:
		return fmt.Errorf("config: max_objects must be at least 1, got %d", c.MaxObjects)
	case c.MaxDepth < 0:
		return fmt.Errorf("config: max_depth must not be negative, got %d", c.MaxDepth)
	case c.Tolerance < 0:
		return fmt.Errorf("config: tolerance must not be negative, got %v", c.Tolerance)
	}
	for i := 0; i < 3; i++ {
		if c.WorldMin[i] >= c.WorldMax[i] {
			return fmt.Errorf("config: world_min %v must be below world_max %v on every axis", c.WorldMin, c.WorldMax)
		}
	}
	return nil
}

// Delta is the fixed simulation step in seconds.
func (c Config) Delta() float32 {
	return 1 / c.TickRate
}

// WorldBounds is the volume covered by the octree root.
func (c Config) WorldBounds() geometry.AABB {
	return geometry.AABB{
		Min: rl.Vector3{X: c.WorldMin[0], Y: c.WorldMin[1], Z: c.WorldMin[2]},
		Max: rl.Vector3{X: c.WorldMax[0], Y: c.WorldMax[1], Z: c.WorldMax[2]},
	}
}
