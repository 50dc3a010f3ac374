package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesShippedTuning(t *testing.T) {
	cfg := Default()

	if cfg.TickRate != 30 || cfg.Gravity != 9.8 || cfg.TerminalVelocity != 100 {
		t.Errorf("Unexpected motion defaults: %+v", cfg)
	}
	if cfg.MaxObjects != 50 || cfg.MaxDepth != 5 || cfg.Tolerance != 0 {
		t.Errorf("Unexpected octree defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
	if d := cfg.Delta(); d < 0.0333 || d > 0.0334 {
		t.Errorf("Expected 1/30 s step, got %v", d)
	}
	b := cfg.WorldBounds()
	if b.Min.X != -50 || b.Max.Z != 50 {
		t.Errorf("Expected ±50 world, got %+v", b)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	data := []byte("tick_rate: 60\nrestitution: 1\ngravity_mode: legacy\nworld_min: [-10, -5, -10]\nworld_max: [10, 5, 10]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickRate != 60 || cfg.Restitution != 1 || cfg.GravityMode != GravityLegacy {
		t.Errorf("Expected overrides applied, got %+v", cfg)
	}
	if cfg.Gravity != 9.8 || cfg.MaxObjects != 50 {
		t.Errorf("Expected untouched keys to keep defaults, got %+v", cfg)
	}
	if b := cfg.WorldBounds(); b.Min.Y != -5 || b.Max.X != 10 {
		t.Errorf("Expected custom bounds, got %+v", b)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Expected empty input to parse, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "tick_rat: 30\n"},
		{"malformed", "tick_rate: [\n"},
		{"zero tick rate", "tick_rate: 0\n"},
		{"negative gravity", "gravity: -1\n"},
		{"unknown gravity mode", "gravity_mode: sideways\n"},
		{"restitution above one", "restitution: 1.5\n"},
		{"zero max objects", "max_objects: 0\n"},
		{"negative depth", "max_depth: -1\n"},
		{"negative tolerance", "tolerance: -0.1\n"},
		{"inverted bounds", "world_min: [0, 0, 0]\nworld_max: [10, 0, 10]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Expected error for %q", tt.yaml)
			}
		})
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected shipped config to match defaults, got %+v", cfg)
	}
}
