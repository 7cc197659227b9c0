package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Arena.Width != 10 || cfg.Arena.Height != 10 {
		t.Errorf("expected 10x10 arena, got %dx%d", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Movement.MemoryCapacity != 16 {
		t.Errorf("expected memory capacity 16, got %d", cfg.Movement.MemoryCapacity)
	}
	if cfg.Movement.EscapeAfter != 8 {
		t.Errorf("expected escape_after 8, got %d", cfg.Movement.EscapeAfter)
	}
	if math.Abs(cfg.Movement.TurnSigma-1.0/3) > 1e-6 {
		t.Errorf("expected turn sigma 1/3, got %v", cfg.Movement.TurnSigma)
	}
	if math.Abs(cfg.Derived.MaxTurnRad-100*math.Pi/180) > 1e-9 {
		t.Errorf("expected derived max turn of 100 degrees, got %v rad", cfg.Derived.MaxTurnRad)
	}
	if cfg.Derived.ArenaW != 10 || cfg.Derived.ArenaCenterY != 5 {
		t.Errorf("unexpected derived arena values: %+v", cfg.Derived)
	}
}

func TestParseOverlayKeepsUnsetFields(t *testing.T) {
	cfg, err := Parse([]byte("arena:\n  width: 5\n  height: 7\npheromone:\n  decay_rate: 3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Arena.Width != 5 || cfg.Arena.Height != 7 {
		t.Errorf("overlay arena not applied: %dx%d", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Pheromone.DecayRate != 3 {
		t.Errorf("expected decay_rate 3, got %d", cfg.Pheromone.DecayRate)
	}
	// Untouched sections keep their defaults
	if cfg.Pheromone.MaxStrength != 255 {
		t.Errorf("expected default max_strength 255, got %d", cfg.Pheromone.MaxStrength)
	}
	if cfg.Release.Ticks != 8 {
		t.Errorf("expected default release ticks 8, got %d", cfg.Release.Ticks)
	}
	if cfg.Derived.ArenaH != 7 {
		t.Errorf("derived values not recomputed: %+v", cfg.Derived)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		want    string
	}{
		{"empty arena", "arena:\n  width: 0\n", "arena"},
		{"zero decay", "pheromone:\n  decay_rate: 0\n", "decay_rate"},
		{"fraction above one", "pheromone:\n  diffusion_fraction: 1.5\n", "diffusion_fraction"},
		{"turn too wide", "movement:\n  max_turn_degrees: 270\n", "max_turn_degrees"},
		{"attempts below escape", "movement:\n  escape_after: 10\n  max_attempts: 4\n", "max_attempts"},
		{"no release ticks", "release:\n  ticks: 0\n", "release.ticks"},
		{"zero source strength", "release:\n  source_strength: 0\n", "release.source_strength"},
		{"source weaker than trail", "release:\n  source_strength: 30\n  trail_strength: 40\n", "below trail_strength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.overlay))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadAndWriteYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	if err := os.WriteFile(path, []byte("colony:\n  ants: 3\n  walls: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Colony.Ants != 3 || !cfg.Colony.Walls {
		t.Fatalf("overlay not applied: %+v", cfg.Colony)
	}

	out := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if again.Colony != cfg.Colony || again.Pheromone != cfg.Pheromone {
		t.Errorf("written config differs: %+v vs %+v", again.Colony, cfg.Colony)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSetArenaRefreshesDerived(t *testing.T) {
	cfg := Default()
	cfg.SetArena(5, 5)
	if cfg.Derived.ArenaW != 5 || cfg.Derived.ArenaCenterY != 2.5 {
		t.Errorf("derived values not refreshed: %+v", cfg.Derived)
	}
}
