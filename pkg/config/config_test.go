package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Carousel.CardWidth != 200 {
		t.Errorf("expected default card_width 200, got %v", cfg.Carousel.CardWidth)
	}
	if cfg.Carousel.Gap != 20 {
		t.Errorf("expected default gap 20, got %v", cfg.Carousel.Gap)
	}
	if cfg.Particles.Count != 150 {
		t.Errorf("expected default particle count 150, got %d", cfg.Particles.Count)
	}
	if cfg.Search.Mode != SearchSubstring {
		t.Errorf("expected default search mode %q, got %q", SearchSubstring, cfg.Search.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Carousel.SettleDelay != 300*time.Millisecond {
		t.Errorf("settle_delay: got %v, want 300ms", cfg.Carousel.SettleDelay)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lumen.yml")

	original := Default()
	original.Catalog.Paths = []string{"data/*.jsonl"}
	original.Carousel.Wrap = false
	original.Carousel.JumpLock = 80 * time.Millisecond
	original.Particles.Theme = 2
	original.Search.Mode = SearchFuzzy

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Catalog.Paths) != 1 || loaded.Catalog.Paths[0] != "data/*.jsonl" {
		t.Errorf("paths: got %v", loaded.Catalog.Paths)
	}
	if loaded.Carousel.Wrap {
		t.Error("wrap: got true, want false")
	}
	if loaded.Carousel.JumpLock != 80*time.Millisecond {
		t.Errorf("jump_lock: got %v, want 80ms", loaded.Carousel.JumpLock)
	}
	if loaded.Particles.Theme != 2 {
		t.Errorf("theme: got %d, want 2", loaded.Particles.Theme)
	}
	if loaded.Search.Mode != SearchFuzzy {
		t.Errorf("mode: got %q, want fuzzy", loaded.Search.Mode)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yml")
	if err := os.WriteFile(path, []byte("carousel:\n  card_width: 180\n  gap: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LUMEN_CAROUSEL__CARD_WIDTH", "240")
	t.Setenv("LUMEN_PARTICLES__COUNT", "40")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Carousel.CardWidth != 240 {
		t.Errorf("card_width: got %v, want env value 240", cfg.Carousel.CardWidth)
	}
	if cfg.Carousel.Gap != 10 {
		t.Errorf("gap: got %v, want file value 10", cfg.Carousel.Gap)
	}
	if cfg.Particles.Count != 40 {
		t.Errorf("count: got %d, want 40", cfg.Particles.Count)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yml")
	if err := os.WriteFile(path, []byte("search:\n  mode: telepathy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero card width", func(c *Config) { c.Carousel.CardWidth = 0 }},
		{"negative gap", func(c *Config) { c.Carousel.Gap = -1 }},
		{"zero pixels per cell", func(c *Config) { c.Carousel.PixelsPerCell = 0 }},
		{"negative count", func(c *Config) { c.Particles.Count = -5 }},
		{"theme out of range", func(c *Config) { c.Particles.Theme = 4 }},
		{"custom palette range", func(c *Config) {
			c.Particles.Palettes = [][]string{{"#fff"}}
			c.Particles.Theme = 1
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.Carousel.Gap = 30
	cfg.Particles.PointerRadius = 80

	if got := cfg.CarouselSettings(); got.Gap != 30 || !got.Wrap {
		t.Errorf("CarouselSettings = %+v", got)
	}
	if got := cfg.ParticleSettings(); got.PointerRadius != 80 || got.Count != 150 {
		t.Errorf("ParticleSettings = %+v", got)
	}
}
