// Package config loads lumen settings from .lumen.yml and LUMEN_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lumenpedia/lumen/pkg/carousel"
	"github.com/lumenpedia/lumen/pkg/particles"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".lumen.yml"

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: LUMEN_CAROUSEL__CARD_WIDTH sets carousel.card_width.
const EnvPrefix = "LUMEN_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Search modes.
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Config is the top-level lumen configuration, corresponding to .lumen.yml.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog" koanf:"catalog"`
	Carousel  CarouselConfig  `yaml:"carousel" koanf:"carousel"`
	Particles ParticlesConfig `yaml:"particles" koanf:"particles"`
	Search    SearchConfig    `yaml:"search" koanf:"search"`
	UI        UIConfig        `yaml:"ui" koanf:"ui"`
}

// CatalogConfig says where entries come from.
type CatalogConfig struct {
	Paths    []string      `yaml:"paths" koanf:"paths"`
	Watch    bool          `yaml:"watch" koanf:"watch"`
	Debounce time.Duration `yaml:"debounce" koanf:"debounce"`
}

// CarouselConfig holds strip geometry in virtual pixels and its timings.
type CarouselConfig struct {
	CardWidth     float64       `yaml:"card_width" koanf:"card_width"`
	Gap           float64       `yaml:"gap" koanf:"gap"`
	Wrap          bool          `yaml:"wrap" koanf:"wrap"`
	SettleDelay   time.Duration `yaml:"settle_delay" koanf:"settle_delay"`
	JumpLock      time.Duration `yaml:"jump_lock" koanf:"jump_lock"`
	PixelsPerCell float64       `yaml:"pixels_per_cell" koanf:"pixels_per_cell"`
}

// ParticlesConfig tunes the background field.
type ParticlesConfig struct {
	Enabled            bool       `yaml:"enabled" koanf:"enabled"`
	Count              int        `yaml:"count" koanf:"count"`
	BaseSpeed          float64    `yaml:"base_speed" koanf:"base_speed"`
	Intensity          float64    `yaml:"intensity" koanf:"intensity"`
	ConnectionDistance float64    `yaml:"connection_distance" koanf:"connection_distance"`
	ParticleSize       float64    `yaml:"particle_size" koanf:"particle_size"`
	PointerRadius      float64    `yaml:"pointer_radius" koanf:"pointer_radius"`
	Theme              int        `yaml:"theme" koanf:"theme"`
	FPS                int        `yaml:"fps" koanf:"fps"`
	Palettes           [][]string `yaml:"palettes,omitempty" koanf:"palettes"`
}

// SearchConfig selects the matcher.
type SearchConfig struct {
	Mode string `yaml:"mode" koanf:"mode"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Background string `yaml:"background" koanf:"background"`
	Images     bool   `yaml:"images" koanf:"images"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	cc := carousel.DefaultConfig()
	pc := particles.DefaultConfig()
	return &Config{
		Catalog: CatalogConfig{
			Paths:    []string{"catalog/**/*.{jsonl,yaml,yml,db}"},
			Watch:    true,
			Debounce: 250 * time.Millisecond,
		},
		Carousel: CarouselConfig{
			CardWidth:     cc.CardWidth,
			Gap:           cc.Gap,
			Wrap:          cc.Wrap,
			SettleDelay:   cc.SettleDelay,
			JumpLock:      cc.JumpLock,
			PixelsPerCell: 10,
		},
		Particles: ParticlesConfig{
			Enabled:            true,
			Count:              pc.Count,
			BaseSpeed:          pc.BaseSpeed,
			Intensity:          pc.Intensity,
			ConnectionDistance: pc.ConnectionDistance,
			ParticleSize:       pc.ParticleSize,
			PointerRadius:      pc.PointerRadius,
			Theme:              pc.Theme,
			FPS:                carousel.DefaultFPS,
		},
		Search: SearchConfig{Mode: SearchSubstring},
		UI: UIConfig{
			Background: "#0a0a12",
			Images:     true,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LUMEN_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps LUMEN_PARTICLES__POINTER_RADIUS to particles.pointer_radius.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.Carousel.CardWidth <= 0 {
		return invalid("carousel.card_width must be positive")
	}
	if c.Carousel.Gap < 0 {
		return invalid("carousel.gap must be non-negative")
	}
	if c.Carousel.PixelsPerCell <= 0 {
		return invalid("carousel.pixels_per_cell must be positive")
	}
	if c.Carousel.SettleDelay < 0 || c.Carousel.JumpLock < 0 {
		return invalid("carousel delays must be non-negative")
	}
	if c.Particles.Count < 0 {
		return invalid("particles.count must be non-negative")
	}
	if c.Particles.ConnectionDistance <= 0 {
		return invalid("particles.connection_distance must be positive")
	}
	if c.Particles.PointerRadius <= 0 {
		return invalid("particles.pointer_radius must be positive")
	}
	if c.Particles.FPS < 0 {
		return invalid("particles.fps must be non-negative")
	}
	palettes := len(c.Particles.Palettes)
	if palettes == 0 {
		palettes = len(particles.DefaultPalettes)
	}
	if c.Particles.Theme < 0 || c.Particles.Theme >= palettes {
		return invalid("particles.theme %d out of range [0,%d)", c.Particles.Theme, palettes)
	}
	switch c.Search.Mode {
	case SearchSubstring, SearchFuzzy:
	default:
		return invalid("search.mode %q: must be substring or fuzzy", c.Search.Mode)
	}
	return nil
}

// CarouselSettings converts the carousel section to controller settings.
func (c *Config) CarouselSettings() carousel.Config {
	return carousel.Config{
		CardWidth:   c.Carousel.CardWidth,
		Gap:         c.Carousel.Gap,
		Wrap:        c.Carousel.Wrap,
		SettleDelay: c.Carousel.SettleDelay,
		JumpLock:    c.Carousel.JumpLock,
		FPS:         c.Particles.FPS,
	}
}

// ParticleSettings converts the particles section to field settings.
func (c *Config) ParticleSettings() particles.Config {
	return particles.Config{
		Count:              c.Particles.Count,
		BaseSpeed:          c.Particles.BaseSpeed,
		Intensity:          c.Particles.Intensity,
		ConnectionDistance: c.Particles.ConnectionDistance,
		ParticleSize:       c.Particles.ParticleSize,
		PointerRadius:      c.Particles.PointerRadius,
		Theme:              c.Particles.Theme,
		Palettes:           c.Particles.Palettes,
	}
}
