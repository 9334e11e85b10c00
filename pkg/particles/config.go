// Package particles simulates the decorative particle field: drifting dots
// that bounce off the walls, flee the pointer, burst on click and are joined
// by proximity lines.
package particles

// BurstSize is the number of particles spawned per click.
const BurstSize = 10

// BurstHeadroom is how far above the base count a field may grow from bursts.
const BurstHeadroom = 50

const (
	friction       = 0.98
	repelStrength  = 0.6
	maxDensity     = 30.0
	minAlpha       = 0.2
	alphaRange     = 0.5
	burstSpeed     = 10.0
	burstMaxSize   = 3.0
	linkAlphaScale = 0.1
	linkWidth      = 0.5
)

// Config tunes a Field.
type Config struct {
	Count              int
	BaseSpeed          float64
	Intensity          float64
	ConnectionDistance float64
	ParticleSize       float64
	PointerRadius      float64
	Theme              int
	Palettes           [][]string
}

// DefaultPalettes are the four color themes: cyan, magenta, green, red.
var DefaultPalettes = [][]string{
	{"#00ffff", "#0080ff", "#00ff80"},
	{"#ff00ff", "#8000ff", "#ff0080"},
	{"#00ff00", "#80ff00", "#008000"},
	{"#ff0000", "#ff8000", "#800000"},
}

// DefaultConfig returns the stock field settings.
func DefaultConfig() Config {
	return Config{
		Count:              150,
		BaseSpeed:          1,
		Intensity:          0.5,
		ConnectionDistance: 150,
		ParticleSize:       2,
		PointerRadius:      100,
		Theme:              0,
		Palettes:           DefaultPalettes,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Count < 0 {
		c.Count = 0
	}
	if c.ConnectionDistance <= 0 {
		c.ConnectionDistance = d.ConnectionDistance
	}
	if c.PointerRadius <= 0 {
		c.PointerRadius = d.PointerRadius
	}
	if c.ParticleSize < 0 {
		c.ParticleSize = 0
	}
	if len(c.Palettes) == 0 {
		c.Palettes = d.Palettes
	}
	if c.Theme < 0 || c.Theme >= len(c.Palettes) {
		c.Theme = 0
	}
	return c
}

// MaxCount is the particle ceiling enforced by burst eviction.
func (c Config) MaxCount() int {
	return c.Count + BurstHeadroom
}
