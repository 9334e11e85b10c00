package particles

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is one dot in the field.
type Particle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Size    float64
	Density float64
	Color   string
	Alpha   float64
}

// Link is a proximity line between particles A and B (indices into
// Particles()), with opacity fading to zero at the connection distance.
type Link struct {
	A, B  int
	Alpha float64
}

// Surface is a drawing target for a frame.
type Surface interface {
	Clear()
	FillCircle(center r2.Vec, radius float64, color string, alpha float64)
	Line(a, b r2.Vec, width float64, color string, alpha float64)
}

// Field is one independent particle simulation. It is not safe for concurrent
// use; drive it from a single loop.
type Field struct {
	cfg       Config
	width     float64
	height    float64
	rng       *rand.Rand
	particles []Particle
	pointer   *r2.Vec
}

// NewField sizes the field to width x height and seeds cfg.Count particles.
// A nil rng uses a time-seeded source.
func NewField(cfg Config, width, height float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	f := &Field{
		cfg:    cfg.normalized(),
		width:  width,
		height: height,
		rng:    rng,
	}
	f.Reset()
	return f
}

// Reset discards every particle and seeds a fresh base population.
func (f *Field) Reset() {
	f.particles = make([]Particle, 0, f.cfg.MaxCount())
	for i := 0; i < f.cfg.Count; i++ {
		f.particles = append(f.particles, f.newParticle())
	}
}

func (f *Field) newParticle() Particle {
	return Particle{
		Pos: r2.Vec{
			X: f.rng.Float64() * f.width,
			Y: f.rng.Float64() * f.height,
		},
		Vel: r2.Vec{
			X: f.rng.Float64()*f.cfg.BaseSpeed - f.cfg.BaseSpeed/2,
			Y: f.rng.Float64()*f.cfg.BaseSpeed - f.cfg.BaseSpeed/2,
		},
		Size:    f.rng.Float64()*f.cfg.ParticleSize + 1,
		Density: f.rng.Float64()*maxDensity + 1,
		Color:   f.pickColor(),
		Alpha:   f.rng.Float64()*alphaRange + minAlpha,
	}
}

func (f *Field) pickColor() string {
	palette := f.cfg.Palettes[f.cfg.Theme]
	if len(palette) == 0 {
		return "#ffffff"
	}
	return palette[f.rng.Intn(len(palette))]
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	for i := range f.particles {
		f.update(&f.particles[i])
	}
}

func (f *Field) update(p *Particle) {
	p.Pos = r2.Add(p.Pos, r2.Scale(f.cfg.Intensity, p.Vel))

	if p.Pos.X < 0 || p.Pos.X > f.width {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > f.height {
		p.Vel.Y = -p.Vel.Y
	}

	if f.pointer != nil {
		p.Vel = r2.Sub(p.Vel, Repulsion(p.Pos, *f.pointer, f.cfg.PointerRadius, p.Density))
	}

	p.Vel = r2.Scale(friction, p.Vel)
}

// Repulsion returns the velocity impulse to subtract from a particle at pos
// for a pointer at ptr: along the particle-to-pointer direction, scaled by
// (radius-d)/radius * density * 0.6. It is zero outside the radius or when
// the pointer sits exactly on the particle.
func Repulsion(pos, ptr r2.Vec, radius, density float64) r2.Vec {
	delta := r2.Sub(ptr, pos)
	d := r2.Norm(delta)
	if d >= radius || d == 0 {
		return r2.Vec{}
	}
	force := (radius - d) / radius
	return r2.Scale(force*density*repelStrength/d, delta)
}

// Links returns every unordered pair closer than the connection distance.
// This is O(n²) and dominates frame cost.
func (f *Field) Links() []Link {
	var links []Link
	limit := f.cfg.ConnectionDistance
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			d := r2.Norm(r2.Sub(f.particles[i].Pos, f.particles[j].Pos))
			if d < limit {
				links = append(links, Link{A: i, B: j, Alpha: linkAlphaScale * (1 - d/limit)})
			}
		}
	}
	return links
}

// Draw renders the current state onto s: circles first, then links in the
// color of their first particle.
func (f *Field) Draw(s Surface) {
	s.Clear()
	for _, p := range f.particles {
		s.FillCircle(p.Pos, p.Size, p.Color, p.Alpha)
	}
	for _, l := range f.Links() {
		a, b := f.particles[l.A], f.particles[l.B]
		s.Line(a.Pos, b.Pos, linkWidth, a.Color, l.Alpha)
	}
}

// Frame steps the simulation and draws the result.
func (f *Field) Frame(s Surface) {
	f.Step()
	f.Draw(s)
}

// PointerMove activates repulsion around (x, y).
func (f *Field) PointerMove(x, y float64) {
	f.pointer = &r2.Vec{X: x, Y: y}
}

// PointerLeave disables repulsion.
func (f *Field) PointerLeave() {
	f.pointer = nil
}

// Pointer returns the tracked pointer position, if any.
func (f *Field) Pointer() (r2.Vec, bool) {
	if f.pointer == nil {
		return r2.Vec{}, false
	}
	return *f.pointer, true
}

// Burst spawns BurstSize particles at (x, y) flying outward, then evicts the
// oldest BurstSize if the field has grown past its ceiling.
func (f *Field) Burst(x, y float64) {
	for i := 0; i < BurstSize; i++ {
		p := f.newParticle()
		p.Pos = r2.Vec{X: x, Y: y}
		p.Vel = r2.Vec{
			X: (f.rng.Float64() - 0.5) * burstSpeed,
			Y: (f.rng.Float64() - 0.5) * burstSpeed,
		}
		p.Size = f.rng.Float64()*burstMaxSize + 1
		f.particles = append(f.particles, p)
	}

	if len(f.particles) > f.cfg.MaxCount() {
		n := copy(f.particles, f.particles[BurstSize:])
		f.particles = f.particles[:n]
	}
}

// Resize changes the field bounds. Particles outside the new bounds bounce
// back in over the next frames.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// Size returns the field bounds.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// SetTheme switches the palette and recolors existing particles from it.
func (f *Field) SetTheme(theme int) {
	if theme < 0 || theme >= len(f.cfg.Palettes) {
		return
	}
	f.cfg.Theme = theme
	for i := range f.particles {
		f.particles[i].Color = f.pickColor()
	}
}

// CycleTheme advances to the next palette and returns its index.
func (f *Field) CycleTheme() int {
	f.SetTheme((f.cfg.Theme + 1) % len(f.cfg.Palettes))
	return f.cfg.Theme
}

// Theme returns the active palette index.
func (f *Field) Theme() int {
	return f.cfg.Theme
}

// Particles exposes the live particle slice, oldest first.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len is the current particle count.
func (f *Field) Len() int {
	return len(f.particles)
}

// Config returns the normalized configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Speed is the particle's velocity magnitude.
func (p Particle) Speed() float64 {
	return math.Hypot(p.Vel.X, p.Vel.Y)
}
