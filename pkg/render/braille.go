// Package render draws particle frames onto terminal cells, PNG rasters and
// SVG documents, and turns catalog images into half-block thumbnails.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Each terminal cell holds a 2x4 braille dot matrix.
const (
	dotsPerCol = 2
	dotsPerRow = 4
)

// Terminal colors cannot be translucent, so very faint strokes are lifted to
// this floor or they would vanish into the background.
const minVisibleAlpha = 0.25

const brailleBase = 0x2800

var brailleBits = [dotsPerRow][dotsPerCol]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille is a particles.Surface over a cols x rows grid of terminal cells.
// Virtual-pixel coordinates are divided by the per-cell scale to find the
// cell, and by a quarter or half of it to find the dot.
type Braille struct {
	cols, rows     int
	scaleX, scaleY float64
	background     colorful.Color

	dots   []uint8
	colors []colorful.Color
	filled []bool
}

// NewBraille creates a surface of cols x rows cells where one cell spans
// scaleX by scaleY virtual pixels.
func NewBraille(cols, rows int, scaleX, scaleY float64) *Braille {
	b := &Braille{
		scaleX:     scaleX,
		scaleY:     scaleY,
		background: colorful.Color{},
	}
	b.Resize(cols, rows)
	return b
}

// SetBackground sets the color faint strokes are blended against.
func (b *Braille) SetBackground(hex string) {
	if c, err := colorful.Hex(hex); err == nil {
		b.background = c
	}
}

// Resize reallocates the grid and clears it.
func (b *Braille) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.cols, b.rows = cols, rows
	n := cols * rows
	b.dots = make([]uint8, n)
	b.colors = make([]colorful.Color, n)
	b.filled = make([]bool, n)
}

// Cols and Rows report the grid size in cells.
func (b *Braille) Cols() int { return b.cols }
func (b *Braille) Rows() int { return b.rows }

// PixelSize is the virtual-pixel extent the grid covers.
func (b *Braille) PixelSize() (float64, float64) {
	return float64(b.cols) * b.scaleX, float64(b.rows) * b.scaleY
}

// Clear erases every dot.
func (b *Braille) Clear() {
	for i := range b.dots {
		b.dots[i] = 0
		b.filled[i] = false
	}
}

func (b *Braille) dotSize() (float64, float64) {
	return b.scaleX / dotsPerCol, b.scaleY / dotsPerRow
}

// plot sets the dot at dot coordinates (dx, dy); out-of-range dots are dropped.
func (b *Braille) plot(dx, dy int, c colorful.Color, alpha float64) {
	if dx < 0 || dy < 0 {
		return
	}
	col, row := dx/dotsPerCol, dy/dotsPerRow
	if col >= b.cols || row >= b.rows {
		return
	}
	i := row*b.cols + col
	b.dots[i] |= brailleBits[dy%dotsPerRow][dx%dotsPerCol]

	alpha = math.Min(1, math.Max(alpha, minVisibleAlpha))
	if !b.filled[i] {
		b.colors[i] = b.background.BlendRgb(c, alpha)
		b.filled[i] = true
		return
	}
	b.colors[i] = b.colors[i].BlendRgb(c, alpha)
}

// FillCircle sets every dot whose center lies inside the circle, and always
// the dot under the center so small particles stay visible.
func (b *Braille) FillCircle(center r2.Vec, radius float64, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return
	}
	dw, dh := b.dotSize()
	if dw <= 0 || dh <= 0 {
		return
	}

	cx, cy := int(math.Floor(center.X/dw)), int(math.Floor(center.Y/dh))
	b.plot(cx, cy, c, alpha)

	x0, x1 := int(math.Floor((center.X-radius)/dw)), int(math.Floor((center.X+radius)/dw))
	y0, y1 := int(math.Floor((center.Y-radius)/dh)), int(math.Floor((center.Y+radius)/dh))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			if dx == cx && dy == cy {
				continue
			}
			px := (float64(dx) + 0.5) * dw
			py := (float64(dy) + 0.5) * dh
			if math.Hypot(px-center.X, py-center.Y) <= radius {
				b.plot(dx, dy, c, alpha)
			}
		}
	}
}

// Line rasterizes the segment a-b in dot space. Width is ignored; a dot is
// already wider than any stroke the field draws.
func (b *Braille) Line(a, bb r2.Vec, _ float64, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return
	}
	dw, dh := b.dotSize()
	if dw <= 0 || dh <= 0 {
		return
	}

	x0, y0 := int(math.Floor(a.X/dw)), int(math.Floor(a.Y/dh))
	x1, y1 := int(math.Floor(bb.X/dw)), int(math.Floor(bb.Y/dh))
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		b.plot(x0, y0, c, alpha)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Cell returns the glyph and color at (col, row). Empty cells yield a space
// and ok=false.
func (b *Braille) Cell(col, row int) (r rune, hex string, ok bool) {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return ' ', "", false
	}
	i := row*b.cols + col
	if b.dots[i] == 0 {
		return ' ', "", false
	}
	return rune(brailleBase + int(b.dots[i])), b.colors[i].Clamped().Hex(), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
