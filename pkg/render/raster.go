package render

import (
	"io"

	"git.sr.ht/~sbinet/gg"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Raster is a particles.Surface backed by an in-memory RGBA image.
type Raster struct {
	dc         *gg.Context
	background colorful.Color
}

// NewRaster allocates a width x height image.
func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

// SetBackground sets the clear color.
func (r *Raster) SetBackground(hex string) {
	if c, err := colorful.Hex(hex); err == nil {
		r.background = c
	}
}

// Clear paints the whole image with the background color.
func (r *Raster) Clear() {
	r.dc.SetRGB(r.background.R, r.background.G, r.background.B)
	r.dc.Clear()
}

// FillCircle draws a translucent filled circle.
func (r *Raster) FillCircle(center r2.Vec, radius float64, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return
	}
	r.dc.SetRGBA(c.R, c.G, c.B, alpha)
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.dc.Fill()
}

// Line strokes a translucent segment.
func (r *Raster) Line(a, b r2.Vec, width float64, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return
	}
	r.dc.SetRGBA(c.R, c.G, c.B, alpha)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

// SavePNG writes the image to path.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// EncodePNG writes the image to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}
