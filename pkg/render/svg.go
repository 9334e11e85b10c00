package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r2"
)

// SVG is a particles.Surface that streams elements into an SVG document.
// Call Close once the frame is drawn.
type SVG struct {
	canvas        *svg.SVG
	width, height int
	background    string
	closed        bool
}

// NewSVG starts a width x height document on w.
func NewSVG(w io.Writer, width, height int) *SVG {
	canvas := svg.New(w)
	canvas.Start(width, height)
	return &SVG{canvas: canvas, width: width, height: height, background: "#000000"}
}

// SetBackground sets the color Clear paints.
func (s *SVG) SetBackground(hex string) {
	s.background = hex
}

// Clear emits a full-size background rectangle. Elements written before it
// stay in the document but are covered.
func (s *SVG) Clear() {
	s.canvas.Rect(0, 0, s.width, s.height, "fill:"+s.background)
}

// FillCircle emits a circle element.
func (s *SVG) FillCircle(center r2.Vec, radius float64, hex string, alpha float64) {
	s.canvas.Circle(round(center.X), round(center.Y), max(1, round(radius)),
		fmt.Sprintf("fill:%s;fill-opacity:%.3f", hex, alpha))
}

// Line emits a line element.
func (s *SVG) Line(a, b r2.Vec, width float64, hex string, alpha float64) {
	s.canvas.Line(round(a.X), round(a.Y), round(b.X), round(b.Y),
		fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f", hex, alpha, width))
}

// Close ends the document. It is safe to call more than once.
func (s *SVG) Close() {
	if s.closed {
		return
	}
	s.canvas.End()
	s.closed = true
}

func round(v float64) int {
	return int(math.Round(v))
}
