package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Attr is the styling of one cell. Empty colors inherit the terminal default.
type Attr struct {
	FG, BG    string
	Bold      bool
	Faint     bool
	Underline bool
}

// Cell is one terminal cell. A wide rune occupies its cell and marks the
// next one as a continuation.
type Cell struct {
	Rune rune
	Attr Attr
	cont bool
}

var blank = Cell{Rune: ' '}

// Canvas is a fixed-size grid of styled cells that renders to a string.
// Drawing outside the grid is clipped.
type Canvas struct {
	w, h     int
	cells    []Cell
	renderer *lipgloss.Renderer
	clip     *clipRect
}

type clipRect struct{ x0, y0, x1, y1 int }

func (r *clipRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// NewCanvas creates a blank w x h canvas.
func NewCanvas(w, h int, r *lipgloss.Renderer) *Canvas {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := &Canvas{renderer: r}
	c.Resize(w, h)
	return c
}

// Resize reallocates and clears the grid.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]Cell, w*h)
	c.Clear()
}

// Size returns the grid size.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// At returns the cell at (x, y); outside cells read as blank.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return blank
	}
	return c.cells[y*c.w+x]
}

// Clip restricts drawing to the given rectangle until Unclip.
func (c *Canvas) Clip(x, y, w, h int) {
	c.clip = &clipRect{x0: x, y0: y, x1: x + w, y1: y + h}
}

// Unclip lifts the clip rectangle.
func (c *Canvas) Unclip() {
	c.clip = nil
}

// Set writes one rune. A wide rune that would straddle the right edge of the
// canvas or the clip rectangle is replaced by a space.
func (c *Canvas) Set(x, y int, r rune, a Attr) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if c.clip != nil && !c.clip.contains(x, y) {
		return
	}
	w := runewidth.RuneWidth(r)
	if w == 2 && (x+1 >= c.w || (c.clip != nil && !c.clip.contains(x+1, y))) {
		r, w = ' ', 1
	}
	i := y*c.w + x
	if c.cells[i].cont && x > 0 {
		c.cells[i-1] = Cell{Rune: ' ', Attr: c.cells[i-1].Attr}
	}
	if w != 2 && x+1 < c.w && c.cells[i+1].cont {
		c.cells[i+1] = Cell{Rune: ' ', Attr: c.cells[i+1].Attr}
	}
	c.cells[i] = Cell{Rune: r, Attr: a}
	if w == 2 {
		if x+2 < c.w && c.cells[i+2].cont {
			c.cells[i+2] = Cell{Rune: ' ', Attr: c.cells[i+2].Attr}
		}
		c.cells[i+1] = Cell{Attr: a, cont: true}
	}
}

// Text writes s starting at (x, y), truncated to width cells, and returns
// the number of cells used.
func (c *Canvas) Text(x, y int, s string, a Attr, width int) int {
	if width <= 0 {
		return 0
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.Set(x+used, y, r, a)
		used += rw
	}
	return used
}

// Fill paints a rectangle with r.
func (c *Canvas) Fill(x, y, w, h int, r rune, a Attr) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, r, a)
		}
	}
}

// Box draws a border around the rectangle and fills its inside with blanks
// in a.BG.
func (c *Canvas) Box(x, y, w, h int, b lipgloss.Border, a Attr) {
	if w < 2 || h < 2 {
		return
	}
	fill := Attr{BG: a.BG}
	c.Fill(x+1, y+1, w-2, h-2, ' ', fill)
	edge := func(s string) rune {
		for _, r := range s {
			return r
		}
		return ' '
	}
	c.Set(x, y, edge(b.TopLeft), a)
	c.Set(x+w-1, y, edge(b.TopRight), a)
	c.Set(x, y+h-1, edge(b.BottomLeft), a)
	c.Set(x+w-1, y+h-1, edge(b.BottomRight), a)
	for xx := x + 1; xx < x+w-1; xx++ {
		c.Set(xx, y, edge(b.Top), a)
		c.Set(xx, y+h-1, edge(b.Bottom), a)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		c.Set(x, yy, edge(b.Left), a)
		c.Set(x+w-1, yy, edge(b.Right), a)
	}
}

// DrawBraille copies every lit braille cell onto the canvas at (x, y).
func (c *Canvas) DrawBraille(x, y int, b *Braille) {
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if r, hex, ok := b.Cell(col, row); ok {
				c.Set(x+col, y+row, r, Attr{FG: hex})
			}
		}
	}
}

// DrawThumbnail blits t with its top-left cell at (x, y).
func (c *Canvas) DrawThumbnail(x, y int, t *Thumbnail, gray bool) {
	cols, rows := t.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := t.Colors(col, row, gray)
			c.Set(x+col, y+row, '▀', Attr{FG: top, BG: bottom})
		}
	}
}

func (c *Canvas) style(a Attr) lipgloss.Style {
	s := c.renderer.NewStyle()
	if a.FG != "" {
		s = s.Foreground(lipgloss.Color(a.FG))
	}
	if a.BG != "" {
		s = s.Background(lipgloss.Color(a.BG))
	}
	return s.Bold(a.Bold).Faint(a.Faint).Underline(a.Underline)
}

// Line renders row y, grouping runs of equal attributes.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var sb, run strings.Builder
	var runAttr Attr
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runAttr == (Attr{}) {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(c.style(runAttr).Render(run.String()))
		}
		run.Reset()
	}
	for x := 0; x < c.w; x++ {
		cell := c.cells[y*c.w+x]
		if cell.cont {
			continue
		}
		if cell.Attr != runAttr {
			flush()
			runAttr = cell.Attr
		}
		run.WriteRune(cell.Rune)
	}
	flush()
	return sb.String()
}

// String renders the whole canvas.
func (c *Canvas) String() string {
	lines := make([]string, c.h)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return strings.Join(lines, "\n")
}

// PlainLine returns row y without styling, for tests and logs.
func (c *Canvas) PlainLine(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < c.w; x++ {
		cell := c.cells[y*c.w+x]
		if !cell.cont {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}
