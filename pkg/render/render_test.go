package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lumenpedia/lumen/pkg/particles"
)

func TestBraille_PlotsWithinBounds(t *testing.T) {
	b := NewBraille(4, 2, 10, 20)
	b.FillCircle(r2.Vec{X: 1, Y: 1}, 0.1, "#00ffff", 1)

	r, hex, ok := b.Cell(0, 0)
	if !ok {
		t.Fatal("cell (0,0) empty after plotting")
	}
	if r != rune(brailleBase+0x01) {
		t.Errorf("glyph = %U, want top-left dot", r)
	}
	if hex != "#00ffff" {
		t.Errorf("color = %s, want #00ffff", hex)
	}

	// Fully outside: must not panic or mark anything.
	b.Clear()
	b.FillCircle(r2.Vec{X: -500, Y: 900}, 3, "#ffffff", 1)
	b.Line(r2.Vec{X: -100, Y: -100}, r2.Vec{X: -50, Y: -10}, 0.5, "#ffffff", 1)
	for y := 0; y < b.Rows(); y++ {
		for x := 0; x < b.Cols(); x++ {
			if _, _, ok := b.Cell(x, y); ok {
				t.Errorf("cell (%d,%d) set by out-of-bounds drawing", x, y)
			}
		}
	}
}

func TestBraille_LineCrossesCells(t *testing.T) {
	b := NewBraille(4, 1, 10, 20)
	b.Line(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 39, Y: 1}, 0.5, "#ff0000", 0.1)
	for x := 0; x < 4; x++ {
		if _, _, ok := b.Cell(x, 0); !ok {
			t.Errorf("cell %d not reached by line", x)
		}
	}
}

func TestBraille_DrawsField(t *testing.T) {
	b := NewBraille(40, 10, 20, 40)
	w, h := b.PixelSize()
	f := particles.NewField(particles.DefaultConfig(), w, h, nil)
	f.Draw(b)

	c := NewCanvas(40, 10, nil)
	c.DrawBraille(0, 0, b)
	if strings.TrimSpace(ansi.Strip(c.String())) == "" {
		t.Error("field drew nothing")
	}
}

func TestCanvas_TextTruncates(t *testing.T) {
	c := NewCanvas(10, 1, nil)
	if n := c.Text(0, 0, "Andromeda Galaxy", Attr{}, 6); n != 6 {
		t.Errorf("used = %d, want 6", n)
	}
	if got := c.PlainLine(0); got != "Andro…    " {
		t.Errorf("line = %q", got)
	}
	if n := c.Text(0, 0, "x", Attr{}, 0); n != 0 {
		t.Errorf("zero width used %d cells", n)
	}
}

func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(4, 1, nil)
	c.Text(0, 0, "星雲", Attr{}, 4)
	if got := c.PlainLine(0); got != "星雲" {
		t.Fatalf("line = %q", got)
	}

	// Overwriting the continuation half blanks the orphaned lead cell.
	c.Set(1, 0, 'x', Attr{})
	if got := c.PlainLine(0); got != " x雲" {
		t.Errorf("line = %q, want %q", got, " x雲")
	}

	// A wide rune on the last column does not fit.
	c.Set(3, 0, '星', Attr{})
	if got := c.At(3, 0).Rune; got != ' ' {
		t.Errorf("edge rune = %q, want space", got)
	}
}

func TestCanvas_BoxAndClip(t *testing.T) {
	c := NewCanvas(5, 3, nil)
	c.Box(0, 0, 5, 3, lipgloss.NormalBorder(), Attr{FG: "#ffffff"})
	want := []string{"┌───┐", "│   │", "└───┘"}
	for y, w := range want {
		if got := c.PlainLine(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}

	c.Set(-1, 0, 'x', Attr{})
	c.Set(9, 9, 'x', Attr{})
	if c.At(9, 9) != blank {
		t.Error("outside read not blank")
	}
	if got := strings.Count(ansi.Strip(c.String()), "\n"); got != 2 {
		t.Errorf("newlines = %d, want 2", got)
	}
}

func TestSnapshotFormat(t *testing.T) {
	tests := []struct {
		format, path, want string
		wantErr            bool
	}{
		{"", "out.png", "png", false},
		{"", "OUT.SVG", "svg", false},
		{"svg", "out.png", "svg", false},
		{"", "out.txt", "", true},
		{"gif", "out.gif", "", true},
	}
	for _, tt := range tests {
		got, err := SnapshotFormat(tt.format, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("SnapshotFormat(%q,%q) err = %v, want ErrUnsupportedFormat", tt.format, tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SnapshotFormat(%q,%q) = %q,%v want %q", tt.format, tt.path, got, err, tt.want)
		}
	}
}

func TestSaveSnapshot_SVGAndPNG(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"field.svg", "field.png"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(tmp, name)
			frames := 0
			err := SaveSnapshot(SnapshotOptions{
				Path:      out,
				Width:     320,
				Height:    200,
				Frames:    5,
				Seed:      7,
				Particles: particles.DefaultConfig(),
				Progress:  func(int) { frames++ },
			})
			if err != nil {
				t.Fatalf("SaveSnapshot error: %v", err)
			}
			if frames != 5 {
				t.Errorf("progress called %d times, want 5", frames)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatal("output file is empty")
			}
		})
	}
}

func TestRaster_EncodePNG(t *testing.T) {
	r := NewRaster(20, 10)
	r.SetBackground("#ff0000")
	r.Clear()
	r.FillCircle(r2.Vec{X: 10, Y: 5}, 3, "#00ff00", 1)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("bounds = %v", b)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r>>8 != 0xff || g != 0 {
		t.Errorf("corner = %v, want background red", img.At(0, 0))
	}
	if r, g, _, _ := img.At(10, 5).RGBA(); r != 0 || g>>8 != 0xff {
		t.Errorf("center = %v, want green", img.At(10, 5))
	}
}

func TestSaveSnapshot_InvalidFormat(t *testing.T) {
	err := SaveSnapshot(SnapshotOptions{Path: "field.txt", Width: 10, Height: 10})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSVG_Elements(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf, 100, 50)
	s.Clear()
	s.FillCircle(r2.Vec{X: 10, Y: 10}, 2, "#ff00ff", 0.5)
	s.Line(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10}, 0.5, "#ff00ff", 0.1)
	s.Close()
	s.Close()

	out := buf.String()
	for _, want := range []string{"<svg", "<rect", "<circle", "<line", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Count(out, "</svg>") != 1 {
		t.Error("document closed more than once")
	}
}

func TestCanvas_Clip(t *testing.T) {
	c := NewCanvas(6, 2, nil)
	c.Clip(1, 0, 3, 1)
	c.Fill(0, 0, 6, 2, '#', Attr{})
	c.Unclip()
	if got := c.PlainLine(0); got != " ###  " {
		t.Errorf("row 0 = %q", got)
	}
	if got := c.PlainLine(1); got != "      " {
		t.Errorf("row 1 = %q", got)
	}
}

func TestThumbnail_DrawSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 4), G: 100, B: 200, A: 255})
		}
	}
	th := NewThumbnail(src, 8, 3)
	if cols, rows := th.Size(); cols != 8 || rows != 3 {
		t.Fatalf("size = %dx%d, want 8x3", cols, rows)
	}

	c := NewCanvas(10, 4, nil)
	c.DrawThumbnail(1, 0, th, false)
	for y := 0; y < 3; y++ {
		if got := c.PlainLine(y); got != " ▀▀▀▀▀▀▀▀ " {
			t.Errorf("row %d = %q", y, got)
		}
	}
	if got := strings.TrimSpace(c.PlainLine(3)); got != "" {
		t.Errorf("row 3 = %q, want blank", got)
	}

	top, _ := th.Colors(7, 0, false)
	grayTop, _ := th.Colors(7, 0, true)
	if top == grayTop {
		t.Error("gray thumbnail kept its colors")
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
