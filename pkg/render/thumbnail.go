package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG, GIF or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail is an image pre-scaled to a cell grid. Each cell shows two
// vertically stacked pixels using the upper half block.
type Thumbnail struct {
	cols, rows int
	px         *image.RGBA
}

// NewThumbnail scales img to cols x rows cells (cols x 2*rows pixels).
func NewThumbnail(img image.Image, cols, rows int) *Thumbnail {
	if cols <= 0 || rows <= 0 {
		return &Thumbnail{}
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return &Thumbnail{cols: cols, rows: rows, px: dst}
}

// Size returns the thumbnail size in cells.
func (t *Thumbnail) Size() (int, int) {
	return t.cols, t.rows
}

// Colors returns the hex colors of the upper and lower pixel of cell
// (col, row). A gray thumbnail is desaturated and dimmed.
func (t *Thumbnail) Colors(col, row int, gray bool) (top, bottom string) {
	return t.hex(col, 2*row, gray), t.hex(col, 2*row+1, gray)
}

func (t *Thumbnail) hex(x, y int, gray bool) string {
	if t.px == nil {
		return "#000000"
	}
	c, _ := colorful.MakeColor(t.px.At(x, y))
	if gray {
		l, _, _ := c.Lab()
		c = colorful.Lab(l*0.6, 0, 0).Clamped()
	}
	return c.Hex()
}
