package ui

import (
	"image"
	"log"

	"github.com/lumenpedia/lumen/pkg/render"
)

type thumbKey struct {
	path       string
	cols, rows int
}

// thumbCache decodes each image once and keeps its scaled versions. Images
// that fail to load are remembered as nil and not retried until reset.
type thumbCache struct {
	images map[string]image.Image
	thumbs map[thumbKey]*render.Thumbnail
	load   func(string) (image.Image, error)
}

func newThumbCache() *thumbCache {
	c := &thumbCache{load: render.LoadImage}
	c.reset()
	return c
}

func (c *thumbCache) reset() {
	c.images = make(map[string]image.Image)
	c.thumbs = make(map[thumbKey]*render.Thumbnail)
}

// get returns path scaled to cols x rows cells, or nil when there is no
// usable image.
func (c *thumbCache) get(path string, cols, rows int) *render.Thumbnail {
	if path == "" || cols <= 0 || rows <= 0 {
		return nil
	}
	k := thumbKey{path, cols, rows}
	if th, ok := c.thumbs[k]; ok {
		return th
	}
	img, ok := c.images[path]
	if !ok {
		var err error
		img, err = c.load(path)
		if err != nil {
			log.Printf("ui: thumbnail %s: %v", path, err)
			img = nil
		}
		c.images[path] = img
	}
	if img == nil {
		return nil
	}
	th := render.NewThumbnail(img, cols, rows)
	c.thumbs[k] = th
	return th
}
