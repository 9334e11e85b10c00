package render

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumenpedia/lumen/pkg/particles"
)

// ErrUnsupportedFormat is returned for snapshot formats other than png and svg.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// SnapshotOptions configures SaveSnapshot.
type SnapshotOptions struct {
	Path       string
	Format     string // png or svg; inferred from Path when empty
	Width      int
	Height     int
	Frames     int // simulation steps before the frame is drawn
	Seed       int64
	Background string
	Particles  particles.Config

	// Progress, when set, is called after every simulated frame.
	Progress func(frame int)
}

// SnapshotFormat resolves the output format from the explicit value or the
// path extension.
func SnapshotFormat(format, path string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	format = strings.ToLower(format)
	switch format {
	case "png", "svg":
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveSnapshot simulates a particle field and writes one frame of it.
func SaveSnapshot(opts SnapshotOptions) error {
	format, err := SnapshotFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.Background == "" {
		opts.Background = "#000000"
	}

	field := particles.NewField(opts.Particles, float64(opts.Width), float64(opts.Height),
		rand.New(rand.NewSource(opts.Seed)))
	for i := 0; i < opts.Frames; i++ {
		field.Step()
		if opts.Progress != nil {
			opts.Progress(i + 1)
		}
	}

	switch format {
	case "png":
		r := NewRaster(opts.Width, opts.Height)
		r.SetBackground(opts.Background)
		field.Draw(r)
		if err := r.SavePNG(opts.Path); err != nil {
			return fmt.Errorf("writing %s: %w", opts.Path, err)
		}
		return nil
	default:
		f, err := os.Create(opts.Path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.Path, err)
		}
		s := NewSVG(f, opts.Width, opts.Height)
		s.SetBackground(opts.Background)
		field.Draw(s)
		s.Close()
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", opts.Path, err)
		}
		return nil
	}
}
