package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumenpedia/lumen/pkg/render"
)

// Used when neither flags nor the terminal give a size.
const (
	defaultSnapshotWidth  = 1200
	defaultSnapshotHeight = 800
)

type snapshotOptions struct {
	out    string
	format string
	frames int
	seed   int64
	width  int
	height int
	quiet  bool
}

func newSnapshotCommand(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the particle background to a PNG or SVG file",
		Long: `Runs the particle field headless for a number of frames and writes the
last one. The size defaults to the terminal in virtual pixels.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "lumen.png", "output file")
	f.StringVar(&opts.format, "format", "", "png or svg (default from the file extension)")
	f.IntVar(&opts.frames, "frames", 120, "frames to simulate before drawing")
	f.Int64Var(&opts.seed, "seed", 1, "random seed")
	f.IntVar(&opts.width, "width", 0, "image width in pixels")
	f.IntVar(&opts.height, "height", 0, "image height in pixels")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func runSnapshot(cmd *cobra.Command, root *rootOptions, opts *snapshotOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.frames < 0 {
		return fmt.Errorf("--frames must be non-negative, got %d", opts.frames)
	}

	width, height := opts.width, opts.height
	if width <= 0 || height <= 0 {
		w, h := terminalPixels(cfg.Carousel.PixelsPerCell)
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}

	var bar *progressbar.ProgressBar
	if !opts.quiet && opts.frames > 0 {
		bar = progressbar.NewOptions(opts.frames,
			progressbar.OptionSetDescription("Simulating"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	err = render.SaveSnapshot(render.SnapshotOptions{
		Path:       opts.out,
		Format:     opts.format,
		Width:      width,
		Height:     height,
		Frames:     opts.frames,
		Seed:       opts.seed,
		Background: cfg.UI.Background,
		Particles:  cfg.ParticleSettings(),
		Progress: func(frame int) {
			if bar != nil {
				_ = bar.Set(frame)
			}
		},
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d frames)\n", opts.out, width, height, opts.frames)
	return nil
}

// terminalPixels converts the terminal size to virtual pixels, one cell
// being ppc wide and 2*ppc tall.
func terminalPixels(ppc float64) (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSnapshotWidth, defaultSnapshotHeight
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return defaultSnapshotWidth, defaultSnapshotHeight
	}
	return int(float64(cols) * ppc), int(float64(rows) * 2 * ppc)
}
