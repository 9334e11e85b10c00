package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumenpedia/lumen/pkg/loader"
	"github.com/lumenpedia/lumen/pkg/model"
	"github.com/lumenpedia/lumen/pkg/ui"
	"github.com/lumenpedia/lumen/pkg/watcher"
)

func newBrowseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [catalog files...]",
		Short: "Open the catalog browser (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, args)
		},
	}
}

func runBrowse(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Catalog.Paths = args
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reload := catalogLoader(cfg.Catalog.Paths)
	cat, err := reload(ctx)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries found. Add some to your catalog files first.")
		return nil
	}

	m := ui.NewModel(cat, cfg, ui.WithReloader(reload))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if cfg.Catalog.Watch {
		stop, err := watchCatalog(ctx, cfg.Catalog.Paths, cfg.Catalog.Debounce, reload, p.Send)
		if err != nil {
			log.Printf("cli: live reload disabled: %v", err)
		} else {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// catalogLoader returns a ui.Reloader over the given patterns.
func catalogLoader(patterns []string) ui.Reloader {
	return func(ctx context.Context) (model.Catalog, error) {
		res, err := loader.Load(ctx, patterns...)
		if err != nil {
			return model.Catalog{}, fmt.Errorf("loading catalog: %w", err)
		}
		if res.Skipped > 0 {
			log.Printf("cli: skipped %d malformed records", res.Skipped)
		}
		return res.Catalog, nil
	}
}

// watchCatalog reloads the catalog whenever a matching file changes and
// hands the result to send. The returned func stops watching.
func watchCatalog(ctx context.Context, patterns []string, debounce time.Duration,
	reload ui.Reloader, send func(tea.Msg)) (func(), error) {
	w, err := watcher.New(patterns, watcher.NewDebouncer(debounce))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	go w.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case paths := <-w.Changes():
				log.Printf("cli: %d catalog files changed, reloading", len(paths))
				cat, err := reload(ctx)
				if ctx.Err() != nil {
					return
				}
				send(ui.ReloadMsg{Catalog: cat, Err: err})
			}
		}
	}()
	return func() {
		cancel()
		w.Close()
	}, nil
}
