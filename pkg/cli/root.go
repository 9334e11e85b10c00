// Package cli wires the lumen commands: browse (the default), snapshot, init
// and version.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumenpedia/lumen/pkg/config"
)

// DebugLogFile receives log output when debugging is on.
const DebugLogFile = "lumen-debug.log"

type rootOptions struct {
	configPath string
	debug      bool
	logPath    string
	logFile    *os.File
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "lumen [catalog files...]",
		Short: "Browse an encyclopedia catalog in the terminal",
		Long: `Lumen shows an encyclopedia catalog as one carousel per letter, with
search, an A-Z bar and an animated particle background.

Catalog files are JSONL, YAML or SQLite. Arguments override catalog.paths
from the config file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, args)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write logs to "+DebugLogFile)

	root.AddCommand(
		newBrowseCommand(opts),
		newSnapshotCommand(opts),
		newInitCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := &rootOptions{}
	if err := opts.execute(ctx, newRootCommand(opts)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// execute runs cmd and closes the debug log afterwards. Cobra skips
// PersistentPostRun when RunE fails.
func (o *rootOptions) execute(ctx context.Context, cmd *cobra.Command) error {
	defer o.closeLog()
	return cmd.ExecuteContext(ctx)
}

// setupLogging sends the log package to DebugLogFile when --debug or
// LUMEN_DEBUG is set. Otherwise logs are dropped; the TUI owns the terminal.
func (o *rootOptions) setupLogging() error {
	if !o.debug && os.Getenv("LUMEN_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	path := o.logPath
	if path == "" {
		path = DebugLogFile
	}
	f, err := tea.LogToFile(path, "lumen")
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	o.logFile = f
	return nil
}

func (o *rootOptions) closeLog() {
	if o.logFile == nil {
		return
	}
	log.SetOutput(io.Discard)
	o.logFile.Close()
	o.logFile = nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
