package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenpedia/lumen/pkg/config"
	"github.com/lumenpedia/lumen/pkg/wizard"
)

func newInitCommand(root *rootOptions) *cobra.Command {
	var force, accessible bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with an interactive form",
		Long: `Asks where the catalog lives and how the browser should look, then writes
the answers to the config file (.lumen.yml unless --config says otherwise).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configPath
			base := config.Default()
			if _, err := os.Stat(path); err == nil {
				if !force {
					return fmt.Errorf("%s already exists (use --force to edit it)", path)
				}
				if base, err = root.loadConfig(); err != nil {
					return err
				}
			}

			if _, err := wizard.Run(path, base, accessible); err != nil {
				if errors.Is(err, wizard.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Setup aborted, nothing written.")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "edit an existing config file")
	cmd.Flags().BoolVar(&accessible, "accessible", os.Getenv("ACCESSIBLE") != "", "plain prompts for screen readers")
	return cmd
}
