package main

import (
	"fmt"
	"os"

	"github.com/abenz1267/glance/internal/feed"
	"github.com/abenz1267/glance/internal/preview"
	"github.com/abenz1267/glance/internal/ui"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Open the preview window",
		Long: `Open the preview window for path. With --stdin every line read from
standard input replaces the selection; an empty line clears it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial *preview.Selection
			if len(args) == 1 {
				initial = &preview.Selection{Path: args[0]}
			}

			var selections <-chan *preview.Selection
			if fromStdin {
				selections = feed.Read(os.Stdin)
			}

			if status := ui.Run(cfg, newSelector(true), initial, selections); status != 0 {
				return fmt.Errorf("exited with status %d", status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read selections from stdin, one path per line")

	return cmd
}
