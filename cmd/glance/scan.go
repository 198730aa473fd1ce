package main

import (
	"fmt"

	"github.com/abenz1267/glance/internal/preview"
	"github.com/abenz1267/glance/internal/scan"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Classify every file below a directory",
		Long:  `Walk dir (respecting .gitignore and .ignore files unless configured otherwise) and print how each file would be previewed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := scan.New(newSelector(false), scan.Options{
				IgnoreGitIgnore: cfg.Scan.IgnoreGitIgnore,
				IncludeHidden:   cfg.Scan.IncludeHidden,
				Concurrency:     cfg.Scan.Concurrency,
			})

			summary := scan.Summary{}
			w := cmd.OutOrStdout()

			err := scanner.Run(cmd.Context(), args[0], func(r scan.Result) {
				summary.Add(r)

				if r.Err != nil {
					fmt.Fprintf(w, "%s\t%s\t%s\t(%v)\n", r.Path, r.Decision.Kind, r.Decision.MIME, r.Err)
					return
				}

				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.Decision.Kind, r.Decision.MIME)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "\nimages: %d, text: %d, icons: %d\n",
				summary[preview.Image], summary[preview.Text], summary[preview.Icon])

			return nil
		},
	}

	return cmd
}
