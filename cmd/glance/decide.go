package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abenz1267/glance/internal/preview"
	"github.com/spf13/cobra"
)

type decideOutput struct {
	Path     string           `json:"path"`
	Decision preview.Decision `json:"decision"`
	Info     *preview.Info    `json:"info,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// NewDecideCmd creates the decide command
func NewDecideCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "decide <path>...",
		Short: "Print how files would be previewed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := newSelector(false)

			var failed error

			enc := json.NewEncoder(cmd.OutOrStdout())

			for _, path := range args {
				out, err := decide(selector, path, cfg.Preview.FallbackIcon)
				if err != nil {
					failed = errors.Join(failed, fmt.Errorf("%s: %w", path, err))
				}

				if jsonOutput {
					if err := enc.Encode(out); err != nil {
						return err
					}

					continue
				}

				printDecision(cmd.OutOrStdout(), out)
			}

			return failed
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print one JSON object per path")

	return cmd
}

func decide(selector *preview.Selector, path string, fallback bool) (decideOutput, error) {
	out := decideOutput{Path: path}

	d, err := selector.DecideWithFallback(&preview.Selection{Path: path}, fallback)
	if err != nil {
		out.Error = err.Error()
		return out, err
	}

	out.Decision = d

	if info, err := preview.Stat(path); err == nil {
		out.Info = &info
	}

	return out, nil
}

func printDecision(w io.Writer, out decideOutput) {
	if out.Error != "" && out.Decision.Kind == preview.Hidden {
		fmt.Fprintf(w, "%s\terror\t%s\n", out.Path, out.Error)
		return
	}

	line := fmt.Sprintf("%s\t%s\t%s", out.Path, out.Decision.Kind, out.Decision.MIME)

	if out.Info != nil {
		line += "\t" + out.Info.Summary("")
	}

	fmt.Fprintln(w, line)

	if out.Decision.Kind == preview.Text && out.Decision.Text != "" {
		first, _, _ := strings.Cut(out.Decision.Text, "\n")
		fmt.Fprintf(w, "\t%s\n", first)
	}
}
