package main

import (
	"log/slog"
	"os"

	"github.com/abenz1267/glance/internal/config"
	"github.com/abenz1267/glance/internal/platform"
	"github.com/abenz1267/glance/internal/preview"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glance",
		Short:         "Preview the selected file",
		Long:          "glance decides how a file should be previewed (image, text excerpt or icon) and shows it.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error

			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}

			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			lvl, err := cfg.Log.SlogLevel()
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

			if cfg.File != "" {
				slog.Debug("config", "file", cfg.File)
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/glance/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewDecideCmd())
	rootCmd.AddCommand(NewScanCmd())

	return rootCmd
}

func newSelector(observe bool) *preview.Selector {
	opts := []preview.Option{}

	switch cfg.Preview.Sniffer {
	case config.SnifferGio:
		opts = append(opts, preview.WithSniffer(platform.Sniffer{}))
	default:
		opts = append(opts, preview.WithSniffer(preview.NativeSniffer{}))
	}

	if observe {
		opts = append(opts, preview.WithObserver(preview.SlogObserver(slog.Default())))
	}

	return preview.NewSelector(opts...)
}
