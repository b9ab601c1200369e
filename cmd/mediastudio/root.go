package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mediastudio/internal/config"
)

// app carries what every subcommand shares: the resolved configuration.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mediastudio",
		Short: "MediaStudio site service",
		Long: `mediastudio serves the MediaStudio website API: the blog, portfolio and
services collections, and the project-inquiry contact form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			slog.SetDefault(newLogger(os.Stderr, cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file keyed by environment variable names")

	root.AddCommand(
		a.serveCmd(),
		a.migrateCmd(),
		a.contentCmd(),
		a.inquiriesCmd(),
		a.cacheCmd(),
	)
	return root
}

// newLogger outputs text in development and JSON everywhere else. LOG_LEVEL
// overrides the default of debug in development and info otherwise.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel, cfg.IsDev())}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string, dev bool) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if dev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
