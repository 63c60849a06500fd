package commands

import (
	"io"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/randomtoy/cardtable-go/internal/adapters/layouts"
	"github.com/randomtoy/cardtable-go/internal/app"
	"github.com/randomtoy/cardtable-go/internal/config"
	"github.com/randomtoy/cardtable-go/internal/domain"
)

var (
	cfg      config.Config
	layoutID string
	store    = layouts.NewEmbeddedStore()
)

func Execute() error {
	root := &cobra.Command{
		Use:           "cardtable",
		Short:         "A virtual card table with selection, dragging and stacks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if layoutID != "" {
				cfg.LayoutID = layoutID
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&layoutID, "layout", "l", "", "layout to deal (default $LAYOUT_ID or \"default\")")

	root.AddCommand(tuiCmd(), serveCmd(), snapshotCmd(), layoutCmd())
	err := root.Execute()
	if err != nil {
		pterm.Error.Println(err)
	}
	return err
}

// newLogger builds the process logger from the config. JSON is the
// default; "pretty" renders through pterm.
func newLogger(w io.Writer) *slog.Logger {
	if cfg.LogFormat == "pretty" {
		pl := pterm.DefaultLogger.WithWriter(w).WithLevel(ptermLevel(cfg.LogLevel))
		return slog.New(pterm.NewSlogHandler(pl))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func ptermLevel(l slog.Level) pterm.LogLevel {
	switch {
	case l <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case l <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case l <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}

// controllerOptions maps the config onto controller options.
func controllerOptions() ([]app.Option, error) {
	mode, err := app.ParseDoubleClickMode(cfg.DoubleClickMode)
	if err != nil {
		return nil, err
	}
	return []app.Option{
		app.WithRNG(domain.NewRNG(cfg.ShuffleSeed)),
		app.WithDoubleClickMode(mode),
	}, nil
}
