package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/randomtoy/cardtable-go/internal/adapters/snapshot"
	"github.com/randomtoy/cardtable-go/internal/adapters/tui"
	"github.com/randomtoy/cardtable-go/internal/app"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play on the table in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the table, so logs go to a file.
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logger := newLogger(f)

			opts, err := controllerOptions()
			if err != nil {
				return err
			}

			svc := app.NewTableService(store, logger)
			m, err := tui.New(cmd.Context(), svc, tui.Options{
				LayoutID:          cfg.LayoutID,
				DoubleClickWindow: cfg.DoubleClickWindow,
				SnapshotPath:      cfg.SnapshotPath,
				Snapshot:          snapshot.SavePNG,
				Controller:        opts,
				Logger:            logger,
			})
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
