package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/randomtoy/cardtable-go/internal/adapters/snapshot"
	"github.com/randomtoy/cardtable-go/internal/domain"
)

func snapshotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the initial deal of a layout to PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = cfg.SnapshotPath
			}
			l, err := store.GetLayout(cmd.Context(), cfg.LayoutID)
			if err != nil {
				return err
			}
			cards := make([]*domain.Card, len(l.Cards))
			for i, cs := range l.Cards {
				cards[i] = cs.NewCard()
			}
			if err := snapshot.SavePNG(cards, out); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %d cards of %s to %s", len(cards), l.ID, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default $SNAPSHOT_PATH)")
	return cmd
}
