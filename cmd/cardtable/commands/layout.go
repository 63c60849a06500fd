package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func layoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect the built-in layouts",
	}
	cmd.AddCommand(layoutListCmd(), layoutShowCmd())
	return cmd
}

func layoutListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List layout ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"ID", "Name", "Cards", "Stacks"}}
			for _, id := range store.IDs() {
				l, err := store.GetLayout(cmd.Context(), id)
				if err != nil {
					return err
				}
				data = append(data, []string{l.ID, l.Name, strconv.Itoa(len(l.Cards)), strconv.Itoa(len(l.Stacks))})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func layoutShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show the cards and stacks of a layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := cfg.LayoutID
			if len(args) == 1 {
				id = args[0]
			}
			l, err := store.GetLayout(cmd.Context(), id)
			if err != nil {
				return err
			}

			stackOf := make(map[string]string)
			for _, s := range l.Stacks {
				for _, cid := range s.Cards {
					stackOf[cid] = s.ID
				}
			}

			data := pterm.TableData{{"ID", "Label", "Location", "Face", "X", "Y", "Z", "Stack"}}
			for _, cs := range l.Cards {
				c := cs.NewCard()
				data = append(data, []string{
					c.ID, c.Label, c.Location, string(c.Face),
					fmt.Sprintf("%.1f", c.Position.X),
					fmt.Sprintf("%.1f", c.Position.Y),
					strconv.Itoa(c.ZOrder),
					stackOf[c.ID],
				})
			}
			pterm.DefaultSection.Println(l.Name)
			return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
		},
	}
}
