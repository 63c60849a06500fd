package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// ViewFactory creates the view for a freshly dealt card.
type ViewFactory func(card *domain.Card) ports.CardView

// TableService deals layouts onto a table and wires the controller.
type TableService struct {
	layouts ports.LayoutStore
	logger  *slog.Logger
}

func NewTableService(ls ports.LayoutStore, logger *slog.Logger) *TableService {
	return &TableService{layouts: ls, logger: logger}
}

// Deal builds every card and stack of the layout, hands each card to
// newView and returns a controller subscribed to all of them. Views are
// drawn once before returning.
func (s *TableService) Deal(ctx context.Context, layoutID string, newView ViewFactory, popup ports.PopupMenu, opts ...Option) (*InteractionController, error) {
	layout, err := s.layouts.GetLayout(ctx, layoutID)
	if err != nil {
		return nil, fmt.Errorf("get layout: %w", err)
	}

	views, err := buildViews(layout, newView)
	if err != nil {
		return nil, fmt.Errorf("deal %s: %w", layoutID, err)
	}

	opts = append([]Option{WithLogger(s.logger)}, opts...)
	ctl := NewInteractionController(views, popup, opts...)

	for _, st := range layout.Stacks {
		if err := ctl.AddStack(st.ID, st.Cards); err != nil {
			return nil, fmt.Errorf("deal %s: %w", layoutID, err)
		}
	}
	for _, v := range views {
		v.UpdateVisuals()
	}

	s.logger.InfoContext(ctx, "table dealt",
		"layout_id", layoutID,
		"cards", len(views),
		"stacks", len(layout.Stacks),
	)
	return ctl, nil
}

func buildViews(layout domain.Layout, newView ViewFactory) ([]ports.CardView, error) {
	seen := make(map[string]bool, len(layout.Cards))
	views := make([]ports.CardView, 0, len(layout.Cards))
	for _, cs := range layout.Cards {
		if cs.ID == "" {
			return nil, fmt.Errorf("card without id in layout %s", layout.ID)
		}
		if seen[cs.ID] {
			return nil, fmt.Errorf("duplicate card id %s", cs.ID)
		}
		seen[cs.ID] = true
		views = append(views, newView(cs.NewCard()))
	}
	return views, nil
}
