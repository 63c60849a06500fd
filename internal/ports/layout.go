package ports

import (
	"context"

	"github.com/randomtoy/cardtable-go/internal/domain"
)

// LayoutStore provides the starting arrangements of a table.
type LayoutStore interface {
	GetLayout(ctx context.Context, layoutID string) (domain.Layout, error)
}
