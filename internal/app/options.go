package app

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// DoubleClickMode decides whether a double click also re-toggles the
// selection of the clicked card.
type DoubleClickMode string

const (
	// DoubleClickRetoggle undoes the selection toggle of the single click
	// that precedes every double click, then flips the card.
	DoubleClickRetoggle DoubleClickMode = "retoggle"
	// DoubleClickFlipOnly flips the card and leaves selection alone.
	DoubleClickFlipOnly DoubleClickMode = "flip_only"
)

// ParseDoubleClickMode validates a mode name.
func ParseDoubleClickMode(s string) (DoubleClickMode, error) {
	switch m := DoubleClickMode(s); m {
	case DoubleClickRetoggle, DoubleClickFlipOnly:
		return m, nil
	default:
		return "", fmt.Errorf("invalid double click mode %q", s)
	}
}

// Option configures an InteractionController.
type Option func(*InteractionController)

func WithLogger(l *slog.Logger) Option {
	return func(c *InteractionController) { c.logger = l }
}

func WithRNG(rng domain.RNG) Option {
	return func(c *InteractionController) { c.rng = rng }
}

func WithProjector(p ports.ScreenProjector) Option {
	return func(c *InteractionController) { c.projector = p }
}

func WithDoubleClickMode(m DoubleClickMode) Option {
	return func(c *InteractionController) { c.doubleClick = m }
}

// WithStackIDs replaces the generator used for ids of grouped stacks.
func WithStackIDs(next func() string) Option {
	return func(c *InteractionController) { c.newStackID = next }
}

func defaultStackID() string { return "stack-" + uuid.NewString() }
