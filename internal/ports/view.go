package ports

import "github.com/randomtoy/cardtable-go/internal/domain"

// CardEventHandler receives gestures a view has already classified.
type CardEventHandler interface {
	OnSingleClick(v CardView)
	OnDoubleClick(v CardView)
	OnRightClick(v CardView)
	// OnDragStart carries the world position where the gesture began.
	OnDragStart(v CardView, pos domain.Vec3)
	// OnDragging carries the move the view has already applied to itself.
	OnDragging(v CardView, delta domain.Vec3)
	OnEndDrag(v CardView)
}

// CardView is the rendering side of one card. Views read their card to
// draw it and must not mutate it.
type CardView interface {
	Card() *domain.Card
	// UpdateVisuals recomputes face, tint and depth from the card state.
	UpdateVisuals()
	SetPosition(pos domain.Vec3)
	// BringToFront renders the card above every non-dragged card until
	// the next UpdateVisuals.
	BringToFront()
	Subscribe(h CardEventHandler)
}

// ScreenProjector converts world coordinates to screen coordinates.
type ScreenProjector interface {
	WorldToScreen(pos domain.Vec3) domain.Vec3
}

// IdentityProjector uses world coordinates as screen coordinates.
type IdentityProjector struct{}

func (IdentityProjector) WorldToScreen(pos domain.Vec3) domain.Vec3 { return pos }
