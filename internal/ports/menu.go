package ports

import "github.com/randomtoy/cardtable-go/internal/domain"

// PopupMenu shows a context menu. Implementations run an item's OnClick
// and then hide themselves; a click outside the items fires the cancel
// subscribers.
type PopupMenu interface {
	Show(screenPos domain.Vec3, items []domain.MenuItem)
	Hide()
	SubscribeCancel(fn func())
}
