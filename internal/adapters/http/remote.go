package http

import (
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// remoteView mirrors what a remote client should draw for one card.
// Gestures arrive as HTTP requests and are replayed through emit.
type remoteView struct {
	card     *domain.Card
	handlers []ports.CardEventHandler

	pos      domain.Vec3
	depth    int
	front    bool
	selected bool
	face     domain.FaceState
	redraws  int
}

func newRemoteView(c *domain.Card) *remoteView {
	return &remoteView{card: c, pos: c.Position, depth: c.ZOrder, face: c.Face}
}

func (v *remoteView) Card() *domain.Card { return v.card }

func (v *remoteView) UpdateVisuals() {
	v.face = v.card.Face
	v.selected = v.card.Selected
	v.depth = v.card.ZOrder
	v.front = false
	v.redraws++
}

func (v *remoteView) SetPosition(pos domain.Vec3) { v.pos = pos }

func (v *remoteView) BringToFront() { v.front = true }

func (v *remoteView) Subscribe(h ports.CardEventHandler) {
	v.handlers = append(v.handlers, h)
}

// emit replays a classified gesture to the subscribers. The dragged view
// raises itself and moves by delta before the move is reported.
func (v *remoteView) emit(kind eventKind, vec domain.Vec3) {
	switch kind {
	case eventDragStart:
		v.front = true
	case eventDragging:
		v.pos = v.pos.Add(vec)
	}
	for _, h := range v.handlers {
		switch kind {
		case eventSingleClick:
			h.OnSingleClick(v)
		case eventDoubleClick:
			h.OnDoubleClick(v)
		case eventRightClick:
			h.OnRightClick(v)
		case eventDragStart:
			h.OnDragStart(v, vec)
		case eventDragging:
			h.OnDragging(v, vec)
		case eventEndDrag:
			h.OnEndDrag(v)
		}
	}
}

// remotePopup holds the context menu a client should display.
type remotePopup struct {
	visible bool
	pos     domain.Vec3
	items   []domain.MenuItem
	cancel  []func()
}

var (
	_ ports.CardView  = (*remoteView)(nil)
	_ ports.PopupMenu = (*remotePopup)(nil)
)

func (p *remotePopup) Show(screenPos domain.Vec3, items []domain.MenuItem) {
	p.pos = screenPos
	p.items = append([]domain.MenuItem(nil), items...)
	p.visible = true
}

func (p *remotePopup) Hide() {
	p.visible = false
	p.items = nil
}

func (p *remotePopup) SubscribeCancel(fn func()) {
	p.cancel = append(p.cancel, fn)
}

func (p *remotePopup) dismiss() {
	for _, fn := range p.cancel {
		fn()
	}
	p.Hide()
}
