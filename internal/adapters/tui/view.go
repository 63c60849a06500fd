package tui

import (
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

const (
	cardCols = 7
	cardRows = 5
)

// cardView is one card on the terminal. pos is where the view draws the
// card, which leads the model while the user drags it.
type cardView struct {
	card     *domain.Card
	handlers []ports.CardEventHandler

	pos      domain.Vec3
	depth    int
	front    bool
	selected bool
	faceUp   bool
}

var _ ports.CardView = (*cardView)(nil)

func newCardView(c *domain.Card) *cardView {
	return &cardView{card: c, pos: c.Position, depth: c.ZOrder}
}

func (v *cardView) Card() *domain.Card { return v.card }

func (v *cardView) UpdateVisuals() {
	v.faceUp = v.card.Face == domain.FaceUp
	v.selected = v.card.Selected
	v.depth = v.card.ZOrder
	v.front = false
}

func (v *cardView) SetPosition(pos domain.Vec3) { v.pos = pos }

func (v *cardView) BringToFront() { v.front = true }

func (v *cardView) Subscribe(h ports.CardEventHandler) {
	v.handlers = append(v.handlers, h)
}

func (v *cardView) contains(g Grid, col, row int) bool {
	c, r := g.Cell(v.pos)
	return col >= c && col < c+cardCols && row >= r && row < r+cardRows
}

// above reports whether v is drawn over o.
func (v *cardView) above(o *cardView) bool {
	if v.front != o.front {
		return v.front
	}
	return v.depth > o.depth
}

func (v *cardView) emitSingleClick() {
	for _, h := range v.handlers {
		h.OnSingleClick(v)
	}
}

func (v *cardView) emitDoubleClick() {
	for _, h := range v.handlers {
		h.OnDoubleClick(v)
	}
}

func (v *cardView) emitRightClick() {
	for _, h := range v.handlers {
		h.OnRightClick(v)
	}
}

func (v *cardView) emitDragStart(pos domain.Vec3) {
	for _, h := range v.handlers {
		h.OnDragStart(v, pos)
	}
}

func (v *cardView) emitDragging(delta domain.Vec3) {
	for _, h := range v.handlers {
		h.OnDragging(v, delta)
	}
}

func (v *cardView) emitEndDrag() {
	for _, h := range v.handlers {
		h.OnEndDrag(v)
	}
}
