package tui

import (
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// popupMenu is a context menu drawn over the table.
type popupMenu struct {
	visible  bool
	col, row int
	items    []domain.MenuItem
	cancel   []func()
}

var _ ports.PopupMenu = (*popupMenu)(nil)

func (p *popupMenu) Show(screenPos domain.Vec3, items []domain.MenuItem) {
	p.col = int(screenPos.X)
	p.row = int(screenPos.Y)
	p.items = append([]domain.MenuItem(nil), items...)
	p.visible = true
}

func (p *popupMenu) Hide() {
	p.visible = false
	p.items = nil
}

func (p *popupMenu) SubscribeCancel(fn func()) {
	p.cancel = append(p.cancel, fn)
}

func (p *popupMenu) width() int {
	w := 0
	for _, it := range p.items {
		if len(it.Label) > w {
			w = len(it.Label)
		}
	}
	return w + 4
}

func (p *popupMenu) height() int { return len(p.items) + 2 }

// itemAt returns the index of the item under the cell, or -1.
func (p *popupMenu) itemAt(col, row int) int {
	if !p.visible || col <= p.col || col >= p.col+p.width()-1 {
		return -1
	}
	i := row - p.row - 1
	if i < 0 || i >= len(p.items) {
		return -1
	}
	return i
}

// click runs the item under the cell and hides the menu. Anywhere else
// cancels.
func (p *popupMenu) click(col, row int) {
	if i := p.itemAt(col, row); i >= 0 {
		item := p.items[i]
		if item.OnClick != nil {
			item.OnClick()
		}
		p.Hide()
		return
	}
	p.dismiss()
}

func (p *popupMenu) dismiss() {
	for _, fn := range p.cancel {
		fn()
	}
	p.Hide()
}
