// Package tui draws the card table in a terminal and turns mouse input
// into clicks, double clicks, right clicks and drags.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/randomtoy/cardtable-go/internal/app"
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// SnapshotFunc writes an image of the cards to path.
type SnapshotFunc func(cards []*domain.Card, path string) error

// Options configure the terminal table.
type Options struct {
	LayoutID          string
	DoubleClickWindow time.Duration
	SnapshotPath      string
	Snapshot          SnapshotFunc
	Controller        []app.Option
	Logger            *slog.Logger
}

// press tracks a held left button.
type press struct {
	view  *cardView
	lastX int
	lastY int
	moved bool
}

type lastClick struct {
	view *cardView
	at   time.Time
}

// Model is the bubbletea model of the table.
type Model struct {
	ctl    *app.InteractionController
	views  []*cardView
	popup  *popupMenu
	grid   Grid
	logger *slog.Logger

	doubleClickWindow time.Duration
	snapshotPath      string
	snapshot          SnapshotFunc
	now               func() time.Time
	copyText          func(string) error

	width, height int
	press         *press
	last          lastClick
	target        *cardView
	status        string
}

var statusStyle = lipgloss.NewStyle().Faint(true)

// New deals the layout and returns a model ready for tea.NewProgram.
func New(ctx context.Context, svc *app.TableService, opts Options) (*Model, error) {
	m := &Model{
		popup:             &popupMenu{},
		grid:              DefaultGrid(),
		logger:            opts.Logger,
		doubleClickWindow: opts.DoubleClickWindow,
		snapshotPath:      opts.SnapshotPath,
		snapshot:          opts.Snapshot,
		now:               time.Now,
		copyText:          clipboard.WriteAll,
		width:             80,
		height:            24,
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.doubleClickWindow <= 0 {
		m.doubleClickWindow = 400 * time.Millisecond
	}

	newView := func(c *domain.Card) ports.CardView {
		v := newCardView(c)
		m.views = append(m.views, v)
		return v
	}
	ctlOpts := append([]app.Option{app.WithProjector(m.grid)}, opts.Controller...)
	ctl, err := svc.Deal(ctx, opts.LayoutID, newView, m.popup, ctlOpts...)
	if err != nil {
		return nil, err
	}
	m.ctl = ctl
	return m, nil
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		if m.popup.visible {
			m.popup.dismiss()
		}
	case "g":
		s, err := m.ctl.GroupSelection()
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.status = fmt.Sprintf("grouped %d cards", s.Len())
	case "d":
		m.drawFromTarget()
	case "y":
		m.copySelection()
	case "p":
		m.saveSnapshot()
	case "r":
		m.ctl.Reset()
		m.status = "reset"
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.popup.visible {
		switch msg.Type {
		case tea.MouseLeft, tea.MouseRight:
			m.popup.click(msg.X, msg.Y)
		}
		return
	}

	if m.press != nil {
		switch msg.Type {
		case tea.MouseMotion, tea.MouseLeft:
			m.dragTo(msg.X, msg.Y)
			return
		case tea.MouseRelease:
			m.release()
			return
		}
	}

	switch msg.Type {
	case tea.MouseLeft:
		v := m.viewAt(msg.X, msg.Y)
		if v == nil {
			return
		}
		m.target = v
		v.BringToFront()
		m.press = &press{view: v, lastX: msg.X, lastY: msg.Y}
	case tea.MouseRight:
		v := m.viewAt(msg.X, msg.Y)
		if v == nil {
			return
		}
		m.target = v
		v.emitRightClick()
	}
}

// dragTo moves the pressed card to follow the pointer. The gesture
// becomes a drag on the first move.
func (m *Model) dragTo(x, y int) {
	p := m.press
	dx, dy := x-p.lastX, y-p.lastY
	if dx == 0 && dy == 0 {
		return
	}
	if !p.moved {
		p.moved = true
		p.view.emitDragStart(p.view.pos)
	}
	delta := m.grid.Delta(dx, dy)
	p.view.pos = p.view.pos.Add(delta)
	p.lastX, p.lastY = x, y
	p.view.emitDragging(delta)
}

// release ends the gesture as a drop or classifies it as a click.
func (m *Model) release() {
	p := m.press
	m.press = nil
	if p.moved {
		p.view.emitEndDrag()
		m.last = lastClick{}
		return
	}

	now := m.now()
	if m.last.view == p.view && now.Sub(m.last.at) <= m.doubleClickWindow {
		m.last = lastClick{}
		p.view.emitDoubleClick()
		return
	}
	m.last = lastClick{view: p.view, at: now}
	p.view.emitSingleClick()
}

func (m *Model) viewAt(col, row int) *cardView {
	order := drawOrder(m.views)
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].contains(m.grid, col, row) {
			return order[i]
		}
	}
	return nil
}

func (m *Model) drawFromTarget() {
	if m.target == nil {
		m.status = "right-click a stack first"
		return
	}
	s, ok := m.ctl.StackOf(m.target.card)
	if !ok {
		m.status = domain.ErrNotStackMember.Error()
		return
	}
	c, err := m.ctl.DrawFromStack(s.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("drew %s from %s", c.ID, s.ID)
}

func (m *Model) copySelection() {
	sel := m.ctl.Selection()
	if len(sel) == 0 {
		m.status = "nothing selected"
		return
	}
	ids := make([]string, len(sel))
	for i, c := range sel {
		ids[i] = c.ID
	}
	if err := m.copyText(strings.Join(ids, ",")); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.status = "clipboard unavailable"
		return
	}
	m.status = fmt.Sprintf("copied %d card ids", len(ids))
}

func (m *Model) saveSnapshot() {
	if m.snapshot == nil {
		m.status = "snapshots disabled"
		return
	}
	if err := m.snapshot(m.ctl.Cards(), m.snapshotPath); err != nil {
		m.logger.Error("snapshot failed", "path", m.snapshotPath, "error", err)
		m.status = "snapshot failed"
		return
	}
	m.status = "saved " + m.snapshotPath
}

func (m *Model) View() string {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	c := newCanvas(m.width, h)
	for _, v := range drawOrder(m.views) {
		drawCard(c, m.grid, v)
	}
	drawMenu(c, m.popup)

	help := "click select · double-click flip · drag move · right-click menu · g group · d draw · y copy · p png · r reset · q quit"
	if m.status != "" {
		help = m.status + " │ " + help
	}
	if r := []rune(help); m.width > 0 && len(r) > m.width {
		help = string(r[:m.width])
	}
	return c.String() + "\n" + statusStyle.Render(help)
}
