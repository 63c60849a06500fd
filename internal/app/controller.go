package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// InteractionController turns classified view gestures into changes of
// cards, stacks and the selection, and tells views what to redraw.
// It is not safe for concurrent use; callers serialize events.
type InteractionController struct {
	views     map[string]ports.CardView
	viewOrder []ports.CardView
	stacks    []*domain.CardStack
	selection *domain.SelectionSet
	popup     ports.PopupMenu

	projector   ports.ScreenProjector
	rng         domain.RNG
	logger      *slog.Logger
	doubleClick DoubleClickMode
	newStackID  func() string

	dragging    bool
	menuStackID string
	menuItems   []domain.MenuItem
}

var _ ports.CardEventHandler = (*InteractionController)(nil)

// NewInteractionController subscribes to every view and to the popup's
// cancel event. Views with a card id seen before are ignored.
func NewInteractionController(views []ports.CardView, popup ports.PopupMenu, opts ...Option) *InteractionController {
	c := &InteractionController{
		views:       make(map[string]ports.CardView, len(views)),
		selection:   domain.NewSelectionSet(),
		popup:       popup,
		projector:   ports.IdentityProjector{},
		rng:         domain.NewRNG(0),
		logger:      slog.Default(),
		doubleClick: DoubleClickRetoggle,
		newStackID:  defaultStackID,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, v := range views {
		id := v.Card().ID
		if _, dup := c.views[id]; dup {
			c.logger.Warn("duplicate card view ignored", "card_id", id)
			continue
		}
		c.views[id] = v
		c.viewOrder = append(c.viewOrder, v)
		v.Subscribe(c)
	}
	if popup != nil {
		popup.SubscribeCancel(c.OnMenuCancel)
	}
	return c
}

// OnSingleClick toggles the selection of the clicked card.
func (c *InteractionController) OnSingleClick(v ports.CardView) {
	card := v.Card()
	selected := c.selection.Toggle(card)
	v.UpdateVisuals()

	c.logger.Debug("card selection toggled",
		"card_id", card.ID,
		"selected", selected,
		"count", c.selection.Len(),
	)
}

// OnDoubleClick flips the clicked card. In retoggle mode it first
// reverts the toggle made by the single click that opened the gesture.
func (c *InteractionController) OnDoubleClick(v ports.CardView) {
	card := v.Card()
	if c.doubleClick == DoubleClickRetoggle {
		c.selection.Toggle(card)
	}
	card.Flip()
	v.UpdateVisuals()

	c.logger.Debug("card flipped",
		"card_id", card.ID,
		"face", card.Face,
		"selected", card.Selected,
	)
}

// OnRightClick opens the context menu of the stack holding the card.
func (c *InteractionController) OnRightClick(v ports.CardView) {
	if err := c.openStackMenu(v.Card()); err != nil {
		c.logger.Debug("context menu not shown", "card_id", v.Card().ID, "error", err)
	}
}

// OnDragStart raises every selected card above the rest of the table.
func (c *InteractionController) OnDragStart(v ports.CardView, pos domain.Vec3) {
	c.dragging = true
	for _, card := range c.selection.Snapshot() {
		if view, ok := c.views[card.ID]; ok {
			view.BringToFront()
		}
	}
	c.logger.Debug("drag started", "card_id", v.Card().ID, "x", pos.X, "y", pos.Y, "group", c.selection.Len())
}

// OnDragging records the move of the dragged card and carries the rest
// of the selection along by the same delta.
func (c *InteractionController) OnDragging(v ports.CardView, delta domain.Vec3) {
	origin := v.Card()
	origin.Position = origin.Position.Add(delta)

	for _, card := range c.selection.Snapshot() {
		if card == origin {
			continue
		}
		card.Position = card.Position.Add(delta)
		if view, ok := c.views[card.ID]; ok {
			view.SetPosition(card.Position)
		}
	}
}

// OnEndDrag drops the group: every selected card is deselected and
// redrawn, which also restores its normal depth.
func (c *InteractionController) OnEndDrag(v ports.CardView) {
	origin := v.Card()
	members := c.selection.Snapshot()
	redrawnOrigin := false

	for _, card := range members {
		c.selection.Deselect(card)
		if view, ok := c.views[card.ID]; ok {
			view.UpdateVisuals()
		}
		if card == origin {
			redrawnOrigin = true
		}
	}
	if !redrawnOrigin {
		v.UpdateVisuals()
	}
	c.dragging = false

	c.logger.Debug("drag ended", "card_id", origin.ID, "dropped", len(members))
}

// OnMenuCancel forgets the menu context. No card state changes.
func (c *InteractionController) OnMenuCancel() {
	c.logger.Debug("context menu cancelled", "stack_id", c.menuStackID)
	c.menuStackID = ""
	c.menuItems = nil
}

// ShuffleStack randomly reorders a stack. Every slot keeps its position
// and depth, so the last card stays on top.
func (c *InteractionController) ShuffleStack(stackID string) error {
	s, ok := c.Stack(stackID)
	if !ok {
		return fmt.Errorf("shuffle %s: %w", stackID, domain.ErrStackNotFound)
	}
	if s.Len() <= 1 {
		return fmt.Errorf("shuffle %s: %w", stackID, domain.ErrShuffleNotApplicable)
	}

	type slot struct {
		pos domain.Vec3
		z   int
	}
	slots := make([]slot, s.Len())
	for i, card := range s.Cards {
		slots[i] = slot{pos: card.Position, z: card.ZOrder}
	}

	s.Shuffle(c.rng)

	for i, card := range s.Cards {
		card.Position = slots[i].pos
		card.ZOrder = slots[i].z
		if view, ok := c.views[card.ID]; ok {
			view.SetPosition(card.Position)
			view.UpdateVisuals()
		}
	}

	c.logger.Info("stack shuffled", "stack_id", stackID, "count", s.Len())
	return nil
}

// DrawFromStack pops the top card. A stack left with fewer than two
// cards is dissolved and its remaining card becomes loose.
func (c *InteractionController) DrawFromStack(stackID string) (*domain.Card, error) {
	s, ok := c.Stack(stackID)
	if !ok {
		return nil, fmt.Errorf("draw %s: %w", stackID, domain.ErrStackNotFound)
	}
	card, err := s.Pop()
	if err != nil {
		return nil, fmt.Errorf("draw %s: %w", stackID, err)
	}
	if view, ok := c.views[card.ID]; ok {
		view.UpdateVisuals()
	}
	c.logger.Info("card drawn", "stack_id", stackID, "card_id", card.ID, "remaining", s.Len())

	if s.Dissolved() {
		c.dissolve(s)
	}
	return card, nil
}

// AddStack registers a stack made of already registered cards, bottom
// to top.
func (c *InteractionController) AddStack(stackID string, cardIDs []string) error {
	if _, exists := c.Stack(stackID); exists {
		return fmt.Errorf("add stack %s: %w", stackID, domain.ErrDuplicateStack)
	}
	if len(cardIDs) < domain.MinStackSize {
		return fmt.Errorf("add stack %s: %w", stackID, domain.ErrStackTooSmall)
	}
	cards := make([]*domain.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		view, ok := c.views[id]
		if !ok {
			return fmt.Errorf("add stack %s: card %s: %w", stackID, id, domain.ErrCardNotFound)
		}
		cards = append(cards, view.Card())
	}
	for _, card := range cards {
		c.detach(card)
	}
	c.stacks = append(c.stacks, domain.NewCardStack(stackID, cards))
	return nil
}

// GroupSelection piles the selected cards into a new stack, nearest
// card on top, squared up on the position of the bottom card. The
// selection is cleared.
func (c *InteractionController) GroupSelection() (*domain.CardStack, error) {
	if c.selection.Len() < domain.MinStackSize {
		return nil, fmt.Errorf("group selection: %w", domain.ErrStackTooSmall)
	}
	cards := c.selection.Snapshot()
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].ZOrder < cards[j].ZOrder })

	for _, card := range cards {
		c.detach(card)
	}

	base := cards[0]
	for i, card := range cards {
		c.selection.Deselect(card)
		card.Position = base.Position
		card.ZOrder = base.ZOrder + i
		if view, ok := c.views[card.ID]; ok {
			view.SetPosition(card.Position)
			view.UpdateVisuals()
		}
	}

	s := domain.NewCardStack(c.newStackID(), cards)
	c.stacks = append(c.stacks, s)
	c.logger.Info("stack grouped", "stack_id", s.ID, "count", s.Len())
	return s, nil
}

// InvokeMenuItem runs item i of the open context menu and hides it.
func (c *InteractionController) InvokeMenuItem(i int) error {
	if i < 0 || i >= len(c.menuItems) {
		return fmt.Errorf("menu item %d: %w", i, domain.ErrMenuItemNotFound)
	}
	item := c.menuItems[i]
	c.menuStackID = ""
	c.menuItems = nil
	if item.OnClick != nil {
		item.OnClick()
	}
	if c.popup != nil {
		c.popup.Hide()
	}
	return nil
}

// ClearSelection deselects and redraws every selected card.
func (c *InteractionController) ClearSelection() {
	for _, card := range c.selection.Snapshot() {
		c.selection.Deselect(card)
		if view, ok := c.views[card.ID]; ok {
			view.UpdateVisuals()
		}
	}
}

// Reset drops any gesture, menu and selection state and redraws the
// whole table.
func (c *InteractionController) Reset() {
	c.selection.Clear()
	c.dragging = false
	if c.menuItems != nil && c.popup != nil {
		c.popup.Hide()
	}
	c.menuStackID = ""
	c.menuItems = nil
	for _, v := range c.viewOrder {
		v.UpdateVisuals()
	}
}

func (c *InteractionController) IsSelected(card *domain.Card) bool {
	return c.selection.Contains(card)
}

func (c *InteractionController) SelectionLen() int { return c.selection.Len() }

// Selection returns the selected cards in selection order.
func (c *InteractionController) Selection() []*domain.Card { return c.selection.Snapshot() }

// Dragging reports whether a drag gesture is in progress.
func (c *InteractionController) Dragging() bool { return c.dragging }

// MenuContext returns the id of the stack whose menu is open, if any.
func (c *InteractionController) MenuContext() string { return c.menuStackID }

// MenuItems returns the labels of the open context menu.
func (c *InteractionController) MenuItems() []string {
	labels := make([]string, len(c.menuItems))
	for i, it := range c.menuItems {
		labels[i] = it.Label
	}
	return labels
}

func (c *InteractionController) Stack(stackID string) (*domain.CardStack, bool) {
	for _, s := range c.stacks {
		if s.ID == stackID {
			return s, true
		}
	}
	return nil, false
}

// StackOf returns the first stack containing card.
func (c *InteractionController) StackOf(card *domain.Card) (*domain.CardStack, bool) {
	for _, s := range c.stacks {
		if s.Contains(card) {
			return s, true
		}
	}
	return nil, false
}

func (c *InteractionController) Stacks() []*domain.CardStack {
	out := make([]*domain.CardStack, len(c.stacks))
	copy(out, c.stacks)
	return out
}

// Cards returns every card in registration order.
func (c *InteractionController) Cards() []*domain.Card {
	out := make([]*domain.Card, len(c.viewOrder))
	for i, v := range c.viewOrder {
		out[i] = v.Card()
	}
	return out
}

func (c *InteractionController) View(cardID string) (ports.CardView, bool) {
	v, ok := c.views[cardID]
	return v, ok
}

func (c *InteractionController) openStackMenu(card *domain.Card) error {
	s, ok := c.StackOf(card)
	if !ok {
		return fmt.Errorf("card %s: %w", card.ID, domain.ErrNotStackMember)
	}
	if c.popup == nil {
		return errors.New("no popup menu attached")
	}

	stackID := s.ID
	items := []domain.MenuItem{
		{
			Label: "Shuffle",
			OnClick: func() {
				if err := c.ShuffleStack(stackID); err != nil {
					c.logger.Warn("shuffle from menu failed", "stack_id", stackID, "error", err)
				}
			},
		},
	}

	c.menuStackID = stackID
	c.menuItems = items
	c.popup.Show(c.projector.WorldToScreen(card.Position), items)

	c.logger.Debug("context menu shown", "card_id", card.ID, "stack_id", stackID)
	return nil
}

// detach removes card from whatever stack holds it, dissolving that
// stack if it becomes too small.
func (c *InteractionController) detach(card *domain.Card) {
	s, ok := c.StackOf(card)
	if !ok {
		return
	}
	s.Remove(card)
	if s.Dissolved() {
		c.dissolve(s)
	}
}

func (c *InteractionController) dissolve(s *domain.CardStack) {
	for i, rs := range c.stacks {
		if rs == s {
			c.stacks = append(c.stacks[:i], c.stacks[i+1:]...)
			break
		}
	}
	if c.menuStackID == s.ID {
		c.menuStackID = ""
	}
	loose := ""
	if top, ok := s.Top(); ok {
		loose = top.ID
	}
	c.logger.Info("stack dissolved", "stack_id", s.ID, "loose_card", loose)
}
