package app_test

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"testing"

	"github.com/randomtoy/cardtable-go/internal/app"
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

type mockView struct {
	card      *domain.Card
	handler   ports.CardEventHandler
	redraws   int
	positions []domain.Vec3
	fronts    int
}

func newMockView(id string) *mockView {
	return &mockView{card: &domain.Card{ID: id, Face: domain.FaceDown}}
}

func (v *mockView) Card() *domain.Card                 { return v.card }
func (v *mockView) UpdateVisuals()                     { v.redraws++ }
func (v *mockView) SetPosition(pos domain.Vec3)        { v.positions = append(v.positions, pos) }
func (v *mockView) BringToFront()                      { v.fronts++ }
func (v *mockView) Subscribe(h ports.CardEventHandler) { v.handler = h }

// drag mimics a view that moves itself before reporting the delta.
func (v *mockView) drag(delta domain.Vec3) {
	v.handler.OnDragging(v, delta)
}

type showCall struct {
	pos   domain.Vec3
	items []domain.MenuItem
}

type mockPopup struct {
	shows  []showCall
	hides  int
	cancel []func()
}

func (p *mockPopup) Show(pos domain.Vec3, items []domain.MenuItem) {
	p.shows = append(p.shows, showCall{pos: pos, items: items})
}
func (p *mockPopup) Hide()                     { p.hides++ }
func (p *mockPopup) SubscribeCancel(fn func()) { p.cancel = append(p.cancel, fn) }

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

type doubledProjector struct{}

func (doubledProjector) WorldToScreen(p domain.Vec3) domain.Vec3 {
	return domain.Vec3{X: p.X * 2, Y: p.Y * 2}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type table struct {
	ctl   *app.InteractionController
	popup *mockPopup
	views map[string]*mockView
}

func newTable(t *testing.T, ids []string, opts ...app.Option) *table {
	t.Helper()
	tb := &table{popup: &mockPopup{}, views: make(map[string]*mockView)}
	views := make([]ports.CardView, len(ids))
	for i, id := range ids {
		v := newMockView(id)
		v.card.ZOrder = i
		tb.views[id] = v
		views[i] = v
	}
	opts = append([]app.Option{app.WithLogger(quietLogger())}, opts...)
	tb.ctl = app.NewInteractionController(views, tb.popup, opts...)
	return tb
}

func (tb *table) assertSelectionInSync(t *testing.T) {
	t.Helper()
	for id, v := range tb.views {
		if v.card.Selected != tb.ctl.IsSelected(v.card) {
			t.Errorf("card %s: selected=%v member=%v", id, v.card.Selected, tb.ctl.IsSelected(v.card))
		}
	}
}

func TestNewInteractionController_Subscribes(t *testing.T) {
	tb := newTable(t, []string{"A", "B"})

	for id, v := range tb.views {
		if v.handler != tb.ctl {
			t.Errorf("view %s not subscribed to controller", id)
		}
	}
	if len(tb.popup.cancel) != 1 {
		t.Errorf("expected one cancel subscription, got %d", len(tb.popup.cancel))
	}
}

func TestSingleClick_SelectsThenDeselects(t *testing.T) {
	tb := newTable(t, []string{"X"})
	x := tb.views["X"]

	tb.ctl.OnSingleClick(x)
	if !x.card.Selected || !tb.ctl.IsSelected(x.card) || tb.ctl.SelectionLen() != 1 {
		t.Fatalf("expected X selected and the only member, got selected=%v len=%d", x.card.Selected, tb.ctl.SelectionLen())
	}

	tb.ctl.OnSingleClick(x)
	if x.card.Selected || tb.ctl.IsSelected(x.card) || tb.ctl.SelectionLen() != 0 {
		t.Fatalf("expected X deselected and empty set, got selected=%v len=%d", x.card.Selected, tb.ctl.SelectionLen())
	}
	if x.redraws != 2 {
		t.Errorf("expected 2 redraws, got %d", x.redraws)
	}
}

func TestSingleClick_EvenCountRestoresState(t *testing.T) {
	for _, preselected := range []bool{false, true} {
		tb := newTable(t, []string{"X"})
		x := tb.views["X"]
		if preselected {
			tb.ctl.OnSingleClick(x)
		}

		for i := 0; i < 6; i++ {
			tb.ctl.OnSingleClick(x)
			tb.assertSelectionInSync(t)
		}

		if x.card.Selected != preselected {
			t.Errorf("preselected=%v: state changed to %v", preselected, x.card.Selected)
		}
	}
}

func TestDoubleClick_FlipsExactlyOnce(t *testing.T) {
	for _, mode := range []app.DoubleClickMode{app.DoubleClickRetoggle, app.DoubleClickFlipOnly} {
		for _, preselected := range []bool{false, true} {
			tb := newTable(t, []string{"X"}, app.WithDoubleClickMode(mode))
			x := tb.views["X"]
			if preselected {
				tb.ctl.OnSingleClick(x)
			}

			tb.ctl.OnDoubleClick(x)

			if x.card.Face != domain.FaceUp {
				t.Errorf("mode=%s preselected=%v: expected face up, got %s", mode, preselected, x.card.Face)
			}
			tb.assertSelectionInSync(t)
		}
	}
}

func TestDoubleClick_RetoggleRevertsPrecedingSingleClick(t *testing.T) {
	tb := newTable(t, []string{"X"})
	x := tb.views["X"]

	// A double click arrives after the single click of the same gesture.
	tb.ctl.OnSingleClick(x)
	tb.ctl.OnDoubleClick(x)

	if x.card.Selected {
		t.Error("retoggle mode should leave the card unselected after click+double click")
	}
	if x.card.Face != domain.FaceUp {
		t.Errorf("expected face up, got %s", x.card.Face)
	}
	tb.assertSelectionInSync(t)
}

func TestDoubleClick_FlipOnlyKeepsSelection(t *testing.T) {
	tb := newTable(t, []string{"X"}, app.WithDoubleClickMode(app.DoubleClickFlipOnly))
	x := tb.views["X"]

	tb.ctl.OnSingleClick(x)
	tb.ctl.OnDoubleClick(x)

	if !x.card.Selected {
		t.Error("flip_only mode must not touch selection")
	}
}

func TestDoubleClick_LeavesOtherCardsAlone(t *testing.T) {
	tb := newTable(t, []string{"X", "Y"})
	tb.ctl.OnSingleClick(tb.views["Y"])

	tb.ctl.OnDoubleClick(tb.views["X"])

	if !tb.views["Y"].card.Selected {
		t.Error("Y should stay selected")
	}
	if tb.views["Y"].card.Face != domain.FaceDown {
		t.Error("Y should not flip")
	}
}

func TestGroupDrag_MovesOnlySelectedOthers(t *testing.T) {
	tb := newTable(t, []string{"X", "Y", "Z"})
	x, y, z := tb.views["X"], tb.views["Y"], tb.views["Z"]
	y.card.Position = domain.Vec3{X: 1, Y: 1}
	z.card.Position = domain.Vec3{X: 5, Y: 5}

	tb.ctl.OnSingleClick(x)
	tb.ctl.OnSingleClick(y)

	tb.ctl.OnDragStart(x, x.card.Position)
	if x.fronts != 1 || y.fronts != 1 || z.fronts != 0 {
		t.Errorf("bring to front counts: x=%d y=%d z=%d", x.fronts, y.fronts, z.fronts)
	}
	if !tb.ctl.Dragging() {
		t.Error("expected dragging flag")
	}

	x.drag(domain.Vec3{X: 2})

	if x.card.Position != (domain.Vec3{X: 2}) {
		t.Errorf("X position: %+v", x.card.Position)
	}
	if y.card.Position != (domain.Vec3{X: 3, Y: 1}) {
		t.Errorf("Y position: %+v", y.card.Position)
	}
	if z.card.Position != (domain.Vec3{X: 5, Y: 5}) {
		t.Errorf("Z must not move: %+v", z.card.Position)
	}
	if len(x.positions) != 0 {
		t.Error("the dragged view moved itself; controller must not move it")
	}
	if len(y.positions) != 1 || y.positions[0] != y.card.Position {
		t.Errorf("Y view positions: %+v", y.positions)
	}
	if len(z.positions) != 0 {
		t.Error("Z view must not be moved")
	}
}

func TestEndDrag_EmptiesSelection(t *testing.T) {
	tb := newTable(t, []string{"X", "Y", "Z"})
	x, y := tb.views["X"], tb.views["Y"]
	tb.ctl.OnSingleClick(x)
	tb.ctl.OnSingleClick(y)
	before := x.redraws

	tb.ctl.OnDragStart(x, domain.Vec3{})
	x.drag(domain.Vec3{Y: 1})
	tb.ctl.OnEndDrag(x)

	if tb.ctl.SelectionLen() != 0 {
		t.Fatalf("expected empty selection, got %d", tb.ctl.SelectionLen())
	}
	if x.card.Selected || y.card.Selected {
		t.Error("dropped cards must be deselected")
	}
	if x.redraws != before+1 {
		t.Errorf("expected X redrawn once on drop, got %d", x.redraws-before)
	}
	if tb.ctl.Dragging() {
		t.Error("dragging flag should be cleared")
	}
	tb.assertSelectionInSync(t)
}

func TestEndDrag_UnselectedOriginIsRedrawn(t *testing.T) {
	tb := newTable(t, []string{"X"})
	x := tb.views["X"]

	tb.ctl.OnDragStart(x, domain.Vec3{})
	tb.ctl.OnEndDrag(x)

	if x.redraws != 1 {
		t.Errorf("expected origin redraw, got %d", x.redraws)
	}
}

func TestRightClick_StackShowsShuffleMenu(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F"}
	tb := newTable(t, ids, app.WithProjector(doubledProjector{}))
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	c := tb.views["C"]
	c.card.Position = domain.Vec3{X: 1, Y: 2}

	tb.ctl.OnRightClick(c)

	if len(tb.popup.shows) != 1 {
		t.Fatalf("expected one Show call, got %d", len(tb.popup.shows))
	}
	call := tb.popup.shows[0]
	if len(call.items) != 1 || call.items[0].Label != "Shuffle" {
		t.Fatalf("unexpected items: %+v", call.items)
	}
	if call.pos != (domain.Vec3{X: 2, Y: 4}) {
		t.Errorf("menu not at projected position: %+v", call.pos)
	}
	if tb.ctl.MenuContext() != "Deck" {
		t.Errorf("expected menu context Deck, got %q", tb.ctl.MenuContext())
	}
}

func TestRightClick_LooseCardShowsNothing(t *testing.T) {
	tb := newTable(t, []string{"A", "B", "L"})
	if err := tb.ctl.AddStack("Deck", []string{"A", "B"}); err != nil {
		t.Fatalf("add stack: %v", err)
	}

	tb.ctl.OnRightClick(tb.views["L"])

	if len(tb.popup.shows) != 0 {
		t.Errorf("expected no menu, got %d Show calls", len(tb.popup.shows))
	}
	if tb.ctl.MenuContext() != "" {
		t.Errorf("unexpected menu context %q", tb.ctl.MenuContext())
	}
}

func TestMenuItem_ShufflesStackAndHides(t *testing.T) {
	ids := []string{"A", "B", "C", "D"}
	tb := newTable(t, ids, app.WithRNG(fixedRNG{val: 0}))
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	tb.ctl.OnRightClick(tb.views["A"])

	if err := tb.ctl.InvokeMenuItem(0); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	s, _ := tb.ctl.Stack("Deck")
	if slices.Equal(s.IDs(), ids) {
		t.Errorf("expected a reordered stack, got %v", s.IDs())
	}
	if tb.popup.hides != 1 {
		t.Errorf("expected popup hidden once, got %d", tb.popup.hides)
	}
	if tb.ctl.MenuContext() != "" {
		t.Error("menu context should be cleared after invoke")
	}
	if err := tb.ctl.InvokeMenuItem(0); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestMenuCancel_NoStateChange(t *testing.T) {
	ids := []string{"A", "B"}
	tb := newTable(t, ids)
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	tb.ctl.OnSingleClick(tb.views["A"])
	tb.ctl.OnRightClick(tb.views["A"])

	for _, fn := range tb.popup.cancel {
		fn()
	}

	if tb.ctl.MenuContext() != "" {
		t.Error("menu context should be cleared")
	}
	if !tb.views["A"].card.Selected {
		t.Error("cancel must not change selection")
	}
	s, _ := tb.ctl.Stack("Deck")
	if !slices.Equal(s.IDs(), ids) {
		t.Errorf("cancel must not change stack: %v", s.IDs())
	}
}

func TestShuffleStack_Errors(t *testing.T) {
	tb := newTable(t, []string{"A", "B"})

	if err := tb.ctl.ShuffleStack("nope"); !errors.Is(err, domain.ErrStackNotFound) {
		t.Errorf("expected ErrStackNotFound, got %v", err)
	}

	if err := tb.ctl.AddStack("Deck", []string{"A", "B"}); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	s, _ := tb.ctl.Stack("Deck")
	_, _ = s.Pop()
	if err := tb.ctl.ShuffleStack("Deck"); !errors.Is(err, domain.ErrShuffleNotApplicable) {
		t.Errorf("expected ErrShuffleNotApplicable, got %v", err)
	}
	if got := s.IDs(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("no-op shuffle changed the stack: %v", got)
	}
}

func TestShuffleStack_PermutationKeepsSlots(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F"}
	tb := newTable(t, ids, app.WithRNG(fixedRNG{val: 0}))
	for i, id := range ids {
		tb.views[id].card.Position = domain.Vec3{Y: float64(i) * 0.1}
		tb.views[id].card.ZOrder = 100 + i
	}
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}

	if err := tb.ctl.ShuffleStack("Deck"); err != nil {
		t.Fatalf("shuffle: %v", err)
	}

	s, _ := tb.ctl.Stack("Deck")
	got := s.IDs()
	sorted := slices.Clone(got)
	sort.Strings(sorted)
	if !slices.Equal(sorted, ids) {
		t.Fatalf("not a permutation: %v", got)
	}
	for i, card := range s.Cards {
		if card.ZOrder != 100+i {
			t.Errorf("slot %d: expected z %d, got %d", i, 100+i, card.ZOrder)
		}
		if v := tb.views[card.ID]; len(v.positions) != 1 || v.redraws != 1 {
			t.Errorf("card %s: positions=%d redraws=%d", card.ID, len(v.positions), v.redraws)
		}
	}
	top, _ := s.Top()
	if top.ZOrder != 105 {
		t.Errorf("top card must keep the highest z, got %d", top.ZOrder)
	}
}

func TestDrawFromStack_DeckScenario(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F"}
	tb := newTable(t, ids)
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}

	card, err := tb.ctl.DrawFromStack("Deck")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if card.ID != "F" {
		t.Errorf("expected F, got %s", card.ID)
	}
	s, ok := tb.ctl.Stack("Deck")
	if !ok {
		t.Fatal("deck should still exist")
	}
	if got := s.IDs(); !slices.Equal(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("unexpected deck: %v", got)
	}
}

func TestDrawFromStack_DissolvesBelowTwo(t *testing.T) {
	tb := newTable(t, []string{"A", "B"})
	if err := tb.ctl.AddStack("Pair", []string{"A", "B"}); err != nil {
		t.Fatalf("add stack: %v", err)
	}

	card, err := tb.ctl.DrawFromStack("Pair")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if card.ID != "B" {
		t.Errorf("expected B, got %s", card.ID)
	}
	if _, ok := tb.ctl.Stack("Pair"); ok {
		t.Error("stack should be dissolved")
	}
	if _, ok := tb.ctl.StackOf(tb.views["A"].card); ok {
		t.Error("A should be loose")
	}

	tb.ctl.OnRightClick(tb.views["A"])
	if len(tb.popup.shows) != 0 {
		t.Error("loose card must not open a menu")
	}
	if _, err := tb.ctl.DrawFromStack("Pair"); !errors.Is(err, domain.ErrStackNotFound) {
		t.Errorf("expected ErrStackNotFound, got %v", err)
	}
}

func TestAddStack_Errors(t *testing.T) {
	tb := newTable(t, []string{"A", "B", "C"})

	if err := tb.ctl.AddStack("s", []string{"A"}); !errors.Is(err, domain.ErrStackTooSmall) {
		t.Errorf("expected ErrStackTooSmall, got %v", err)
	}
	if err := tb.ctl.AddStack("s", []string{"A", "Q"}); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
	if err := tb.ctl.AddStack("s", []string{"A", "B"}); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	if err := tb.ctl.AddStack("s", []string{"B", "C"}); !errors.Is(err, domain.ErrDuplicateStack) {
		t.Errorf("expected ErrDuplicateStack, got %v", err)
	}
}

func TestGroupSelection(t *testing.T) {
	tb := newTable(t, []string{"A", "B", "C", "D"}, app.WithStackIDs(func() string { return "grouped" }))
	if err := tb.ctl.AddStack("Pair", []string{"C", "D"}); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	tb.views["A"].card.Position = domain.Vec3{X: 4}
	tb.views["A"].card.ZOrder = 7
	tb.views["B"].card.ZOrder = 3
	tb.views["C"].card.ZOrder = 5
	tb.views["B"].card.Position = domain.Vec3{X: -1, Y: 2}

	if _, err := tb.ctl.GroupSelection(); !errors.Is(err, domain.ErrStackTooSmall) {
		t.Fatalf("expected ErrStackTooSmall on empty selection, got %v", err)
	}

	tb.ctl.OnSingleClick(tb.views["A"])
	tb.ctl.OnSingleClick(tb.views["B"])
	tb.ctl.OnSingleClick(tb.views["C"])

	s, err := tb.ctl.GroupSelection()
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if s.ID != "grouped" {
		t.Errorf("unexpected id %s", s.ID)
	}
	if got := s.IDs(); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Errorf("expected cards ordered by z, got %v", got)
	}
	for i, card := range s.Cards {
		if card.Position != (domain.Vec3{X: -1, Y: 2}) {
			t.Errorf("card %s not squared up: %+v", card.ID, card.Position)
		}
		if card.ZOrder != 3+i {
			t.Errorf("card %s: expected z %d, got %d", card.ID, 3+i, card.ZOrder)
		}
	}
	if tb.ctl.SelectionLen() != 0 {
		t.Error("grouping should clear the selection")
	}
	if _, ok := tb.ctl.Stack("Pair"); ok {
		t.Error("Pair lost C and should be dissolved")
	}
	tb.assertSelectionInSync(t)
}

func TestReset(t *testing.T) {
	ids := []string{"A", "B"}
	tb := newTable(t, ids)
	if err := tb.ctl.AddStack("Deck", ids); err != nil {
		t.Fatalf("add stack: %v", err)
	}
	tb.ctl.OnSingleClick(tb.views["A"])
	tb.ctl.OnRightClick(tb.views["A"])
	tb.ctl.OnDragStart(tb.views["A"], domain.Vec3{})

	tb.ctl.Reset()

	if tb.ctl.SelectionLen() != 0 || tb.ctl.Dragging() || tb.ctl.MenuContext() != "" {
		t.Error("reset should clear selection, drag and menu")
	}
	if tb.popup.hides != 1 {
		t.Errorf("expected open menu hidden, got %d hides", tb.popup.hides)
	}
	tb.assertSelectionInSync(t)
}

func TestParseDoubleClickMode(t *testing.T) {
	if m, err := app.ParseDoubleClickMode("flip_only"); err != nil || m != app.DoubleClickFlipOnly {
		t.Errorf("unexpected %q, %v", m, err)
	}
	if _, err := app.ParseDoubleClickMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
