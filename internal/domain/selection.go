package domain

// SelectionSet holds the currently selected cards in selection order.
// Membership and Card.Selected are always changed together.
type SelectionSet struct {
	cards []*Card
	index map[*Card]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{index: make(map[*Card]struct{})}
}

// Select marks c selected and adds it. It is a no-op for members.
func (s *SelectionSet) Select(c *Card) {
	c.Selected = true
	if _, ok := s.index[c]; ok {
		return
	}
	s.index[c] = struct{}{}
	s.cards = append(s.cards, c)
}

// Deselect clears c's flag and removes it.
func (s *SelectionSet) Deselect(c *Card) {
	c.Selected = false
	if _, ok := s.index[c]; !ok {
		return
	}
	delete(s.index, c)
	for i, sc := range s.cards {
		if sc == c {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			break
		}
	}
}

// Toggle flips c's selection and returns the new state.
func (s *SelectionSet) Toggle(c *Card) bool {
	if c.Selected {
		s.Deselect(c)
		return false
	}
	s.Select(c)
	return true
}

func (s *SelectionSet) Contains(c *Card) bool {
	_, ok := s.index[c]
	return ok
}

func (s *SelectionSet) Len() int { return len(s.cards) }

// Snapshot returns a copy of the members that stays valid while the
// set is mutated.
func (s *SelectionSet) Snapshot() []*Card {
	out := make([]*Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Clear deselects every member.
func (s *SelectionSet) Clear() {
	for _, c := range s.Snapshot() {
		s.Deselect(c)
	}
}
