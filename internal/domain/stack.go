package domain

// MinStackSize is the number of cards below which a stack dissolves.
const MinStackSize = 2

// CardStack is an ordered pile of cards. The last element is the top.
type CardStack struct {
	ID    string
	Cards []*Card
}

func NewCardStack(id string, cards []*Card) *CardStack {
	s := &CardStack{ID: id, Cards: make([]*Card, 0, len(cards))}
	s.Cards = append(s.Cards, cards...)
	return s
}

// Push places c on top of the stack.
func (s *CardStack) Push(c *Card) {
	s.Cards = append(s.Cards, c)
}

// Pop removes and returns the top card. On an empty stack it returns
// ErrEmptyStack and leaves the stack untouched.
func (s *CardStack) Pop() (*Card, error) {
	if len(s.Cards) == 0 {
		return nil, ErrEmptyStack
	}
	top := len(s.Cards) - 1
	c := s.Cards[top]
	s.Cards[top] = nil
	s.Cards = s.Cards[:top]
	return c, nil
}

// Top returns the top card without removing it.
func (s *CardStack) Top() (*Card, bool) {
	if len(s.Cards) == 0 {
		return nil, false
	}
	return s.Cards[len(s.Cards)-1], true
}

func (s *CardStack) Len() int { return len(s.Cards) }

// Contains reports whether c (by identity) is in the stack.
func (s *CardStack) Contains(c *Card) bool {
	return s.indexOf(c) >= 0
}

// Remove takes c out of the stack wherever it sits.
func (s *CardStack) Remove(c *Card) bool {
	i := s.indexOf(c)
	if i < 0 {
		return false
	}
	s.Cards = append(s.Cards[:i], s.Cards[i+1:]...)
	return true
}

// Dissolved reports whether the stack has fallen below MinStackSize.
func (s *CardStack) Dissolved() bool {
	return len(s.Cards) < MinStackSize
}

// Shuffle permutes the cards in place with a Fisher-Yates shuffle.
func (s *CardStack) Shuffle(rng RNG) {
	for i := len(s.Cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	}
}

// IDs returns the card ids bottom to top.
func (s *CardStack) IDs() []string {
	ids := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		ids[i] = c.ID
	}
	return ids
}

func (s *CardStack) indexOf(c *Card) int {
	for i, sc := range s.Cards {
		if sc == c {
			return i
		}
	}
	return -1
}
