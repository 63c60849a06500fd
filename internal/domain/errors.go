package domain

import "errors"

var (
	ErrEmptyStack           = errors.New("stack is empty")
	ErrStackNotFound        = errors.New("stack not found")
	ErrNotStackMember       = errors.New("card is not part of a stack")
	ErrShuffleNotApplicable = errors.New("stack not shuffleable")
	ErrStackTooSmall        = errors.New("a stack needs at least 2 cards")
	ErrDuplicateStack       = errors.New("stack id already registered")
	ErrCardNotFound         = errors.New("card not found")
	ErrLayoutNotFound       = errors.New("layout not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
)
