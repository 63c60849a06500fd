// Package domain holds the card table state: cards, stacks, the
// selection set and the layouts a table is dealt from. It has no
// knowledge of how cards are drawn.
package domain
