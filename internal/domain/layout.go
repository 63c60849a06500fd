package domain

import "strings"

// CardSpec describes one card of an initial deal.
type CardSpec struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Location string    `json:"location"`
	Face     FaceState `json:"face"`
	Position Vec3      `json:"position"`
	ZOrder   int       `json:"z_order"`
}

// StackSpec groups already-declared cards into a stack, bottom to top.
type StackSpec struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
}

// Layout is the starting arrangement of a table.
type Layout struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Cards  []CardSpec  `json:"cards"`
	Stacks []StackSpec `json:"stacks"`
}

// NewCard builds a fresh, unselected card from spec.
func (cs CardSpec) NewCard() *Card {
	face := cs.Face
	if face == "" {
		face = FaceDown
	}
	return &Card{
		ID:       cs.ID,
		Label:    cs.Label,
		Location: cs.Location,
		Face:     face,
		Position: cs.Position,
		ZOrder:   cs.ZOrder,
	}
}

// RowLayout deals ids in a row starting at start, spacing apart on X,
// alternating face up and face down, with z-order decreasing to the
// right. Labels are the ids without underscores.
func RowLayout(id string, ids []string, start Vec3, spacing float64) Layout {
	l := Layout{ID: id, Name: id, Cards: make([]CardSpec, len(ids))}
	for i, cid := range ids {
		face := FaceUp
		if i%2 == 1 {
			face = FaceDown
		}
		l.Cards[i] = CardSpec{
			ID:       cid,
			Label:    strings.ReplaceAll(cid, "_", ""),
			Location: "TABLE",
			Face:     face,
			Position: start.Add(Vec3{X: float64(i) * spacing}),
			ZOrder:   10 - i,
		}
	}
	return l
}
