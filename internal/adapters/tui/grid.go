package tui

import (
	"math"

	"github.com/randomtoy/cardtable-go/internal/domain"
)

// Grid maps world coordinates onto terminal cells. World y grows
// upwards, rows grow downwards.
type Grid struct {
	Left, Top   float64 // world coordinates of cell (0, 0)
	ColsPerUnit float64
	RowsPerUnit float64
}

// DefaultGrid fits the embedded layouts into an 80x24 terminal.
func DefaultGrid() Grid {
	return Grid{Left: -3, Top: 2, ColsPerUnit: 10, RowsPerUnit: 4}
}

// WorldToScreen returns the cell of pos as X (column) and Y (row).
func (g Grid) WorldToScreen(pos domain.Vec3) domain.Vec3 {
	return domain.Vec3{
		X: math.Round((pos.X - g.Left) * g.ColsPerUnit),
		Y: math.Round((g.Top - pos.Y) * g.RowsPerUnit),
	}
}

// Cell is WorldToScreen as integers.
func (g Grid) Cell(pos domain.Vec3) (col, row int) {
	s := g.WorldToScreen(pos)
	return int(s.X), int(s.Y)
}

// Delta converts a move of dx columns and dy rows into world units.
func (g Grid) Delta(dx, dy int) domain.Vec3 {
	return domain.Vec3{
		X: float64(dx) / g.ColsPerUnit,
		Y: -float64(dy) / g.RowsPerUnit,
	}
}
