package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type paint int

const (
	paintTable paint = iota
	paintEdge
	paintSelectedEdge
	paintFace
	paintRedFace
	paintBack
	paintMenu
	paintMenuItem
)

var paints = map[paint]lipgloss.Style{
	paintTable:        lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	paintEdge:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	paintSelectedEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	paintFace:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	paintRedFace:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	paintBack:         lipgloss.NewStyle().Foreground(lipgloss.Color("61")),
	paintMenu:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	paintMenuItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("236")).Bold(true),
}

type cell struct {
	r rune
	p paint
}

// canvas is a fixed grid of styled runes; drawing outside is clipped.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: '·', p: paintTable}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, p: p}
}

func (c *canvas) text(x, y int, s string, p paint) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, p)
	}
}

func (c *canvas) box(x, y, w, h int, p paint, fill rune, fillPaint paint) {
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			r, rp := fill, fillPaint
			switch {
			case j == 0 && i == 0:
				r, rp = '╭', p
			case j == 0 && i == w-1:
				r, rp = '╮', p
			case j == h-1 && i == 0:
				r, rp = '╰', p
			case j == h-1 && i == w-1:
				r, rp = '╯', p
			case j == 0 || j == h-1:
				r, rp = '─', p
			case i == 0 || i == w-1:
				r, rp = '│', p
			}
			c.set(x+i, y+j, r, rp)
		}
	}
}

// String renders runs of equally painted cells with one style call each.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].p == row[start].p {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.r)
			}
			b.WriteString(paints[row[start].p].Render(run.String()))
			start = x
		}
	}
	return b.String()
}

// drawOrder sorts views bottom to top.
func drawOrder(views []*cardView) []*cardView {
	out := make([]*cardView, len(views))
	copy(out, views)
	sort.SliceStable(out, func(i, j int) bool { return out[j].above(out[i]) })
	return out
}

func drawCard(c *canvas, g Grid, v *cardView) {
	x, y := g.Cell(v.pos)
	edge := paintEdge
	if v.selected {
		edge = paintSelectedEdge
	}
	if !v.faceUp {
		c.box(x, y, cardCols, cardRows, edge, '░', paintBack)
		return
	}
	c.box(x, y, cardCols, cardRows, edge, ' ', paintFace)
	label := v.card.Label
	if len(label) > cardCols-2 {
		label = label[:cardCols-2]
	}
	face := paintFace
	if strings.HasPrefix(label, "H") || strings.HasPrefix(label, "D") {
		face = paintRedFace
	}
	c.text(x+1, y+1, label, face)
	c.text(x+cardCols-1-len(label), y+cardRows-2, label, face)
}

func drawMenu(c *canvas, p *popupMenu) {
	if !p.visible {
		return
	}
	w, h := p.width(), p.height()
	c.box(p.col, p.row, w, h, paintMenu, ' ', paintMenu)
	for i, it := range p.items {
		c.text(p.col+2, p.row+1+i, it.Label, paintMenuItem)
	}
}
