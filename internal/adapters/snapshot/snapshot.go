// Package snapshot renders a table to a PNG image.
package snapshot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/randomtoy/cardtable-go/internal/domain"
)

// ErrNothingToRender is returned for an empty table.
var ErrNothingToRender = errors.New("nothing to render")

// Card size in world units and pixels per world unit.
const (
	cardWidth     = 1.0
	cardHeight    = 1.4
	pixelsPerUnit = 80.0
	padding       = 0.5
)

var (
	tableColor    = color.RGBA{R: 0x1f, G: 0x5e, B: 0x3a, A: 0xff}
	faceColor     = color.White
	backColor     = color.RGBA{R: 0x2b, G: 0x3f, B: 0x8c, A: 0xff}
	backLineColor = color.RGBA{R: 0x5a, G: 0x6f, B: 0xc0, A: 0xff}
	outlineColor  = color.Black
	selectedColor = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	redSuitColor  = color.RGBA{R: 0xc0, G: 0x1c, B: 0x28, A: 0xff}
)

// Render draws cards in z-order onto a new context.
func Render(cards []*domain.Card) (*gg.Context, error) {
	if len(cards) == 0 {
		return nil, ErrNothingToRender
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range cards {
		minX = math.Min(minX, c.Position.X)
		minY = math.Min(minY, c.Position.Y)
		maxX = math.Max(maxX, c.Position.X+cardWidth)
		maxY = math.Max(maxY, c.Position.Y+cardHeight)
	}
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	w := int(math.Round((maxX - minX) * pixelsPerUnit))
	h := int(math.Round((maxY - minY) * pixelsPerUnit))
	dc := gg.NewContext(w, h)
	dc.SetColor(tableColor)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    18,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	ordered := make([]*domain.Card, len(cards))
	copy(ordered, cards)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ZOrder < ordered[j].ZOrder })

	for _, c := range ordered {
		// World y grows upwards, image y grows downwards.
		x := (c.Position.X - minX) * pixelsPerUnit
		y := (maxY - c.Position.Y - cardHeight) * pixelsPerUnit
		drawCard(dc, c, x, y)
	}
	return dc, nil
}

// SavePNG renders cards and writes the image to path.
func SavePNG(cards []*domain.Card, path string) error {
	dc, err := Render(cards)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func drawCard(dc *gg.Context, c *domain.Card, x, y float64) {
	w := cardWidth * pixelsPerUnit
	h := cardHeight * pixelsPerUnit
	r := 0.08 * pixelsPerUnit

	if c.Face == domain.FaceUp {
		dc.SetColor(faceColor)
	} else {
		dc.SetColor(backColor)
	}
	dc.DrawRoundedRectangle(x, y, w, h, r)
	dc.Fill()

	if c.Face == domain.FaceUp {
		dc.SetColor(labelColor(c.Label))
		dc.DrawStringAnchored(c.Label, x+w/2, y+h/2, 0.5, 0.5)
	} else {
		dc.SetColor(backLineColor)
		dc.SetLineWidth(1)
		for off := 8.0; off < w+h; off += 8 {
			dc.DrawLine(x+math.Max(0, off-h), y+math.Min(off, h), x+math.Min(off, w), y+math.Max(0, off-w))
		}
		dc.Stroke()
	}

	if c.Selected {
		dc.SetColor(selectedColor)
		dc.SetLineWidth(4)
	} else {
		dc.SetColor(outlineColor)
		dc.SetLineWidth(1.5)
	}
	dc.DrawRoundedRectangle(x, y, w, h, r)
	dc.Stroke()
}

func labelColor(label string) color.Color {
	if len(label) > 0 && (label[0] == 'H' || label[0] == 'D') {
		return redSuitColor
	}
	return color.Black
}
