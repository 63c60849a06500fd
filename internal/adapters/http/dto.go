package http

import (
	"fmt"

	"github.com/randomtoy/cardtable-go/internal/domain"
)

type eventKind string

const (
	eventSingleClick eventKind = "single_click"
	eventDoubleClick eventKind = "double_click"
	eventRightClick  eventKind = "right_click"
	eventDragStart   eventKind = "drag_start"
	eventDragging    eventKind = "dragging"
	eventEndDrag     eventKind = "end_drag"
)

// EventRequest is the body of POST /v1/cards/:id/events. X, Y and Z are
// the start position for drag_start and the move for dragging.
type EventRequest struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

func (r EventRequest) kind() (eventKind, error) {
	switch k := eventKind(r.Type); k {
	case eventSingleClick, eventDoubleClick, eventRightClick,
		eventDragStart, eventDragging, eventEndDrag:
		return k, nil
	default:
		return "", fmt.Errorf("unknown event type %q", r.Type)
	}
}

func (r EventRequest) vec() domain.Vec3 {
	return domain.Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// TableResponse is the JSON shape returned by GET /v1/table and by every
// call that changes the table.
type TableResponse struct {
	Layout    string          `json:"layout"`
	Cards     []CardResponse  `json:"cards"`
	Stacks    []StackResponse `json:"stacks"`
	Selection []string        `json:"selection"`
	Dragging  bool            `json:"dragging"`
	Menu      MenuResponse    `json:"menu"`
}

// CardResponse pairs the card state with what its view currently shows.
type CardResponse struct {
	domain.Card
	View ViewResponse `json:"view"`
}

type ViewResponse struct {
	Position domain.Vec3      `json:"position"`
	Depth    int              `json:"depth"`
	Front    bool             `json:"front"`
	Selected bool             `json:"selected"`
	Face     domain.FaceState `json:"face"`
}

type StackResponse struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
	Top   string   `json:"top"`
}

type MenuResponse struct {
	Visible  bool        `json:"visible"`
	StackID  string      `json:"stack_id,omitempty"`
	Items    []string    `json:"items"`
	Position domain.Vec3 `json:"position"`
}

type DrawResponse struct {
	Card      CardResponse `json:"card"`
	Dissolved bool         `json:"dissolved"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
