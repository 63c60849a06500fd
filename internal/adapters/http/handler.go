package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/cardtable-go/internal/app"
	"github.com/randomtoy/cardtable-go/internal/domain"
	"github.com/randomtoy/cardtable-go/internal/ports"
)

// Handler exposes one shared table over HTTP. Clients post classified
// gestures and read back what every view should show. Requests are
// serialized.
type Handler struct {
	svc    *app.TableService
	opts   []app.Option
	logger *slog.Logger

	mu       sync.Mutex
	layoutID string
	ctl      *app.InteractionController
	views    []*remoteView
	byID     map[string]*remoteView
	popup    *remotePopup
}

// NewHandler deals layoutID and returns a handler serving it.
func NewHandler(ctx context.Context, svc *app.TableService, layoutID string, logger *slog.Logger, opts ...app.Option) (*Handler, error) {
	h := &Handler{svc: svc, opts: opts, logger: logger}
	if err := h.deal(ctx, layoutID); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.GET("/table", h.GetTable)
	v1.POST("/table/deal", h.Deal)
	v1.POST("/table/reset", h.Reset)
	v1.POST("/cards/:id/events", h.PostEvent)
	v1.GET("/menu", h.GetMenu)
	v1.POST("/menu/items/:index", h.InvokeMenuItem)
	v1.POST("/menu/cancel", h.CancelMenu)
	v1.POST("/stacks/:id/shuffle", h.Shuffle)
	v1.POST("/stacks/:id/draw", h.Draw)
	v1.POST("/selection/group", h.GroupSelection)
	v1.POST("/selection/clear", h.ClearSelection)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetTable(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.table())
}

// Deal replaces the table with a fresh deal of ?layout=, or of the
// current layout.
func (h *Handler) Deal(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	layoutID := c.QueryParam("layout")
	if layoutID == "" {
		layoutID = h.layoutID
	}
	if err := h.deal(c.Request().Context(), layoutID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) Reset(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctl.Reset()
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) PostEvent(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event body"})
	}
	kind, err := req.kind()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.byID[c.Param("id")]
	if !ok {
		return h.mapError(c, domain.ErrCardNotFound)
	}
	v.emit(kind, req.vec())
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) GetMenu(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.menu())
}

func (h *Handler) InvokeMenuItem(c echo.Context) error {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index must be an integer"})
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctl.InvokeMenuItem(i); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) CancelMenu(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.popup.dismiss()
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) Shuffle(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctl.ShuffleStack(c.Param("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.table())
}

func (h *Handler) Draw(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := c.Param("id")
	card, err := h.ctl.DrawFromStack(id)
	if err != nil {
		return h.mapError(c, err)
	}
	_, stillThere := h.ctl.Stack(id)
	return c.JSON(http.StatusOK, DrawResponse{
		Card:      h.cardResponse(h.byID[card.ID]),
		Dissolved: !stillThere,
	})
}

func (h *Handler) GroupSelection(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.ctl.GroupSelection()
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toStackResponse(s))
}

func (h *Handler) ClearSelection(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctl.ClearSelection()
	return c.JSON(http.StatusOK, h.table())
}

// deal must be called with mu held, or before the handler is shared.
func (h *Handler) deal(ctx context.Context, layoutID string) error {
	var views []*remoteView
	popup := &remotePopup{}
	newView := func(card *domain.Card) ports.CardView {
		v := newRemoteView(card)
		views = append(views, v)
		return v
	}

	ctl, err := h.svc.Deal(ctx, layoutID, newView, popup, h.opts...)
	if err != nil {
		return err
	}

	h.layoutID = layoutID
	h.ctl = ctl
	h.views = views
	h.popup = popup
	h.byID = make(map[string]*remoteView, len(views))
	for _, v := range views {
		h.byID[v.card.ID] = v
	}
	return nil
}

func (h *Handler) table() TableResponse {
	cards := make([]CardResponse, len(h.views))
	for i, v := range h.views {
		cards[i] = h.cardResponse(v)
	}

	stacks := h.ctl.Stacks()
	sr := make([]StackResponse, len(stacks))
	for i, s := range stacks {
		sr[i] = toStackResponse(s)
	}

	sel := h.ctl.Selection()
	ids := make([]string, len(sel))
	for i, card := range sel {
		ids[i] = card.ID
	}

	return TableResponse{
		Layout:    h.layoutID,
		Cards:     cards,
		Stacks:    sr,
		Selection: ids,
		Dragging:  h.ctl.Dragging(),
		Menu:      h.menu(),
	}
}

func (h *Handler) cardResponse(v *remoteView) CardResponse {
	return CardResponse{
		Card: *v.card,
		View: ViewResponse{
			Position: v.pos,
			Depth:    v.depth,
			Front:    v.front,
			Selected: v.selected,
			Face:     v.face,
		},
	}
}

func (h *Handler) menu() MenuResponse {
	labels := make([]string, len(h.popup.items))
	for i, it := range h.popup.items {
		labels[i] = it.Label
	}
	return MenuResponse{
		Visible:  h.popup.visible,
		StackID:  h.ctl.MenuContext(),
		Items:    labels,
		Position: h.popup.pos,
	}
}

func toStackResponse(s *domain.CardStack) StackResponse {
	r := StackResponse{ID: s.ID, Cards: s.IDs()}
	if top, ok := s.Top(); ok {
		r.Top = top.ID
	}
	return r
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrStackNotFound),
		errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrLayoutNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyStack),
		errors.Is(err, domain.ErrShuffleNotApplicable),
		errors.Is(err, domain.ErrStackTooSmall),
		errors.Is(err, domain.ErrDuplicateStack),
		errors.Is(err, domain.ErrNotStackMember):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
