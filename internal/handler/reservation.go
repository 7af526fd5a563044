package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/booking"
	"github.com/iliyamo/club-dining/internal/dataset"
	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/middleware"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/progress"
	"github.com/iliyamo/club-dining/internal/session"
)

// ReservationHandler serves the member reservation screens: list, booking,
// detail, status changes and ordering. All methods assume JWTAuth ran.
type ReservationHandler struct {
	Sessions *session.Manager
	Data     *dataset.Loader
	Booking  *booking.Service
}

func NewReservationHandler(s *session.Manager, d *dataset.Loader, b *booking.Service) *ReservationHandler {
	if s == nil || d == nil || b == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Sessions: s, Data: d, Booking: b}
}

func (h *ReservationHandler) api(c echo.Context) *apiclient.Client {
	return h.Sessions.Client(middleware.Token(c))
}

func (h *ReservationHandler) fail(c echo.Context, err error, fallback string) error {
	return fail(c, h.Sessions, err, fallback)
}

// invalidate drops the caller's snapshot after a write.
func (h *ReservationHandler) invalidate(c echo.Context) {
	h.Data.Invalidate(c.Request().Context(), middleware.CurrentUser(c).ID)
}

type reservationRow struct {
	Reservation model.Reservation `json:"reservation"`
	TimeLabel   string            `json:"time_label"`
	Progress    progress.Result   `json:"progress"`
	Bar         string            `json:"bar"`
}

// List handles GET /v1/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	u := middleware.CurrentUser(c)
	snap, err := h.Data.Load(c.Request().Context(), h.api(c), u.ID)
	if err != nil {
		return h.fail(c, err, "Failed to load reservations")
	}
	if msg, failed := snap.Failures[dataset.Reservations]; failed {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msg})
	}
	rows := make([]reservationRow, 0, len(snap.Reservations))
	for i := range snap.Reservations {
		r := &snap.Reservations[i]
		p := progress.Compute(r, nil, nil, r.SeatAssignment)
		rows = append(rows, reservationRow{Reservation: *r, TimeLabel: format.Time(r.StartTime), Progress: p, Bar: progress.Bar(p)})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": rows})
}

// Create handles POST /v1/reservations: the booking form.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req booking.Request
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()
	u := middleware.CurrentUser(c)
	api := h.api(c)

	snap, err := h.Data.Load(ctx, api, u.ID)
	if err != nil {
		return h.fail(c, err, "Failed to create reservation")
	}
	lim := booking.Limits{MaxPartySize: snap.MaxPartySize()}
	if _, failed := snap.Failures[dataset.DiningRooms]; !failed {
		lim.Rooms = append([]model.DiningRoom{}, snap.DiningRooms...)
	}

	res, err := h.Booking.Create(ctx, api, u.ID, req, lim)
	if err != nil {
		return h.fail(c, err, "Failed to create reservation")
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": res,
		"message":     booking.CreatedMessage(res.Status == model.ReservationConfirmed),
	})
}

type attendeeView struct {
	model.Attendee
	Name          string   `json:"name"`
	DietaryLabels []string `json:"dietary_labels"`
}

func viewAttendee(a model.Attendee) attendeeView {
	v := attendeeView{Attendee: a, Name: a.DisplayName(), DietaryLabels: []string{}}
	for _, d := range a.DietaryRestrictions {
		v.DietaryLabels = append(v.DietaryLabels, model.DietaryLabel(d))
	}
	return v
}

type orderView struct {
	model.Order
	Attendee string            `json:"attendee"`
	Items    []model.OrderItem `json:"items"`
	Total    string            `json:"total"`
	Locked   bool              `json:"locked"`
}

func detailResponse(b *model.Bootstrap) echo.Map {
	names := make(map[int64]string, len(b.Attendees))
	attendees := make([]attendeeView, 0, len(b.Attendees))
	for _, a := range b.Attendees {
		v := viewAttendee(a)
		names[a.ID] = v.Name
		attendees = append(attendees, v)
	}

	orders := make([]orderView, 0, len(b.Orders))
	for _, o := range b.Orders {
		items := b.ItemsFor(o.ID)
		total, ok := b.OrderTotals[o.ID]
		if !ok {
			for _, it := range items {
				total += it.PriceCents * int64(max(it.Quantity, 1))
			}
		}
		if items == nil {
			items = []model.OrderItem{}
		}
		orders = append(orders, orderView{
			Order:    o,
			Attendee: names[o.AttendeeID],
			Items:    items,
			Total:    format.Price(total),
			Locked:   o.FiredOrFulfilled(),
		})
	}

	p := progress.Compute(b.Reservation, nil, b, b.SeatAssignment)
	resp := echo.Map{
		"reservation": b.Reservation,
		"attendees":   attendees,
		"orders":      orders,
		"messages":    b.Messages,
		"total":       format.Price(b.ReservationTotal),
		"progress":    p,
		"view":        progress.Render(p),
		"bar":         progress.Bar(p),
		"can_fire":    len(booking.Unfired(b)) > 0,
	}
	if b.Reservation != nil {
		resp["time_label"] = format.Time(b.Reservation.StartTime)
	}
	return resp
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	b, err := h.api(c).Bootstrap(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to load reservation")
	}
	return c.JSON(http.StatusOK, detailResponse(b))
}

type statusChange func(ctx context.Context, api *apiclient.Client, userID, id int64) (*model.Reservation, error)

func (h *ReservationHandler) setStatus(c echo.Context, change statusChange) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	u := middleware.CurrentUser(c)
	res, err := change(c.Request().Context(), h.api(c), u.ID, id)
	if err != nil {
		return h.fail(c, err, "Failed to update reservation")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"reservation": res, "message": booking.StatusMessage(res.Status)})
}

// Confirm handles POST /v1/reservations/:id/confirm.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	return h.setStatus(c, h.Booking.Confirm)
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.setStatus(c, h.Booking.Cancel)
}

// Restore handles POST /v1/reservations/:id/restore, back to draft.
func (h *ReservationHandler) Restore(c echo.Context) error {
	return h.setStatus(c, h.Booking.Restore)
}

type messageReq struct {
	Body string `json:"body"`
}

// PostMessage handles POST /v1/reservations/:id/messages.
func (h *ReservationHandler) PostMessage(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return badRequest(c, "message body required")
	}
	m, err := h.api(c).PostMessage(c.Request().Context(), id, body)
	if err != nil {
		return h.fail(c, err, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, m)
}

type openOrderReq struct {
	AttendeeID int64 `json:"attendee_id"`
}

// OpenOrder handles POST /v1/orders.
func (h *ReservationHandler) OpenOrder(c echo.Context) error {
	var req openOrderReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	o, err := h.Booking.OpenOrder(c.Request().Context(), h.api(c), req.AttendeeID)
	if err != nil {
		return h.fail(c, err, "Failed to start order")
	}
	return c.JSON(http.StatusCreated, o)
}

type addItemReq struct {
	MenuItemID int64 `json:"menu_item_id"`
}

// AddItem handles POST /v1/orders/:id/items.
func (h *ReservationHandler) AddItem(c echo.Context) error {
	orderID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var req addItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	item, err := h.Booking.AddItem(c.Request().Context(), h.api(c), orderID, req.MenuItemID)
	if err != nil {
		return h.fail(c, err, "Failed to add item")
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveItem handles DELETE /v1/order-items/:id.
func (h *ReservationHandler) RemoveItem(c echo.Context) error {
	itemID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid item id")
	}
	if err := h.Booking.RemoveItem(c.Request().Context(), h.api(c), itemID); err != nil {
		return h.fail(c, err, "Failed to remove item")
	}
	return c.NoContent(http.StatusNoContent)
}

// reservationQuery reads the optional ?reservation_id= used by the order
// routes to find the reservation an order belongs to.
func reservationQuery(c echo.Context) int64 {
	id, err := strconv.ParseInt(c.QueryParam("reservation_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// Fire handles POST /v1/orders/:id/fire. With ?reservation_id= the
// published kitchen event also names the attendee and items.
func (h *ReservationHandler) Fire(c echo.Context) error {
	orderID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid order id")
	}
	ctx := c.Request().Context()
	api := h.api(c)

	var b *model.Bootstrap
	if rid := reservationQuery(c); rid != 0 {
		var err error
		if b, err = api.Bootstrap(ctx, rid); err != nil {
			log.Printf("reservation: bootstrap %d for fire event failed: %v", rid, err)
		}
	}
	o, err := h.Booking.FireOrder(ctx, api, b, orderID)
	if err != nil {
		return h.fail(c, err, "Failed to fire order")
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"order": o, "message": "Order fired to kitchen"})
}

// FireAll handles POST /v1/reservations/:id/fire-all.
func (h *ReservationHandler) FireAll(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	ctx := c.Request().Context()
	api := h.api(c)

	b, err := api.Bootstrap(ctx, id)
	if err != nil {
		return h.fail(c, err, "Failed to load reservation")
	}
	n, err := h.Booking.FireAllUnfired(ctx, api, b)
	if n > 0 {
		h.invalidate(c)
	}
	if err != nil {
		return h.fail(c, err, "Failed to fire order")
	}
	return c.JSON(http.StatusOK, echo.Map{"fired": n, "message": booking.FiredMessage(n)})
}

// Chit handles GET /v1/orders/:id/chit. With ?reservation_id= the kitchen
// ticket is rendered here as plain text; otherwise the caller is sent to the
// API's printable chit.
func (h *ReservationHandler) Chit(c echo.Context) error {
	orderID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid order id")
	}
	api := h.api(c)
	rid := reservationQuery(c)
	if rid == 0 {
		return c.Redirect(http.StatusFound, api.ChitURL(orderID))
	}
	b, err := api.Bootstrap(c.Request().Context(), rid)
	if err != nil {
		return h.fail(c, err, "Failed to load reservation")
	}
	text, err := booking.Chit(b, orderID)
	if err != nil {
		return h.fail(c, err, "Order not found")
	}
	return c.String(http.StatusOK, text)
}
