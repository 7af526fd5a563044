package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/booking"
	"github.com/iliyamo/club-dining/internal/dataset"
	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/middleware"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/progress"
	"github.com/iliyamo/club-dining/internal/session"
)

// AdminHandler serves the staff console: the daily board, seating and the
// kitchen queue. Routes are behind RequireStaff.
type AdminHandler struct {
	Sessions *session.Manager
	Data     *dataset.Loader
	Booking  *booking.Service
}

func NewAdminHandler(s *session.Manager, d *dataset.Loader, b *booking.Service) *AdminHandler {
	if s == nil || d == nil || b == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Sessions: s, Data: d, Booking: b}
}

func (h *AdminHandler) api(c echo.Context) *apiclient.Client {
	return h.Sessions.Client(middleware.Token(c))
}

// invalidateAll retires every user's snapshot; staff writes affect members.
func (h *AdminHandler) invalidateAll(c echo.Context) {
	if err := h.Data.InvalidateAll(c.Request().Context()); err != nil {
		log.Printf("admin: invalidate failed: %v", err)
	}
}

type dailyRow struct {
	model.AdminRow
	TimeLabel string          `json:"time_label"`
	Progress  progress.Result `json:"progress"`
	Bar       string          `json:"bar"`
}

func dateQuery(c echo.Context) (string, bool) {
	date := c.QueryParam("date")
	if date == "" {
		return time.Now().Format(time.DateOnly), true
	}
	_, err := time.Parse(time.DateOnly, date)
	return date, err == nil
}

// Daily handles GET /v1/admin/daily?date=. Seat assignments are fetched
// alongside the board; when they fail the board still renders from what the
// rows carry.
func (h *AdminHandler) Daily(c echo.Context) error {
	date, ok := dateQuery(c)
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	api := h.api(c)

	var (
		rows  []model.AdminRow
		seats []model.SeatAssignment
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		rows, err = api.AdminDaily(ctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		if seats, err = api.AdminSeatAssignments(ctx, date); err != nil {
			log.Printf("admin: seat assignments for %s failed: %v", date, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fail(c, h.Sessions, err, "Failed to load daily board")
	}

	out := make([]dailyRow, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		p := progress.Compute(&row.Reservation, row, nil, booking.FindAssignment(seats, row.Reservation.ID))
		out = append(out, dailyRow{
			AdminRow:  *row,
			TimeLabel: format.Time(row.Reservation.StartTime),
			Progress:  p,
			Bar:       progress.Bar(p),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "rows": out})
}

type seatReq struct {
	TableID int64  `json:"table_id"`
	Date    string `json:"date"`
}

// Seat handles POST /v1/admin/reservations/:id/seat. An existing assignment
// for the date is moved to the new table.
func (h *AdminHandler) Seat(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()
	api := h.api(c)

	// Without a date the party is seated for its reservation date.
	if req.Date == "" {
		res, err := api.GetReservation(ctx, id)
		if err != nil {
			return fail(c, h.Sessions, err, "Failed to load reservation")
		}
		req.Date = res.Date
	}
	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	existing, err := api.AdminSeatAssignments(ctx, req.Date)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load seating")
	}
	sa, err := h.Booking.AssignTable(ctx, api, id, req.TableID, req.Date, booking.FindAssignment(existing, id))
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to assign table")
	}
	h.invalidateAll(c)
	return c.JSON(http.StatusOK, sa)
}

// Unseat handles DELETE /v1/admin/reservations/:id/seat?date=.
func (h *AdminHandler) Unseat(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	date, ok := dateQuery(c)
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	ctx := c.Request().Context()
	api := h.api(c)

	existing, err := api.AdminSeatAssignments(ctx, date)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load seating")
	}
	sa := booking.FindAssignment(existing, id)
	if sa == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation is not seated"})
	}
	if err := h.Booking.Unassign(ctx, api, sa); err != nil {
		return fail(c, h.Sessions, err, "Failed to unassign table")
	}
	h.invalidateAll(c)
	return c.NoContent(http.StatusNoContent)
}

// Fulfill handles POST /v1/admin/orders/:id/fulfill.
func (h *AdminHandler) Fulfill(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Booking.Fulfill(c.Request().Context(), h.api(c), id)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to fulfill order")
	}
	h.invalidateAll(c)
	return c.JSON(http.StatusOK, o)
}

// FiredOrders handles GET /v1/admin/orders/fired, the kitchen queue.
func (h *AdminHandler) FiredOrders(c echo.Context) error {
	orders, err := h.api(c).AdminOrders(c.Request().Context(), model.OrderFired)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load orders")
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

type statusReq struct {
	Status string `json:"status"`
}

// SetStatus handles POST /v1/admin/reservations/:id/status for any member's
// reservation.
func (h *AdminHandler) SetStatus(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.Booking.AdminSetStatus(c.Request().Context(), h.api(c), middleware.CurrentUser(c).ID, id, req.Status)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to update reservation")
	}
	h.invalidateAll(c)
	return c.JSON(http.StatusOK, echo.Map{"reservation": res, "message": booking.StatusMessage(res.Status)})
}

// DeleteReservation handles DELETE /v1/admin/reservations/:id.
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	if err := h.api(c).DeleteReservation(c.Request().Context(), id); err != nil {
		return fail(c, h.Sessions, err, "Failed to delete reservation")
	}
	h.invalidateAll(c)
	return c.NoContent(http.StatusNoContent)
}

// Attendees handles GET /v1/admin/reservations/:id/attendees.
func (h *AdminHandler) Attendees(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	list, err := h.api(c).AdminAttendees(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load attendees")
	}
	out := make([]attendeeView, 0, len(list))
	for _, a := range list {
		out = append(out, viewAttendee(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"attendees": out})
}

// RemoveAttendee handles DELETE /v1/admin/attendees/:id.
func (h *AdminHandler) RemoveAttendee(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid attendee id")
	}
	if err := h.api(c).AdminDeleteAttendee(c.Request().Context(), id); err != nil {
		return fail(c, h.Sessions, err, "Failed to remove attendee")
	}
	h.invalidateAll(c)
	return c.NoContent(http.StatusNoContent)
}
