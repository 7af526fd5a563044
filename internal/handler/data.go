package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/dataset"
	"github.com/iliyamo/club-dining/internal/middleware"
	"github.com/iliyamo/club-dining/internal/session"
)

// DataHandler serves the per-user snapshot every screen starts from.
type DataHandler struct {
	Sessions *session.Manager
	Data     *dataset.Loader
}

func NewDataHandler(s *session.Manager, d *dataset.Loader) *DataHandler {
	if s == nil || d == nil {
		panic("nil dependency passed to NewDataHandler")
	}
	return &DataHandler{Sessions: s, Data: d}
}

// Get handles GET /v1/data. Collections that failed upstream come back empty
// and are listed under "failures".
func (h *DataHandler) Get(c echo.Context) error {
	u := middleware.CurrentUser(c)
	snap, err := h.Data.Load(c.Request().Context(), h.Sessions.Client(middleware.Token(c)), u.ID)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load data")
	}
	return c.JSON(http.StatusOK, dataResponse(snap))
}

// Refresh handles POST /v1/data/refresh.
func (h *DataHandler) Refresh(c echo.Context) error {
	u := middleware.CurrentUser(c)
	snap, err := h.Data.Refresh(c.Request().Context(), h.Sessions.Client(middleware.Token(c)), u.ID)
	if err != nil {
		return fail(c, h.Sessions, err, "Failed to load data")
	}
	return c.JSON(http.StatusOK, dataResponse(snap))
}

func dataResponse(s *dataset.Snapshot) echo.Map {
	return echo.Map{
		"reservations":   s.Reservations,
		"menu_items":     s.MenuItems,
		"dining_rooms":   s.DiningRooms,
		"tables":         s.Tables,
		"members":        s.Members,
		"max_party_size": s.MaxPartySize(),
		"failures":       s.Failures,
		"fetched_at":     s.FetchedAt,
	}
}
