package handler // HTTP handlers for the /v1 dining console API

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/apiclient"
)

// Health reports that this process is up. It never calls the club API.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// HealthHandler checks the club API on behalf of monitoring.
type HealthHandler struct {
	API *apiclient.Client
}

func NewHealthHandler(api *apiclient.Client) *HealthHandler {
	if api == nil {
		panic("nil api client passed to NewHealthHandler")
	}
	return &HealthHandler{API: api}
}

// Upstream handles GET /v1/health/upstream and relays /api/health.
func (h *HealthHandler) Upstream(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	body, err := h.API.Health(ctx)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"status": "down", "error": apiclient.Message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "up", "upstream": body})
}
