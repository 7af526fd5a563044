package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/booking"
	"github.com/iliyamo/club-dining/internal/middleware"
)

// evicter forgets a cached session.
type evicter interface {
	Logout(ctx context.Context, token string)
}

// fail writes err as {"error": msg}. A 401 from the API also clears the
// cached session and tells the browser where to log in again.
func fail(c echo.Context, sessions evicter, err error, fallback string) error {
	if errors.Is(err, apiclient.ErrSessionExpired) {
		if sessions != nil {
			sessions.Logout(c.Request().Context(), middleware.Token(c))
		}
		return middleware.Unauthorized(c, apiclient.ErrSessionExpired.Error())
	}
	return c.JSON(statusFor(err), echo.Map{"error": apiclient.MessageOr(err, fallback)})
}

func statusFor(err error) int {
	var verr *booking.ValidationError
	var pf *booking.PartialFailure
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pf):
		return http.StatusBadGateway
	case errors.Is(err, booking.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, apiclient.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, apiclient.ErrUnexpectedShape):
		return http.StatusBadGateway
	}
	if s := apiclient.StatusOf(err); s != 0 {
		return s
	}
	return http.StatusInternalServerError
}

// idParam reads a positive integer path parameter.
func idParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
