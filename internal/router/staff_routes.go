package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterStaff registers the staff console under /v1/admin. g already runs
// JWTAuth and RequireStaff.
func RegisterStaff(g *echo.Group, d Deps) {
	a := d.Admin
	g.GET("/daily", a.Daily)
	g.POST("/reservations/:id/seat", a.Seat)
	g.DELETE("/reservations/:id/seat", a.Unseat)
	g.POST("/reservations/:id/status", a.SetStatus)
	g.DELETE("/reservations/:id", a.DeleteReservation)
	g.GET("/reservations/:id/attendees", a.Attendees)
	g.DELETE("/attendees/:id", a.RemoveAttendee)
	g.POST("/orders/:id/fulfill", a.Fulfill)
	g.GET("/orders/fired", a.FiredOrders)
}
