package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterMember registers the routes of the member screens. g already runs
// JWTAuth, so every handler can rely on the restored user.
func RegisterMember(g *echo.Group, d Deps) {
	g.GET("/me", d.Auth.Me)
	g.GET("/data", d.Data.Get)
	g.POST("/data/refresh", d.Data.Refresh)

	r := d.Reservations
	g.GET("/reservations", r.List)
	g.POST("/reservations", r.Create)
	g.GET("/reservations/:id", r.Get)
	g.POST("/reservations/:id/confirm", r.Confirm)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.POST("/reservations/:id/restore", r.Restore)
	g.POST("/reservations/:id/messages", r.PostMessage)
	g.POST("/reservations/:id/fire-all", r.FireAll)

	g.POST("/orders", r.OpenOrder)
	g.POST("/orders/:id/items", r.AddItem)
	g.DELETE("/order-items/:id", r.RemoveItem)
	g.POST("/orders/:id/fire", r.Fire)
	g.GET("/orders/:id/chit", r.Chit)
}
