package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/handler"
	"github.com/iliyamo/club-dining/internal/middleware"
)

// Deps are the handlers and middleware the route tree is built from. Cache
// and RateLimit may be nil.
type Deps struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Menu         *handler.MenuHandler
	Data         *handler.DataHandler
	Reservations *handler.ReservationHandler
	Admin        *handler.AdminHandler

	Sessions  middleware.SessionStore
	JWTSecret string
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

func optional(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	var out []echo.MiddlewareFunc
	for _, m := range mw {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// RegisterRoutes builds the whole route tree: /healthz outside the rate
// limit, then the public, member and staff groups under /v1.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1", optional(d.RateLimit)...)
	RegisterPublic(v1, d)

	member := v1.Group("", middleware.JWTAuth(d.JWTSecret, d.Sessions))
	RegisterMember(member, d)

	staff := member.Group("/admin", middleware.RequireStaff())
	RegisterStaff(staff, d)
}

// RegisterPublic registers the routes that need no session: health of the
// club API, sign in and out, the menu and the booking time slots.
func RegisterPublic(g *echo.Group, d Deps) {
	g.GET("/health/upstream", d.Health.Upstream)

	g.POST("/auth/login", d.Auth.Login)
	g.POST("/auth/register", d.Auth.Register)
	// Logout only forgets the cached session, so an expired token may call it.
	g.POST("/auth/logout", d.Auth.Logout)

	g.GET("/menu", d.Menu.List, optional(d.Cache)...)
	g.GET("/slots", handler.Slots)
}
