package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/middleware"
	"github.com/iliyamo/club-dining/internal/session"
)

// AuthHandler signs members in and out through the club API.
type AuthHandler struct {
	Sessions *session.Manager
	API      *apiclient.Client
}

func NewAuthHandler(s *session.Manager, api *apiclient.Client) *AuthHandler {
	if s == nil || api == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Sessions: s, API: api}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login handles POST /v1/auth/login. It returns the API's access token and
// the resolved user.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	s, err := h.Sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrCredentialsRequired) {
			return badRequest(c, "email/password required")
		}
		// A 401 here means wrong credentials, not an expired session.
		if apiclient.StatusOf(err) == http.StatusUnauthorized {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": apiclient.MessageOr(err, "Invalid email or password")})
		}
		return fail(c, nil, err, "Login failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": s.Token, "user": s.User})
}

// Register handles POST /v1/auth/register and signs the new member in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}
	ctx := c.Request().Context()
	if _, err := h.API.Register(ctx, apiclient.RegisterRequest{Email: req.Email, Password: req.Password, Name: strings.TrimSpace(req.Name)}); err != nil {
		return fail(c, nil, err, "Registration failed")
	}
	s, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, nil, err, "Login failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"access_token": s.Token, "user": s.User})
}

// Logout handles POST /v1/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if tok := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); tok != "" && tok != auth {
		h.Sessions.Logout(c.Request().Context(), tok)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"user": u, "is_staff": u.IsStaff()})
}
