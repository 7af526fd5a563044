package middleware // middleware holds the echo middleware shared by the /v1 routes

import (
    "context"  // context for session lookups
    "errors"   // errors.Is on token and session failures
    "net/http" // HTTP status codes for responses
    "net/url"  // query escaping for the login redirect
    "strings"  // bearer prefix handling

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/club-dining/internal/apiclient"
    "github.com/iliyamo/club-dining/internal/model"
    "github.com/iliyamo/club-dining/internal/utils"
)

// SessionStore resolves a bearer token to the user it belongs to.
type SessionStore interface {
    Restore(ctx context.Context, token string) (*model.User, error)
    Logout(ctx context.Context, token string)
}

// LoginRedirect is where a browser should go after its session ended,
// remembering the page it was on.
func LoginRedirect(from string) string {
    if from == "" {
        from = "/"
    }
    return "/login?from=" + url.QueryEscape(from)
}

// Unauthorized answers 401 with the message and the login redirect.
func Unauthorized(c echo.Context, msg string) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{
        "error":    msg,
        "redirect": LoginRedirect(c.Request().URL.RequestURI()),
    })
}

func bearerToken(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    return raw, raw != ""
}

// JWTAuth validates the bearer access token issued by the club API and
// restores the user it belongs to. When secret is empty the signature is not
// checked locally; the API remains the authority and answers 401 for forged
// tokens, which ends the session here too.
//
// On success the context carries "token" (string), "user" (*model.User),
// "user_id" (int64) and "role" (string).
func JWTAuth(secret string, sessions SessionStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearerToken(c)
            if !ok {
                return Unauthorized(c, "missing bearer token")
            }

            // Expired tokens never reach the API.
            if _, err := utils.InspectToken(raw, secret); err != nil {
                sessions.Logout(c.Request().Context(), raw)
                if errors.Is(err, utils.ErrTokenExpired) {
                    return Unauthorized(c, apiclient.ErrSessionExpired.Error())
                }
                return Unauthorized(c, "invalid token")
            }

            u, err := sessions.Restore(c.Request().Context(), raw)
            if err != nil {
                if errors.Is(err, apiclient.ErrSessionExpired) {
                    return Unauthorized(c, apiclient.ErrSessionExpired.Error())
                }
                status := apiclient.StatusOf(err)
                if status == 0 {
                    status = http.StatusBadGateway
                }
                return c.JSON(status, echo.Map{"error": apiclient.Message(err)})
            }

            c.Set("token", raw)
            c.Set("user", u)
            c.Set("user_id", u.ID)
            c.Set("role", u.Role)
            return next(c)
        }
    }
}
