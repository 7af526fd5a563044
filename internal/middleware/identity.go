package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/club-dining/internal/model"
    "github.com/iliyamo/club-dining/internal/utils"
)

// CurrentUser returns the user restored by JWTAuth, or nil.
func CurrentUser(c echo.Context) *model.User {
    u, _ := c.Get("user").(*model.User)
    return u
}

// Token returns the bearer token accepted by JWTAuth, or "".
func Token(c echo.Context) string {
    t, _ := c.Get("token").(string)
    return t
}

// userID identifies the caller for rate limiting. Before JWTAuth has run the
// bearer token stands in for the user; without one the caller is "anon".
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case int64:
        return strconv.FormatInt(v, 10)
    case string:
        if v != "" {
            return v
        }
    }
    if raw, ok := bearerToken(c); ok {
        return "t" + utils.HashToken(raw)[:16]
    }
    return "anon"
}
