package middleware // reusable HTTP middleware shared by every protected route

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and
// handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// JWTAuth validates the Bearer access token (signature and lifetime)
// and stores the caller's identity in the request context. Absent,
// malformed or expired tokens get 401; the refresh endpoint is the
// only place an expired token is still worth something.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			claims, err := utils.DecodeToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
			}
			c.Set(CtxUserID, claims.ID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			return next(c)
		}
	}
}

// Caller rebuilds the validated identity from the context keys set by
// JWTAuth. The boolean is false when the middleware did not run.
func Caller(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	if !ok {
		return auth.Identity{}, false
	}
	role, _ := c.Get(CtxRole).(string)
	email, _ := c.Get(CtxEmail).(string)
	return auth.Identity{ID: id, Role: role, Email: email}, true
}
