package handler // HTTP handlers for the order-management API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/middleware"
)

// caller returns the validated identity placed in the context by the
// JWT middleware. The error is an *echo.HTTPError so the handler can
// return it directly and echo writes the 401; replying here would let
// the handler run on with a zero identity.
func caller(c echo.Context) (auth.Identity, error) {
	id, ok := middleware.Caller(c)
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

// pathID parses the numeric :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// guardReply translates an access-guard decision into a response.
// Wrong-owner reads come back as 404 so other tenants' ids stay
// unconfirmed; role failures are plain 403.
func guardReply(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
