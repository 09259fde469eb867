package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
)

// AuthHandler exposes the four session endpoints over the
// SessionService: register, authenticate, authenticate-supplier and
// refresh. Everything else in the API consumes the tokens these mint.
type AuthHandler struct {
	Sessions *auth.SessionService
}

func NewAuthHandler(s *auth.SessionService) *AuthHandler {
	return &AuthHandler{Sessions: s}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	// A client-supplied role is deliberately not bound: registration
	// can only create admins.
}

type tokenReq struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type tokenResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       uint64 `json:"userId"`
}

const dbTimeout = 5 * time.Second

// Register creates an admin account. Tokens are not issued here; the
// client authenticates afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	_, err := h.Sessions.Register(ctx, auth.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "User registered successfully."})
	case errors.Is(err, auth.ErrDuplicateEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
	}
}

// Authenticate logs an admin in.
func (h *AuthHandler) Authenticate(c echo.Context) error {
	return h.authenticate(c, auth.RoleAdmin)
}

// AuthenticateSupplier logs a supplier in against the supplier pool.
func (h *AuthHandler) AuthenticateSupplier(c echo.Context) error {
	return h.authenticate(c, auth.RoleSupplier)
}

func (h *AuthHandler) authenticate(c echo.Context, role string) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	pair, err := h.Sessions.Authenticate(ctx, req.Email, req.Password, role)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, tokenResp{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			UserID:       pair.UserID,
		})
	case errors.Is(err, auth.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials."})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "authentication failed"})
	}
}

// Refresh trades an expired access token plus a live refresh token
// for a new pair. Both invalid-signature and refresh mismatch are
// client errors.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil || req.AccessToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid token data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	pair, err := h.Sessions.Refresh(ctx, req.AccessToken, req.RefreshToken)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, tokenResp{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			UserID:       pair.UserID,
		})
	case errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid token."})
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid refresh token."})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "refresh failed"})
	}
}
