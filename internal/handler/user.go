package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/config"
	"github.com/jitsupply/order-api/internal/model"
	"github.com/jitsupply/order-api/internal/repository"
	"github.com/jitsupply/order-api/internal/utils"
)

// UserHandler manages admin accounts. An admin may only read, update
// or delete itself; a supplier may read the one admin that owns it
// (the ordering party's contact details), nothing more.
type UserHandler struct {
	Cfg       config.Config
	Admins    *repository.AdminRepo
	Suppliers *repository.SupplierRepo
}

func NewUserHandler(cfg config.Config, a *repository.AdminRepo, s *repository.SupplierRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Admins: a, Suppliers: s}
}

type userSettingsReq struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type userResp struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

func toUserResp(a model.Admin) userResp {
	return userResp{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
	}
}

// Get returns an admin profile, subject to the ownership rules above.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	uid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	switch id.Role {
	case auth.RoleAdmin:
		if err := auth.GuardOwned(id, uid); err != nil {
			return guardReply(c, err)
		}
	case auth.RoleSupplier:
		// A supplier sees only its owning admin.
		s, err := h.Suppliers.GetByID(ctx, id.ID)
		if err != nil || s.UserID != uid {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	a, err := h.Admins.GetByID(ctx, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(a))
}

// Update rewrites the caller's own account settings.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	uid, err := pathID(c)
	if err != nil {
		return err
	}
	if err := auth.GuardOwned(id, uid); err != nil {
		return guardReply(c, err)
	}
	var req userSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user data"})
	}
	if len(req.Password) < auth.MinPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": auth.ErrWeakPassword.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Admins.GetByID(ctx, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update user failed"})
	}
	if err := h.Admins.UpdateSettings(ctx, uid, req.FirstName, req.LastName, req.PhoneNumber, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update user failed"})
	}
	a.FirstName, a.LastName, a.PhoneNumber = req.FirstName, req.LastName, req.PhoneNumber
	return c.JSON(http.StatusOK, toUserResp(a))
}

// Delete removes the caller's own account and, with it, every
// supplier, kanban card and order it owns.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	uid, err := pathID(c)
	if err != nil {
		return err
	}
	if err := auth.GuardOwned(id, uid); err != nil {
		return guardReply(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	switch err := h.Admins.Delete(ctx, uid); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete user failed"})
	}
}
