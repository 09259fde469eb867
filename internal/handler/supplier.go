package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/config"
	"github.com/jitsupply/order-api/internal/model"
	"github.com/jitsupply/order-api/internal/repository"
	"github.com/jitsupply/order-api/internal/utils"
)

// SupplierStore is the slice of the supplier repository the handler
// needs.
type SupplierStore interface {
	Create(ctx context.Context, ownerID uint64, in repository.SupplierInput, passwordHash string, refreshExpiry time.Time) (uint64, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Supplier, error)
	GetByID(ctx context.Context, id uint64) (model.Supplier, error)
	Update(ctx context.Context, id uint64, in repository.SupplierInput, passwordHash string) error
	Delete(ctx context.Context, id uint64) error
}

// SupplierHandler implements the admin-scoped supplier CRUD. Every
// row it touches is owned by the calling admin; the owner id always
// comes from the token claims, never from the payload.
type SupplierHandler struct {
	Cfg       config.Config
	Suppliers SupplierStore
}

func NewSupplierHandler(cfg config.Config, s SupplierStore) *SupplierHandler {
	return &SupplierHandler{Cfg: cfg, Suppliers: s}
}

type supplierReq struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// supplierResp omits the password hash and token bookkeeping fields.
type supplierResp struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	UserID      uint64 `json:"userId"`
}

func toSupplierResp(s model.Supplier) supplierResp {
	return supplierResp{
		ID:          s.ID,
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		CompanyName: s.CompanyName,
		PhoneNumber: s.PhoneNumber,
		Role:        s.Role,
		UserID:      s.UserID,
	}
}

// List returns the calling admin's suppliers.
func (h *SupplierHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	suppliers, err := h.Suppliers.ListByOwner(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]supplierResp, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResp(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one supplier if the caller owns it.
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	sid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, s.UserID); err != nil {
		return guardReply(c, err)
	}
	return c.JSON(http.StatusOK, toSupplierResp(s))
}

// Create invites a new supplier owned by the calling admin. Supplier
// emails are globally unique across all admins, and the password
// floor matches registration.
func (h *SupplierHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req supplierReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid supplier data"})
	}
	if len(req.Password) < auth.MinPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": auth.ErrWeakPassword.Error()})
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create supplier failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	expiry := time.Now().UTC().Add(time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour)
	sid, err := h.Suppliers.Create(ctx, id.ID, repository.SupplierInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
	}, hash, expiry)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": auth.ErrDuplicateEmail.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create supplier failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Supplier added successfully.", "supplierId": sid})
}

// Update rewrites a supplier profile the caller owns.
func (h *SupplierHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	sid, err := pathID(c)
	if err != nil {
		return err
	}
	var req supplierReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid supplier data"})
	}
	if len(req.Password) < auth.MinPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": auth.ErrWeakPassword.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, s.UserID); err != nil {
		return guardReply(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update supplier failed"})
	}
	err = h.Suppliers.Update(ctx, sid, repository.SupplierInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
	}, hash)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": auth.ErrDuplicateEmail.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update supplier failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a supplier the caller owns. Deletion is refused with
// 409 while orders still reference the supplier.
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	sid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, s.UserID); err != nil {
		return guardReply(c, err)
	}

	switch err := h.Suppliers.Delete(ctx, sid); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"message": "supplier has orders and cannot be deleted"})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete supplier failed"})
	}
}
