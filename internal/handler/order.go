package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/model"
	"github.com/jitsupply/order-api/internal/queue"
	"github.com/jitsupply/order-api/internal/repository"
	queue_publisher "github.com/jitsupply/order-api/internal/service"
)

// OrderStore is the slice of the order repository the handler needs.
type OrderStore interface {
	Create(ctx context.Context, userID uint64, in repository.OrderInput) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Order, error)
	ListByAdmin(ctx context.Context, userID uint64) ([]model.Order, error)
	ListBySupplier(ctx context.Context, supplierID uint64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// SupplierLookup resolves a supplier row for the ownership check on
// order creation.
type SupplierLookup interface {
	GetByID(ctx context.Context, id uint64) (model.Supplier, error)
}

// OrderHandler implements the order endpoints. Orders sit at the seam
// between the two roles: admins create and read their own orders,
// the assigned supplier reads them and is the only principal allowed
// to advance the status.
type OrderHandler struct {
	Orders    OrderStore
	Suppliers SupplierLookup
}

func NewOrderHandler(o OrderStore, s SupplierLookup) *OrderHandler {
	return &OrderHandler{Orders: o, Suppliers: s}
}

type orderReq struct {
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	PricePerUnit   int       `json:"pricePerUnit"`
	Currency       string    `json:"currency"`
	PickupLocation string    `json:"pickupLocation"`
	Destination    string    `json:"destination"`
	OrderDate      time.Time `json:"orderDate"`
	DueDate        time.Time `json:"dueDate"`
	Status         string    `json:"status"`
	SupplierID     uint64    `json:"supplierId"`
	// userId is never bound from the payload; it is always the
	// authenticated caller.
}

type orderStatusReq struct {
	Status string `json:"status"`
}

type orderResp struct {
	ID             uint64    `json:"id"`
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	PricePerUnit   int       `json:"pricePerUnit"`
	Currency       string    `json:"currency"`
	PickupLocation string    `json:"pickupLocation"`
	Destination    string    `json:"destination"`
	OrderDate      time.Time `json:"orderDate"`
	DueDate        time.Time `json:"dueDate"`
	Status         string    `json:"status,omitempty"`
	SupplierID     uint64    `json:"supplierId"`
	UserID         uint64    `json:"userId"`
}

func toOrderResp(o model.Order) orderResp {
	return orderResp{
		ID:             o.ID,
		ProductName:    o.ProductName,
		Quantity:       o.Quantity,
		PricePerUnit:   o.PricePerUnit,
		Currency:       o.Currency,
		PickupLocation: o.PickupLocation,
		Destination:    o.Destination,
		OrderDate:      o.OrderDate,
		DueDate:        o.DueDate,
		Status:         o.Status,
		SupplierID:     o.SupplierID,
		UserID:         o.UserID,
	}
}

// List returns the caller's orders: created ones for admins, assigned
// ones for suppliers.
func (h *OrderHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var orders []model.Order
	switch id.Role {
	case auth.RoleAdmin:
		orders, err = h.Orders.ListByAdmin(ctx, id.ID)
	case auth.RoleSupplier:
		orders, err = h.Orders.ListBySupplier(ctx, id.ID)
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one order to its creating admin or assigned supplier.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	oid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, oid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOrderRead(id, auth.OrderRefs{UserID: o.UserID, SupplierID: o.SupplierID}); err != nil {
		return guardReply(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResp(o))
}

// Create places an order with one of the calling admin's suppliers.
// The supplier must exist and belong to the caller; the owning admin
// id is always taken from the claims.
func (h *OrderHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req orderReq
	if err := c.Bind(&req); err != nil || req.ProductName == "" || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid order data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, req.SupplierID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && s.UserID != id.ID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid supplier ID."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}

	oid, err := h.Orders.Create(ctx, id.ID, repository.OrderInput{
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		PricePerUnit:   req.PricePerUnit,
		Currency:       req.Currency,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		OrderDate:      req.OrderDate,
		DueDate:        req.DueDate,
		Status:         req.Status,
		SupplierID:     req.SupplierID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create order failed"})
	}

	// Fire-and-forget: a broker outage must not fail the order.
	_ = queue_publisher.PublishOrderEvent(ctx, queue.OrderEvent{
		Event:       queue.EventOrderCreated,
		OrderID:     oid,
		UserID:      id.ID,
		SupplierID:  req.SupplierID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Currency:    req.Currency,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "Order created successfully.", "orderId": oid})
}

// UpdateStatus lets the assigned supplier advance an order's status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	oid, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderStatusReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "status required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, oid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOrderStatus(id, auth.OrderRefs{UserID: o.UserID, SupplierID: o.SupplierID}); err != nil {
		return guardReply(c, err)
	}
	if err := h.Orders.UpdateStatus(ctx, oid, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update order failed"})
	}

	_ = queue_publisher.PublishOrderEvent(ctx, queue.OrderEvent{
		Event:      queue.EventOrderStatusChanged,
		OrderID:    o.ID,
		UserID:     o.UserID,
		SupplierID: o.SupplierID,
		OldStatus:  o.Status,
		NewStatus:  req.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	o.Status = req.Status
	return c.JSON(http.StatusOK, toOrderResp(o))
}
