package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jitsupply/order-api/internal/model"
)

// OrderRepo persists purchase orders.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// OrderInput is the payload for creating an order. The owning admin
// id is supplied separately by the handler from the caller's claims.
type OrderInput struct {
	ProductName    string
	Quantity       int
	PricePerUnit   int
	Currency       string
	PickupLocation string
	Destination    string
	OrderDate      time.Time
	DueDate        time.Time
	Status         string
	SupplierID     uint64
}

const orderColumns = `id, product_name, quantity, price_per_unit, currency,
	pickup_location, destination, order_date, due_date, status,
	supplier_id, user_id, created_at, updated_at`

// Create inserts an order created by the given admin.
func (r *OrderRepo) Create(ctx context.Context, userID uint64, in OrderInput) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO orders (product_name, quantity, price_per_unit, currency,
		                     pickup_location, destination, order_date, due_date,
		                     status, supplier_id, user_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		in.ProductName, in.Quantity, in.PricePerUnit, in.Currency,
		in.PickupLocation, in.Destination, in.OrderDate, in.DueDate,
		nullIfEmpty(in.Status), in.SupplierID, userID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches an order regardless of owner; the caller runs the
// order guard against UserID/SupplierID. Returns sql.ErrNoRows when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=? LIMIT 1`, id)
	return scanOrder(row)
}

// ListByAdmin returns orders created by one admin.
func (r *OrderRepo) ListByAdmin(ctx context.Context, userID uint64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=? ORDER BY id`, userID)
}

// ListBySupplier returns orders assigned to one supplier.
func (r *OrderRepo) ListBySupplier(ctx context.Context, supplierID uint64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE supplier_id=? ORDER BY id`, supplierID)
}

// UpdateStatus sets the progress note on an order.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *OrderRepo) list(ctx context.Context, query string, arg uint64) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanOrder(s scanner) (model.Order, error) {
	var (
		o      model.Order
		status sql.NullString
	)
	err := s.Scan(&o.ID, &o.ProductName, &o.Quantity, &o.PricePerUnit, &o.Currency,
		&o.PickupLocation, &o.Destination, &o.OrderDate, &o.DueDate, &status,
		&o.SupplierID, &o.UserID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Order{}, err
	}
	o.Status = status.String
	return o, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
