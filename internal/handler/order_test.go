package handler

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jitsupply/order-api/internal/model"
	"github.com/jitsupply/order-api/internal/repository"
)

// fakeOrderStore is an in-memory OrderStore. gets counts GetByID calls
// so tests can assert a rejected request never reached the store.
type fakeOrderStore struct {
	mu   sync.Mutex
	seq  uint64
	rows map[uint64]model.Order
	gets int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{rows: map[uint64]model.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, userID uint64, in repository.OrderInput) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.rows[f.seq] = model.Order{
		ID:             f.seq,
		ProductName:    in.ProductName,
		Quantity:       in.Quantity,
		PricePerUnit:   in.PricePerUnit,
		Currency:       in.Currency,
		PickupLocation: in.PickupLocation,
		Destination:    in.Destination,
		OrderDate:      in.OrderDate,
		DueDate:        in.DueDate,
		Status:         in.Status,
		SupplierID:     in.SupplierID,
		UserID:         userID,
	}
	return f.seq, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uint64) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	o, ok := f.rows[id]
	if !ok {
		return model.Order{}, sql.ErrNoRows
	}
	return o, nil
}

func (f *fakeOrderStore) ListByAdmin(_ context.Context, userID uint64) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.rows {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListBySupplier(_ context.Context, supplierID uint64) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.rows {
		if o.SupplierID == supplierID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	f.rows[id] = o
	return nil
}

// fakeSupplierLookup serves the supplier ownership check.
type fakeSupplierLookup struct {
	rows map[uint64]model.Supplier
}

func newFakeSupplierLookup() *fakeSupplierLookup {
	return &fakeSupplierLookup{rows: map[uint64]model.Supplier{}}
}

func (f *fakeSupplierLookup) GetByID(_ context.Context, id uint64) (model.Supplier, error) {
	s, ok := f.rows[id]
	if !ok {
		return model.Supplier{}, sql.ErrNoRows
	}
	return s, nil
}

func TestOrderCreateOwnerComesFromClaims(t *testing.T) {
	orders := newFakeOrderStore()
	suppliers := newFakeSupplierLookup()
	suppliers.rows[3] = model.Supplier{ID: 3, UserID: 1}
	h := NewOrderHandler(orders, suppliers)

	// The payload claims a foreign userId; only the token decides.
	body := `{"productName":"steel plates","quantity":10,"pricePerUnit":250,
		"currency":"EUR","supplierId":3,"userId":99}`
	c, rec := adminContext(http.MethodPost, "/api/orders", body)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, orders.rows, 1)
	o := orders.rows[1]
	assert.Equal(t, uint64(1), o.UserID)
	assert.Equal(t, uint64(3), o.SupplierID)
	assert.Equal(t, "steel plates", o.ProductName)
}

func TestOrderCreateRejectsForeignSupplier(t *testing.T) {
	orders := newFakeOrderStore()
	suppliers := newFakeSupplierLookup()
	suppliers.rows[7] = model.Supplier{ID: 7, UserID: 2} // another admin's supplier

	h := NewOrderHandler(orders, suppliers)

	tests := []struct {
		name string
		body string
	}{
		{"foreign supplier", `{"productName":"steel plates","quantity":10,"supplierId":7}`},
		{"unknown supplier", `{"productName":"steel plates","quantity":10,"supplierId":404}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := adminContext(http.MethodPost, "/api/orders", tt.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid supplier ID.")
			assert.Empty(t, orders.rows)
		})
	}
}
