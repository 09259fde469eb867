package handler

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/config"
	"github.com/jitsupply/order-api/internal/model"
	"github.com/jitsupply/order-api/internal/repository"
	"github.com/jitsupply/order-api/internal/utils"
)

// fakeSupplierStore is an in-memory SupplierStore.
type fakeSupplierStore struct {
	mu   sync.Mutex
	seq  uint64
	rows map[uint64]model.Supplier
}

func newFakeSupplierStore() *fakeSupplierStore {
	return &fakeSupplierStore{rows: map[uint64]model.Supplier{}}
}

func (f *fakeSupplierStore) Create(_ context.Context, ownerID uint64, in repository.SupplierInput, passwordHash string, refreshExpiry time.Time) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.Email == in.Email {
			return 0, auth.ErrDuplicateEmail
		}
	}
	f.seq++
	f.rows[f.seq] = model.Supplier{
		ID:                 f.seq,
		Email:              in.Email,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		CompanyName:        in.CompanyName,
		PhoneNumber:        in.PhoneNumber,
		PasswordHash:       passwordHash,
		Role:               auth.RoleSupplier,
		RefreshTokenExpiry: refreshExpiry,
		UserID:             ownerID,
	}
	return f.seq, nil
}

func (f *fakeSupplierStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Supplier
	for _, s := range f.rows {
		if s.UserID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSupplierStore) GetByID(_ context.Context, id uint64) (model.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return model.Supplier{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeSupplierStore) Update(_ context.Context, id uint64, in repository.SupplierInput, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.Email = in.Email
	s.FirstName = in.FirstName
	s.LastName = in.LastName
	s.CompanyName = in.CompanyName
	s.PhoneNumber = in.PhoneNumber
	s.PasswordHash = passwordHash
	f.rows[id] = s
	return nil
}

func (f *fakeSupplierStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func newSupplierHandler() (*fakeSupplierStore, *SupplierHandler) {
	store := newFakeSupplierStore()
	cfg := config.Config{BcryptCost: 4, RefreshTTLDays: 7}
	return store, NewSupplierHandler(cfg, store)
}

func TestSupplierCreateOwnerComesFromClaims(t *testing.T) {
	store, h := newSupplierHandler()

	// The payload claims a foreign userId; only the token decides.
	body := `{"email":"s@example.com","firstName":"Mei","companyName":"Mei Logistics",
		"password":"long-enough","userId":42}`
	c, rec := adminContext(http.MethodPost, "/api/suppliers", body)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.rows, 1)
	s := store.rows[1]
	assert.Equal(t, uint64(1), s.UserID)
	assert.Equal(t, "s@example.com", s.Email)
	assert.True(t, utils.VerifyPassword(s.PasswordHash, "long-enough"))
}

func TestSupplierCreateValidation(t *testing.T) {
	store, h := newSupplierHandler()

	t.Run("weak password", func(t *testing.T) {
		c, rec := adminContext(http.MethodPost, "/api/suppliers",
			`{"email":"s@example.com","password":"short"}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least 8 characters")
		assert.Empty(t, store.rows)
	})

	t.Run("duplicate email", func(t *testing.T) {
		c, rec := adminContext(http.MethodPost, "/api/suppliers",
			`{"email":"dup@example.com","password":"long-enough"}`)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		c, rec = adminContext(http.MethodPost, "/api/suppliers",
			`{"email":"dup@example.com","password":"long-enough"}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
