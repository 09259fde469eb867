package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardOwned(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		ownerID uint64
		wantErr error
	}{
		{
			name:    "admin owns the row",
			id:      Identity{ID: 1, Role: RoleAdmin},
			ownerID: 1,
		},
		{
			name:    "admin reaching another tenant's row is hidden",
			id:      Identity{ID: 1, Role: RoleAdmin},
			ownerID: 2,
			wantErr: ErrNotFound,
		},
		{
			name:    "supplier has no access to admin-owned rows",
			id:      Identity{ID: 1, Role: RoleSupplier},
			ownerID: 1,
			wantErr: ErrForbidden,
		},
		{
			name:    "unknown role",
			id:      Identity{ID: 1, Role: "root"},
			ownerID: 1,
			wantErr: ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GuardOwned(tt.id, tt.ownerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuardOrderRead(t *testing.T) {
	order := OrderRefs{UserID: 1, SupplierID: 5}

	tests := []struct {
		name    string
		id      Identity
		wantErr error
	}{
		{name: "creating admin", id: Identity{ID: 1, Role: RoleAdmin}},
		{name: "assigned supplier", id: Identity{ID: 5, Role: RoleSupplier}},
		{name: "other admin", id: Identity{ID: 2, Role: RoleAdmin}, wantErr: ErrForbidden},
		{name: "other supplier", id: Identity{ID: 6, Role: RoleSupplier}, wantErr: ErrForbidden},
		{name: "admin id colliding with supplier id", id: Identity{ID: 5, Role: RoleAdmin}, wantErr: ErrForbidden},
		{name: "unknown role", id: Identity{ID: 1, Role: ""}, wantErr: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GuardOrderRead(tt.id, order)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuardOrderStatus(t *testing.T) {
	order := OrderRefs{UserID: 7, SupplierID: 5}

	// Only the assigned supplier may mutate the status.
	assert.NoError(t, GuardOrderStatus(Identity{ID: 5, Role: RoleSupplier}, order))

	// The creating admin may read but not mutate.
	assert.ErrorIs(t, GuardOrderStatus(Identity{ID: 7, Role: RoleAdmin}, order), ErrForbidden)

	// A different supplier is rejected.
	assert.ErrorIs(t, GuardOrderStatus(Identity{ID: 6, Role: RoleSupplier}, order), ErrForbidden)
}
