package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/model"
)

// SupplierRepo persists suppliers. It implements auth.CredentialStore
// for the supplier login pool and the ownership-scoped CRUD the admin
// endpoints use.
type SupplierRepo struct{ DB *sql.DB }

func NewSupplierRepo(db *sql.DB) *SupplierRepo { return &SupplierRepo{DB: db} }

// SupplierInput is the payload for creating or updating a supplier.
type SupplierInput struct {
	Email       string
	FirstName   string
	LastName    string
	CompanyName string
	PhoneNumber string
}

// Create inserts a supplier owned by the given admin with the fixed
// "Supplier" role. The owner id comes from the authenticated caller,
// never from the payload.
func (r *SupplierRepo) Create(ctx context.Context, ownerID uint64, in SupplierInput, passwordHash string, refreshExpiry time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO suppliers (email, first_name, last_name, company_name, phone_number,
		                        password_hash, role, refresh_token_expiry, user_id)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		strings.ToLower(strings.TrimSpace(in.Email)), in.FirstName, in.LastName, in.CompanyName,
		in.PhoneNumber, passwordHash, auth.RoleSupplier, refreshExpiry, ownerID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, auth.ErrDuplicateEmail
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindCredentialByEmail loads the credential slice of a supplier row.
func (r *SupplierRepo) FindCredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	var (
		c       auth.Credential
		refresh sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, refresh_token, refresh_token_expiry
		 FROM suppliers WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&c.ID, &c.Email, &c.PasswordHash, &refresh, &c.RefreshTokenExpiry)
	if err != nil {
		return auth.Credential{}, err
	}
	c.RefreshToken = refresh.String
	return c, nil
}

// SaveTokens overwrites the bookkeeping token fields after a login.
func (r *SupplierRepo) SaveTokens(ctx context.Context, id uint64, access, refresh string, expiry time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE suppliers SET token=?, refresh_token=?, refresh_token_expiry=? WHERE id=?`,
		access, refresh, expiry, id)
	return err
}

// RotateTokens is the conditional rotation update; see AdminRepo.
func (r *SupplierRepo) RotateTokens(ctx context.Context, id uint64, current, access, refresh string, expiry time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE suppliers SET token=?, refresh_token=?, refresh_token_expiry=?
		 WHERE id=? AND refresh_token=?`,
		access, refresh, expiry, id, current)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrInvalidRefreshToken
	}
	return nil
}

// ListByOwner returns all suppliers belonging to one admin.
func (r *SupplierRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Supplier, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, email, first_name, last_name, company_name, phone_number, role,
		        user_id, created_at, updated_at
		 FROM suppliers WHERE user_id=? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Supplier
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.CompanyName,
			&s.PhoneNumber, &s.Role, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a supplier row regardless of owner; the caller runs
// the ownership guard against UserID. Returns sql.ErrNoRows when absent.
func (r *SupplierRepo) GetByID(ctx context.Context, id uint64) (model.Supplier, error) {
	var s model.Supplier
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, company_name, phone_number, role,
		        user_id, created_at, updated_at
		 FROM suppliers WHERE id=? LIMIT 1`, id).
		Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.CompanyName,
			&s.PhoneNumber, &s.Role, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Supplier{}, err
	}
	return s, nil
}

// Update rewrites the supplier profile including the password hash.
func (r *SupplierRepo) Update(ctx context.Context, id uint64, in SupplierInput, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE suppliers SET email=?, first_name=?, last_name=?, company_name=?,
		        phone_number=?, password_hash=? WHERE id=?`,
		strings.ToLower(strings.TrimSpace(in.Email)), in.FirstName, in.LastName,
		in.CompanyName, in.PhoneNumber, passwordHash, id)
	if isDuplicateKey(err) {
		return auth.ErrDuplicateEmail
	}
	return err
}

// Delete removes a supplier unless orders still reference it, in
// which case ErrConflict is returned and the row is left untouched.
func (r *SupplierRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE supplier_id=?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM suppliers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if aff, err := res.RowsAffected(); err != nil {
		return err
	} else if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
