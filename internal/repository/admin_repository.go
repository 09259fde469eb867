package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/model"
)

// AdminRepo persists account owners in the `admins` table. It
// implements auth.AdminRegistry for the session flows and carries the
// account-management queries used by the user handler.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// CreateAdmin inserts a new admin with the fixed "Admin" role and the
// initial refresh expiry. Duplicate emails map to auth.ErrDuplicateEmail.
func (r *AdminRepo) CreateAdmin(ctx context.Context, in auth.RegisterInput, passwordHash string, refreshExpiry time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO admins (email, first_name, last_name, phone_number, password_hash, role, refresh_token_expiry)
		 VALUES (?,?,?,?,?,?,?)`,
		strings.ToLower(strings.TrimSpace(in.Email)), in.FirstName, in.LastName, in.PhoneNumber,
		passwordHash, auth.RoleAdmin, refreshExpiry)
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

// FindCredentialByEmail loads the credential slice of an admin row.
func (r *AdminRepo) FindCredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	var (
		c       auth.Credential
		refresh sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, refresh_token, refresh_token_expiry
		 FROM admins WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&c.ID, &c.Email, &c.PasswordHash, &refresh, &c.RefreshTokenExpiry)
	if err != nil {
		return auth.Credential{}, err
	}
	c.RefreshToken = refresh.String
	return c, nil
}

// SaveTokens overwrites the bookkeeping token fields after a login.
func (r *AdminRepo) SaveTokens(ctx context.Context, id uint64, access, refresh string, expiry time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE admins SET token=?, refresh_token=?, refresh_token_expiry=? WHERE id=?`,
		access, refresh, expiry, id)
	return err
}

// RotateTokens replaces the token fields only while the stored
// refresh token still equals current. Zero affected rows means a
// concurrent rotation won the race or the token was already spent,
// and maps to auth.ErrInvalidRefreshToken.
func (r *AdminRepo) RotateTokens(ctx context.Context, id uint64, current, access, refresh string, expiry time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE admins SET token=?, refresh_token=?, refresh_token_expiry=?
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

// GetByID fetches an admin row. Returns sql.ErrNoRows when absent.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var (
		a              model.Admin
		token, refresh sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, phone_number, password_hash, role,
		        token, refresh_token, refresh_token_expiry, created_at, updated_at
		 FROM admins WHERE id=? LIMIT 1`, id).
		Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PhoneNumber, &a.PasswordHash,
			&a.Role, &token, &refresh, &a.RefreshTokenExpiry, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Admin{}, err
	}
	a.Token = token.String
	a.RefreshToken = refresh.String
	return a, nil
}

// UpdateSettings rewrites the mutable account fields. Email and role
// are not touched here.
func (r *AdminRepo) UpdateSettings(ctx context.Context, id uint64, firstName, lastName, phone, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE admins SET first_name=?, last_name=?, phone_number=?, password_hash=? WHERE id=?`,
		firstName, lastName, phone, passwordHash, id)
	return err
}

// Delete removes an admin and everything it owns in one transaction:
// orders first (they reference suppliers), then kanban cards and
// suppliers, then the admin row itself.
func (r *AdminRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM orders WHERE user_id=?`,
		`DELETE FROM kanban_cards WHERE user_id=?`,
		`DELETE FROM suppliers WHERE user_id=?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
