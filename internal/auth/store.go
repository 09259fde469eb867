package auth

import (
	"context"
	"time"
)

// Credential is the slice of a principal row the session flows read
// and write. Both admins and suppliers reduce to this shape; the two
// pools stay disjoint, so an email is only unique within its pool.
type Credential struct {
	ID                 uint64
	Email              string
	PasswordHash       string
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// CredentialStore is the persistence contract the SessionService
// requires of each principal pool.
//
// SaveTokens overwrites the bookkeeping token fields after a
// successful authenticate. RotateTokens must be conditional: it
// replaces the token fields only where the stored refresh token still
// equals current, and returns ErrInvalidRefreshToken when no row
// matched. That compare-and-swap is what makes refresh rotation
// single-use under concurrent calls.
type CredentialStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (Credential, error)
	SaveTokens(ctx context.Context, id uint64, access, refresh string, expiry time.Time) error
	RotateTokens(ctx context.Context, id uint64, current, access, refresh string, expiry time.Time) error
}

// RegisterInput is the payload accepted by admin registration.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// AdminRegistry extends the admin pool with account creation.
// CreateAdmin must return ErrDuplicateEmail when the email is taken
// and must set the initial refresh-token expiry it is given.
type AdminRegistry interface {
	CredentialStore
	CreateAdmin(ctx context.Context, in RegisterInput, passwordHash string, refreshExpiry time.Time) (uint64, error)
}
