package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jitsupply/order-api/internal/utils"
)

const testSecret = "session-test-secret"

var errNoRow = errors.New("no rows")

// fakePool is an in-memory CredentialStore/AdminRegistry used to
// exercise the session flows without a database. RotateTokens honors
// the compare-and-swap contract so rotation tests are faithful.
type fakePool struct {
	mu    sync.Mutex
	seq   uint64
	creds map[string]*Credential // by email
}

func newFakePool() *fakePool {
	return &fakePool{creds: map[string]*Credential{}}
}

// add seeds a principal directly, bypassing registration.
func (p *fakePool) add(email, passwordHash string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.creds[email] = &Credential{
		ID:                 p.seq,
		Email:              email,
		PasswordHash:       passwordHash,
		RefreshTokenExpiry: time.Now().UTC().Add(7 * 24 * time.Hour),
	}
	return p.seq
}

func (p *fakePool) byID(id uint64) *Credential {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.creds {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (p *fakePool) FindCredentialByEmail(_ context.Context, email string) (Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.creds[strings.ToLower(email)]
	if !ok {
		return Credential{}, errNoRow
	}
	return *c, nil
}

func (p *fakePool) SaveTokens(_ context.Context, id uint64, _, refresh string, expiry time.Time) error {
	c := p.byID(id)
	if c == nil {
		return errNoRow
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	c.RefreshToken = refresh
	c.RefreshTokenExpiry = expiry
	return nil
}

func (p *fakePool) RotateTokens(_ context.Context, id uint64, current, _, refresh string, expiry time.Time) error {
	c := p.byID(id)
	if c == nil {
		return ErrInvalidRefreshToken
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if c.RefreshToken != current {
		return ErrInvalidRefreshToken
	}
	c.RefreshToken = refresh
	c.RefreshTokenExpiry = expiry
	return nil
}

func (p *fakePool) CreateAdmin(_ context.Context, in RegisterInput, passwordHash string, refreshExpiry time.Time) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.creds[in.Email]; ok {
		return 0, ErrDuplicateEmail
	}
	p.seq++
	p.creds[in.Email] = &Credential{
		ID:                 p.seq,
		Email:              in.Email,
		PasswordHash:       passwordHash,
		RefreshTokenExpiry: refreshExpiry,
	}
	return p.seq, nil
}

func newTestService() (*fakePool, *fakePool, *SessionService) {
	admins := newFakePool()
	suppliers := newFakePool()
	svc := NewSessionService(admins, suppliers, testSecret, 60, 4)
	return admins, suppliers, svc
}

func TestRegisterThenAuthenticate(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	id, err := svc.Register(ctx, RegisterInput{
		FirstName:   "Ada",
		LastName:    "Okafor",
		Email:       "Ada@Example.com",
		PhoneNumber: "+48123456789",
		Password:    "long-enough",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	// Emails are normalized, so the mixed-case login matches.
	pair, err := svc.Authenticate(ctx, "ada@example.com", "long-enough", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, id, pair.UserID)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := utils.DecodeToken(testSecret, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "ada@example.com", claims.Email)

	// Refresh expiry is exactly seven days out.
	cred := admins.byID(id)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), cred.RefreshTokenExpiry, 5*time.Second)
}

func TestRegisterValidation(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
	}{
		{
			name:    "short password",
			in:      RegisterInput{Email: "a@b.c", Password: "1234567"},
			wantErr: ErrWeakPassword,
		},
		{
			name:    "empty email",
			in:      RegisterInput{Email: "", Password: "long-enough"},
			wantErr: ErrValidation,
		},
		{
			name:    "empty password",
			in:      RegisterInput{Email: "a@b.c", Password: ""},
			wantErr: ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterWeakPasswordCreatesNothing(t *testing.T) {
	admins, _, svc := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, admins.creds)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "password-1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "password-2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The first principal is unaffected.
	cred, err := admins.FindCredentialByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, cred.ID)
	assert.True(t, utils.VerifyPassword(cred.PasswordHash, "password-1"))
}

func TestAuthenticateFailures(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	hash, err := utils.HashPassword("the-password", 4)
	require.NoError(t, err)
	admins.add("known@example.com", hash)

	_, err = svc.Authenticate(ctx, "unknown@example.com", "the-password", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "known@example.com", "wrong", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The same email does not exist in the supplier pool: the two
	// namespaces are disjoint.
	_, err = svc.Authenticate(ctx, "known@example.com", "the-password", RoleSupplier)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSupplierPoolAuthenticate(t *testing.T) {
	admins, suppliers, svc := newTestService()
	ctx := context.Background()

	hash, err := utils.HashPassword("admin-pass", 4)
	require.NoError(t, err)
	adminID := admins.add("shared@example.com", hash)

	hash, err = utils.HashPassword("supplier-pass", 4)
	require.NoError(t, err)
	supplierID := suppliers.add("shared@example.com", hash)

	pair, err := svc.Authenticate(ctx, "shared@example.com", "supplier-pass", RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, supplierID, pair.UserID)

	claims, err := utils.DecodeToken(testSecret, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleSupplier, claims.Role)
	assert.NotEqual(t, adminID, 0)
}

func TestRefreshRotation(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	hash, err := utils.HashPassword("the-password", 4)
	require.NoError(t, err)
	admins.add("r@example.com", hash)

	pair, err := svc.Authenticate(ctx, "r@example.com", "the-password", RoleAdmin)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, next.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.Equal(t, pair.UserID, next.UserID)

	// Rotation is single-use: the spent token no longer validates.
	_, err = svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The rotated one still does.
	_, err = svc.Refresh(ctx, next.AccessToken, next.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshWithExpiredAccessToken(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	hash, err := utils.HashPassword("the-password", 4)
	require.NoError(t, err)
	id := admins.add("stale@example.com", hash)

	pair, err := svc.Authenticate(ctx, "stale@example.com", "the-password", RoleAdmin)
	require.NoError(t, err)

	// An access token past its one-hour window still identifies the
	// caller as long as the signature holds.
	expired, err := utils.NewAccessToken(testSecret, utils.TokenClaims{
		Email: "stale@example.com",
		Role:  RoleAdmin,
		ID:    id,
	}, -1)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, expired.Token, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id, next.UserID)
}

func TestRefreshFailures(t *testing.T) {
	admins, _, svc := newTestService()
	ctx := context.Background()

	hash, err := utils.HashPassword("the-password", 4)
	require.NoError(t, err)
	id := admins.add("f@example.com", hash)

	pair, err := svc.Authenticate(ctx, "f@example.com", "the-password", RoleAdmin)
	require.NoError(t, err)

	t.Run("forged access token", func(t *testing.T) {
		forged, err := utils.NewAccessToken("wrong-secret", utils.TokenClaims{
			Email: "f@example.com", Role: RoleAdmin, ID: id,
		}, 60)
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, forged.Token, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown principal", func(t *testing.T) {
		ghost, err := utils.NewAccessToken(testSecret, utils.TokenClaims{
			Email: "ghost@example.com", Role: RoleAdmin, ID: 99,
		}, 60)
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, ghost.Token, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("mismatched refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.AccessToken, "not-the-stored-token")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("empty refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.AccessToken, "")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		cred := admins.byID(id)
		cred.RefreshTokenExpiry = time.Now().UTC().Add(-time.Minute)
		_, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
