package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jitsupply/order-api/internal/utils"
)

// MinPasswordLen is the registration password floor.
const MinPasswordLen = 8

// refreshTTLDays is fixed by policy: every successful authenticate or
// refresh grants a refresh token valid for exactly seven days.
const refreshTTLDays = 7

// TokenPair is the result of a successful authenticate or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       uint64
}

// SessionService orchestrates the credential lifecycle over the two
// principal pools. Each principal is either Unauthenticated or holds
// an (access, refresh, expiry) triple; Authenticate and Refresh are
// the only transitions that mint one.
type SessionService struct {
	admins       AdminRegistry
	suppliers    CredentialStore
	secret       string
	accessTTLMin int
	bcryptCost   int
}

// NewSessionService wires the service. The signing secret is injected
// here once and treated as immutable for the process lifetime.
func NewSessionService(admins AdminRegistry, suppliers CredentialStore, secret string, accessTTLMin, bcryptCost int) *SessionService {
	return &SessionService{
		admins:       admins,
		suppliers:    suppliers,
		secret:       secret,
		accessTTLMin: accessTTLMin,
		bcryptCost:   bcryptCost,
	}
}

// pool maps a role to its credential store. The two pools are
// disjoint namespaces: the same email in both never conflicts.
func (s *SessionService) pool(role string) CredentialStore {
	if role == RoleSupplier {
		return s.suppliers
	}
	return s.admins
}

// Authenticate verifies an email/password pair within the pool of the
// given role and, on success, issues and persists a fresh token pair
// with a seven-day refresh expiry. Unknown email and wrong password
// collapse into the same ErrInvalidCredentials.
func (s *SessionService) Authenticate(ctx context.Context, email, password, role string) (TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return TokenPair{}, ErrValidation
	}
	cred, err := s.pool(role).FindCredentialByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(cred.PasswordHash, password) {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issue(ctx, role, cred, false, "")
}

// Register creates a new admin account. Registration cannot create
// suppliers: the role is fixed to Admin regardless of client input.
// No tokens are issued; the caller must authenticate afterwards.
func (s *SessionService) Register(ctx context.Context, in RegisterInput) (uint64, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return 0, ErrValidation
	}
	if len(in.Password) < MinPasswordLen {
		return 0, ErrWeakPassword
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	expiry := time.Now().UTC().Add(refreshTTLDays * 24 * time.Hour)
	return s.admins.CreateAdmin(ctx, in, hash, expiry)
}

// Refresh trades an expired-but-unforged access token plus a valid
// refresh token for a brand-new pair. The access token proves the
// identity (signature only, lifetime ignored); the refresh token
// proves freshness. Rotation is single-use: the stored refresh token
// is overwritten through a conditional update, so of two concurrent
// calls presenting the same token exactly one succeeds.
func (s *SessionService) Refresh(ctx context.Context, accessToken, refreshToken string) (TokenPair, error) {
	claims, err := utils.DecodeExpiredToken(s.secret, accessToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}
	cred, err := s.pool(claims.Role).FindCredentialByEmail(ctx, claims.Email)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if refreshToken == "" || cred.RefreshToken != refreshToken {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !cred.RefreshTokenExpiry.After(time.Now().UTC()) {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return s.issue(ctx, claims.Role, cred, true, refreshToken)
}

// issue mints a new access/refresh pair and persists it on the
// principal. With rotate set, the write is the compare-and-swap
// against the presented refresh token; otherwise a plain overwrite.
func (s *SessionService) issue(ctx context.Context, role string, cred Credential, rotate bool, current string) (TokenPair, error) {
	access, err := utils.NewAccessToken(s.secret, utils.TokenClaims{
		Email: cred.Email,
		Role:  role,
		ID:    cred.ID,
	}, s.accessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(refreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	store := s.pool(role)
	if rotate {
		err = store.RotateTokens(ctx, cred.ID, current, access.Token, refresh.Raw, refresh.Exp)
	} else {
		err = store.SaveTokens(ctx, cred.ID, access.Token, refresh.Raw, refresh.Exp)
	}
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		UserID:       cred.ID,
	}, nil
}
