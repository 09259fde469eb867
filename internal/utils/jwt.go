package utils // token creation, validation and refresh-token generation helpers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a presented access token fails
// signature verification or carries claims we cannot read.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the identity a signed access token carries: the
// principal's email (name claim), its role ("Admin" or "Supplier")
// and its primary key within that role's pool.
type TokenClaims struct {
	Email string
	Role  string
	ID    uint64
}

// AccessToken is a signed HS256 JWT together with its expiry. Access
// tokens are short-lived and sent as a Bearer credential on every
// protected request.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// RefreshToken is a long-lived opaque secret used once to mint a new
// access/refresh pair. It carries no claims; it is unguessable, not
// signed. The raw value is returned to the client and stored verbatim
// on the principal row.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// NewAccessToken signs an HS256 JWT for a principal. Claims: name
// (email), role, id (principal primary key), plus exp and iat. The
// ttl is counted in minutes from the current UTC time.
func NewAccessToken(secret string, claims TokenClaims, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": claims.Email,
		"role": claims.Role,
		"id":   claims.ID,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns 32 bytes of cryptographically secure random
// data, base64-encoded, with an expiry ttlDays from now.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: base64.StdEncoding.EncodeToString(buf),
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// DecodeToken fully validates an access token (signature and
// lifetime) and returns its claims. Used by the auth middleware.
func DecodeToken(secret, raw string) (TokenClaims, error) {
	return parseClaims(raw, secret, jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})))
}

// DecodeExpiredToken validates only the signature of an access
// token, ignoring its lifetime. The refresh flow uses it to recover
// the identity from a token the client still holds after the access
// window elapsed: the identity in an expired token can be trusted,
// its freshness cannot.
func DecodeExpiredToken(secret, raw string) (TokenClaims, error) {
	return parseClaims(raw, secret, jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	))
}

func parseClaims(raw, secret string, parser *jwt.Parser) (TokenClaims, error) {
	tok, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	email, _ := mc["name"].(string)
	role, _ := mc["role"].(string)
	// JSON numbers decode as float64.
	idf, ok := mc["id"].(float64)
	if !ok || email == "" || role == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	return TokenClaims{Email: email, Role: role, ID: uint64(idf)}, nil
}
