package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest with a per-call random salt.
// Only the digest is ever stored; plaintext passwords must not be
// persisted or logged anywhere.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored digest.
// bcrypt compares in constant time; a malformed digest simply yields
// false rather than an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
