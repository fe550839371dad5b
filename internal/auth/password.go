package auth

import (
	"entregas/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperr.ErrInvalid
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash reports whether the cleartext password matches the
// stored hash. bcrypt's compare is constant time over the digest.
func ComparePasswordAndHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
