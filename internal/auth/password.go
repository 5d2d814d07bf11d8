package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashDecoding reports a stored hash too corrupt to compare against.
var ErrHashDecoding = errors.New("stored password hash is not a valid bcrypt hash")

// HashPassword hashes a plaintext password with the given cost. bcrypt
// salts internally, so repeated calls on the same input yield distinct
// hashes. Costs outside the bcrypt range fall back to the default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a plaintext candidate against a stored hash in
// constant time. A mismatch is (false, nil); a stored value that cannot
// be decoded as bcrypt at all is (false, ErrHashDecoding).
func VerifyPassword(password, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrHashDecoding
	}
}
