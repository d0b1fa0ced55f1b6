package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. 10 rounds keeps hashing around
// 50-100ms on commodity hardware, slow enough to frustrate offline
// cracking without making login sluggish.
const HashCost = 10

// ErrPasswordMismatch is returned when a plaintext password does not
// match the stored hash. Callers should not distinguish this from an
// unknown-user lookup failure in anything user-visible.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a salted bcrypt hash of the plaintext password.
// The salt is random per call and embedded in the encoded hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt
// hash. The comparison is constant-time with respect to the hash.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
	return nil
}
