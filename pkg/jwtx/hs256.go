package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength guards against accidentally shipping a trivially
// brute-forceable HMAC secret.
const MinSecretLength = 16

// HS256Signer signs identity tokens with a process-wide shared secret.
// The secret is injected once at startup; business logic never reads it
// from the environment.
type HS256Signer struct {
	secret []byte
}

// NewHS256Signer creates a signer from the shared secret.
func NewHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretLength)
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes claims and turns them into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates JWTs signed with the shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewHS256Verifier creates a verifier for tokens signed by the matching
// HS256Signer. Issuer is enforced when non-empty.
func NewHS256Verifier(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretLength)
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
