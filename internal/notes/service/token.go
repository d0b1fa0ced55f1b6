package service

import (
	"time"

	"github.com/skrivbok/noted/internal/notes/domain"
	"github.com/skrivbok/noted/pkg/jwtx"
)

// TokenService mints identity tokens for authenticated users. The
// signing secret lives inside the signer, injected once at startup.
// Tokens are never stored server-side; signature and expiry are the
// whole session state.
type TokenService struct {
	Signer *jwtx.HS256Signer
	Issuer string
	TTL    time.Duration
}

// Issue produces a signed token embedding the user's id and username
// with issued-at and a fixed expiry.
func (s *TokenService) Issue(user domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewIdentityClaims(user.ID, user.Username, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
