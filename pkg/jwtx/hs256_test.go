package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "noted-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestPair(t *testing.T) (*HS256Signer, *HS256Verifier) {
	t.Helper()

	signer, err := NewHS256Signer(testSecret)
	require.NoError(t, err)
	verifier, err := NewHS256Verifier(testSecret, testIssuer)
	require.NoError(t, err)

	return signer, verifier
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewIdentityClaims("user-123", "alice", testIssuer, DefaultTokenTTL, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, testIssuer, got.Issuer)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewIdentityClaims("user-123", "alice", testIssuer, DefaultTokenTTL, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Flip one byte in the payload segment
	raw := []byte(token)
	raw[len(raw)/2] ^= 0x01

	_, err = verifier.Verify(string(raw))
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, verifier := newTestPair(t)

	// Issued two hours in the past with a one hour TTL
	past := time.Now().UTC().Add(-2 * time.Hour)
	claims := NewIdentityClaims("user-123", "alice", testIssuer, time.Hour, past)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, _ := newTestPair(t)

	other, err := NewHS256Verifier([]byte("another-secret-of-decent-length!"), testIssuer)
	require.NoError(t, err)

	claims := NewIdentityClaims("user-123", "alice", testIssuer, DefaultTokenTTL, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, _ := newTestPair(t)

	verifier, err := NewHS256Verifier(testSecret, "someone-else")
	require.NoError(t, err)

	claims := NewIdentityClaims("user-123", "alice", testIssuer, DefaultTokenTTL, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, verifier := newTestPair(t)

	_, err := verifier.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestShortSecretRejected(t *testing.T) {
	_, err := NewHS256Signer([]byte("too-short"))
	require.Error(t, err)

	_, err = NewHS256Verifier([]byte("too-short"), testIssuer)
	require.Error(t, err)
}
