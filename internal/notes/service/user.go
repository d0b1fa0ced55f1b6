package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/skrivbok/noted/internal/notes/domain"
	"github.com/skrivbok/noted/internal/notes/store"
	"github.com/skrivbok/noted/pkg/cryptox"
	"github.com/skrivbok/noted/pkg/idx"
	"github.com/skrivbok/noted/pkg/slogx"
)

// MinPasswordLen is the minimum accepted password length in runes.
const MinPasswordLen = 5

var (
	ErrInvalidSignup = errors.New("invalid signup credentials")
	ErrUsernameTaken = errors.New("username already taken")

	// ErrBadCredentials covers both unknown username and wrong password.
	// Callers must not be able to tell which one occurred.
	ErrBadCredentials = errors.New("wrong username or password")
)

// UserService owns the credential records: signup and password
// verification. Tokens are minted elsewhere (TokenService).
type UserService struct {
	Store store.Store
}

// Register creates a new user with a salted hash of the password.
// The hash is computed before the transaction opens so the expensive
// bcrypt work does not hold a write transaction.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if username == "" || utf8.RuneCountInString(password) < MinPasswordLen {
		return domain.User{}, ErrInvalidSignup
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Check-then-insert inside one transaction. The unique index on
		// username is the real guarantee; this check just produces a
		// cleaner error for the common case.
		_, err := tx.Users().GetUserByUsername(ctx, username)
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		if errors.Is(err, ErrUsernameTaken) {
			return domain.User{}, ErrUsernameTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Debug("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate verifies a username/password pair and returns the user.
// Unknown username and wrong password produce the identical error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrBadCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrBadCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.User{}, err
	}

	return user, nil
}
