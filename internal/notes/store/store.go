package store

import (
	"context"
	"errors"
	"time"

	"github.com/skrivbok/noted/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, in-memory) implement this. It exposes sub-repositories to
// keep concerns tidy and testable; the services never see a concrete
// query language.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error,
	// the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during signup and login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken; the schema
	// backs this with a unique index so concurrent signups cannot both
	// slip past the application-level check.
	CreateUser(ctx context.Context, u domain.User) error
}

type Notes interface {
	// GetNoteForOwner returns the note only when it is owned by ownerID.
	// A note owned by someone else is ErrNotFound, same as a missing id.
	GetNoteForOwner(ctx context.Context, id, ownerID string) (domain.Note, error)

	// ListNotesByOwner returns every note owned by ownerID in natural
	// store order.
	ListNotesByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)

	// SearchNotesByTitle returns ownerID's notes whose title contains
	// query as a case-insensitive substring.
	SearchNotesByTitle(ctx context.Context, ownerID, query string) ([]domain.Note, error)

	// CreateNote inserts a new note (id is ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// UpdateNote overwrites title and text and sets modified_at, scoped
	// to the owner in the same statement. ErrNotFound when no row matched.
	UpdateNote(ctx context.Context, id, ownerID, title, text string, modifiedAt time.Time) error

	// DeleteNote removes the note permanently, scoped to the owner.
	// ErrNotFound when no row matched.
	DeleteNote(ctx context.Context, id, ownerID string) error
}
