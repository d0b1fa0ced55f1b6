package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/skrivbok/noted/internal/notes/domain"
	"github.com/skrivbok/noted/internal/notes/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "noted-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(username string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUsersUniqueUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Users().CreateUser(ctx, testUser("alice")))

	// Same username under a fresh id must trip the unique index
	dup := testUser("alice")
	dup.ID = "user-alice-2"
	err := st.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByID(ctx, "missing-id")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotesOwnerScoping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Users().CreateUser(ctx, testUser("alice")))
	require.NoError(t, st.Users().CreateUser(ctx, testUser("bob")))

	now := time.Now().UTC()
	note := domain.Note{
		ID:         "note-1",
		OwnerID:    "user-alice",
		Title:      "Groceries",
		Text:       "milk, eggs",
		CreatedAt:  now,
		ModifiedAt: now,
	}
	require.NoError(t, st.Notes().CreateNote(ctx, note))

	got, err := st.Notes().GetNoteForOwner(ctx, "note-1", "user-alice")
	require.NoError(t, err)
	require.Equal(t, "Groceries", got.Title)

	// The wrong owner sees exactly what a missing id produces
	_, err = st.Notes().GetNoteForOwner(ctx, "note-1", "user-bob")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Notes().UpdateNote(ctx, "note-1", "user-bob", "t", "x", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Notes().DeleteNote(ctx, "note-1", "user-bob")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, testUser("alice")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, testUser("alice"))
	})
	require.NoError(t, err)

	got, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
}
