package service_test

import (
	"path/filepath"
	"testing"

	"github.com/skrivbok/noted/internal/notes/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a throwaway file-backed store with the schema
// applied. A file beats :memory: here because the sql pool may open
// more than one connection.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "noted-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}
