package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/skrivbok/noted/internal/notes/domain"
	"github.com/skrivbok/noted/internal/notes/store"
)

type notesRepo struct {
	q querier
}

const noteColumns = `id, owner_id, title, text, created_at, modified_at`

func (r *notesRepo) GetNoteForOwner(ctx context.Context, id, ownerID string) (domain.Note, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND owner_id = ?`,
		id, ownerID)
	return scanNote(row)
}

func (r *notesRepo) ListNotesByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func (r *notesRepo) SearchNotesByTitle(ctx context.Context, ownerID, query string) ([]domain.Note, error) {
	// Plain substring containment, not a pattern language. instr with
	// lower() sidesteps LIKE wildcard injection through the query string.
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE owner_id = ? AND instr(lower(title), lower(?)) > 0`,
		ownerID, query)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notes (id, owner_id, title, text, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.OwnerID, n.Title, n.Text, n.CreatedAt, n.ModifiedAt)
	return err
}

func (r *notesRepo) UpdateNote(ctx context.Context, id, ownerID, title, text string, modifiedAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notes SET title = ?, text = ?, modified_at = ?
		 WHERE id = ? AND owner_id = ?`,
		title, text, modifiedAt, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (r *notesRepo) DeleteNote(ctx context.Context, id, ownerID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

// requireRowMatched turns a zero-row write into ErrNotFound. Ownership
// and existence are the same WHERE clause, so a non-owner's attempt is
// indistinguishable from a missing note.
func requireRowMatched(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanNote(row rowScanner) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Text, &n.CreatedAt, &n.ModifiedAt)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return n, nil
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
