package domain

import "time"

// Limits for note fields, counted in runes.
const (
	NoteTitleMaxLen = 50
	NoteTextMaxLen  = 300
)

// Note is a single text note owned by exactly one user. CreatedAt is
// immutable after creation; ModifiedAt moves on every successful update.
type Note struct {
	ID         string
	OwnerID    string
	Title      string
	Text       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}
