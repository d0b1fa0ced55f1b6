package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/skrivbok/noted/internal/notes/domain"
	"github.com/skrivbok/noted/internal/notes/store"
	"github.com/skrivbok/noted/pkg/idx"
	"github.com/skrivbok/noted/pkg/slogx"
)

var (
	ErrInvalidNote  = errors.New("invalid note")
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyQuery   = errors.New("search query is missing")
)

// NoteService is the ownership-scoped CRUD and search layer over notes.
// Every operation takes the caller's resolved identity and only ever
// touches notes whose owner matches it.
type NoteService struct {
	Store store.Store
}

// List returns all notes owned by the caller. Order follows the store's
// natural order and is not guaranteed.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesByOwner(ctx, ownerID)
}

// Create validates and persists a new note owned by the caller.
func (s *NoteService) Create(ctx context.Context, ownerID, title, text string) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	if err := validateNoteFields(title, text); err != nil {
		return domain.Note{}, err
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:         idx.New().String(),
		OwnerID:    ownerID,
		Title:      title,
		Text:       text,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		log.Error("failed to create note", slog.Any("error", err))
		return domain.Note{}, err
	}

	log.Debug("note created",
		slog.String("note_id", note.ID),
		slog.String("owner_id", ownerID),
	)

	return note, nil
}

// Update overwrites title and text of a caller-owned note and bumps
// modified_at. A note owned by someone else reports ErrNoteNotFound,
// indistinguishable from a missing one.
func (s *NoteService) Update(ctx context.Context, ownerID, id, title, text string) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	if err := validateNoteFields(title, text); err != nil {
		return domain.Note{}, err
	}

	err := s.Store.Notes().UpdateNote(ctx, id, ownerID, title, text, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		log.Error("failed to update note", slog.Any("error", err))
		return domain.Note{}, err
	}

	note, err := s.Store.Notes().GetNoteForOwner(ctx, id, ownerID)
	if err != nil {
		// The note was just written; a concurrent delete is the only
		// way to land here.
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		log.Error("failed to reload note", slog.Any("error", err))
		return domain.Note{}, err
	}

	return note, nil
}

// Delete removes a caller-owned note permanently. No tombstones.
func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Notes().DeleteNote(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoteNotFound
		}
		log.Error("failed to delete note", slog.Any("error", err))
		return err
	}

	log.Debug("note deleted",
		slog.String("note_id", id),
		slog.String("owner_id", ownerID),
	)

	return nil
}

// Search returns the caller's notes whose title contains the query as a
// case-insensitive substring. Plain containment, not a pattern match.
func (s *NoteService) Search(ctx context.Context, ownerID, query string) ([]domain.Note, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.Store.Notes().SearchNotesByTitle(ctx, ownerID, query)
}

func validateNoteFields(title, text string) error {
	if title == "" || utf8.RuneCountInString(title) > domain.NoteTitleMaxLen {
		return ErrInvalidNote
	}
	if text == "" || utf8.RuneCountInString(text) > domain.NoteTextMaxLen {
		return ErrInvalidNote
	}
	return nil
}
