package http

import (
	"time"

	"github.com/skrivbok/noted/internal/notes/domain"
)

// Request bodies.

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Response bodies.

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NoteResponse is the wire shape of a note. The password hash never
// appears anywhere near this; the owner id does, it is the caller's own.
type NoteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	OwnerID    string    `json:"ownerId"`
}

func toNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Text:       n.Text,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
		OwnerID:    n.OwnerID,
	}
}

func toNoteResponses(notes []domain.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}
