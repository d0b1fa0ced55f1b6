package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skrivbok/noted/internal/notes/service"
	"github.com/skrivbok/noted/pkg/httpx"
	"github.com/skrivbok/noted/pkg/slogx"
)

// NotesHandler serves the ownership-scoped note operations. The authn
// middleware has already resolved the caller before any of these run.
type NotesHandler struct {
	NoteService *service.NoteService
}

// HandleList returns every note owned by the caller.
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	notes, err := h.NoteService.List(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		log.Error("failed to list notes", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponses(notes))
}

// HandleCreate persists a new note for the caller.
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	note, err := h.NoteService.Create(ctx, httpx.UserIDFromCtx(ctx), req.Title, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidNote) {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid note"})
			return
		}
		log.Error("failed to create note", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleUpdate overwrites title and text of one of the caller's notes.
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	note, err := h.NoteService.Update(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"), req.Title, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidNote):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid note"})
		case errors.Is(err, service.ErrNoteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "note not found"})
		default:
			log.Error("failed to update note", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleDelete removes one of the caller's notes permanently.
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.NoteService.Delete(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "note not found"})
			return
		}
		log.Error("failed to delete note", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "note deleted"})
}

// HandleSearch returns the caller's notes matching a title substring.
func (h *NotesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	notes, err := h.NoteService.Search(ctx, httpx.UserIDFromCtx(ctx), r.URL.Query().Get("title"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "search query is missing"})
			return
		}
		log.Error("failed to search notes", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponses(notes))
}
