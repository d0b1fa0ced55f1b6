package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skrivbok/noted/internal/notes/service"
	"github.com/skrivbok/noted/pkg/httpx"
	"github.com/skrivbok/noted/pkg/slogx"
)

type SignupHandler struct {
	UserService *service.UserService
}

// ServeHTTP creates a new account from a username/password JSON body.
// Duplicate usernames and weak credentials both come back as 400; the
// created password hash never leaves the server.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	_, err := h.UserService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignup):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid credentials"})
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username already exists"})
		default:
			log.Error("failed to register user", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "account created"})
}
