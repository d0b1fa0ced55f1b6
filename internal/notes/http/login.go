package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skrivbok/noted/internal/notes/service"
	"github.com/skrivbok/noted/pkg/httpx"
	"github.com/skrivbok/noted/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP verifies a username/password pair and answers with a signed
// bearer token. Unknown username and wrong password are the same 400.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "wrong username or password"})
			return
		}
		log.Error("failed to authenticate user", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	token, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("failed to issue token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
