package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/skrivbok/noted/internal/notes/service"
	"github.com/skrivbok/noted/internal/notes/store"
	"github.com/skrivbok/noted/pkg/httpx"
	"github.com/skrivbok/noted/pkg/jwtx"
	"github.com/skrivbok/noted/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService  *service.UserService
	TokenService *service.TokenService
	NoteService  *service.NoteService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain: request logging outermost, then the
	// catch-all that turns panics into a bare 500.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerNotes()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	signupHandler := &SignupHandler{UserService: r.UserService}
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	r.Mux.Handle("POST /user/signup", signupHandler)
	r.Mux.Handle("POST /user/login", loginHandler)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	// Every note operation sits behind the authentication gate; the
	// service layer then scopes each query by the resolved identity.
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /notes", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
	r.Mux.Handle("POST /notes", httpx.Chain(http.HandlerFunc(h.HandleCreate), authn))
	r.Mux.Handle("GET /notes/search", httpx.Chain(http.HandlerFunc(h.HandleSearch), authn))
	r.Mux.Handle("PUT /notes/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), authn))
	r.Mux.Handle("DELETE /notes/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
