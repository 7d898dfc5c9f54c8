package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/service"
	"github.com/aussiebroadwan/courier/internal/courier/store"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/jwtx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	Directory *service.DirectoryService
	Ledger    *service.LedgerService
	Tokens    *service.TokenService
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

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerMessages()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{Directory: r.Directory, Tokens: r.Tokens}
	loginHandler := &LoginHandler{Directory: r.Directory, Tokens: r.Tokens}

	r.Mux.Handle("POST /v1/auth/register", registerHandler)
	r.Mux.Handle("POST /v1/auth/login", loginHandler)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Directory: r.Directory}

	// Browsing routes accept anonymous callers; the guard policy decides
	// per deployment whether they get anything back. A bearer token, when
	// present, still has to be valid.
	browse := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.OptionalAuthnMiddleware(r.verifier))
	}

	r.Mux.Handle("GET /v1/users", browse(h.HandleList))
	r.Mux.Handle("GET /v1/users/{username}", browse(h.HandleGet))
	r.Mux.Handle("GET /v1/users/{username}/to", browse(h.HandleInbox))
	r.Mux.Handle("GET /v1/users/{username}/from", browse(h.HandleOutbox))
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{Ledger: r.Ledger}

	// Message routes always require an authenticated identity.
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.AuthnMiddleware(r.verifier))
	}

	r.Mux.Handle("POST /v1/messages", secured(h.HandleSend))
	r.Mux.Handle("GET /v1/messages/{id}", secured(h.HandleGet))
	r.Mux.Handle("POST /v1/messages/{id}/read", secured(h.HandleMarkRead))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
