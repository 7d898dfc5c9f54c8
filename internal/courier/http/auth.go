package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/courier/internal/courier/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

type RegisterHandler struct {
	Directory *service.DirectoryService
	Tokens    *service.TokenService
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ServeHTTP registers a new user, stamps their first login, and returns a
// bearer token so registration doubles as login.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.Directory.Register(ctx, service.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	if _, err := h.Directory.TouchLogin(ctx, u.Username); err != nil {
		writeServiceError(w, log, err)
		return
	}

	token, err := h.Tokens.Mint(u.Username)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, TokenResponse{Token: token})
}

type LoginHandler struct {
	Directory *service.DirectoryService
	Tokens    *service.TokenService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP authenticates a username/password pair and returns a bearer
// token. The response never reveals whether the username existed.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	ok, err := h.Directory.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if !ok {
		log.Info("login rejected", "username", req.Username)
		writeServiceError(w, log, service.ErrInvalidCredentials)
		return
	}

	if _, err := h.Directory.TouchLogin(ctx, req.Username); err != nil {
		writeServiceError(w, log, err)
		return
	}

	token, err := h.Tokens.Mint(req.Username)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
