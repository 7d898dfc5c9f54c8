package http

import (
	"net/http"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/internal/courier/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

type UsersHandler struct {
	Directory *service.DirectoryService
}

// HandleList returns basic info on all users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	users, err := h.Directory.List(ctx, id)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if users == nil {
		users = []domain.Profile{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// HandleGet returns the detail of a single user.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	user, err := h.Directory.Get(ctx, id, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleInbox returns messages addressed to the user, each with the sender's
// profile attached.
func (h *UsersHandler) HandleInbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	messages, err := h.Directory.MessagesTo(ctx, id, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if messages == nil {
		messages = []domain.InboxEntry{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// HandleOutbox returns messages the user authored, each with the recipient's
// profile attached.
func (h *UsersHandler) HandleOutbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	messages, err := h.Directory.MessagesFrom(ctx, id, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if messages == nil {
		messages = []domain.OutboxEntry{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
