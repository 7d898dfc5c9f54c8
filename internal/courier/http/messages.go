package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/internal/courier/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/idx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

type MessagesHandler struct {
	Ledger *service.LedgerService
}

type sendRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

type sentMessage struct {
	ID           idx.ID     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// HandleSend posts a new message. The sender is the authenticated identity;
// a from_username in the body is ignored.
func (h *MessagesHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	m, err := h.Ledger.Send(ctx, id, req.ToUsername, req.Body)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"message": sentMessage{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}})
}

// HandleGet returns the detail of a message, only to its sender or recipient.
func (h *MessagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	msgID, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, service.ErrMessageNotFound)
		return
	}

	detail, err := h.Ledger.Detail(ctx, id, msgID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": detail})
}

// HandleMarkRead marks a message read. Only the intended recipient may;
// repeats are no-ops returning the original read_at.
func (h *MessagesHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id := domain.Identity(httpx.UsernameFromContext(ctx))

	msgID, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, service.ErrMessageNotFound)
		return
	}

	m, err := h.Ledger.MarkAsRead(ctx, id, msgID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": map[string]any{
		"id":      m.ID,
		"read_at": m.ReadAt,
	}})
}
