package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/internal/courier/store"
	"github.com/aussiebroadwan/courier/pkg/idx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// LedgerService manages message records: sends, detail reads and the
// unread→read transition. Every operation takes the authenticated identity
// and runs it through the guard before touching the store.
type LedgerService struct {
	Store store.Store
	Guard Guard
}

// Send creates a message from the authenticated identity. The sender is
// always the identity, never client-supplied, so sends cannot be spoofed.
func (s *LedgerService) Send(ctx context.Context, from domain.Identity, to, body string) (domain.Message, error) {
	if from.IsAnonymous() {
		return domain.Message{}, ErrForbidden
	}

	to = strings.TrimSpace(to)
	if to == "" || body == "" {
		return domain.Message{}, fmt.Errorf("%w: to_username and body are required", ErrInvalidInput)
	}

	m := domain.Message{
		ID:           idx.New(),
		FromUsername: from.String(),
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}

	if err := s.Store.Messages().CreateMessage(ctx, m); err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Message{}, fmt.Errorf("%w: %q", ErrUnknownRecipient, to)
		}
		return domain.Message{}, err
	}

	slogx.FromContext(ctx).Info("message sent",
		"id", m.ID.String(),
		"from", m.FromUsername,
		"to", m.ToUsername,
	)
	return m, nil
}

// Get returns a message by id, restricted to its sender and recipient.
// ErrForbidden deliberately carries no message content.
func (s *LedgerService) Get(ctx context.Context, id domain.Identity, msgID idx.ID) (domain.Message, error) {
	m, err := s.Store.Messages().GetMessageByID(ctx, msgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Message{}, ErrMessageNotFound
		}
		return domain.Message{}, err
	}

	if !s.Guard.CanViewMessage(id, m) {
		return domain.Message{}, ErrForbidden
	}
	return m, nil
}

// Detail returns the message joined with both participants' profiles,
// subject to the same sender-or-recipient rule as Get.
func (s *LedgerService) Detail(ctx context.Context, id domain.Identity, msgID idx.ID) (domain.MessageDetail, error) {
	m, err := s.Get(ctx, id, msgID)
	if err != nil {
		return domain.MessageDetail{}, err
	}

	from, err := s.Store.Users().GetUserByUsername(ctx, m.FromUsername)
	if err != nil {
		return domain.MessageDetail{}, err
	}
	to, err := s.Store.Users().GetUserByUsername(ctx, m.ToUsername)
	if err != nil {
		return domain.MessageDetail{}, err
	}

	return domain.MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: from.Profile(),
		ToUser:   to.Profile(),
	}, nil
}

// MarkAsRead transitions a message to read. Only the recipient may do this.
// The operation is idempotent: marking an already-read message returns it
// with the original read_at untouched.
func (s *LedgerService) MarkAsRead(ctx context.Context, id domain.Identity, msgID idx.ID) (domain.Message, error) {
	m, err := s.Store.Messages().GetMessageByID(ctx, msgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Message{}, ErrMessageNotFound
		}
		return domain.Message{}, err
	}

	if !s.Guard.CanMarkRead(id, m) {
		return domain.Message{}, ErrForbidden
	}

	if m.IsRead() {
		return m, nil
	}

	now := time.Now().UTC()
	marked, err := s.Store.Messages().MarkMessageRead(ctx, msgID, now)
	if err != nil {
		return domain.Message{}, err
	}
	if !marked {
		// Lost a benign race with a concurrent mark; the stored stamp wins.
		return s.Store.Messages().GetMessageByID(ctx, msgID)
	}

	m.ReadAt = &now
	slogx.FromContext(ctx).Info("message read", "id", m.ID.String(), "to", m.ToUsername)
	return m, nil
}
