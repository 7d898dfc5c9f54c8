package domain

import (
	"time"

	"github.com/aussiebroadwan/courier/pkg/idx"
)

// Message is the stored message record. ReadAt is nil until the recipient
// marks the message read; once set it never changes again.
type Message struct {
	ID           idx.ID
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
}

// IsRead reports whether the recipient has marked the message read.
func (m Message) IsRead() bool { return m.ReadAt != nil }

// MessageDetail is the full single-message projection: the message joined
// with both participants' profiles.
type MessageDetail struct {
	ID       idx.ID     `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser Profile    `json:"from_user"`
	ToUser   Profile    `json:"to_user"`
}

// InboxEntry is a received message joined with the sender's profile.
type InboxEntry struct {
	ID       idx.ID     `json:"id"`
	FromUser Profile    `json:"from_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}

// OutboxEntry is a sent message joined with the recipient's profile.
type OutboxEntry struct {
	ID     idx.ID     `json:"id"`
	ToUser Profile    `json:"to_user"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
}
