package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrForeignKey    = errors.New("store: foreign key violation")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByUsername returns the full record including the password hash.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns the public profile of every user. Ordering is by
	// username purely for stable output.
	ListUsers(ctx context.Context) ([]domain.Profile, error)

	// TouchLastLogin sets last_login_at to at and returns the stored value.
	// Returns ErrNotFound when the username does not exist.
	TouchLastLogin(ctx context.Context, username string, at time.Time) (time.Time, error)

	// ListInbox returns messages addressed to username, each joined with the
	// sender's profile.
	ListInbox(ctx context.Context, username string) ([]domain.InboxEntry, error)

	// ListOutbox returns messages authored by username, each joined with the
	// recipient's profile.
	ListOutbox(ctx context.Context, username string) ([]domain.OutboxEntry, error)
}

type Messages interface {
	// CreateMessage inserts a new message (id is provided by app via ULID).
	// Returns ErrForeignKey when the sender or recipient does not exist.
	CreateMessage(ctx context.Context, m domain.Message) error

	// GetMessageByID returns a message by id.
	GetMessageByID(ctx context.Context, id idx.ID) (domain.Message, error)

	// MarkMessageRead stamps read_at iff it is still null. Returns true when
	// this call performed the transition and false when the message was
	// already read, so concurrent marks race benignly: exactly one caller
	// writes and the stored timestamp never moves afterwards.
	MarkMessageRead(ctx context.Context, id idx.ID, at time.Time) (bool, error)
}
