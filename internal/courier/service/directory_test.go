package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))

	u, err := d.Register(ctx, RegisterParams{
		Username:  "alice",
		Password:  "hunter2hunter2",
		FirstName: "Alice",
		LastName:  "Example",
		Phone:     "+61400000001",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.False(t, u.JoinAt.IsZero())
	require.Nil(t, u.LastLoginAt)

	// The stored hash must be argon2id PHC, never the plaintext.
	require.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))
	require.NotContains(t, u.PasswordHash, "hunter2hunter2")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))
	registerUser(t, d, "alice")

	_, err := d.Register(ctx, RegisterParams{Username: "alice", Password: "different"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))

	tests := []struct {
		name   string
		params RegisterParams
	}{
		{"no username", RegisterParams{Password: "something"}},
		{"no password", RegisterParams{Username: "alice"}},
		{"whitespace username", RegisterParams{Username: "   ", Password: "something"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Register(ctx, tt.params)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))
	registerUser(t, d, "alice")

	ok, err := d.Authenticate(ctx, "alice", "secret-alice")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = d.Authenticate(ctx, "alice", "wrong-password")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))

	// Unknown user is a false verdict, not an error: callers cannot tell
	// it apart from a wrong password.
	ok, err := d.Authenticate(ctx, "nobody", "anything")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTouchLogin(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))
	registerUser(t, d, "alice")

	first, err := d.TouchLogin(ctx, "alice")
	require.NoError(t, err)
	require.False(t, first.IsZero())

	detail, err := d.Get(ctx, domain.Anonymous, "alice")
	require.NoError(t, err)
	require.NotNil(t, detail.LastLoginAt)

	second, err := d.TouchLogin(ctx, "alice")
	require.NoError(t, err)
	require.GreaterOrEqual(t, second.UnixNano(), first.UnixNano())
}

func TestTouchLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))

	_, err := d.TouchLogin(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))
	registerUser(t, d, "alice")
	registerUser(t, d, "bob")

	users, err := d.List(ctx, domain.Anonymous)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "bob", users[1].Username)

	// The listing projection carries no credential material.
	require.NotEmpty(t, users[0].Phone)
}

func TestGet_UnknownUser(t *testing.T) {
	ctx := context.Background()
	d := newDirectory(t, newTestStore(t))

	_, err := d.Get(ctx, domain.Anonymous, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMailboxes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	d := newDirectory(t, st)
	l := newLedger(t, st)
	registerUser(t, d, "alice")
	registerUser(t, d, "bob")

	_, err := l.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)
	_, err = l.Send(ctx, "bob", "alice", "hello back")
	require.NoError(t, err)

	inbox, err := d.MessagesTo(ctx, domain.Anonymous, "bob")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, "hi", inbox[0].Body)
	require.Equal(t, "alice", inbox[0].FromUser.Username)
	require.Nil(t, inbox[0].ReadAt)

	outbox, err := d.MessagesFrom(ctx, domain.Anonymous, "bob")
	require.NoError(t, err)
	require.Len(t, outbox, 1)
	require.Equal(t, "hello back", outbox[0].Body)
	require.Equal(t, "alice", outbox[0].ToUser.Username)
}

func TestMailboxes_Gated(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	d := &DirectoryService{Store: st, Guard: Guard{GateBrowsing: true}}
	registerUser(t, d, "alice")
	registerUser(t, d, "bob")

	// The owner may read their own mailbox.
	_, err := d.MessagesTo(ctx, "bob", "bob")
	require.NoError(t, err)

	// Everyone else is refused, including other authenticated users.
	_, err = d.MessagesTo(ctx, "alice", "bob")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = d.MessagesTo(ctx, domain.Anonymous, "bob")
	require.ErrorIs(t, err, ErrForbidden)

	// Listings require any authenticated identity.
	_, err = d.List(ctx, domain.Anonymous)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = d.List(ctx, "alice")
	require.NoError(t, err)
}
