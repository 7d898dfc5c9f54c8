package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/internal/courier/store"
	"github.com/aussiebroadwan/courier/pkg/cryptox"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// DirectoryService manages user records: registration, credential checks,
// profile lookups and mailbox listings.
type DirectoryService struct {
	Store store.Store
	Guard Guard
}

// RegisterParams are the fields a new user signs up with.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register persists a new user with a freshly hashed password.
func (s *DirectoryService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" || p.Password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		Username:     p.Username,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		JoinAt:       time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "username", u.Username)
	return u, nil
}

// Authenticate reports whether username/password is a valid pair. An unknown
// username and a wrong password are indistinguishable: both return false.
// An error is only returned for store or hash failures.
func (s *DirectoryService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return false, nil
		}
		// Malformed stored hash is an internal failure, not a verdict.
		return false, fmt.Errorf("verify password for %q: %w", username, err)
	}
	return true, nil
}

// TouchLogin stamps last_login_at with the current time and returns the
// stored value.
func (s *DirectoryService) TouchLogin(ctx context.Context, username string) (time.Time, error) {
	at, err := s.Store.Users().TouchLastLogin(ctx, username, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return time.Time{}, ErrUserNotFound
		}
		return time.Time{}, err
	}
	return at, nil
}

// List returns the public profile of every user.
func (s *DirectoryService) List(ctx context.Context, id domain.Identity) ([]domain.Profile, error) {
	if !s.Guard.CanBrowseUsers(id) {
		return nil, ErrForbidden
	}
	return s.Store.Users().ListUsers(ctx)
}

// Get returns the detail projection for a username.
func (s *DirectoryService) Get(ctx context.Context, id domain.Identity, username string) (domain.Detail, error) {
	if !s.Guard.CanBrowseUsers(id) {
		return domain.Detail{}, ErrForbidden
	}
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Detail{}, ErrUserNotFound
		}
		return domain.Detail{}, err
	}
	return u.Detail(), nil
}

// MessagesTo returns username's inbox, every message addressed to them,
// joined with the sender's profile.
func (s *DirectoryService) MessagesTo(ctx context.Context, id domain.Identity, username string) ([]domain.InboxEntry, error) {
	if !s.Guard.CanBrowseMailbox(id, username) {
		return nil, ErrForbidden
	}
	return s.Store.Users().ListInbox(ctx, username)
}

// MessagesFrom returns username's outbox, every message they authored,
// joined with the recipient's profile.
func (s *DirectoryService) MessagesFrom(ctx context.Context, id domain.Identity, username string) ([]domain.OutboxEntry, error) {
	if !s.Guard.CanBrowseMailbox(id, username) {
		return nil, ErrForbidden
	}
	return s.Store.Users().ListOutbox(ctx, username)
}
