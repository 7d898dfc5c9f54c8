package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUsernameTaken is returned when registering a username that exists.
	ErrUsernameTaken = errors.New("username_taken")

	// ErrUserNotFound is returned for lookups of unknown usernames.
	ErrUserNotFound = errors.New("user_not_found")

	// ErrMessageNotFound is returned for lookups of unknown message ids.
	ErrMessageNotFound = errors.New("message_not_found")

	// ErrUnknownRecipient is returned when sending to a username that does
	// not exist.
	ErrUnknownRecipient = errors.New("unknown_recipient")

	// ErrForbidden is returned when the authenticated identity is not
	// allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for structurally bad input (missing
	// username, empty body, malformed id).
	ErrInvalidInput = errors.New("invalid_input")
)
