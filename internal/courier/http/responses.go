package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/courier/internal/courier/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
)

// ErrorResponse is the JSON error envelope for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// writeServiceError maps service-layer sentinel errors onto user-facing
// status codes. Anything unrecognised is an internal failure: logged with
// its cause, answered without it.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_credentials",
			ErrorDescription: "Invalid username/password",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
			Error: "forbidden",
		})
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "No such user",
		})
	case errors.Is(err, service.ErrMessageNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "No such message",
		})
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "username_taken",
			ErrorDescription: "Username is already registered",
		})
	case errors.Is(err, service.ErrUnknownRecipient):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:            "unknown_recipient",
			ErrorDescription: "Recipient does not exist",
		})
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:            "invalid_input",
			ErrorDescription: err.Error(),
		})
	default:
		log.Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "server_error",
		})
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}
