package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response. Kind is the error taxonomy
// kind so callers can branch without parsing the message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing the header so an encoding failure can still be reported
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message, kind string) {
	respondJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

// respondServiceError logs err and writes the mapped status, message and kind
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	kind := domain.KindOf(err)
	if kind == "" {
		kind = domain.KindInternal
	}

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "kind", kind)
	} else {
		log.Warn(opName+" rejected", "error", err, "kind", kind)
	}

	respondError(w, status, message, kind)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."
	ErrMsgTryAgainError      = "Your request collided with another one. Please try again later."

	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgInvalidCodeError         = "That referral code doesn't exist"
	ErrMsgSelfReferralError        = "You can't use your own referral code"
	ErrMsgAlreadyReferredError     = "You have already joined with a referral code"
	ErrMsgInsufficientBalanceError = "Not enough coins"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Logical failures get a specific message; store failures only ever get a
// generic retry-later message.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrInvalidCode):
		return http.StatusBadRequest, ErrMsgInvalidCodeError
	case errors.Is(err, domain.ErrSelfReferral):
		return http.StatusBadRequest, ErrMsgSelfReferralError
	case errors.Is(err, domain.ErrAlreadyReferred):
		return http.StatusConflict, ErrMsgAlreadyReferredError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgTryAgainError
	case errors.Is(err, domain.ErrDBUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
