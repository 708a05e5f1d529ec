package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the
// handler should return.
//
// Example usage:
//
//	var req CreditCoinsRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpCreditCoins); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest, domain.KindInvalidInput)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Kind:   domain.KindInvalidInput,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// GetPathParam retrieves a required chi URL parameter.
// If it is missing the response has already been written and ok is false.
func GetPathParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s path parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, paramName), domain.KindInvalidInput)
		return "", false
	}
	return value, true
}
