package handler

import (
	"net/http"

	"github.com/osse101/ReferralBot_Go/internal/engine"
)

// CreditCoinsRequest applies a signed delta to a user's balance
type CreditCoinsRequest struct {
	ExternalID string `json:"external_id" validate:"required,max=64,externalid"`
	Delta      int64  `json:"delta"`
}

// HandleCreditCoins credits (delta > 0) or debits (delta < 0) a user's coins.
func HandleCreditCoins(svc engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreditCoinsRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpCreditCoins); err != nil {
			return
		}

		balance, err := svc.CreditCoins(r.Context(), req.ExternalID, req.Delta)
		if err != nil {
			respondServiceError(w, r, OpCreditCoins, err)
			return
		}

		respondJSON(w, http.StatusOK, balance)
	}
}
