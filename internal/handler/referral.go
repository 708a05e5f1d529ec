package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/ReferralBot_Go/internal/engine"
	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/notify"
)

// NotifyTimeout bounds the referrer notification sent after a link
const NotifyTimeout = 5 * time.Second

// ApplyReferralRequest links ExternalID to the owner of Code.
// Code may be given bare or in its "ref_" deep-link form.
type ApplyReferralRequest struct {
	Code       string `json:"code" validate:"required,max=32"`
	ExternalID string `json:"external_id" validate:"required,max=64,externalid"`
}

// HandleApplyReferral links a new user to a referrer and credits both.
// The referrer is notified afterwards; notification failures are only logged.
func HandleApplyReferral(svc engine.Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ApplyReferralRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpApplyReferral); err != nil {
			return
		}

		result, err := svc.ApplyReferral(r.Context(), req.Code, req.ExternalID)
		if err != nil {
			respondServiceError(w, r, OpApplyReferral, err)
			return
		}

		log := logger.FromContext(r.Context())
		log.Info("Referral applied",
			"referrer_id", result.ReferrerID,
			"referred_id", result.ReferredID,
			"bonus", result.Bonus)

		ctx, cancel := context.WithTimeout(r.Context(), NotifyTimeout)
		defer cancel()
		if err := notifier.Notify(ctx, result.ReferrerID, notify.ReferralBonusText(result)); err != nil {
			log.Warn(LogMsgNotifyFailed, "referrer_id", result.ReferrerID, "error", err)
		}

		respondJSON(w, http.StatusOK, result)
	}
}
