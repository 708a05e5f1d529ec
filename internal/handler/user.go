package handler

import (
	"net/http"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/engine"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// GetOrCreateUserRequest is sent on every contact with a user.
// Profile fields left out of the body keep their stored values.
type GetOrCreateUserRequest struct {
	ExternalID string  `json:"external_id" validate:"required,max=64,externalid"`
	Username   *string `json:"username,omitempty" validate:"omitempty,max=256"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,max=256"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,max=256"`
}

// GetOrCreateUserResponse wraps the user with whether it was just created
type GetOrCreateUserResponse struct {
	Created bool         `json:"created"`
	User    *domain.User `json:"user"`
}

// HandleGetOrCreateUser looks up a user, creating it with a fresh referral code on first contact.
// Responds 201 when the user was created and 200 otherwise.
func HandleGetOrCreateUser(svc engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GetOrCreateUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpGetOrCreateUser); err != nil {
			return
		}

		profile := domain.Profile{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}

		u, created, err := svc.GetOrCreateUser(r.Context(), req.ExternalID, profile)
		if err != nil {
			respondServiceError(w, r, OpGetOrCreateUser, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
			logger.FromContext(r.Context()).Info("User created",
				"external_id", u.ExternalID,
				"referral_code", u.ReferralCode)
		}
		respondJSON(w, status, GetOrCreateUserResponse{Created: created, User: u})
	}
}

// HandleGetUserView returns the user's balances, referral link and friends.
func HandleGetUserView(svc engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		externalID, ok := GetPathParam(r, w, "externalID")
		if !ok {
			return
		}

		view, err := svc.GetUserView(r.Context(), externalID)
		if err != nil {
			respondServiceError(w, r, OpGetUserView, err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}
