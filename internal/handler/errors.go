package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidRequestFormat  = "Invalid request format"
)

// TagExternalID is the validation tag for caller supplied user ids
const TagExternalID = "externalid"

// Operation names used in logs
const (
	OpGetOrCreateUser = "Get or create user"
	OpGetUserView     = "Get user view"
	OpApplyReferral   = "Apply referral"
	OpCreditCoins     = "Credit coins"
)

const (
	LogMsgNotifyFailed = "Failed to notify referrer"
)
