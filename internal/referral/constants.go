package referral

// Log messages
const (
	LogMsgLinkApplied  = "Referral applied"
	LogMsgLinkRejected = "Referral rejected"
)

// Error message formats
const (
	ErrMsgCodeRequired     = "referral code is required"
	ErrMsgUserIDRequired   = "external id is required"
	ErrMsgBonusNotPositive = "referral bonus must be positive, got %d"
	ErrMsgCreditFailedFmt  = "failed to credit %s: %w"
)
