package user

// ReferralLinkFmt builds the deep link handed out to users: bot username, code
const ReferralLinkFmt = "https://t.me/%s?start=%s"

// Log messages
const (
	LogMsgUserCreated          = "User created"
	LogMsgInsertConflict       = "User created concurrently, reading existing row"
	LogMsgGetOrCreateFailed    = "GetOrCreate failed"
	LogErrFailedToAllocateCode = "Failed to allocate referral code"
)

// Error message formats
const (
	ErrMsgExternalIDRequired = "external id is required"
	ErrMsgExternalIDTooLong  = "external id exceeds %d characters"
	ErrMsgFieldTooLong       = "%s exceeds %d characters"
)
