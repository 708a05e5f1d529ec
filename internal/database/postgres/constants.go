package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeSerializationFailure is raised when concurrent transactions cannot be serialized
	PgErrorCodeSerializationFailure = "40001"
	// PgErrorCodeDeadlockDetected is raised when the server breaks a lock cycle
	PgErrorCodeDeadlockDetected = "40P01"
	// PgErrorCodeLockNotAvailable is raised by NOWAIT locks and lock_timeout
	PgErrorCodeLockNotAvailable = "55P03"
	// PgErrorCodeQueryCanceled is raised by statement_timeout
	PgErrorCodeQueryCanceled = "57014"
)

// PostgreSQL error classes treated as the server being unavailable
const (
	PgErrorClassConnectionException  = "08"
	PgErrorClassInsufficientResource = "53"
	PgErrorClassOperatorIntervention = "57P"
)

// Constraint names from migrations
const (
	ConstraintReferralsReferredOnce = "referrals_referred_once"
	ConstraintReferralsPkey         = "referrals_pkey"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToAcquireConnection = "failed to acquire connection"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToUpdateProfile     = "failed to update profile"
	ErrMsgFailedToSetReferrer       = "failed to set referrer"
	ErrMsgFailedToAddReferral       = "failed to add referral"
	ErrMsgFailedToUpdateBalance     = "failed to update balance"
	ErrMsgFailedToLoadReferrals     = "failed to load referrals"
	ErrMsgFailedToLoadFriends       = "failed to load friends"
	ErrMsgFailedToCheckCode         = "failed to check referral code"
)
