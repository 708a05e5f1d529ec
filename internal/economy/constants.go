package economy

// Error message formats
const (
	ErrMsgInsufficientBalanceFmt = "%s has %d coins, delta %d"
	ErrMsgBalanceOverflowFmt     = "crediting %d to %s would overflow the balance"
	ErrMsgLoadUserFmt            = "failed to load user %s: %w"
	ErrMsgUpdateBalanceFmt       = "failed to update balance for %s: %w"
)

// Log messages
const (
	LogMsgCreditApplied  = "Credit applied"
	LogMsgCreditRejected = "Credit rejected"
)
