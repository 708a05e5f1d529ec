package notify

// Notification results used as metric labels
const (
	ResultSent   = "sent"
	ResultFailed = "failed"
	ResultLogged = "logged"
)

const (
	MsgReferralBonusFmt = "A friend joined with your referral link! You both received %d coins."

	LogMsgNotificationSkipped = "Notification not delivered, no bot token configured"

	ErrMsgInvalidChatID   = "invalid chat id"
	ErrMsgCreateBotFailed = "failed to create telegram bot"
	ErrMsgSendFailed      = "failed to send telegram message"
)
