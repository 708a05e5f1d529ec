// Package notify delivers short user-facing messages after engine
// operations succeed. Delivery failures never affect engine results.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/metrics"
)

// Notifier sends text to a chat identified by the user's external ID
type Notifier interface {
	Notify(ctx context.Context, chatID, text string) error
}

// ErrInvalidChatID is returned when an external ID is not a Telegram chat ID
var ErrInvalidChatID = errors.New(ErrMsgInvalidChatID)

// ReferralBonusText is the message sent to a referrer after a successful link
func ReferralBonusText(result *domain.ReferralResult) string {
	return fmt.Sprintf(MsgReferralBonusFmt, result.Bonus)
}

// LogNotifier only logs messages. Used when no bot token is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(ctx context.Context, chatID, text string) error {
	logger.FromContext(ctx).Info(LogMsgNotificationSkipped, "chat_id", chatID, "text", text)
	metrics.NotificationsTotal.WithLabelValues(ResultLogged).Inc()
	return nil
}

// messageSender is the part of *telego.Bot used for delivery
type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramNotifier sends messages through the Telegram Bot API
type TelegramNotifier struct {
	bot messageSender
}

// NewTelegramNotifier creates a notifier for the given bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateBotFailed, err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, chatID, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(ResultFailed).Inc()
		return fmt.Errorf("%w: %q", ErrInvalidChatID, chatID)
	}

	if _, err := n.bot.SendMessage(ctx, tu.Message(tu.ID(id), text)); err != nil {
		metrics.NotificationsTotal.WithLabelValues(ResultFailed).Inc()
		return fmt.Errorf("%s: %w", ErrMsgSendFailed, err)
	}

	metrics.NotificationsTotal.WithLabelValues(ResultSent).Inc()
	return nil
}

// New returns a TelegramNotifier when token is set and a LogNotifier otherwise
func New(token string) (Notifier, error) {
	if token == "" {
		return NewLogNotifier(), nil
	}
	return NewTelegramNotifier(token)
}
