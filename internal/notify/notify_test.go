package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ReferralBot_Go/internal/domain"
)

type recordingSender struct {
	sent []*telego.SendMessageParams
	err  error
}

func (s *recordingSender) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, params)
	return &telego.Message{}, nil
}

func TestTelegramNotifier_Notify(t *testing.T) {
	t.Run("sends to numeric chat id", func(t *testing.T) {
		sender := &recordingSender{}
		n := &TelegramNotifier{bot: sender}

		err := n.Notify(context.Background(), "123456789", "hello")

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, int64(123456789), sender.sent[0].ChatID.ID)
		assert.Equal(t, "hello", sender.sent[0].Text)
	})

	t.Run("rejects non numeric chat id", func(t *testing.T) {
		sender := &recordingSender{}
		n := &TelegramNotifier{bot: sender}

		err := n.Notify(context.Background(), "user-abc", "hello")

		assert.ErrorIs(t, err, ErrInvalidChatID)
		assert.Empty(t, sender.sent)
	})

	t.Run("wraps send failure", func(t *testing.T) {
		sendErr := errors.New("telegram: bot was blocked by the user")
		n := &TelegramNotifier{bot: &recordingSender{err: sendErr}}

		err := n.Notify(context.Background(), "42", "hello")

		assert.ErrorIs(t, err, sendErr)
		assert.Contains(t, err.Error(), ErrMsgSendFailed)
	})
}

func TestNew(t *testing.T) {
	n, err := New("")

	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)
	assert.NoError(t, n.Notify(context.Background(), "anything", "text"))
}

func TestReferralBonusText(t *testing.T) {
	text := ReferralBonusText(&domain.ReferralResult{ReferrerID: "1", ReferredID: "2", Bonus: 5000})

	assert.Contains(t, text, "5000")
}
