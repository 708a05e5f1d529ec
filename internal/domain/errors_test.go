package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, "", KindOf(nil))
	assert.Equal(t, "", KindOf(errors.New("boom")))
	assert.Equal(t, KindInvalidCode, KindOf(ErrInvalidCode))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("%w: id 42", ErrUserNotFound)))
	assert.Equal(t, KindDBUnavailable, KindOf(fmt.Errorf("%w: %w", ErrDBUnavailable, errors.New("dial tcp: refused"))))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrConflict))
	assert.True(t, IsRetryable(fmt.Errorf("%w: %w", ErrDBUnavailable, errors.New("timeout"))))

	for _, err := range []error{
		ErrUserNotFound,
		ErrInvalidCode,
		ErrSelfReferral,
		ErrAlreadyReferred,
		ErrInsufficientBalance,
		ErrExhaustedAttempts,
		ErrInvalidInput,
		errors.New("syntax error"),
		nil,
	} {
		assert.False(t, IsRetryable(err), "%v must not be retried", err)
	}
}
