package refcode

import (
	"context"
	"fmt"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// Lookup reports whether a code is already assigned.
// Satisfied by repository.UserTx so allocation runs inside the caller's transaction.
type Lookup interface {
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
}

// Resolver allocates codes that are not yet taken
type Resolver struct {
	gen         Generator
	maxAttempts int
}

// NewResolver creates a resolver bounded by domain.MaxCodeAttempts
func NewResolver(gen Generator) *Resolver {
	return &Resolver{gen: gen, maxAttempts: domain.MaxCodeAttempts}
}

// Allocate returns a code that lookup does not know about.
// Fails with domain.ErrExhaustedAttempts once every attempt collided.
func (r *Resolver) Allocate(ctx context.Context, lookup Lookup) (string, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		code := r.gen.Generate()
		taken, err := lookup.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if !taken {
			return code, nil
		}
		log.Debug("Referral code collision", "attempt", attempt)
	}

	log.Error("Referral code space exhausted", "attempts", r.maxAttempts)
	return "", fmt.Errorf("%w: %d attempts", domain.ErrExhaustedAttempts, r.maxAttempts)
}
