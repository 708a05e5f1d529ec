package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ReferralBot_Go/internal/config"
	"github.com/osse101/ReferralBot_Go/internal/economy"
	"github.com/osse101/ReferralBot_Go/internal/engine"
	"github.com/osse101/ReferralBot_Go/internal/refcode"
	"github.com/osse101/ReferralBot_Go/internal/referral"
	"github.com/osse101/ReferralBot_Go/internal/repository"
	"github.com/osse101/ReferralBot_Go/internal/retry"
	"github.com/osse101/ReferralBot_Go/internal/user"
)

// NewEngine wires the directory, linker and ledger over one store
func NewEngine(cfg *config.Config, repo repository.User) (*engine.Engine, error) {
	retryCfg := retry.Config{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
	}
	if err := retryCfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidRetryConfig, err)
	}

	ledger := economy.NewLedger(repo)
	users := user.NewService(repo, refcode.NewResolver(refcode.NewGenerator()), cfg.BotUsername)

	referrals, err := referral.NewService(repo, ledger, cfg.ReferralBonus)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateReferrals, err)
	}

	slog.Info(LogMsgEngineReady,
		"referral_bonus", cfg.ReferralBonus,
		"retry_max_attempts", retryCfg.MaxAttempts,
		"retry_initial_delay", retryCfg.InitialDelay)

	return engine.New(users, referrals, ledger, retryCfg), nil
}
