package main

import (
	"io"

	"github.com/osse101/ReferralBot_Go/internal/bootstrap"
	"github.com/osse101/ReferralBot_Go/internal/config"
)

// initLogger installs the process logger and returns the log file closer
func initLogger(cfg *config.Config) io.Closer {
	return bootstrap.SetupLogger(cfg)
}
