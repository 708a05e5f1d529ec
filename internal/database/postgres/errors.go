package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/ReferralBot_Go/internal/domain"
)

// classifyError tags store failures with the domain taxonomy.
// Errors already carrying a domain kind pass through unchanged.
func classifyError(err error) error {
	if err == nil || domain.KindOf(err) != "" {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == PgErrorCodeSerializationFailure,
			pgErr.Code == PgErrorCodeDeadlockDetected,
			pgErr.Code == PgErrorCodeUniqueViolation,
			pgErr.Code == PgErrorCodeLockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case pgErr.Code == PgErrorCodeQueryCanceled,
			strings.HasPrefix(pgErr.Code, PgErrorClassConnectionException),
			strings.HasPrefix(pgErr.Code, PgErrorClassInsufficientResource),
			strings.HasPrefix(pgErr.Code, PgErrorClassOperatorIntervention):
			return fmt.Errorf("%w: %w", domain.ErrDBUnavailable, err)
		}
		// constraint, syntax and data errors are bugs, not outages
		return err
	}

	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", domain.ErrDBUnavailable, err)
	}
	return err
}

// isUnavailable reports failures where the server never answered:
// acquire timeouts, dial errors, dropped connections.
func isUnavailable(err error) bool {
	var netErr net.Error
	return pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &netErr) ||
		isConnectError(err)
}

func isConnectError(err error) bool {
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != PgErrorCodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
