package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

const userColumns = `external_id, username, first_name, last_name, coins, total_coins,
	referral_code, referred_by, level, created_at, last_active`

const (
	queryGetUser = `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`

	queryGetUserForUpdate = queryGetUser + ` FOR UPDATE`

	queryGetUserByCode = `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`

	queryCodeExists = `SELECT EXISTS(SELECT 1 FROM users WHERE referral_code = $1)`

	queryInsertUser = `
		INSERT INTO users (external_id, username, first_name, last_name, referral_code, level, created_at, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING created_at`

	queryUpdateProfile = `
		UPDATE users SET
			username    = COALESCE($2, username),
			first_name  = COALESCE($3, first_name),
			last_name   = COALESCE($4, last_name),
			last_active = NOW()
		WHERE external_id = $1
		RETURNING ` + userColumns

	querySetReferredBy = `UPDATE users SET referred_by = $2 WHERE external_id = $1 AND referred_by IS NULL`

	queryAddReferral = `INSERT INTO referrals (referrer_id, referred_id) VALUES ($1, $2)`

	queryUpdateBalance = `UPDATE users SET coins = $2, total_coins = $3, level = $4 WHERE external_id = $1`

	queryGetReferrals = `SELECT referred_id FROM referrals WHERE referrer_id = $1 ORDER BY created_at, referred_id`

	queryGetFriends = `
		SELECT u.external_id, u.username, u.first_name, u.last_name, u.coins, u.total_coins, u.level
		FROM referrals r
		JOIN users u ON u.external_id = r.referred_id
		WHERE r.referrer_id = $1
		ORDER BY u.total_coins DESC, u.external_id`
)

// querier is satisfied by pgx.Tx and *pgxpool.Conn
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements repository.User for PostgreSQL
type UserRepository struct {
	db             *pgxpool.Pool
	acquireTimeout time.Duration
}

var _ repository.User = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
// acquireTimeout bounds the wait for a pooled connection.
func NewUserRepository(db *pgxpool.Pool, acquireTimeout time.Duration) *UserRepository {
	return &UserRepository{db: db, acquireTimeout: acquireTimeout}
}

// acquire waits at most acquireTimeout for a connection
func (r *UserRepository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	defer cancel()

	conn, err := r.db.Acquire(acquireCtx)
	if err != nil {
		return nil, classifyError(fmt.Errorf("%s: %w", ErrMsgFailedToAcquireConnection, err))
	}
	return conn, nil
}

// WithTx runs fn in one transaction on a dedicated connection.
// Once the transaction has begun, caller cancellation no longer applies:
// it runs to commit or rollback.
func (r *UserRepository) WithTx(ctx context.Context, fn repository.TxFunc) error {
	conn, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	txCtx := context.WithoutCancel(ctx)
	err = pgx.BeginFunc(txCtx, conn, func(tx pgx.Tx) error {
		return fn(&userTx{q: tx})
	})
	return classifyError(err)
}

func (r *UserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	user, err := getUser(ctx, conn, queryGetUser, externalID)
	if err != nil {
		return nil, classifyError(err)
	}
	return user, nil
}

func (r *UserRepository) GetFriends(ctx context.Context, externalID string) ([]domain.Friend, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, queryGetFriends, externalID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("%s: %w", ErrMsgFailedToLoadFriends, err))
	}

	friends, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Friend, error) {
		var (
			f                             domain.Friend
			username, firstName, lastName *string
		)
		if err := row.Scan(&f.ExternalID, &username, &firstName, &lastName, &f.Coins, &f.TotalCoins, &f.Level); err != nil {
			return f, err
		}
		f.Username = deref(username)
		f.FirstName = deref(firstName)
		f.LastName = deref(lastName)
		return f, nil
	})
	if err != nil {
		return nil, classifyError(fmt.Errorf("%s: %w", ErrMsgFailedToLoadFriends, err))
	}
	return friends, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return classifyError(r.db.Ping(ctx))
}

// userTx implements repository.UserTx on an open transaction
type userTx struct {
	q querier
}

var _ repository.UserTx = (*userTx)(nil)

func (t *userTx) GetUserForUpdate(ctx context.Context, externalID string) (*domain.User, error) {
	return getUser(ctx, t.q, queryGetUserForUpdate, externalID)
}

func (t *userTx) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return getUser(ctx, t.q, queryGetUserByCode, code)
}

func (t *userTx) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := t.q.QueryRow(ctx, queryCodeExists, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckCode, err)
	}
	return exists, nil
}

func (t *userTx) InsertUser(ctx context.Context, user *domain.User) (bool, error) {
	err := t.q.QueryRow(ctx, queryInsertUser,
		user.ExternalID,
		nullable(user.Username),
		nullable(user.FirstName),
		nullable(user.LastName),
		user.ReferralCode,
		user.Level,
		user.CreatedAt,
		user.LastActive,
	).Scan(&user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	return true, nil
}

func (t *userTx) UpdateProfile(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, error) {
	row := t.q.QueryRow(ctx, queryUpdateProfile, externalID, profile.Username, profile.FirstName, profile.LastName)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProfile, err)
	}
	if user.Referrals, err = loadReferrals(ctx, t.q, externalID); err != nil {
		return nil, err
	}
	return user, nil
}

func (t *userTx) SetReferredBy(ctx context.Context, externalID, referrerID string) error {
	tag, err := t.q.Exec(ctx, querySetReferredBy, externalID, referrerID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetReferrer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, externalID)
	}
	return nil
}

func (t *userTx) AddReferral(ctx context.Context, referrerID, referredID string) error {
	_, err := t.q.Exec(ctx, queryAddReferral, referrerID, referredID)
	if isUniqueViolation(err, "") {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, referredID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddReferral, err)
	}
	return nil
}

func (t *userTx) UpdateBalance(ctx context.Context, balance domain.Balance) error {
	tag, err := t.q.Exec(ctx, queryUpdateBalance, balance.ExternalID, balance.Coins, balance.TotalCoins, balance.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, balance.ExternalID)
	}
	return nil
}

// ---- helpers ----

func getUser(ctx context.Context, q querier, query, key string) (*domain.User, error) {
	user, err := scanUser(q.QueryRow(ctx, query, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	if user.Referrals, err = loadReferrals(ctx, q, user.ExternalID); err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u                             domain.User
		username, firstName, lastName *string
	)
	err := row.Scan(
		&u.ExternalID,
		&username,
		&firstName,
		&lastName,
		&u.Coins,
		&u.TotalCoins,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.Level,
		&u.CreatedAt,
		&u.LastActive,
	)
	if err != nil {
		return nil, err
	}
	u.Username = deref(username)
	u.FirstName = deref(firstName)
	u.LastName = deref(lastName)
	return &u, nil
}

func loadReferrals(ctx context.Context, q querier, externalID string) ([]string, error) {
	rows, err := q.Query(ctx, queryGetReferrals, externalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadReferrals, err)
	}
	referrals, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadReferrals, err)
	}
	if referrals == nil {
		referrals = []string{}
	}
	return referrals, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
