// Package fake provides an in-memory transactional store for tests.
package fake

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

// Store is a stateful fake of repository.User.
// Transactions are serialized by a store-wide lock and work on a copy of
// the state that is swapped in on commit, so a failed closure leaves
// nothing behind.
type Store struct {
	mu    sync.Mutex
	state state
	now   func() time.Time

	// fault injection
	txFailures   []error
	callFailures map[string][]error
	preempted    map[string]domain.User

	txCount   int
	commits   int
	rollbacks int
}

type state struct {
	users     map[string]domain.User
	referrals map[string][]string // referrer -> referred, in link order
	referrer  map[string]string   // referred -> referrer
}

var _ repository.User = (*Store)(nil)

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		state: state{
			users:     make(map[string]domain.User),
			referrals: make(map[string][]string),
			referrer:  make(map[string]string),
		},
		now:          time.Now,
		callFailures: make(map[string][]error),
		preempted:    make(map[string]domain.User),
	}
}

func (s state) clone() state {
	c := state{
		users:     make(map[string]domain.User, len(s.users)),
		referrals: make(map[string][]string, len(s.referrals)),
		referrer:  maps.Clone(s.referrer),
	}
	for id, u := range s.users {
		c.users[id] = copyUser(u)
	}
	for id, list := range s.referrals {
		c.referrals[id] = slices.Clone(list)
	}
	return c
}

func copyUser(u domain.User) domain.User {
	if u.ReferredBy != nil {
		ref := *u.ReferredBy
		u.ReferredBy = &ref
	}
	u.Referrals = slices.Clone(u.Referrals)
	return u
}

func (s state) view(id string) (*domain.User, bool) {
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	out := copyUser(u)
	out.Referrals = slices.Clone(s.referrals[id])
	if out.Referrals == nil {
		out.Referrals = []string{}
	}
	return &out, true
}

// Seed stores a committed user, bypassing transactions
func (s *Store) Seed(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Level == 0 {
		u.Level = domain.MinLevel
	}
	stored := copyUser(u)
	stored.Referrals = nil
	s.state.users[u.ExternalID] = stored
	for _, referred := range u.Referrals {
		s.state.referrals[u.ExternalID] = append(s.state.referrals[u.ExternalID], referred)
		s.state.referrer[referred] = u.ExternalID
	}
}

// FailNextTx makes the next len(errs) WithTx calls fail before the closure runs
func (s *Store) FailNextTx(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txFailures = append(s.txFailures, errs...)
}

// FailCall makes the next call of the named UserTx method return err
func (s *Store) FailCall(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callFailures[method] = append(s.callFailures[method], err)
}

// PreemptInsert simulates a concurrent transaction that commits u right
// before the next InsertUser for the same external ID.
func (s *Store) PreemptInsert(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preempted[u.ExternalID] = u
}

// SetClock overrides the time source
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Stats returns transaction counters
func (s *Store) Stats() (txs, commits, rollbacks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount, s.commits, s.rollbacks
}

// UserCount returns the number of committed users
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.users)
}

// WithTx runs fn against a working copy and commits it when fn succeeds
func (s *Store) WithTx(ctx context.Context, fn repository.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDBUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCount++
	if len(s.txFailures) > 0 {
		err := s.txFailures[0]
		s.txFailures = s.txFailures[1:]
		return err
	}

	tx := &Tx{store: s, state: s.state.clone()}
	if err := fn(tx); err != nil {
		s.rollbacks++
		return err
	}
	s.state = tx.state
	s.commits++
	return nil
}

func (s *Store) GetUserByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.view(externalID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, externalID)
	}
	return u, nil
}

func (s *Store) GetFriends(_ context.Context, externalID string) ([]domain.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	friends := make([]domain.Friend, 0, len(s.state.referrals[externalID]))
	for _, id := range s.state.referrals[externalID] {
		u := s.state.users[id]
		friends = append(friends, domain.Friend{
			ExternalID: u.ExternalID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Coins:      u.Coins,
			TotalCoins: u.TotalCoins,
			Level:      u.Level,
		})
	}
	sort.SliceStable(friends, func(i, j int) bool {
		if friends[i].TotalCoins != friends[j].TotalCoins {
			return friends[i].TotalCoins > friends[j].TotalCoins
		}
		return friends[i].ExternalID < friends[j].ExternalID
	})
	return friends, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Tx is a working copy of the store state
type Tx struct {
	store *Store
	state state
}

var _ repository.UserTx = (*Tx)(nil)

// injected is called with the store lock held
func (t *Tx) injected(method string) error {
	queue := t.store.callFailures[method]
	if len(queue) == 0 {
		return nil
	}
	t.store.callFailures[method] = queue[1:]
	return queue[0]
}

func (t *Tx) GetUserForUpdate(_ context.Context, externalID string) (*domain.User, error) {
	if err := t.injected("GetUserForUpdate"); err != nil {
		return nil, err
	}
	u, ok := t.state.view(externalID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, externalID)
	}
	return u, nil
}

func (t *Tx) GetUserByReferralCode(_ context.Context, code string) (*domain.User, error) {
	if err := t.injected("GetUserByReferralCode"); err != nil {
		return nil, err
	}
	for id, u := range t.state.users {
		if u.ReferralCode == code {
			view, _ := t.state.view(id)
			return view, nil
		}
	}
	return nil, fmt.Errorf("%w: code %s", domain.ErrUserNotFound, code)
}

func (t *Tx) ReferralCodeExists(_ context.Context, code string) (bool, error) {
	if err := t.injected("ReferralCodeExists"); err != nil {
		return false, err
	}
	for _, u := range t.state.users {
		if u.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (t *Tx) InsertUser(_ context.Context, user *domain.User) (bool, error) {
	if err := t.injected("InsertUser"); err != nil {
		return false, err
	}

	if pre, ok := t.store.preempted[user.ExternalID]; ok {
		delete(t.store.preempted, user.ExternalID)
		pre.Referrals = nil
		t.state.users[pre.ExternalID] = copyUser(pre)
		t.store.state.users[pre.ExternalID] = copyUser(pre)
	}

	if _, exists := t.state.users[user.ExternalID]; exists {
		return false, nil
	}
	for _, u := range t.state.users {
		if u.ReferralCode == user.ReferralCode {
			return false, fmt.Errorf("%w: referral code %s already assigned", domain.ErrConflict, user.ReferralCode)
		}
	}

	stored := copyUser(*user)
	stored.Referrals = nil
	t.state.users[user.ExternalID] = stored
	return true, nil
}

func (t *Tx) UpdateProfile(_ context.Context, externalID string, profile domain.Profile) (*domain.User, error) {
	if err := t.injected("UpdateProfile"); err != nil {
		return nil, err
	}
	u, ok := t.state.users[externalID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, externalID)
	}
	u.ApplyProfile(profile)
	u.LastActive = t.store.now()
	t.state.users[externalID] = u
	view, _ := t.state.view(externalID)
	return view, nil
}

func (t *Tx) SetReferredBy(_ context.Context, externalID, referrerID string) error {
	if err := t.injected("SetReferredBy"); err != nil {
		return err
	}
	u, ok := t.state.users[externalID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, externalID)
	}
	if u.ReferredBy != nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, externalID)
	}
	if _, ok := t.state.users[referrerID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, referrerID)
	}
	if externalID == referrerID {
		return fmt.Errorf("%w: %s", domain.ErrSelfReferral, externalID)
	}
	ref := referrerID
	u.ReferredBy = &ref
	t.state.users[externalID] = u
	return nil
}

func (t *Tx) AddReferral(_ context.Context, referrerID, referredID string) error {
	if err := t.injected("AddReferral"); err != nil {
		return err
	}
	if _, ok := t.state.referrer[referredID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, referredID)
	}
	t.state.referrer[referredID] = referrerID
	t.state.referrals[referrerID] = append(t.state.referrals[referrerID], referredID)
	return nil
}

func (t *Tx) UpdateBalance(_ context.Context, balance domain.Balance) error {
	if err := t.injected("UpdateBalance"); err != nil {
		return err
	}
	u, ok := t.state.users[balance.ExternalID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, balance.ExternalID)
	}
	if balance.Coins < 0 || balance.TotalCoins < 0 {
		return fmt.Errorf("negative balance for %s violates check constraint", balance.ExternalID)
	}
	u.Coins = balance.Coins
	u.TotalCoins = balance.TotalCoins
	u.Level = balance.Level
	t.state.users[balance.ExternalID] = u
	return nil
}
