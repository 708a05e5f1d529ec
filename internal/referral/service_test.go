package referral

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/economy"
	"github.com/osse101/ReferralBot_Go/internal/repository/fake"
	"github.com/osse101/ReferralBot_Go/internal/testing/leaktest"
)

const testBonus = 5000

func newTestLinker(t *testing.T, store *fake.Store) Service {
	t.Helper()
	svc, err := NewService(store, economy.NewLedger(store), testBonus)
	require.NoError(t, err)
	return svc
}

func seedPair(store *fake.Store) {
	store.Seed(domain.User{ExternalID: "U1", ReferralCode: "AB12CD"})
	store.Seed(domain.User{ExternalID: "U2", ReferralCode: "ZZ99ZZ"})
}

func mustGet(t *testing.T, store *fake.Store, id string) *domain.User {
	t.Helper()
	u, err := store.GetUserByExternalID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestLink_CreditsBothUsers(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)

	result, err := newTestLinker(t, store).Link(context.Background(), "AB12CD", "U2")

	require.NoError(t, err)
	assert.Equal(t, "U1", result.ReferrerID)
	assert.Equal(t, "U2", result.ReferredID)
	assert.Equal(t, int64(testBonus), result.Bonus)

	referrer := mustGet(t, store, "U1")
	referred := mustGet(t, store, "U2")
	assert.Equal(t, []string{"U2"}, referrer.Referrals)
	require.NotNil(t, referred.ReferredBy)
	assert.Equal(t, "U1", *referred.ReferredBy)
	assert.Equal(t, int64(testBonus), referrer.Coins)
	assert.Equal(t, int64(testBonus), referrer.TotalCoins)
	assert.Equal(t, int64(testBonus), referred.Coins)
	assert.Equal(t, int64(testBonus), referred.TotalCoins)
}

func TestLink_SecondCallIsRejected(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)
	linker := newTestLinker(t, store)
	ctx := context.Background()

	_, err := linker.Link(ctx, "AB12CD", "U2")
	require.NoError(t, err)

	_, err = linker.Link(ctx, "AB12CD", "U2")
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)

	referrer := mustGet(t, store, "U1")
	referred := mustGet(t, store, "U2")
	assert.Equal(t, []string{"U2"}, referrer.Referrals, "referral recorded exactly once")
	assert.Equal(t, int64(testBonus), referrer.Coins)
	assert.Equal(t, int64(testBonus), referred.Coins)
}

func TestLink_AlreadyReferredByAnotherUser(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)
	store.Seed(domain.User{ExternalID: "U3", ReferralCode: "CCCCCC"})
	linker := newTestLinker(t, store)

	_, err := linker.Link(context.Background(), "CCCCCC", "U2")
	require.NoError(t, err)

	_, err = linker.Link(context.Background(), "AB12CD", "U2")
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)
	assert.Zero(t, mustGet(t, store, "U1").Coins)
}

func TestLink_SelfReferralMutatesNothing(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)

	_, err := newTestLinker(t, store).Link(context.Background(), "AB12CD", "U1")

	assert.ErrorIs(t, err, domain.ErrSelfReferral)
	u := mustGet(t, store, "U1")
	assert.Nil(t, u.ReferredBy)
	assert.Empty(t, u.Referrals)
	assert.Zero(t, u.Coins)
	_, commits, _ := store.Stats()
	assert.Zero(t, commits)
}

func TestLink_InvalidCodeMutatesNothing(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)

	_, err := newTestLinker(t, store).Link(context.Background(), "nonexistent-code", "U2")

	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	assert.Zero(t, mustGet(t, store, "U1").Coins)
	assert.Zero(t, mustGet(t, store, "U2").Coins)
	assert.Nil(t, mustGet(t, store, "U2").ReferredBy)
}

func TestLink_ErrorPrecedence(t *testing.T) {
	store := fake.NewStore()
	referrer := "U1"
	store.Seed(domain.User{ExternalID: "U1", ReferralCode: "AB12CD", ReferredBy: nil})
	store.Seed(domain.User{ExternalID: "U2", ReferralCode: "ZZ99ZZ", ReferredBy: &referrer})
	linker := newTestLinker(t, store)

	// U1 referring itself is a self referral even though U1 is not yet referred
	_, err := linker.Link(context.Background(), "AB12CD", "U1")
	assert.ErrorIs(t, err, domain.ErrSelfReferral)

	// a bad code wins over an already referred target
	_, err = linker.Link(context.Background(), "NOPE00", "U2")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestLink_AcceptsDeepLinkForm(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)

	result, err := newTestLinker(t, store).Link(context.Background(), "ref_ab12cd", "U2")

	require.NoError(t, err)
	assert.Equal(t, "U1", result.ReferrerID)
}

func TestLink_UnknownTarget(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)

	_, err := newTestLinker(t, store).Link(context.Background(), "AB12CD", "ghost")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	referrer := mustGet(t, store, "U1")
	assert.Empty(t, referrer.Referrals)
	assert.Zero(t, referrer.Coins)
}

func TestLink_CodeChecksPrecedeUnknownTarget(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)
	svc := newTestLinker(t, store)

	_, err := svc.Link(context.Background(), "NOPE00", "ghost")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.Link(context.Background(), "AB12CD", "U1")
	assert.ErrorIs(t, err, domain.ErrSelfReferral)
}

func TestLink_EmptyArguments(t *testing.T) {
	linker := newTestLinker(t, fake.NewStore())

	_, err := linker.Link(context.Background(), "  ", "U2")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = linker.Link(context.Background(), "AB12CD", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLink_FailedReferrerCreditRollsBackEverything(t *testing.T) {
	store := fake.NewStore()
	seedPair(store)
	writeErr := fmt.Errorf("%w: %w", domain.ErrDBUnavailable, errors.New("connection reset"))
	store.FailCall("UpdateBalance", nil)
	store.FailCall("UpdateBalance", writeErr)

	_, err := newTestLinker(t, store).Link(context.Background(), "AB12CD", "U2")

	assert.ErrorIs(t, err, domain.ErrDBUnavailable)
	referrer := mustGet(t, store, "U1")
	referred := mustGet(t, store, "U2")
	assert.Empty(t, referrer.Referrals)
	assert.Nil(t, referred.ReferredBy)
	assert.Zero(t, referrer.Coins)
	assert.Zero(t, referred.Coins, "no partial bonus")
}

func TestLink_ConcurrentLinksForSameTarget(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	store := fake.NewStore()
	store.Seed(domain.User{ExternalID: "target", ReferralCode: "TARGET"})
	const referrers = 10
	for i := 0; i < referrers; i++ {
		store.Seed(domain.User{ExternalID: fmt.Sprintf("r%d", i), ReferralCode: fmt.Sprintf("CODE%02d", i)})
	}
	linker := newTestLinker(t, store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < referrers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := linker.Link(context.Background(), fmt.Sprintf("CODE%02d", i), "target")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrAlreadyReferred)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(testBonus), mustGet(t, store, "target").Coins)

	checker.Check(0)
}

func TestNewService_RejectsNonPositiveBonus(t *testing.T) {
	store := fake.NewStore()

	_, err := NewService(store, economy.NewLedger(store), 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
