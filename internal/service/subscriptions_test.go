package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetflow/budgetflow/internal/models"
)

func seedMonthlyCharges(t *testing.T, store *memStore, userID int64, merchant string, amount float64, day int, months ...time.Month) {
	t.Helper()
	for _, m := range months {
		require.NoError(t, store.CreateTransaction(context.Background(), &models.Transaction{
			UserID:   userID,
			Date:     time.Date(2025, m, day, 0, 0, 0, 0, time.UTC),
			Amount:   amount,
			Merchant: merchant,
		}))
	}
}

func TestComputeSubscriptionCandidates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	seedMonthlyCharges(t, store, 1, "Netflix", -15.99, 10, time.March, time.April, time.May, time.June)
	seedMonthlyCharges(t, store, 1, "Spotify", -9.99, 5, time.March, time.April, time.May)
	seedMonthlyCharges(t, store, 1, "Gym Co", -45, 2, time.April, time.May, time.June)

	require.NoError(t, store.AddIgnoredMerchant(ctx, 1, "spotify"))
	require.NoError(t, store.CreateSubscription(ctx, &models.Subscription{
		UserID: 1, MerchantKey: "gym co", DisplayName: "Gym Co", IsActive: true, Kind: models.KindSubscription,
	}))

	candidates, err := svc.ComputeSubscriptionCandidates(ctx, 1, 0)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	cand := candidates[0]
	assert.Equal(t, "netflix", cand.MerchantKey)
	assert.Equal(t, "Netflix", cand.DisplayName)
	assert.Equal(t, models.CadenceMonthly, cand.Cadence)
	assert.Equal(t, 4, cand.Occurrences)
	assert.Equal(t, 90, cand.Confidence)
	assert.InDelta(t, -15.99, cand.ExpectedAmount, 1e-9)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), cand.LastDate)
}

func TestComputeSubscriptionCandidates_OtherUserInvisible(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	seedMonthlyCharges(t, store, 2, "Netflix", -15.99, 10, time.March, time.April, time.May)

	candidates, err := svc.ComputeSubscriptionCandidates(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestConfirmCandidate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	cand := models.SubscriptionCandidate{
		MerchantKey:    "netflix",
		DisplayName:    "Netflix",
		Cadence:        models.CadenceMonthly,
		ExpectedAmount: -15.99,
		AmountMin:      -15.99,
		AmountMax:      -15.99,
		LastDate:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Occurrences:    4,
		Confidence:     90,
	}

	sub, err := svc.ConfirmCandidate(ctx, 1, cand, "", nil)
	require.NoError(t, err)

	assert.Equal(t, models.KindSubscription, sub.Kind)
	assert.True(t, sub.IsActive)
	require.NotNil(t, sub.LastDate)
	assert.Equal(t, cand.LastDate, *sub.LastDate)
	// next charge derived from the last observed one, stepped past today
	require.NotNil(t, sub.NextDate)
	assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), *sub.NextDate)

	stored, err := store.ListSubscriptions(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestConfirmCandidate_ExplicitNextDateAndKind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	cand := models.SubscriptionCandidate{
		MerchantKey: "city power", DisplayName: "City Power",
		Cadence:  models.CadenceMonthly,
		LastDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	sub, err := svc.ConfirmCandidate(ctx, 1, cand, models.KindBill, &next)
	require.NoError(t, err)
	assert.Equal(t, models.KindBill, sub.Kind)
	assert.Equal(t, next, *sub.NextDate)
}

func TestConfirmCandidate_RequiresMerchantKey(t *testing.T) {
	svc, _ := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	_, err := svc.ConfirmCandidate(context.Background(), 1, models.SubscriptionCandidate{}, "", nil)
	assert.Error(t, err)
}

func TestIgnoreMerchant(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.IgnoreMerchant(ctx, 1, "  Netflix.COM  "))

	keys, err := store.ListIgnoredMerchantKeys(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"netflixcom"}, keys)

	assert.Error(t, svc.IgnoreMerchant(ctx, 1, "  ...  "))
}

func TestCreateSubscription_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	sub, err := svc.CreateSubscription(ctx, &models.Subscription{
		UserID:         1,
		DisplayName:    "Gym Co",
		ExpectedAmount: -45,
		IsActive:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "gym co", sub.MerchantKey)
	assert.Equal(t, models.CadenceUnknown, sub.Cadence)
	assert.Equal(t, models.KindSubscription, sub.Kind)
}
