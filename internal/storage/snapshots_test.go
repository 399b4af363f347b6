package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

func makeTestSnapshot(userID string, windowDays int) *model.FeatureSnapshot {
	return &model.FeatureSnapshot{
		UserID:     userID,
		WindowDays: windowDays,
		Credit:     model.CreditFeatures{MaxUtilizationPct: 42.5},
		Income:     model.IncomeFeatures{MedianPayGapDays: 14, CashFlowBufferMonths: 2.5, DistinctSources: 1},
		Subscriptions: model.SubscriptionFeatures{
			RecurringMerchants:  6,
			MonthlyRecurringUSD: 120,
			CategoryDuplicates:  map[string]int{"music": 2},
		},
		Savings: model.SavingsFeatures{GrowthRatePct: 1.2, TotalBalance: 900},
		Fees:    model.FeeFeatures{ATMFeeCount: 1},
	}
}

func TestSaveAndGetFeatureSnapshot(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	written := makeTestSnapshot("u1", 30)
	require.NoError(t, store.SaveFeatureSnapshot(ctx, written))

	got, err := store.GetFeatureSnapshot(ctx, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, written, got)
}

func TestGetFeatureSnapshotDistinguishesErrors(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveFeatureSnapshot(ctx, makeTestSnapshot("u1", 30)))

	// Unknown user vs known user without data for the window.
	_, err := store.GetFeatureSnapshot(ctx, "ghost", 30)
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = store.GetFeatureSnapshot(ctx, "u1", 180)
	assert.ErrorIs(t, err, common.ErrSnapshotUnavailable)
}

func TestSaveFeatureSnapshotOverwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first := makeTestSnapshot("u1", 30)
	require.NoError(t, store.SaveFeatureSnapshot(ctx, first))

	second := makeTestSnapshot("u1", 30)
	second.Credit.MaxUtilizationPct = 91
	require.NoError(t, store.SaveFeatureSnapshot(ctx, second))

	got, err := store.GetFeatureSnapshot(ctx, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 91.0, got.Credit.MaxUtilizationPct)

	ids, err := store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids, "re-import must not duplicate the user")
}

func TestSaveFeatureSnapshotWindowsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	short := makeTestSnapshot("u1", 30)
	long := makeTestSnapshot("u1", 180)
	long.Savings.TotalBalance = 5000
	require.NoError(t, store.SaveFeatureSnapshot(ctx, short))
	require.NoError(t, store.SaveFeatureSnapshot(ctx, long))

	gotShort, err := store.GetFeatureSnapshot(ctx, "u1", 30)
	require.NoError(t, err)
	gotLong, err := store.GetFeatureSnapshot(ctx, "u1", 180)
	require.NoError(t, err)

	assert.Equal(t, 900.0, gotShort.Savings.TotalBalance)
	assert.Equal(t, 5000.0, gotLong.Savings.TotalBalance)
}

func TestSaveFeatureSnapshotValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	assert.Error(t, store.SaveFeatureSnapshot(ctx, nil))
	assert.Error(t, store.SaveFeatureSnapshot(ctx, &model.FeatureSnapshot{WindowDays: 30}))
	assert.Error(t, store.SaveFeatureSnapshot(ctx, &model.FeatureSnapshot{UserID: "u1", WindowDays: 90}))
}

func TestListUserIDs(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	ids, err := store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, userID := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, store.SaveFeatureSnapshot(ctx, makeTestSnapshot(userID, 30)))
	}

	ids, err = store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, ids)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	require.NoError(t, store.Migrate(ctx))

	version, err = store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
