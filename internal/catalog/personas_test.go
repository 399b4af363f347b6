package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwellhq/personaflow/internal/model"
)

// evaluate runs one persona's criteria directly and returns the match count
// with reasons, the way the scorer does.
func evaluate(t *testing.T, personaID string, snapshot *model.FeatureSnapshot) (int, []string) {
	t.Helper()
	cat, err := New(Config{})
	require.NoError(t, err)
	p, err := cat.Get(personaID)
	require.NoError(t, err)

	matched := 0
	var reasons []string
	for _, c := range p.Criteria {
		ok, reason := c.Evaluate(snapshot)
		if ok {
			matched++
			reasons = append(reasons, reason)
		}
	}
	return matched, reasons
}

func TestCreditRevolverCriteria(t *testing.T) {
	tests := []struct {
		name        string
		credit      model.CreditFeatures
		wantMatched int
	}{
		{
			name: "maxed out card matches everything",
			credit: model.CreditFeatures{
				MaxUtilizationPct:  85,
				HasInterestCharges: true,
				MinimumPaymentOnly: true,
				HasOverduePayment:  true,
			},
			wantMatched: 5,
		},
		{
			name: "elevated but not severe utilization",
			credit: model.CreditFeatures{
				MaxUtilizationPct: 55,
			},
			wantMatched: 1,
		},
		{
			name:        "no credit signals",
			credit:      model.CreditFeatures{},
			wantMatched: 0,
		},
		{
			name: "severe utilization counts twice",
			credit: model.CreditFeatures{
				MaxUtilizationPct: 80,
			},
			wantMatched: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, reasons := evaluate(t, "high_utilization", &model.FeatureSnapshot{Credit: tt.credit})
			assert.Equal(t, tt.wantMatched, matched)
			assert.Len(t, reasons, tt.wantMatched)
		})
	}
}

func TestFeeFighterCriteria(t *testing.T) {
	matched, reasons := evaluate(t, "fee_burdened", &model.FeatureSnapshot{
		Fees: model.FeeFeatures{
			OverdraftCount90d:    4,
			TotalFeesLastMonth:   62.50,
			ATMFeeCount:          5,
			AccountsWithLateFees: 2,
			HasMaintenanceFees:   true,
		},
	})
	assert.Equal(t, 5, matched)
	assert.Contains(t, reasons[0], "4 overdraft/NSF fees")

	matched, _ = evaluate(t, "fee_burdened", &model.FeatureSnapshot{
		Fees: model.FeeFeatures{OverdraftCount90d: 2, TotalFeesLastMonth: 10},
	})
	assert.Equal(t, 0, matched, "below-threshold fees should not match")
}

func TestIncomeSmootherCriteria(t *testing.T) {
	matched, _ := evaluate(t, "variable_income", &model.FeatureSnapshot{
		Income: model.IncomeFeatures{
			MedianPayGapDays:     52,
			CashFlowBufferMonths: 0.4,
			VariationCoefficient: 0.45,
			MinMonthlyIncome:     900,
			AvgMonthlyExpenses:   2100,
			DistinctSources:      3,
		},
	})
	assert.Equal(t, 5, matched)
}

func TestSubscriptionAuditorCriteria(t *testing.T) {
	matched, _ := evaluate(t, "subscription_heavy", &model.FeatureSnapshot{
		Subscriptions: model.SubscriptionFeatures{
			RecurringMerchants:  7,
			MonthlyRecurringUSD: 184,
			ShareOfSpendPct:     14,
			IncomeRatioPct:      6.5,
			CategoryDuplicates:  map[string]int{"streaming": 3},
		},
	})
	assert.Equal(t, 5, matched)

	matched, _ = evaluate(t, "subscription_heavy", &model.FeatureSnapshot{
		Subscriptions: model.SubscriptionFeatures{
			RecurringMerchants: 2,
			CategoryDuplicates: map[string]int{"streaming": 1},
		},
	})
	assert.Equal(t, 0, matched, "single service per category is not a duplicate")
}

func TestMomentumSaverCriteria(t *testing.T) {
	matched, _ := evaluate(t, "savings_builder", &model.FeatureSnapshot{
		Income:  model.IncomeFeatures{CashFlowBufferMonths: 4},
		Savings: model.SavingsFeatures{GrowthRatePct: 3.2, MonthlyNetInflow: 250, TotalBalance: 6200},
	})
	assert.Equal(t, 5, matched)
}

// An all-zero snapshot must not match any criterion anywhere: absent signals
// fail their thresholds instead of erroring or matching by default.
func TestEmptySnapshotMatchesNothing(t *testing.T) {
	cat, err := New(Config{})
	require.NoError(t, err)

	empty := &model.FeatureSnapshot{}
	for _, p := range cat.Personas() {
		for _, c := range p.Criteria {
			ok, _ := c.Evaluate(empty)
			assert.False(t, ok, "persona %s criterion %s matched an empty snapshot", p.ID, c.Name)
		}
	}
}
