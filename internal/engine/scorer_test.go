package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwellhq/personaflow/internal/catalog"
	"github.com/finwellhq/personaflow/internal/model"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.Config{})
	require.NoError(t, err)
	return cat
}

func TestScoreBounds(t *testing.T) {
	cat := defaultCatalog(t)
	snapshot := &model.FeatureSnapshot{
		Credit: model.CreditFeatures{MaxUtilizationPct: 62, HasInterestCharges: true},
		Fees:   model.FeeFeatures{OverdraftCount90d: 3},
	}

	for _, p := range cat.Personas() {
		score := Score(&p, snapshot)
		assert.Equal(t, p.ID, score.PersonaID)
		assert.Equal(t, model.CriteriaPerPersona, score.TotalCriteria)
		assert.GreaterOrEqual(t, score.MatchedCount, 0)
		assert.LessOrEqual(t, score.MatchedCount, model.CriteriaPerPersona)
		assert.Len(t, score.Reasons, score.MatchedCount)
		assert.Equal(t, p.RiskTier, score.RiskTier)
	}
}

func TestScoreDeterministic(t *testing.T) {
	cat := defaultCatalog(t)
	snapshot := &model.FeatureSnapshot{
		Credit: model.CreditFeatures{MaxUtilizationPct: 85, HasInterestCharges: true, MinimumPaymentOnly: true, HasOverduePayment: true},
		Income: model.IncomeFeatures{MedianPayGapDays: 50, VariationCoefficient: 0.4, DistinctSources: 2},
	}

	for _, p := range cat.Personas() {
		first := Score(&p, snapshot)
		second := Score(&p, snapshot)
		assert.Equal(t, first.MatchedCount, second.MatchedCount, "persona %s", p.ID)
		assert.Equal(t, first.Reasons, second.Reasons, "persona %s", p.ID)
	}
}

func TestScoreReasonsFollowCriterionOrder(t *testing.T) {
	cat := defaultCatalog(t)
	p, err := cat.Get("high_utilization")
	require.NoError(t, err)

	score := Score(p, &model.FeatureSnapshot{
		Credit: model.CreditFeatures{MaxUtilizationPct: 85, HasOverduePayment: true},
	})

	// utilization criteria come before the overdue flag in the definition.
	require.Equal(t, 3, score.MatchedCount)
	assert.Contains(t, score.Reasons[0], "85%")
	assert.Contains(t, score.Reasons[2], "overdue")
}
