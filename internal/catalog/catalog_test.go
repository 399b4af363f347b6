package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwellhq/personaflow/internal/model"
)

func testPersona(id string, tier model.RiskTier) model.PersonaDefinition {
	criteria := make([]model.Criterion, model.CriteriaPerPersona)
	for i := range criteria {
		criteria[i] = model.Criterion{
			Name:     "always_false",
			Evaluate: func(*model.FeatureSnapshot) (bool, string) { return false, "" },
		}
	}
	return model.PersonaDefinition{
		ID:                id,
		Name:              id,
		RiskTier:          tier,
		FocusArea:         "test",
		RationaleTemplate: "signals: %s",
		Criteria:          criteria,
	}
}

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name     string
		personas []model.PersonaDefinition
		config   Config
		wantErr  string
	}{
		{
			name: "valid catalog with explicit fallback",
			personas: []model.PersonaDefinition{
				testPersona("a", model.RiskLow),
				testPersona("b", model.RiskHigh),
			},
			config: Config{FallbackPersonaID: "a"},
		},
		{
			name:     "empty catalog",
			personas: nil,
			config:   Config{FallbackPersonaID: "a"},
			wantErr:  "no personas",
		},
		{
			name: "fallback not in catalog",
			personas: []model.PersonaDefinition{
				testPersona("a", model.RiskLow),
			},
			config:  Config{FallbackPersonaID: "missing"},
			wantErr: `fallback persona "missing" not in catalog`,
		},
		{
			name: "duplicate persona id",
			personas: []model.PersonaDefinition{
				testPersona("a", model.RiskLow),
				testPersona("a", model.RiskHigh),
			},
			config:  Config{FallbackPersonaID: "a"},
			wantErr: "duplicate persona id",
		},
		{
			name: "wrong criteria count",
			personas: []model.PersonaDefinition{
				{
					ID:       "broken",
					Name:     "Broken",
					RiskTier: model.RiskLow,
					Criteria: []model.Criterion{
						{Name: "only_one", Evaluate: func(*model.FeatureSnapshot) (bool, string) { return false, "" }},
					},
				},
			},
			config:  Config{FallbackPersonaID: "broken"},
			wantErr: "has 1 criteria, want 5",
		},
		{
			name: "invalid risk tier",
			personas: []model.PersonaDefinition{
				testPersona("a", model.RiskTier(9)),
			},
			config:  Config{FallbackPersonaID: "a"},
			wantErr: "invalid risk tier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := NewWithPersonas(tt.personas, tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.personas), cat.Len())
			assert.Equal(t, tt.config.FallbackPersonaID, cat.Fallback().ID)
		})
	}
}

func TestCatalogGet(t *testing.T) {
	cat, err := New(Config{})
	require.NoError(t, err)

	p, err := cat.Get("high_utilization")
	require.NoError(t, err)
	assert.Equal(t, "Credit Revolver", p.Name)

	_, err = cat.Get("nope")
	assert.Error(t, err)
}

func TestDefaultCatalogShape(t *testing.T) {
	cat, err := New(Config{})
	require.NoError(t, err)

	require.Equal(t, 5, cat.Len())
	assert.Equal(t, DefaultFallbackPersonaID, cat.Fallback().ID)
	assert.Equal(t, model.RiskMinimal, cat.Fallback().RiskTier)

	seenTiers := make(map[model.RiskTier]string)
	for _, p := range cat.Personas() {
		assert.Len(t, p.Criteria, model.CriteriaPerPersona, "persona %s", p.ID)
		assert.True(t, p.RiskTier.Valid(), "persona %s", p.ID)
		assert.NotEmpty(t, p.RationaleTemplate, "persona %s", p.ID)
		assert.Empty(t, seenTiers[p.RiskTier], "tier %s reused by %s", p.RiskTier, p.ID)
		seenTiers[p.RiskTier] = p.ID
	}
}
