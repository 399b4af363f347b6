// Package engine implements persona scoring, dual assignment, and
// risk-weighted recommendation-slot allocation.
package engine

import (
	"github.com/finwellhq/personaflow/internal/model"
)

// Score evaluates every criterion of one persona against a snapshot. It is a
// pure function: criteria run in declaration order, so the same snapshot
// always yields the same count and the same reasons list.
func Score(persona *model.PersonaDefinition, snapshot *model.FeatureSnapshot) model.PersonaScore {
	score := model.PersonaScore{
		PersonaID:     persona.ID,
		TotalCriteria: len(persona.Criteria),
		RiskTier:      persona.RiskTier,
	}

	for _, criterion := range persona.Criteria {
		matched, reason := criterion.Evaluate(snapshot)
		if matched {
			score.MatchedCount++
			score.Reasons = append(score.Reasons, reason)
		}
	}

	return score
}
