package engine

import (
	"fmt"
	"math"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

// AllocateRecommendationSlots distributes totalSlots recommendation slots
// across the personas in an assignment, weighting each persona's percentage
// share by its risk tier. Counts always sum exactly to totalSlots.
//
// Ordering is by risk, not by match strength: the higher-tier persona comes
// first in the result even when it won fewer slots, so the most urgent
// content surfaces first.
func AllocateRecommendationSlots(assignment *model.PersonaAssignment, totalSlots int) (*model.RecommendationAllocation, error) {
	if totalSlots <= 0 {
		return nil, fmt.Errorf("%w: got %d", common.ErrInvalidSlotBudget, totalSlots)
	}

	alloc := &model.RecommendationAllocation{
		UserID:     assignment.UserID,
		TotalSlots: totalSlots,
	}

	primary := model.PersonaSlots{
		PersonaID: assignment.Primary.PersonaID,
		RiskTier:  assignment.Primary.RiskTier,
	}

	if assignment.Secondary == nil {
		primary.Slots = totalSlots
		alloc.Entries = []model.PersonaSlots{primary}
		return alloc, nil
	}

	secondary := model.PersonaSlots{
		PersonaID: assignment.Secondary.PersonaID,
		RiskTier:  assignment.Secondary.RiskTier,
	}

	primaryWeight := float64(assignment.PrimaryPercentage) / 100 * float64(primary.RiskTier)
	secondaryWeight := float64(assignment.SecondaryPercentage) / 100 * float64(secondary.RiskTier)

	var primaryRatio float64
	if total := primaryWeight + secondaryWeight; total > 0 {
		primaryRatio = primaryWeight / total
	} else {
		// Degenerate weights; split on percentage alone.
		primaryRatio = float64(assignment.PrimaryPercentage) / 100
	}

	primary.Slots = int(math.Floor(float64(totalSlots)*primaryRatio + 0.5))
	if primary.Slots < 1 {
		primary.Slots = 1
	}
	// Both personas keep at least one slot whenever the budget covers two.
	if totalSlots >= 2 && primary.Slots > totalSlots-1 {
		primary.Slots = totalSlots - 1
	}
	if primary.Slots > totalSlots {
		primary.Slots = totalSlots
	}
	secondary.Slots = totalSlots - primary.Slots

	// Higher risk tier presents first; the primary wins equal tiers.
	if secondary.RiskTier > primary.RiskTier {
		alloc.Entries = []model.PersonaSlots{secondary, primary}
	} else {
		alloc.Entries = []model.PersonaSlots{primary, secondary}
	}

	return alloc, nil
}
