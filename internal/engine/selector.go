package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/finwellhq/personaflow/internal/catalog"
	"github.com/finwellhq/personaflow/internal/model"
)

// SelectPersonas runs the dual-assignment algorithm: score every catalog
// persona, rank by match count with risk tier as tie-break, take the top two,
// and fall back to the catalog's default persona when nothing matches at all.
// The returned assignment's percentages always sum to 100.
func SelectPersonas(cat *catalog.Catalog, snapshot *model.FeatureSnapshot) *model.PersonaAssignment {
	personas := cat.Personas()

	scores := make([]model.PersonaScore, 0, len(personas))
	order := make(map[string]int, len(personas))
	for i := range personas {
		p := &personas[i]
		order[p.ID] = i
		s := Score(p, snapshot)
		if s.Matched() {
			scores = append(scores, s)
		}
	}

	assignment := &model.PersonaAssignment{
		UserID:     snapshot.UserID,
		WindowDays: snapshot.WindowDays,
	}

	if len(scores) == 0 {
		// Nothing matched. The fallback persona is assigned unconditionally;
		// its criteria are still evaluated so the trace carries whatever
		// reasons do apply.
		fallback := cat.Fallback()
		assignment.Primary = Score(fallback, snapshot)
		assignment.PrimaryPercentage = 100
		assignment.UsedFallback = true
		assignment.Rationale = fallbackRationale(fallback, assignment.Primary)
		return assignment
	}

	// Rank: match count, then risk tier (more urgent first), then catalog
	// declaration order so equal (count, tier) pairs stay stable.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].MatchedCount != scores[j].MatchedCount {
			return scores[i].MatchedCount > scores[j].MatchedCount
		}
		if scores[i].RiskTier != scores[j].RiskTier {
			return scores[i].RiskTier > scores[j].RiskTier
		}
		return order[scores[i].PersonaID] < order[scores[j].PersonaID]
	})

	assignment.Primary = scores[0]
	if len(scores) > 1 {
		secondary := scores[1]
		assignment.Secondary = &secondary
		assignment.PrimaryPercentage = splitPercentage(scores[0].MatchedCount, secondary.MatchedCount)
		assignment.SecondaryPercentage = 100 - assignment.PrimaryPercentage
	} else {
		assignment.PrimaryPercentage = 100
	}

	assignment.Rationale = buildRationale(cat, assignment)
	return assignment
}

// splitPercentage computes the primary's share of a two-way score split,
// rounding half-up (67/33 for a 2:1 split, 50/50 for 1:1).
func splitPercentage(primaryScore, secondaryScore int) int {
	total := primaryScore + secondaryScore
	return int(math.Floor(100*float64(primaryScore)/float64(total) + 0.5))
}

func buildRationale(cat *catalog.Catalog, a *model.PersonaAssignment) string {
	primary, err := cat.Get(a.Primary.PersonaID)
	if err != nil {
		return ""
	}

	if a.Secondary == nil {
		return fmt.Sprintf("%s matched %d of %d signals. %s",
			primary.Name,
			a.Primary.MatchedCount, a.Primary.TotalCriteria,
			fmt.Sprintf(primary.RationaleTemplate, joinReasons(a.Primary.Reasons)))
	}

	secondary, err := cat.Get(a.Secondary.PersonaID)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s (%d/%d signals, %d%%) with %s (%d/%d signals, %d%%). %s",
		primary.Name, a.Primary.MatchedCount, a.Primary.TotalCriteria, a.PrimaryPercentage,
		secondary.Name, a.Secondary.MatchedCount, a.Secondary.TotalCriteria, a.SecondaryPercentage,
		fmt.Sprintf(primary.RationaleTemplate, joinReasons(a.Primary.Reasons)))
}

func fallbackRationale(fallback *model.PersonaDefinition, score model.PersonaScore) string {
	if len(score.Reasons) == 0 {
		return fmt.Sprintf("No behavioral pattern stood out; assigned %s as the default starting point.", fallback.Name)
	}
	return fmt.Sprintf("No urgent pattern stood out; assigned %s. %s",
		fallback.Name,
		fmt.Sprintf(fallback.RationaleTemplate, joinReasons(score.Reasons)))
}

func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "no individual signals matched"
	}
	return strings.Join(reasons, "; ")
}
