package model

// PersonaSlots is one persona's share of a recommendation-slot budget.
type PersonaSlots struct {
	PersonaID string   `json:"persona_id"`
	RiskTier  RiskTier `json:"risk_tier"`
	Slots     int      `json:"slots"`
}

// RecommendationAllocation distributes a fixed slot budget across the
// assigned personas. Entries are ordered for presentation: the higher-risk
// persona comes first regardless of which persona won on match count.
// Slot counts always sum to TotalSlots.
type RecommendationAllocation struct {
	UserID     string         `json:"user_id"`
	TotalSlots int            `json:"total_slots"`
	Entries    []PersonaSlots `json:"entries"`
}

// SlotsFor returns the slot count allocated to a persona, or 0 when the
// persona is not part of the allocation.
func (a *RecommendationAllocation) SlotsFor(personaID string) int {
	for _, e := range a.Entries {
		if e.PersonaID == personaID {
			return e.Slots
		}
	}
	return 0
}
