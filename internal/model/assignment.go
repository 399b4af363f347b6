package model

// PersonaScore is the result of evaluating one persona's criteria against one
// snapshot. Scores are recomputed on every assignment call and never stored
// on their own; a DecisionTrace captures them when an assignment is made.
type PersonaScore struct {
	PersonaID string `json:"persona_id"`
	// MatchedCount is how many of the persona's criteria matched, 0..TotalCriteria.
	MatchedCount  int `json:"matched_count"`
	TotalCriteria int `json:"total_criteria"`
	// Reasons holds one entry per matched criterion, in criterion declaration
	// order, so the same snapshot always reproduces the same list.
	Reasons  []string `json:"reasons"`
	RiskTier RiskTier `json:"risk_tier"`
}

// Matched reports whether the persona matched at all.
func (s PersonaScore) Matched() bool {
	return s.MatchedCount > 0
}

// PersonaAssignment is the outcome of dual selection for one user: the best
// matching persona, optionally a second one, and the percentage split between
// them. Percentages always sum to 100; a single-persona assignment is 100/0.
type PersonaAssignment struct {
	UserID     string        `json:"user_id"`
	WindowDays int           `json:"window_days"`
	Primary    PersonaScore  `json:"primary"`
	Secondary  *PersonaScore `json:"secondary,omitempty"`
	// PrimaryPercentage is the primary's share of the score split, rounded
	// half-up; SecondaryPercentage is its complement.
	PrimaryPercentage   int    `json:"primary_percentage"`
	SecondaryPercentage int    `json:"secondary_percentage"`
	Rationale           string `json:"rationale"`
	// UsedFallback is set when no persona matched and the configured default
	// persona was assigned unconditionally.
	UsedFallback bool `json:"used_fallback"`
}

// AssignedPersonaIDs returns the assigned persona ids, primary first.
func (a *PersonaAssignment) AssignedPersonaIDs() []string {
	ids := []string{a.Primary.PersonaID}
	if a.Secondary != nil {
		ids = append(ids, a.Secondary.PersonaID)
	}
	return ids
}

// Dual reports whether the assignment carries a secondary persona.
func (a *PersonaAssignment) Dual() bool {
	return a.Secondary != nil
}
