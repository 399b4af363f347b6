package model

import "time"

// MatchingResult is one persona's evaluation as captured in a decision trace,
// including personas that did not win the assignment.
type MatchingResult struct {
	Matched         bool     `json:"matched"`
	MatchedCriteria int      `json:"matched_criteria"`
	TotalCriteria   int      `json:"total_criteria"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	RiskTier        RiskTier `json:"risk_tier"`
}

// DecisionTrace is the immutable audit record written for every assignment.
// It carries a full copy of the input snapshot so the decision can be
// replayed exactly. Identified by (UserID, RecordedAt).
type DecisionTrace struct {
	// TraceID is a server-generated unique id for the record.
	TraceID    string    `json:"trace_id"`
	UserID     string    `json:"user_id"`
	RecordedAt time.Time `json:"recorded_at"`
	WindowDays int       `json:"window_days"`
	// AssignedPersonas lists the winning persona ids, primary first.
	AssignedPersonas []string `json:"assigned_personas"`
	PrimaryPersona   string   `json:"primary_persona"`
	// MatchingResults covers every catalog persona evaluated, keyed by id.
	MatchingResults map[string]MatchingResult `json:"matching_results"`
	// FeaturesSnapshot is a copy of the engine input, for replayability.
	FeaturesSnapshot FeatureSnapshot `json:"features_snapshot"`
	Rationale        string          `json:"rationale"`
	UsedFallback     bool            `json:"used_fallback"`
}
