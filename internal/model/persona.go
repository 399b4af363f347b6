// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// RiskTier is the ordered urgency level attached to a persona. It is used
// both as a tie-break when ranking personas and as a weight when allocating
// recommendation slots.
type RiskTier int

// Risk tiers, least to most urgent.
const (
	RiskMinimal  RiskTier = 1
	RiskLow      RiskTier = 2
	RiskMedium   RiskTier = 3
	RiskHigh     RiskTier = 4
	RiskCritical RiskTier = 5
)

// String returns the canonical name for a risk tier.
func (r RiskTier) String() string {
	switch r {
	case RiskMinimal:
		return "MINIMAL"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("RiskTier(%d)", int(r))
	}
}

// Valid reports whether the tier is one of the five defined levels.
func (r RiskTier) Valid() bool {
	return r >= RiskMinimal && r <= RiskCritical
}

// CriteriaPerPersona is the fixed number of criteria every persona carries.
// A persona's achievable score is always exactly this value.
const CriteriaPerPersona = 5

// Criterion is one independent boolean check evaluated against a feature
// snapshot. Evaluate must be a pure function: same snapshot, same result.
type Criterion struct {
	// Name identifies the criterion within its persona, e.g. "utilization_high".
	Name string
	// Evaluate returns whether the criterion matched and, when it did, a
	// human-readable reason suitable for the assignment rationale.
	Evaluate func(s *FeatureSnapshot) (bool, string)
}

// PersonaDefinition describes one explanatory persona. Definitions are built
// at process start and never mutated afterwards.
type PersonaDefinition struct {
	// ID is the stable string key used in traces and allocations.
	ID string
	// Name is the display name, e.g. "Credit Revolver".
	Name        string
	Description string
	// RiskTier orders the persona's urgency relative to the rest of the catalog.
	RiskTier RiskTier
	// FocusArea names the signal domain the persona explains (credit, fees, ...).
	FocusArea string
	// RationaleTemplate has one %s substitution point for the joined matched
	// reasons.
	RationaleTemplate string
	// Criteria are evaluated in declaration order so reasons are deterministic.
	// Exactly CriteriaPerPersona entries.
	Criteria []Criterion
}

// Validate checks the structural invariants of a persona definition.
func (p *PersonaDefinition) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("persona has empty id")
	}
	if p.Name == "" {
		return fmt.Errorf("persona %q has empty name", p.ID)
	}
	if !p.RiskTier.Valid() {
		return fmt.Errorf("persona %q has invalid risk tier %d", p.ID, int(p.RiskTier))
	}
	if len(p.Criteria) != CriteriaPerPersona {
		return fmt.Errorf("persona %q has %d criteria, want %d", p.ID, len(p.Criteria), CriteriaPerPersona)
	}
	for i, c := range p.Criteria {
		if c.Name == "" {
			return fmt.Errorf("persona %q criterion %d has empty name", p.ID, i)
		}
		if c.Evaluate == nil {
			return fmt.Errorf("persona %q criterion %q has no evaluator", p.ID, c.Name)
		}
	}
	return nil
}
