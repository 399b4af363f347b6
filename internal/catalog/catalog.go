// Package catalog holds the static persona definitions and the lookup
// structure the assignment engine ranks against. Definitions are built once
// at process start; adding a persona is a data change in personas.go, not a
// code change in the engine.
package catalog

import (
	"fmt"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

// Catalog is the immutable set of personas plus the configured fallback.
type Catalog struct {
	personas   []model.PersonaDefinition
	byID       map[string]*model.PersonaDefinition
	fallbackID string
}

// Config holds catalog construction options.
type Config struct {
	// FallbackPersonaID names the persona assigned when nothing matches.
	// It must exist in the catalog; a missing fallback is a construction
	// error, never a runtime nil.
	FallbackPersonaID string
}

// DefaultFallbackPersonaID is the persona used when no criteria match
// anywhere: the lowest-risk persona in the default catalog.
const DefaultFallbackPersonaID = "savings_builder"

// New builds a catalog from the default persona set.
func New(cfg Config) (*Catalog, error) {
	return NewWithPersonas(DefaultPersonas(), cfg)
}

// NewWithPersonas builds a catalog from an explicit persona set. Every
// definition is validated: exactly five criteria, a valid risk tier, no
// duplicate ids.
func NewWithPersonas(personas []model.PersonaDefinition, cfg Config) (*Catalog, error) {
	if len(personas) == 0 {
		return nil, fmt.Errorf("%w: catalog has no personas", common.ErrInvalidConfig)
	}
	if cfg.FallbackPersonaID == "" {
		cfg.FallbackPersonaID = DefaultFallbackPersonaID
	}

	byID := make(map[string]*model.PersonaDefinition, len(personas))
	for i := range personas {
		p := &personas[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate persona id %q", common.ErrInvalidConfig, p.ID)
		}
		byID[p.ID] = p
	}

	if _, ok := byID[cfg.FallbackPersonaID]; !ok {
		return nil, fmt.Errorf("%w: fallback persona %q not in catalog", common.ErrInvalidConfig, cfg.FallbackPersonaID)
	}

	return &Catalog{
		personas:   personas,
		byID:       byID,
		fallbackID: cfg.FallbackPersonaID,
	}, nil
}

// Personas returns the definitions in declaration order. Declaration order
// is the final ranking tie-break, so it is stable across calls.
func (c *Catalog) Personas() []model.PersonaDefinition {
	return c.personas
}

// Get returns the persona with the given id.
func (c *Catalog) Get(id string) (*model.PersonaDefinition, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("persona %q: %w", id, common.ErrNotFound)
	}
	return p, nil
}

// Fallback returns the configured default persona.
func (c *Catalog) Fallback() *model.PersonaDefinition {
	return c.byID[c.fallbackID]
}

// Len returns the number of personas in the catalog.
func (c *Catalog) Len() int {
	return len(c.personas)
}
