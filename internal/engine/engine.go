package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/finwellhq/personaflow/internal/catalog"
	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
	"github.com/finwellhq/personaflow/internal/service"
)

// AssignmentEngine orchestrates persona assignment: it pulls a feature
// snapshot from the provider, runs dual selection against the catalog, and
// records a decision trace. Scoring and selection are pure; the trace write
// is the only side effect.
type AssignmentEngine struct {
	catalog   *catalog.Catalog
	snapshots service.SnapshotProvider
	traces    service.TraceStore
	config    Config

	// traceFailures counts trace writes that exhausted their retries. A lost
	// trace degrades observability but never fails the assignment.
	traceFailures atomic.Int64
}

// Config holds configuration options for the assignment engine.
type Config struct {
	// BatchConcurrency bounds the parallel fan-out of AssignAllUsers.
	BatchConcurrency int
	// TraceWriteTimeout bounds each trace write independently of the
	// in-memory computation, which needs no deadline.
	TraceWriteTimeout time.Duration
	// TraceRetry configures retries for trace writes.
	TraceRetry service.RetryOptions
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		BatchConcurrency:  8,
		TraceWriteTimeout: 5 * time.Second,
		TraceRetry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}
}

// New creates an assignment engine with default configuration.
func New(cat *catalog.Catalog, snapshots service.SnapshotProvider, traces service.TraceStore) *AssignmentEngine {
	return NewWithConfig(cat, snapshots, traces, DefaultConfig())
}

// NewWithConfig creates an assignment engine with custom configuration.
func NewWithConfig(cat *catalog.Catalog, snapshots service.SnapshotProvider, traces service.TraceStore, config Config) *AssignmentEngine {
	if config.BatchConcurrency <= 0 {
		config.BatchConcurrency = DefaultConfig().BatchConcurrency
	}
	if config.TraceWriteTimeout <= 0 {
		config.TraceWriteTimeout = DefaultConfig().TraceWriteTimeout
	}
	return &AssignmentEngine{
		catalog:   cat,
		snapshots: snapshots,
		traces:    traces,
		config:    config,
	}
}

// AssignPersona assigns up to two personas to one user from its snapshot for
// the given window. Every successful assignment writes a decision trace; a
// failed trace write is logged and counted but does not fail the call, since
// the assignment itself has already succeeded.
func (e *AssignmentEngine) AssignPersona(ctx context.Context, userID string, windowDays int) (*model.PersonaAssignment, error) {
	if userID == "" {
		return nil, fmt.Errorf("assign persona: %w", common.ErrUserNotFound)
	}
	if !model.ValidWindow(windowDays) {
		return nil, fmt.Errorf("assign persona for %s: %w (got %d)", userID, common.ErrInvalidWindow, windowDays)
	}

	snapshot, err := e.snapshots.GetFeatureSnapshot(ctx, userID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("assign persona for %s: %w", userID, err)
	}

	assignment := SelectPersonas(e.catalog, snapshot)

	slog.Debug("Persona assignment computed",
		"user_id", userID,
		"window_days", windowDays,
		"primary", assignment.Primary.PersonaID,
		"primary_pct", assignment.PrimaryPercentage,
		"dual", assignment.Dual(),
		"fallback", assignment.UsedFallback)

	e.recordTrace(ctx, assignment, snapshot)

	return assignment, nil
}

// AllocateRecommendationSlots is the engine-level entry point for slot
// allocation; it is a pure computation over an existing assignment.
func (e *AssignmentEngine) AllocateRecommendationSlots(assignment *model.PersonaAssignment, totalSlots int) (*model.RecommendationAllocation, error) {
	return AllocateRecommendationSlots(assignment, totalSlots)
}

// GetLatestTrace returns the newest decision trace for a user.
func (e *AssignmentEngine) GetLatestTrace(ctx context.Context, userID string) (*model.DecisionTrace, error) {
	return e.traces.GetLatestTrace(ctx, userID)
}

// TraceFailures reports how many trace writes have been lost since start.
func (e *AssignmentEngine) TraceFailures() int64 {
	return e.traceFailures.Load()
}

// recordTrace builds and persists the decision trace for one assignment.
// The write is retried and deadline-bounded on its own; losing it is a
// degraded-observability condition, not a correctness failure.
func (e *AssignmentEngine) recordTrace(ctx context.Context, assignment *model.PersonaAssignment, snapshot *model.FeatureSnapshot) {
	trace := e.buildTrace(assignment, snapshot)

	writeCtx, cancel := context.WithTimeout(ctx, e.config.TraceWriteTimeout)
	defer cancel()

	err := common.WithRetry(writeCtx, func() error {
		return e.traces.AppendTrace(writeCtx, trace)
	}, e.config.TraceRetry)

	if err != nil {
		e.traceFailures.Add(1)
		common.LogError(err, "Failed to record decision trace", common.Fields{
			"user_id":        assignment.UserID,
			"trace_id":       trace.TraceID,
			"total_failures": e.traceFailures.Load(),
		})
	}
}

func (e *AssignmentEngine) buildTrace(assignment *model.PersonaAssignment, snapshot *model.FeatureSnapshot) *model.DecisionTrace {
	// Every catalog persona gets an entry, winners or not, so the decision
	// is replayable without re-running the scorer.
	results := make(map[string]model.MatchingResult, e.catalog.Len())
	personas := e.catalog.Personas()
	for i := range personas {
		p := &personas[i]
		score := Score(p, snapshot)
		results[p.ID] = model.MatchingResult{
			Matched:         score.Matched(),
			MatchedCriteria: score.MatchedCount,
			TotalCriteria:   score.TotalCriteria,
			Score:           score.MatchedCount,
			Reasons:         score.Reasons,
			RiskTier:        p.RiskTier,
		}
	}

	return &model.DecisionTrace{
		TraceID:          uuid.NewString(),
		UserID:           assignment.UserID,
		RecordedAt:       time.Now().UTC(),
		WindowDays:       assignment.WindowDays,
		AssignedPersonas: assignment.AssignedPersonaIDs(),
		PrimaryPersona:   assignment.Primary.PersonaID,
		MatchingResults:  results,
		FeaturesSnapshot: *snapshot,
		Rationale:        assignment.Rationale,
		UsedFallback:     assignment.UsedFallback,
	}
}
