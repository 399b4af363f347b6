// Package service defines the interfaces between the assignment engine and
// its collaborators. The engine accepts these interfaces and returns concrete
// model structs.
package service

import (
	"context"
	"time"

	"github.com/finwellhq/personaflow/internal/model"
)

// SnapshotProvider is the feature-aggregation collaborator. The engine never
// computes behavioral signals itself; it reads whatever the provider produced
// for a (user, window) pair.
type SnapshotProvider interface {
	// GetFeatureSnapshot returns the snapshot for one user and window.
	// Implementations return common.ErrUserNotFound for unknown users and
	// common.ErrSnapshotUnavailable when the user exists but has no snapshot
	// for the requested window yet.
	GetFeatureSnapshot(ctx context.Context, userID string, windowDays int) (*model.FeatureSnapshot, error)

	// ListUserIDs returns every known user id, for batch assignment.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// TraceStore persists decision traces. Writes are append-only; a trace is
// never updated once written.
type TraceStore interface {
	// AppendTrace durably records one decision. The consolidated log and the
	// addressable per-record index must stay in agreement.
	AppendTrace(ctx context.Context, trace *model.DecisionTrace) error

	// GetLatestTrace returns the newest trace for a user, or
	// common.ErrNotFound when the user has none.
	GetLatestTrace(ctx context.Context, userID string) (*model.DecisionTrace, error)

	// GetTraceHistory returns up to limit traces for a user, newest first.
	GetTraceHistory(ctx context.Context, userID string, limit int) ([]model.DecisionTrace, error)

	// CountTraces returns how many traces exist for a user.
	CountTraces(ctx context.Context, userID string) (int, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// BatchStats summarizes an assign-all run.
type BatchStats struct {
	TotalUsers int
	Assigned   int
	Failed     int
	Duration   time.Duration
}
