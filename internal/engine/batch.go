package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finwellhq/personaflow/internal/model"
	"github.com/finwellhq/personaflow/internal/service"
)

// BatchResult pairs the assignments produced by an assign-all run with its
// summary statistics.
type BatchResult struct {
	Assignments []model.PersonaAssignment
	Stats       service.BatchStats
}

// AssignAllUsers assigns personas for every known user in parallel. Users
// are independent, so one user's failure is logged and skipped without
// aborting the batch. Results come back in user-listing order.
func (e *AssignmentEngine) AssignAllUsers(ctx context.Context, windowDays int) (*BatchResult, error) {
	return e.AssignAllUsersProgress(ctx, windowDays, nil)
}

// AssignAllUsersProgress is AssignAllUsers with an optional per-user
// completion callback, used by the CLI to drive a progress bar.
func (e *AssignmentEngine) AssignAllUsersProgress(ctx context.Context, windowDays int, onUser func(userID string, err error)) (*BatchResult, error) {
	if !model.ValidWindow(windowDays) {
		return nil, fmt.Errorf("assign all users: invalid window %d", windowDays)
	}

	userIDs, err := e.snapshots.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign all users: list users: %w", err)
	}

	start := time.Now()
	slog.Info("Starting batch persona assignment",
		"users", len(userIDs),
		"window_days", windowDays,
		"concurrency", e.config.BatchConcurrency)

	results := make([]*model.PersonaAssignment, len(userIDs))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.BatchConcurrency)

	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			assignment, assignErr := e.AssignPersona(gctx, userID, windowDays)
			if assignErr != nil {
				// Per-user isolation: record and move on.
				slog.Warn("Skipping user in batch assignment",
					"user_id", userID,
					"error", assignErr)
				mu.Lock()
				failed++
				mu.Unlock()
			} else {
				results[i] = assignment
			}
			if onUser != nil {
				mu.Lock()
				onUser(userID, assignErr)
				mu.Unlock()
			}
			// Stop only when the batch context itself is done.
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assign all users: %w", err)
	}

	assignments := make([]model.PersonaAssignment, 0, len(userIDs))
	for _, r := range results {
		if r != nil {
			assignments = append(assignments, *r)
		}
	}

	stats := service.BatchStats{
		TotalUsers: len(userIDs),
		Assigned:   len(assignments),
		Failed:     failed,
		Duration:   time.Since(start),
	}

	slog.Info("Batch persona assignment complete",
		"total", stats.TotalUsers,
		"assigned", stats.Assigned,
		"failed", stats.Failed,
		"duration", stats.Duration)

	return &BatchResult{Assignments: assignments, Stats: stats}, nil
}
