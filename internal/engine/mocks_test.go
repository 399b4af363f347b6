package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

// mockSnapshotProvider serves canned snapshots keyed by user id.
type mockSnapshotProvider struct {
	mu        sync.Mutex
	snapshots map[string]*model.FeatureSnapshot
	userOrder []string
	listErr   error
}

func newMockSnapshotProvider() *mockSnapshotProvider {
	return &mockSnapshotProvider{snapshots: make(map[string]*model.FeatureSnapshot)}
}

func (m *mockSnapshotProvider) add(snapshot *model.FeatureSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[snapshot.UserID]; !ok {
		m.userOrder = append(m.userOrder, snapshot.UserID)
	}
	m.snapshots[snapshot.UserID] = snapshot
}

func (m *mockSnapshotProvider) addUserWithoutSnapshot(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[userID]; !ok {
		m.userOrder = append(m.userOrder, userID)
		m.snapshots[userID] = nil
	}
}

func (m *mockSnapshotProvider) GetFeatureSnapshot(_ context.Context, userID string, windowDays int) (*model.FeatureSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.snapshots[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrUserNotFound)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrSnapshotUnavailable)
	}
	copied := *snapshot
	copied.WindowDays = windowDays
	return &copied, nil
}

func (m *mockSnapshotProvider) ListUserIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]string(nil), m.userOrder...), nil
}

// mockTraceStore keeps traces in memory and can be made to fail writes.
type mockTraceStore struct {
	mu       sync.Mutex
	traces   map[string][]model.DecisionTrace
	failures int // consume this many writes as errors before succeeding
}

func newMockTraceStore() *mockTraceStore {
	return &mockTraceStore{traces: make(map[string][]model.DecisionTrace)}
}

func (m *mockTraceStore) AppendTrace(_ context.Context, trace *model.DecisionTrace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("trace store unavailable")
	}
	m.traces[trace.UserID] = append(m.traces[trace.UserID], *trace)
	return nil
}

func (m *mockTraceStore) GetLatestTrace(_ context.Context, userID string) (*model.DecisionTrace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := m.traces[userID]
	if len(history) == 0 {
		return nil, fmt.Errorf("trace for user %s: %w", userID, common.ErrNotFound)
	}
	latest := history[len(history)-1]
	return &latest, nil
}

func (m *mockTraceStore) GetTraceHistory(_ context.Context, userID string, limit int) ([]model.DecisionTrace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := m.traces[userID]
	out := make([]model.DecisionTrace, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, history[i])
	}
	return out, nil
}

func (m *mockTraceStore) CountTraces(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.traces[userID]), nil
}

func (m *mockTraceStore) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.traces[userID])
}
