package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

// AppendTrace durably records one decision trace. The log row and its
// materialized index row are written in one transaction, so the append-only
// log and the addressable store can never disagree.
func (s *SQLiteStorage) AppendTrace(ctx context.Context, trace *model.DecisionTrace) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrace(trace); err != nil {
		return err
	}

	payload, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO trace_log (trace_id, user_id, recorded_at, payload)
		VALUES (?, ?, ?, ?)
	`, trace.TraceID, trace.UserID, trace.RecordedAt, string(payload))
	if err != nil {
		return fmt.Errorf("failed to append trace: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get log sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO decision_traces (user_id, recorded_at, trace_id, log_seq)
		VALUES (?, ?, ?, ?)
	`, trace.UserID, trace.RecordedAt, trace.TraceID, seq); err != nil {
		return fmt.Errorf("failed to index trace: %w", err)
	}

	return tx.Commit()
}

// GetLatestTrace returns the newest trace for a user.
func (s *SQLiteStorage) GetLatestTrace(ctx context.Context, userID string) (*model.DecisionTrace, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM trace_log
		WHERE user_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trace for user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest trace: %w", err)
	}

	return decodeTrace(payload)
}

// GetTraceHistory returns up to limit traces for a user, newest first.
// A non-positive limit returns the full history.
func (s *SQLiteStorage) GetTraceHistory(ctx context.Context, userID string, limit int) ([]model.DecisionTrace, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unlimited
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM trace_log
		WHERE user_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trace history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var traces []model.DecisionTrace
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan trace: %w", err)
		}
		trace, err := decodeTrace(payload)
		if err != nil {
			return nil, err
		}
		traces = append(traces, *trace)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate traces: %w", err)
	}

	return traces, nil
}

// GetTraceAt returns the trace addressed by its (user, timestamp) identity.
func (s *SQLiteStorage) GetTraceAt(ctx context.Context, userID string, recordedAt time.Time) (*model.DecisionTrace, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT l.payload
		FROM decision_traces d
		JOIN trace_log l ON l.seq = d.log_seq
		WHERE d.user_id = ? AND d.recorded_at = ?
	`, userID, recordedAt).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trace for user %s at %s: %w", userID, recordedAt, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trace: %w", err)
	}

	return decodeTrace(payload)
}

// CountTraces returns how many traces exist for a user.
func (s *SQLiteStorage) CountTraces(ctx context.Context, userID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM trace_log WHERE user_id = ?
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count traces: %w", err)
	}
	return count, nil
}

func decodeTrace(payload string) (*model.DecisionTrace, error) {
	var trace model.DecisionTrace
	if err := json.Unmarshal([]byte(payload), &trace); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &trace, nil
}
