package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finwellhq/personaflow/internal/common"
	"github.com/finwellhq/personaflow/internal/model"
)

// SaveFeatureSnapshot stores an upstream-computed snapshot for a user and
// window, creating the user row if needed. Re-importing overwrites the
// previous snapshot for the same (user, window) pair.
func (s *SQLiteStorage) SaveFeatureSnapshot(ctx context.Context, snapshot *model.FeatureSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id) VALUES (?)
		ON CONFLICT(id) DO NOTHING
	`, snapshot.UserID); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO feature_snapshots (user_id, window_days, payload, imported_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, window_days) DO UPDATE SET
			payload = excluded.payload,
			imported_at = excluded.imported_at
	`, snapshot.UserID, snapshot.WindowDays, string(payload)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return tx.Commit()
}

// GetFeatureSnapshot returns the stored snapshot for one user and window.
// Unknown users report common.ErrUserNotFound; known users without a
// snapshot for the window report common.ErrSnapshotUnavailable, so callers
// can tell "who is this" apart from "no data yet".
func (s *SQLiteStorage) GetFeatureSnapshot(ctx context.Context, userID string, windowDays int) (*model.FeatureSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM feature_snapshots
		WHERE user_id = ? AND window_days = ?
	`, userID, windowDays).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := s.userExists(ctx, userID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, fmt.Errorf("user %s: %w", userID, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("user %s window %d: %w", userID, windowDays, common.ErrSnapshotUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snapshot model.FeatureSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	// The stored identity wins over whatever the payload carried.
	snapshot.UserID = userID
	snapshot.WindowDays = windowDays

	return &snapshot, nil
}

// ListUserIDs returns every known user id in insertion order.
func (s *SQLiteStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return ids, nil
}

func (s *SQLiteStorage) userExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
