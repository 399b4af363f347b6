package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finwellhq/personaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidTrace    = errors.New("invalid decision trace")
	ErrInvalidSnapshot = errors.New("invalid feature snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTrace checks the identity fields a trace row needs.
func validateTrace(trace *model.DecisionTrace) error {
	if trace == nil {
		return fmt.Errorf("%w: trace", ErrNilParameter)
	}
	if trace.TraceID == "" {
		return fmt.Errorf("%w: missing trace id", ErrInvalidTrace)
	}
	if trace.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidTrace)
	}
	if trace.RecordedAt.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidTrace)
	}
	if trace.PrimaryPersona == "" {
		return fmt.Errorf("%w: missing primary persona", ErrInvalidTrace)
	}
	return nil
}

// validateSnapshot checks the identity fields a snapshot row needs. Signal
// fields stay unvalidated: zero values are legitimate and simply fail their
// criteria thresholds.
func validateSnapshot(snapshot *model.FeatureSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}
	if snapshot.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidSnapshot)
	}
	if !model.ValidWindow(snapshot.WindowDays) {
		return fmt.Errorf("%w: window must be %d or %d days, got %d",
			ErrInvalidSnapshot, model.WindowShort, model.WindowLong, snapshot.WindowDays)
	}
	return nil
}
