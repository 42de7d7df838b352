// Package report keeps a history of bridge runs. Records are cached in
// memory and written as JSON files so a front-end can fetch the full
// result of an earlier invocation by its run ID.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Load when no record has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store persists and retrieves run records.
type Store interface {
	Save(rec *Record) error
	Load(runID string) (*Record, error)
}

// Record is one stored invocation.
type Record struct {
	ID         string                  `json:"id"`
	Executable string                  `json:"executable"`
	Args       []string                `json:"args"` // password values redacted
	StartedAt  time.Time               `json:"started_at"`
	Duration   time.Duration           `json:"duration"`
	Truncated  bool                    `json:"truncated,omitempty"`
	Result     normalize.CommandResult `json:"result"`
}

// Status returns "ok" or "failed".
func (r *Record) Status() string {
	if r.Result.Success {
		return "ok"
	}
	return "failed"
}

// validateID rejects anything that is not a run ID, so IDs can be used as
// file names safely.
func validateID(runID string) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	return nil
}
