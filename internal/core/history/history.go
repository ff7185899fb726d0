// Package history defines the imported report history domain types.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/colonyops/redline/internal/core/comparison"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("history entry not found")

// Entry is a comparison report recorded in the history.
type Entry struct {
	Report     comparison.Report `json:"report"`
	Source     string            `json:"source"`
	ImportedAt time.Time         `json:"imported_at"`
}

// ID returns the report ID.
func (e *Entry) ID() string {
	return e.Report.ID
}

// Store persists history entries, newest first.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Save(ctx context.Context, entry Entry, maxEntries int) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
