// Package archive persists analysis run artifacts (results CSV, PDF
// report) so past runs stay inspectable.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the interface for archive backends.
type Store interface {
	// Write stores an artifact at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves an artifact from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all artifact paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// Run groups the artifacts of one analysis run under a stable ID.
type Run struct {
	ID      string
	Started time.Time
}

// NewRun allocates a run with a fresh ID.
func NewRun() Run {
	return Run{
		ID:      uuid.NewString(),
		Started: time.Now().UTC(),
	}
}

// ArtifactPath returns the storage path for one artifact of a run,
// e.g. runs/2020-01-06/<id>/results.csv.
func (r Run) ArtifactPath(name string) string {
	return fmt.Sprintf("runs/%s/%s/%s", r.Started.Format("2006-01-02"), r.ID, name)
}
