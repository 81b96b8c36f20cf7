// Package store persists finished run results for operator review. The
// sweep engine itself stays stateless; persistence happens after a run
// returns, in the CLI and HTTP layers.
package store

import (
	"context"

	"privsweep/internal/sweep/models"
)

// Store is the run-history persistence boundary.
type Store interface {
	// Save records one finished run. Saving the same run ID twice replaces
	// the earlier record.
	Save(ctx context.Context, result *models.RunResult) error

	// Get returns one run by ID, or a CodeNotFound domain error.
	Get(ctx context.Context, runID string) (*models.RunResult, error)

	// List returns up to limit runs, most recently started first.
	List(ctx context.Context, limit int) ([]*models.RunResult, error)
}
