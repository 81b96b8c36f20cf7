package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// PostgresStore persists run history in PostgreSQL. The full RunResult is
// stored as a JSON document beside the queryable envelope columns.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed run-history store over an open
// connection pool. Schema:
//
//	CREATE TABLE sweep_runs (
//	    run_id      text PRIMARY KEY,
//	    success     boolean NOT NULL,
//	    dry_run     boolean NOT NULL,
//	    started_at  timestamptz NOT NULL,
//	    finished_at timestamptz NOT NULL,
//	    payload     jsonb NOT NULL
//	);
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, result *models.RunResult) error {
	if result == nil || result.RunID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "run result with a run id is required")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", result.RunID, err)
	}

	query := `
		INSERT INTO sweep_runs (run_id, success, dry_run, started_at, finished_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			success = EXCLUDED.success,
			dry_run = EXCLUDED.dry_run,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			payload = EXCLUDED.payload
	`
	_, err = s.db.ExecContext(ctx, query,
		result.RunID, result.Success, result.DryRun,
		result.StartedAt, result.FinishedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", result.RunID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, runID string) (*models.RunResult, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM sweep_runs WHERE run_id = $1`, runID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "run "+runID+" not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	var result models.RunResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &result, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]*models.RunResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM sweep_runs ORDER BY started_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	results := []*models.RunResult{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		var result models.RunResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("decode run row: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}
