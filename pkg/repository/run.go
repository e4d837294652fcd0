package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// RunRepository keeps the history of pipeline runs, only the newest runs are kept
type RunRepository struct {
	db   *sqlx.DB
	keep int
}

// NewRunRepository creates a new run repository keeping up to keep runs
func NewRunRepository(db *sqlx.DB, keep int) *RunRepository {
	if keep <= 0 {
		keep = DefaultKeepRuns
	}
	return &RunRepository{db: db, keep: keep}
}

// Save stores a pipeline result and prunes runs beyond the history size.
// Saving the same run id again replaces the record.
func (r *RunRepository) Save(ctx context.Context, res domain.PipelineResult) error {
	if res.RunID == "" {
		return errors.New("save run: empty run id")
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", res.RunID, err)
	}

	err = withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		_, err = tx.ExecContext(ctx, `
			INSERT INTO runs (run_id, total_items, high, medium, low, ran_at, result)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id) DO UPDATE SET
				total_items = excluded.total_items,
				high = excluded.high,
				medium = excluded.medium,
				low = excluded.low,
				ran_at = excluded.ran_at,
				result = excluded.result`,
			res.RunID, res.TotalItems, res.SeverityStats[domain.SeverityHigh], res.SeverityStats[domain.SeverityMedium],
			res.SeverityStats[domain.SeverityLow], res.Timestamp.UTC(), string(data))
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM runs WHERE run_id NOT IN (
				SELECT run_id FROM runs ORDER BY ran_at DESC, run_id DESC LIMIT ?
			)`, r.keep)
		if err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}
	return nil
}

// Recent returns summaries of the latest runs, newest first
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 || limit > r.keep {
		limit = r.keep
	}
	runs := []domain.RunSummary{}
	err := r.db.SelectContext(ctx, &runs, `
		SELECT run_id, total_items, high, medium, low, ran_at
		FROM runs ORDER BY ran_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	return runs, nil
}

// Get returns the full result of a run
func (r *RunRepository) Get(ctx context.Context, runID string) (domain.PipelineResult, error) {
	var data string
	err := r.db.GetContext(ctx, &data, `SELECT result FROM runs WHERE run_id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PipelineResult{}, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	var res domain.PipelineResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return domain.PipelineResult{}, fmt.Errorf("unmarshal run %s: %w", runID, err)
	}
	return res, nil
}
