package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/service"
	"github.com/google/uuid"
)

// DefaultHistoryLimit is how many runs RecentRuns returns when no limit is given.
const DefaultHistoryLimit = 10

// SaveRun records a run and its dropped leftovers. An empty ID is filled in.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *service.RunRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var finishedAt any
	if !run.FinishedAt.IsZero() {
		finishedAt = run.FinishedAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, day, template, started_at, finished_at,
			leftovers, updated, filed, dropped, dry_run
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Day, run.Template, run.StartedAt.UTC(), finishedAt,
		run.Leftovers, run.Updated, run.Filed, len(run.Dropped), run.DryRun)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if len(run.Dropped) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO dropped_items (run_id, text, category_key, reason)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, item := range run.Dropped {
			if _, err := stmt.ExecContext(ctx, run.ID, item.Text, item.CategoryKey, item.Reason); err != nil {
				return fmt.Errorf("failed to save dropped item %q: %w", item.Text, err)
			}
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first, with their dropped leftovers.
func (s *SQLiteStorage) RecentRuns(ctx context.Context, limit int) ([]service.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, template, started_at, finished_at,
			leftovers, updated, filed, dry_run
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []service.RunRecord
	for rows.Next() {
		var run service.RunRecord
		var finishedAt sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Day, &run.Template, &run.StartedAt, &finishedAt,
			&run.Leftovers, &run.Updated, &run.Filed, &run.DryRun,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		dropped, err := s.droppedItems(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Dropped = dropped
	}

	return runs, nil
}

func (s *SQLiteStorage) droppedItems(ctx context.Context, runID string) ([]service.DroppedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, COALESCE(category_key, ''), reason
		FROM dropped_items
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dropped items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []service.DroppedItem
	for rows.Next() {
		var item service.DroppedItem
		if err := rows.Scan(&item.Text, &item.CategoryKey, &item.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan dropped item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// PruneRuns deletes runs that started before the cutoff and reports how many went.
func (s *SQLiteStorage) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}
