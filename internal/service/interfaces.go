// Package service defines the interfaces shared between the application's services.
package service

import (
	"context"
	"time"
)

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// FixedRetry returns options that retry a call up to retries more times,
// waiting the same delay before each retry.
func FixedRetry(retries int, delay time.Duration) RetryOptions {
	return RetryOptions{
		MaxAttempts:  retries + 1,
		InitialDelay: delay,
		MaxDelay:     delay,
		Multiplier:   1,
	}
}

// RunRecord summarizes one recharge run.
type RunRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	Day        string
	Template   string
	Dropped    []DroppedItem
	Leftovers  int
	Updated    int
	Filed      int
	DryRun     bool
}

// DroppedItem is a leftover that could not be filed anywhere in the ledger.
type DroppedItem struct {
	Text        string
	CategoryKey string
	Reason      string
}

// Journal records the outcome of runs so dropped leftovers stay visible.
type Journal interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	RecentRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Migrate(ctx context.Context) error
	Close() error
}
