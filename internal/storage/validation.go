// Package storage provides the run journal backed by SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/destiny-recharge/internal/service"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run record")
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

// validateRun checks a run record before it is written.
func validateRun(run *service.RunRecord) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidRun)
	}
	if !run.FinishedAt.IsZero() && run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRun)
	}
	if err := validateString(run.Day, "day"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRun, err)
	}
	for i, d := range run.Dropped {
		if err := validateString(d.Text, "dropped item text"); err != nil {
			return fmt.Errorf("%w: dropped item %d: %w", ErrInvalidRun, i, err)
		}
	}
	return nil
}
