// Package engine rotates the daily checklist and folds its leftovers into the ledger.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"github.com/Veraticus/destiny-recharge/internal/service"
)

// Pages identifies the workspace pages a run touches.
type Pages struct {
	Checklists      string
	Classifications string
	Ledger          string
	Today           string
}

// Validate ensures every page is configured.
func (p Pages) Validate() error {
	switch {
	case p.Checklists == "":
		return fmt.Errorf("%w: checklists page ID is required", common.ErrMissingConfig)
	case p.Classifications == "":
		return fmt.Errorf("%w: classifications page ID is required", common.ErrMissingConfig)
	case p.Ledger == "":
		return fmt.Errorf("%w: destiny debt page ID is required", common.ErrMissingConfig)
	case p.Today == "":
		return fmt.Errorf("%w: today page ID is required", common.ErrMissingConfig)
	}
	return nil
}

// Config holds configuration options for a recharge run.
type Config struct {
	Pages       Pages
	Concurrency int
	DryRun      bool
}

// RunReport summarizes a finished run.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Rotation   *RotateResult
	Ledger     *ReconcileResult
	Template   string
	Day        time.Weekday
	DryRun     bool
}

// Record converts the report into a journal entry.
func (r *RunReport) Record() *service.RunRecord {
	rec := &service.RunRecord{
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Day:        r.Day.String(),
		Template:   r.Template,
		DryRun:     r.DryRun,
	}
	if r.Rotation != nil {
		rec.Leftovers = len(r.Rotation.Leftovers)
	}
	if r.Ledger != nil {
		rec.Updated = len(r.Ledger.Updated)
		rec.Filed = len(r.Ledger.Filed)
		for _, d := range r.Ledger.Dropped {
			rec.Dropped = append(rec.Dropped, service.DroppedItem{
				Text:        d.Item.Text,
				CategoryKey: d.Item.CategoryKey,
				Reason:      d.Reason,
			})
		}
	}
	return rec
}

// Recharger runs the whole daily cycle against a block store.
type Recharger struct {
	store    notion.BlockStore
	progress Progress
	journal  service.Journal
	logger   *slog.Logger
	config   Config
}

// NewRecharger creates a recharger. journal may be nil.
func NewRecharger(store notion.BlockStore, cfg Config, progress Progress, journal service.Journal) *Recharger {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Recharger{
		store:    store,
		config:   cfg,
		progress: progress,
		journal:  journal,
		logger:   slog.Default().With("component", "recharge"),
	}
}

// Run selects the day's template, rotates the today page, and reconciles the leftovers.
func (r *Recharger) Run(ctx context.Context, day time.Weekday) (*RunReport, error) {
	if err := r.config.Pages.Validate(); err != nil {
		return nil, err
	}

	report := &RunReport{
		Day:       day,
		DryRun:    r.config.DryRun,
		StartedAt: time.Now(),
	}

	r.logger.Info("Getting template checklist", "day", day.String())
	tmpl, err := NewTemplateSelector(r.store, r.config.Pages.Checklists).Select(ctx, day)
	if err != nil {
		return nil, err
	}
	report.Template = tmpl.Name
	r.progress.Announce(fmt.Sprintf("Selected template for: %s", tmpl.Name))

	rotation, err := NewRotator(r.store, r.config.Pages.Today, r.progress, r.config.Concurrency).Rotate(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	report.Rotation = rotation
	r.progress.Announce("[🎁 Today] page updated!")

	idx, err := LoadClassifications(ctx, r.store, r.config.Pages.Classifications)
	if err != nil {
		return nil, err
	}

	ledger, err := NewReconciler(r.store, r.config.Pages.Ledger, r.progress, r.config.Concurrency).
		Reconcile(ctx, rotation.Leftovers, idx)
	if err != nil {
		return nil, err
	}
	report.Ledger = ledger
	report.FinishedAt = time.Now()
	r.progress.Announce("[💸 Destiny Debt] page updated!")

	if r.journal != nil {
		if err := r.journal.SaveRun(ctx, report.Record()); err != nil {
			// Pages are already rewritten at this point.
			r.logger.Warn("Failed to journal run", "error", err)
		}
	}

	return report, nil
}
