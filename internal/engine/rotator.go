package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"golang.org/x/sync/errgroup"
)

// checklistPosition is the index of the today page child holding yesterday's checklist.
const checklistPosition = 2

// RotateResult describes what a rotation removed and added.
type RotateResult struct {
	Leftovers []model.QuantityItem
	Removed   int
	Added     int
}

// Rotator clears the today page's checklist and refills it from a template.
type Rotator struct {
	store       notion.BlockStore
	progress    Progress
	logger      *slog.Logger
	pageID      string
	concurrency int
}

// NewRotator creates a rotator for the today page.
func NewRotator(store notion.BlockStore, pageID string, progress Progress, concurrency int) *Rotator {
	if progress == nil {
		progress = NopProgress{}
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Rotator{
		store:       store,
		pageID:      pageID,
		progress:    progress,
		concurrency: concurrency,
		logger:      slog.Default().With("component", "rotator"),
	}
}

// Rotate removes every checklist entry from the today page and appends the
// template's items. Unchecked quantity entries are returned as leftovers;
// other unchecked entries are discarded.
func (r *Rotator) Rotate(ctx context.Context, tmpl *model.ChecklistTemplate) (*RotateResult, error) {
	page, err := r.store.ListChildren(ctx, r.pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list today page: %w", err)
	}

	if len(page) <= checklistPosition {
		return nil, common.LayoutError("today page", "expected at least %d children, found %d",
			checklistPosition+1, len(page))
	}

	container := page[checklistPosition]
	children, err := r.store.ListChildren(ctx, container.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's checklist: %w", err)
	}

	todos := model.ToDos(children)
	leftovers := collectLeftovers(todos, r.logger)

	if err := r.removeAll(ctx, todos); err != nil {
		return nil, err
	}

	result := &RotateResult{
		Leftovers: leftovers,
		Removed:   len(todos),
	}

	if len(tmpl.Items) > 0 {
		blocks := make([]model.Block, 0, len(tmpl.Items))
		for _, item := range tmpl.Items {
			blocks = append(blocks, model.NewToDo(item.Text))
		}

		target := page[len(page)-1]
		if err := r.store.AppendChildren(ctx, target.ID, blocks); err != nil {
			return nil, fmt.Errorf("failed to refill today's checklist: %w", err)
		}
		result.Added = len(blocks)
	}

	r.logger.Info("Rotated today page",
		"removed", result.Removed,
		"added", result.Added,
		"leftovers", len(result.Leftovers))

	return result, nil
}

func (r *Rotator) removeAll(ctx context.Context, todos []model.Block) error {
	r.progress.Start("Removing todos", len(todos))
	defer r.progress.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, todo := range todos {
		todo := todo
		g.Go(func() error {
			if err := r.store.DeleteBlock(gctx, todo.ID); err != nil {
				return err
			}
			r.progress.Step("")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to clear today's checklist: %w", err)
	}
	return nil
}

func collectLeftovers(todos []model.Block, logger *slog.Logger) []model.QuantityItem {
	var leftovers []model.QuantityItem
	for _, todo := range todos {
		if todo.Checked {
			continue
		}
		if _, numeric := model.LeadingAmount(todo.Text); !numeric {
			continue
		}

		item, ok := model.ParseQuantityBlock(todo)
		if !ok {
			logger.Debug("Skipping numeric todo without a category key", "text", todo.Text)
			continue
		}
		leftovers = append(leftovers, item)
	}
	return leftovers
}
