package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"golang.org/x/sync/errgroup"
)

// Reasons a leftover ends up outside the ledger.
const (
	ReasonUnclassified  = "no section lists this category key"
	ReasonNoLedgerBlock = "section heading missing from the ledger page"
	ReasonEmptySection  = "section has no entries on the ledger page"
)

// EntryUpdate is an existing ledger entry whose amount grew.
type EntryUpdate struct {
	BlockID string
	Section string
	Before  string
	After   string
}

// FiledEntry is a leftover appended as a new ledger entry.
type FiledEntry struct {
	Section string
	Item    model.QuantityItem
}

// DroppedLeftover is a leftover that was neither merged nor filed.
type DroppedLeftover struct {
	Reason string
	Item   model.QuantityItem
}

// ReconcileResult describes every change a reconciliation made.
type ReconcileResult struct {
	Updated []EntryUpdate
	Filed   []FiledEntry
	Dropped []DroppedLeftover
}

// Reconciler folds leftover quantity items into the ledger page.
type Reconciler struct {
	store       notion.BlockStore
	progress    Progress
	logger      *slog.Logger
	pageID      string
	concurrency int
}

// NewReconciler creates a reconciler for the ledger page.
func NewReconciler(store notion.BlockStore, pageID string, progress Progress, concurrency int) *Reconciler {
	if progress == nil {
		progress = NopProgress{}
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Reconciler{
		store:       store,
		pageID:      pageID,
		progress:    progress,
		concurrency: concurrency,
		logger:      slog.Default().With("component", "reconciler"),
	}
}

// ledgerEntry is a parsed entry plus whether it picked up any debt.
type ledgerEntry struct {
	item   model.QuantityItem
	before string
	dirty  bool
}

// Reconcile merges debt into the ledger. Each item either adds to an existing
// entry with the same category key, is filed as a new entry under the section
// that lists its key, or is dropped. Items already marked Matched are left alone,
// so running it twice over the same slice changes nothing the second time.
func (r *Reconciler) Reconcile(ctx context.Context, debt []model.QuantityItem, idx *model.ClassificationIndex) (*ReconcileResult, error) {
	blocks, err := r.store.ListChildren(ctx, r.pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger page: %w", err)
	}

	roots := model.Paragraphs(blocks)
	for _, root := range roots {
		idx.SetLedgerBlock(root.Text, root.ID)
	}

	result := &ReconcileResult{}

	r.progress.Start("Updating ledger", len(roots))
	defer r.progress.Finish()

	for _, root := range roots {
		r.progress.Step(root.Text)
		if !root.HasChildren {
			continue
		}

		active := idx.Section(root.Text)
		if active == nil {
			r.logger.Warn("Ledger heading is not a known section", "heading", root.Text)
		}

		children, err := r.store.ListChildren(ctx, root.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list ledger section %q: %w", root.Text, err)
		}

		updates := mergeIntoEntries(model.Paragraphs(children), debt, root.Text)
		if err := r.applyUpdates(ctx, updates); err != nil {
			return nil, err
		}
		result.Updated = append(result.Updated, updates...)

		if active == nil || active.LedgerBlockID == "" {
			continue
		}

		filed, err := r.fileNewEntries(ctx, active, debt)
		if err != nil {
			return nil, err
		}
		result.Filed = append(result.Filed, filed...)
	}

	for i := range debt {
		if debt[i].Matched {
			continue
		}
		dropped := DroppedLeftover{Item: debt[i], Reason: dropReason(idx, debt[i])}
		r.logger.Warn("Leftover not recorded in ledger",
			"text", dropped.Item.Text,
			"category_key", dropped.Item.CategoryKey,
			"reason", dropped.Reason)
		result.Dropped = append(result.Dropped, dropped)
	}

	r.logger.Info("Reconciled ledger",
		"updated", len(result.Updated),
		"filed", len(result.Filed),
		"dropped", len(result.Dropped))

	return result, nil
}

// mergeIntoEntries matches unmatched debt against the section's entries in a
// single pass. A debt item merges into at most one entry; one entry may absorb
// several debt items, accumulating each.
func mergeIntoEntries(children []model.Block, debt []model.QuantityItem, section string) []EntryUpdate {
	var updates []EntryUpdate

	for _, child := range children {
		parsed, ok := model.ParseQuantityBlock(child)
		if !ok {
			continue
		}
		entry := ledgerEntry{item: parsed, before: child.Text}

		for i := range debt {
			if debt[i].Matched || !entry.item.SameKey(debt[i]) {
				continue
			}
			debt[i].Matched = true
			entry.item = entry.item.Merge(debt[i])
			entry.dirty = true
		}

		if entry.dirty {
			updates = append(updates, EntryUpdate{
				BlockID: child.ID,
				Section: section,
				Before:  entry.before,
				After:   entry.item.Format(),
			})
		}
	}

	return updates
}

func (r *Reconciler) applyUpdates(ctx context.Context, updates []EntryUpdate) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, u := range updates {
		u := u
		g.Go(func() error {
			r.logger.Debug("Updating ledger entry", "block_id", u.BlockID, "before", u.Before, "after", u.After)
			return r.store.UpdateParagraph(gctx, u.BlockID, u.After)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to update ledger entries: %w", err)
	}
	return nil
}

// fileNewEntries appends, in one call, every unmatched debt item whose key the
// section lists.
func (r *Reconciler) fileNewEntries(ctx context.Context, section *model.Section, debt []model.QuantityItem) ([]FiledEntry, error) {
	var (
		blocks []model.Block
		filed  []FiledEntry
	)

	for i := range debt {
		if debt[i].Matched || !section.Knows(debt[i].CategoryKey) {
			continue
		}
		debt[i].Matched = true
		blocks = append(blocks, model.NewParagraph(debt[i].Text))
		filed = append(filed, FiledEntry{Section: section.Name, Item: debt[i]})
	}

	if len(blocks) == 0 {
		return nil, nil
	}

	if err := r.store.AppendChildren(ctx, section.LedgerBlockID, blocks); err != nil {
		return nil, fmt.Errorf("failed to file new entries under %q: %w", section.Name, err)
	}

	return filed, nil
}

func dropReason(idx *model.ClassificationIndex, item model.QuantityItem) string {
	owner := idx.Owner(item.CategoryKey)
	switch {
	case owner == nil:
		return ReasonUnclassified
	case owner.LedgerBlockID == "":
		return ReasonNoLedgerBlock
	default:
		return ReasonEmptySection
	}
}
