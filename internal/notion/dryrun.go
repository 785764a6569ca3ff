package notion

import (
	"context"
	"log/slog"

	"github.com/Veraticus/destiny-recharge/internal/model"
)

// DryRunClient reads through to the wrapped store and only logs mutations.
type DryRunClient struct {
	next   BlockStore
	logger *slog.Logger
}

// NewDryRunClient wraps next so that nothing is written.
func NewDryRunClient(next BlockStore) *DryRunClient {
	return &DryRunClient{
		next:   next,
		logger: slog.Default().With("component", "notion", "dry_run", true),
	}
}

// ListChildren implements BlockStore.
func (d *DryRunClient) ListChildren(ctx context.Context, parentID string) ([]model.Block, error) {
	return d.next.ListChildren(ctx, parentID)
}

// AppendChildren implements BlockStore.
func (d *DryRunClient) AppendChildren(_ context.Context, parentID string, blocks []model.Block) error {
	for _, b := range blocks {
		d.logger.Info("Would append block", "parent_id", parentID, "kind", b.Kind, "text", b.Text)
	}
	return nil
}

// UpdateParagraph implements BlockStore.
func (d *DryRunClient) UpdateParagraph(_ context.Context, blockID, text string) error {
	d.logger.Info("Would update block", "block_id", blockID, "text", text)
	return nil
}

// DeleteBlock implements BlockStore.
func (d *DryRunClient) DeleteBlock(_ context.Context, blockID string) error {
	d.logger.Debug("Would delete block", "block_id", blockID)
	return nil
}
