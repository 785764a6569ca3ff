package notion

import (
	"context"

	"github.com/Veraticus/destiny-recharge/internal/model"
)

// BlockStore is the slice of the workspace API a run needs.
// This interface allows for easy mocking in tests and wrapping with retries.
type BlockStore interface {
	// ListChildren returns up to one page of a block's direct children, in order.
	ListChildren(ctx context.Context, parentID string) ([]model.Block, error)
	AppendChildren(ctx context.Context, parentID string, blocks []model.Block) error
	// UpdateParagraph replaces the text of a paragraph block.
	UpdateParagraph(ctx context.Context, blockID, text string) error
	DeleteBlock(ctx context.Context, blockID string) error
}
