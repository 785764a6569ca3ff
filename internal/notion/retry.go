package notion

import (
	"context"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/service"
)

// Default retry budget for mutations: five retries, two seconds apart.
const (
	DefaultMaxRetries = 5
	DefaultRetryDelay = 2 * time.Second
)

// RetryingClient retries mutating calls that fail with a transient conflict.
// Reads pass straight through.
//
// A mutation that committed remotely but still reported a conflict is applied
// again on retry. Deletes tolerate that; appends may duplicate an entry.
type RetryingClient struct {
	next BlockStore
	opts service.RetryOptions
}

// NewRetryingClient wraps next with a fixed-interval retry policy.
func NewRetryingClient(next BlockStore, opts service.RetryOptions) *RetryingClient {
	return &RetryingClient{next: next, opts: opts}
}

// DefaultRetryOptions returns the standard mutation retry policy.
func DefaultRetryOptions() service.RetryOptions {
	return service.FixedRetry(DefaultMaxRetries, DefaultRetryDelay)
}

// ListChildren implements BlockStore.
func (r *RetryingClient) ListChildren(ctx context.Context, parentID string) ([]model.Block, error) {
	return r.next.ListChildren(ctx, parentID)
}

// AppendChildren implements BlockStore.
func (r *RetryingClient) AppendChildren(ctx context.Context, parentID string, blocks []model.Block) error {
	return common.WithRetry(ctx, func() error {
		return r.next.AppendChildren(ctx, parentID, blocks)
	}, r.opts)
}

// UpdateParagraph implements BlockStore.
func (r *RetryingClient) UpdateParagraph(ctx context.Context, blockID, text string) error {
	return common.WithRetry(ctx, func() error {
		return r.next.UpdateParagraph(ctx, blockID, text)
	}, r.opts)
}

// DeleteBlock implements BlockStore.
func (r *RetryingClient) DeleteBlock(ctx context.Context, blockID string) error {
	return common.WithRetry(ctx, func() error {
		return r.next.DeleteBlock(ctx, blockID)
	}, r.opts)
}
