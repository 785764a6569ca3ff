// Package notion provides access to the workspace pages a run reads and rewrites.
package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

// PageSize is the number of children fetched per listing. Larger blocks are truncated.
const PageSize = 50

// Notion error codes that map onto our sentinels.
const (
	codeConflict     = "conflict_error"
	codeRateLimited  = "rate_limited"
	codeNotFound     = "object_not_found"
	codeUnauthorized = "unauthorized"
	codeRestricted   = "restricted_resource"
)

// Config holds Notion API configuration.
type Config struct {
	APIKey string
	// RequestsPerSecond caps the request rate; Notion allows an average of three.
	RequestsPerSecond float64
}

// Client implements BlockStore on top of the Notion API.
type Client struct {
	api     *notionapi.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a new Notion client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: notion API key is required", common.ErrMissingConfig)
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 3
	}

	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		api:     notionapi.NewClient(notionapi.Token(cfg.APIKey)),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		logger:  slog.Default().With("component", "notion"),
	}, nil
}

// ListChildren fetches the first page of a block's children.
func (c *Client) ListChildren(ctx context.Context, parentID string) ([]model.Block, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(parentID), &notionapi.Pagination{PageSize: PageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", parentID, mapError(err))
	}

	if resp.HasMore {
		c.logger.Warn("Block has more children than one page, ignoring the rest",
			"block_id", parentID,
			"page_size", PageSize)
	}

	blocks := make([]model.Block, 0, len(resp.Results))
	for _, b := range resp.Results {
		blocks = append(blocks, fromAPIBlock(b))
	}

	c.logger.Debug("Listed children", "block_id", parentID, "count", len(blocks))

	return blocks, nil
}

// AppendChildren adds blocks after the existing children of parentID.
func (c *Client) AppendChildren(ctx context.Context, parentID string, blocks []model.Block) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	children := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		apiBlock, err := toAPIBlock(b)
		if err != nil {
			return err
		}
		children = append(children, apiBlock)
	}

	_, err := c.api.Block.AppendChildren(ctx, notionapi.BlockID(parentID), &notionapi.AppendBlockChildrenRequest{
		Children: children,
	})
	if err != nil {
		return fmt.Errorf("failed to append %d blocks to %s: %w", len(blocks), parentID, mapError(err))
	}

	return nil
}

// UpdateParagraph replaces the text of a paragraph block.
func (c *Client) UpdateParagraph(ctx context.Context, blockID, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := c.api.Block.Update(ctx, notionapi.BlockID(blockID), &notionapi.BlockUpdateRequest{
		Paragraph: &notionapi.Paragraph{RichText: richText(text)},
	})
	if err != nil {
		return fmt.Errorf("failed to update block %s: %w", blockID, mapError(err))
	}

	return nil
}

// DeleteBlock archives a block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := c.api.Block.Delete(ctx, notionapi.BlockID(blockID)); err != nil {
		return fmt.Errorf("failed to delete block %s: %w", blockID, mapError(err))
	}

	return nil
}

// mapError attaches our sentinels to Notion API errors so callers can branch on them.
func mapError(err error) error {
	var apiErr *notionapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case string(apiErr.Code) == codeConflict || apiErr.Status == http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrConflict, apiErr.Message)
	case string(apiErr.Code) == codeRateLimited || apiErr.Status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", common.ErrRateLimit, apiErr.Message)
	case string(apiErr.Code) == codeNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, apiErr.Message)
	case string(apiErr.Code) == codeUnauthorized, string(apiErr.Code) == codeRestricted:
		return fmt.Errorf("%w: %s", common.ErrForbidden, apiErr.Message)
	default:
		return err
	}
}

func fromAPIBlock(b notionapi.Block) model.Block {
	out := model.Block{
		ID:          string(b.GetID()),
		Kind:        model.BlockKind(b.GetType()),
		HasChildren: b.GetHasChildren(),
	}

	switch typed := b.(type) {
	case *notionapi.ParagraphBlock:
		out.Text = plainText(typed.Paragraph.RichText)
	case *notionapi.ToDoBlock:
		out.Text = plainText(typed.ToDo.RichText)
		out.Checked = typed.ToDo.Checked
	}

	return out
}

func toAPIBlock(b model.Block) (notionapi.Block, error) {
	switch b.Kind {
	case model.KindParagraph:
		return &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{RichText: richText(b.Text)},
		}, nil
	case model.KindToDo:
		return &notionapi.ToDoBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeToDo,
			},
			ToDo: notionapi.ToDo{RichText: richText(b.Text), Checked: b.Checked},
		}, nil
	default:
		return nil, fmt.Errorf("cannot create a %q block", b.Kind)
	}
}

func richText(text string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: text},
		},
	}
}

// plainText returns the first rich-text element's text, which is where the
// pages keep each line's content.
func plainText(rt []notionapi.RichText) string {
	if len(rt) == 0 {
		return ""
	}
	if rt[0].PlainText != "" {
		return rt[0].PlainText
	}
	if rt[0].Text != nil {
		return rt[0].Text.Content
	}
	return ""
}
