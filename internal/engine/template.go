package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
)

// TemplateSelector fetches the checklist template for a given day.
// The checklists page holds exactly three template blocks: weekday, Saturday, Sunday.
type TemplateSelector struct {
	store  notion.BlockStore
	logger *slog.Logger
	pageID string
}

// NewTemplateSelector creates a selector reading templates under pageID.
func NewTemplateSelector(store notion.BlockStore, pageID string) *TemplateSelector {
	return &TemplateSelector{
		store:  store,
		pageID: pageID,
		logger: slog.Default().With("component", "templates"),
	}
}

// Select returns the template for day.
func (s *TemplateSelector) Select(ctx context.Context, day time.Weekday) (*model.ChecklistTemplate, error) {
	sources, err := s.store.ListChildren(ctx, s.pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist templates: %w", err)
	}

	if len(sources) < len(model.TemplateNames) {
		return nil, common.LayoutError("checklists page", "expected %d templates, found %d",
			len(model.TemplateNames), len(sources))
	}

	idx := model.TemplateIndex(day)
	name := model.TemplateNames[idx]

	blocks, err := s.store.ListChildren(ctx, sources[idx].ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s template: %w", name, err)
	}

	items := make([]model.ChecklistItem, 0, len(blocks))
	for i, b := range blocks {
		if !b.IsToDo() || b.Text == "" {
			return nil, common.LayoutError(name+" template", "item %d is a %q block, not a checklist item", i+1, b.Kind)
		}
		items = append(items, model.ChecklistItem{Text: b.Text})
	}

	s.logger.Info("Selected template", "day", day.String(), "template", name, "items", len(items))

	return &model.ChecklistTemplate{Name: name, Items: items}, nil
}
