package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
)

// LoadClassifications builds the run's classification index from the
// paragraphs of the classification listing page.
func LoadClassifications(ctx context.Context, store notion.BlockStore, pageID string) (*model.ClassificationIndex, error) {
	blocks, err := store.ListChildren(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}

	paragraphs := model.Paragraphs(blocks)
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, p.Text)
	}

	idx := model.BuildClassificationIndex(lines)

	for _, s := range idx.Sections() {
		slog.Debug("Loaded section labels", "section", s.Name, "labels", len(s.KnownLabels))
	}

	return idx, nil
}
