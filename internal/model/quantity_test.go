package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   QuantityItem
		wantOK bool
	}{
		{
			name:   "trailing words stay in rest",
			text:   "3 hours Reading extra words",
			wantOK: true,
			want: QuantityItem{
				Text:        "3 hours Reading extra words",
				Amount:      3,
				Unit:        "hours",
				CategoryKey: "Reading",
				Rest:        "Reading extra words",
			},
		},
		{
			name:   "exactly three tokens",
			text:   "0 pages Journal",
			wantOK: true,
			want: QuantityItem{
				Text:        "0 pages Journal",
				Amount:      0,
				Unit:        "pages",
				CategoryKey: "Journal",
				Rest:        "Journal",
			},
		},
		{name: "plain todo", text: "Buy milk"},
		{name: "negative amount", text: "-2 hours Reading"},
		{name: "decimal amount", text: "1.5 hours Reading"},
		{name: "missing category key", text: "3 hours"},
		{name: "bare number", text: "42"},
		{name: "double separator", text: "3  hours Reading"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeadingAmount(t *testing.T) {
	n, ok := LeadingAmount("12 minutes Stretch")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = LeadingAmount("7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = LeadingAmount("Stretch 12 minutes")
	assert.False(t, ok)
}

func TestQuantityItem_Merge(t *testing.T) {
	dst, ok := ParseQuantity("5 hours Reading the Stormlight Archive")
	require.True(t, ok)
	src, ok := ParseQuantity("2 hour Reading")
	require.True(t, ok)

	merged := dst.Merge(src)

	assert.Equal(t, 7, merged.Amount)
	assert.Equal(t, "7 hour Reading the Stormlight Archive", merged.Text)
	assert.Equal(t, "7 hour Reading the Stormlight Archive", merged.Format())
	// Merging never touches the source
	assert.Equal(t, 2, src.Amount)
	assert.Equal(t, 5, dst.Amount)
}

func TestParseQuantityBlock(t *testing.T) {
	item, ok := ParseQuantityBlock(Block{ID: "blk-1", Kind: KindParagraph, Text: "1 hour Meditate"})
	require.True(t, ok)
	assert.Equal(t, "blk-1", item.SourceLineID)
	assert.True(t, item.SameKey(QuantityItem{CategoryKey: "Meditate"}))
}
