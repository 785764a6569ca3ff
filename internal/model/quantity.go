package model

import (
	"strconv"
	"strings"
)

// QuantitySeparator splits the fields of a quantity line.
const QuantitySeparator = " "

// quantityArity is the minimum number of tokens in a quantity line:
// amount, unit and category key.
const quantityArity = 3

// QuantityItem is a line of the form "<amount> <unit> <category key> [rest...]".
// Only Matched and, at the destination, Amount change after parsing.
type QuantityItem struct {
	Text        string
	Unit        string
	CategoryKey string
	// Rest is the text from the category key to the end of the line.
	Rest         string
	SourceLineID string
	Amount       int
	Matched      bool
}

// LeadingAmount reports whether the first token of text is a non-negative integer.
func LeadingAmount(text string) (int, bool) {
	first, _, _ := strings.Cut(text, QuantitySeparator)
	n, err := strconv.Atoi(first)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseQuantity parses a line into a QuantityItem.
// Lines without a non-negative integer first token, or with fewer than three
// tokens, are not quantity items.
func ParseQuantity(text string) (QuantityItem, bool) {
	amount, ok := LeadingAmount(text)
	if !ok {
		return QuantityItem{}, false
	}

	tokens := strings.SplitN(text, QuantitySeparator, quantityArity)
	if len(tokens) < quantityArity {
		return QuantityItem{}, false
	}

	key, _, _ := strings.Cut(tokens[2], QuantitySeparator)
	if tokens[1] == "" || key == "" {
		return QuantityItem{}, false
	}

	return QuantityItem{
		Text:        text,
		Amount:      amount,
		Unit:        tokens[1],
		CategoryKey: key,
		Rest:        tokens[2],
	}, true
}

// ParseQuantityBlock parses a block's text and remembers which block it came from.
func ParseQuantityBlock(b Block) (QuantityItem, bool) {
	item, ok := ParseQuantity(b.Text)
	if ok {
		item.SourceLineID = b.ID
	}
	return item, ok
}

// Format renders the item back to display text.
func (q QuantityItem) Format() string {
	return strconv.Itoa(q.Amount) + QuantitySeparator + q.Unit + QuantitySeparator + q.Rest
}

// Merge folds src into q: the amounts add up, the unit comes from src and
// the category key with any trailing words stays q's own.
func (q QuantityItem) Merge(src QuantityItem) QuantityItem {
	merged := q
	merged.Amount = q.Amount + src.Amount
	merged.Unit = src.Unit
	merged.Text = merged.Format()
	return merged
}

// SameKey reports whether two items share a category key.
func (q QuantityItem) SameKey(other QuantityItem) bool {
	return q.CategoryKey == other.CategoryKey
}
