package model

// BlockKind identifies the type of a workspace block.
type BlockKind string

// Block kinds the run cares about. Anything else is carried as its raw type name.
const (
	KindParagraph BlockKind = "paragraph"
	KindToDo      BlockKind = "to_do"
)

// Block is an addressable node in the remote document tree.
// Text holds the plain text of the first rich-text element, empty when there is none.
type Block struct {
	ID          string
	Kind        BlockKind
	Text        string
	Checked     bool
	HasChildren bool
}

// NewParagraph returns an unsaved paragraph block with the given text.
func NewParagraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// NewToDo returns an unsaved, unchecked checklist block with the given text.
func NewToDo(text string) Block {
	return Block{Kind: KindToDo, Text: text}
}

// IsParagraph reports whether b is a paragraph carrying text.
func (b Block) IsParagraph() bool {
	return b.Kind == KindParagraph && b.Text != ""
}

// IsToDo reports whether b is a checklist entry.
func (b Block) IsToDo() bool {
	return b.Kind == KindToDo
}

// Paragraphs keeps only the paragraphs with text, in order.
func Paragraphs(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.IsParagraph() {
			out = append(out, b)
		}
	}
	return out
}

// ToDos keeps only the checklist entries, in order.
func ToDos(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.IsToDo() {
			out = append(out, b)
		}
	}
	return out
}
