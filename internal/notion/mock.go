package notion

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
)

// MockClient is an in-memory BlockStore for testing.
// By default it behaves like a tiny workspace; set the Fn hooks to inject failures.
type MockClient struct {
	// Functions that can be set by tests to control behavior.
	// Returning a nil error falls through to the in-memory behavior.
	ListChildrenFn    func(ctx context.Context, parentID string) error
	AppendChildrenFn  func(ctx context.Context, parentID string, blocks []model.Block) error
	UpdateParagraphFn func(ctx context.Context, blockID, text string) error
	DeleteBlockFn     func(ctx context.Context, blockID string) error

	children map[string][]model.Block

	// Call tracking
	AppendCalls []AppendCall
	UpdateCalls []UpdateCall
	DeleteCalls []string
	ListCalls   []string

	nextID int
	mu     sync.Mutex
}

// AppendCall records the parameters of an AppendChildren call.
type AppendCall struct {
	ParentID string
	Blocks   []model.Block
}

// UpdateCall records the parameters of an UpdateParagraph call.
type UpdateCall struct {
	BlockID string
	Text    string
}

// NewMockClient creates an empty mock workspace.
func NewMockClient() *MockClient {
	return &MockClient{
		children: make(map[string][]model.Block),
	}
}

// SetChildren replaces the children of parentID. Blocks without an ID get one.
func (m *MockClient) SetChildren(parentID string, blocks ...model.Block) []model.Block {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			b.ID = m.newID()
		}
		if len(m.children[b.ID]) > 0 {
			b.HasChildren = true
		}
		stored = append(stored, b)
	}
	m.children[parentID] = stored
	m.markParent(parentID)

	return stored
}

// Children returns a copy of parentID's current children.
func (m *MockClient) Children(parentID string) []model.Block {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Block(nil), m.children[parentID]...)
}

// Texts returns the text of parentID's current children.
func (m *MockClient) Texts(parentID string) []string {
	children := m.Children(parentID)
	texts := make([]string, 0, len(children))
	for _, c := range children {
		texts = append(texts, c.Text)
	}
	return texts
}

// ListChildren implements BlockStore.
func (m *MockClient) ListChildren(ctx context.Context, parentID string) ([]model.Block, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, parentID)
	m.mu.Unlock()

	if m.ListChildrenFn != nil {
		if err := m.ListChildrenFn(ctx, parentID); err != nil {
			return nil, err
		}
	}

	children := m.Children(parentID)
	if len(children) > PageSize {
		children = children[:PageSize]
	}
	return children, nil
}

// AppendChildren implements BlockStore.
func (m *MockClient) AppendChildren(ctx context.Context, parentID string, blocks []model.Block) error {
	m.mu.Lock()
	m.AppendCalls = append(m.AppendCalls, AppendCall{ParentID: parentID, Blocks: blocks})
	m.mu.Unlock()

	if m.AppendChildrenFn != nil {
		if err := m.AppendChildrenFn(ctx, parentID, blocks); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range blocks {
		b.ID = m.newID()
		m.children[parentID] = append(m.children[parentID], b)
	}
	m.markParent(parentID)

	return nil
}

// UpdateParagraph implements BlockStore.
func (m *MockClient) UpdateParagraph(ctx context.Context, blockID, text string) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{BlockID: blockID, Text: text})
	m.mu.Unlock()

	if m.UpdateParagraphFn != nil {
		if err := m.UpdateParagraphFn(ctx, blockID, text); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for parent, blocks := range m.children {
		for i := range blocks {
			if blocks[i].ID == blockID {
				m.children[parent][i].Text = text
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", common.ErrNotFound, blockID)
}

// DeleteBlock implements BlockStore.
func (m *MockClient) DeleteBlock(ctx context.Context, blockID string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, blockID)
	m.mu.Unlock()

	if m.DeleteBlockFn != nil {
		if err := m.DeleteBlockFn(ctx, blockID); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for parent, blocks := range m.children {
		for i := range blocks {
			if blocks[i].ID == blockID {
				m.children[parent] = append(blocks[:i:i], blocks[i+1:]...)
				delete(m.children, blockID)
				m.markParent(parent)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", common.ErrNotFound, blockID)
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
	m.ListCalls = nil
}

func (m *MockClient) newID() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

// markParent flags parentID as having children wherever it appears as a child.
func (m *MockClient) markParent(parentID string) {
	hasChildren := len(m.children[parentID]) > 0
	for parent, blocks := range m.children {
		for i := range blocks {
			if blocks[i].ID == parentID {
				m.children[parent][i].HasChildren = hasChildren
			}
		}
	}
}
