package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"github.com/Veraticus/destiny-recharge/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayTemplate() *model.ChecklistTemplate {
	return &model.ChecklistTemplate{
		Name:  model.TemplateWeekday,
		Items: []model.ChecklistItem{{Text: "Work"}, {Text: "2 hours Reading"}},
	}
}

func TestRotator_Rotate(t *testing.T) {
	mock := notion.NewMockClient()
	seedToday(mock,
		todo("3 hours Reading", false),
		todo("Buy milk", false),
		todo("1 hour Meditate", true),
		todo("5 pages", false),
		model.NewParagraph("Keep going"),
	)
	progress := &recordingProgress{}

	result, err := NewRotator(mock, todayPage, progress, 3).Rotate(context.Background(), weekdayTemplate())
	require.NoError(t, err)

	require.Len(t, result.Leftovers, 1)
	assert.Equal(t, "3 hours Reading", result.Leftovers[0].Text)
	assert.Equal(t, "Reading", result.Leftovers[0].CategoryKey)
	assert.NotEmpty(t, result.Leftovers[0].SourceLineID)
	assert.False(t, result.Leftovers[0].Matched)

	assert.Equal(t, 4, result.Removed)
	assert.Equal(t, 2, result.Added)
	assert.Len(t, mock.DeleteCalls, 4)
	assert.Equal(t, 4, progress.steps)
	assert.Equal(t, []string{"Removing todos"}, progress.phases)

	assert.Equal(t, []string{"Keep going", "Work", "2 hours Reading"}, mock.Texts(todayChecklist))
	for _, b := range mock.Children(todayChecklist)[1:] {
		assert.Equal(t, model.KindToDo, b.Kind)
		assert.False(t, b.Checked)
	}
}

func TestRotator_AppendsToLastChild(t *testing.T) {
	mock := notion.NewMockClient()
	seedToday(mock, todo("Stretch", true))
	mock.SetChildren(todayPage, append(mock.Children(todayPage), para("today-footer", "Tomorrow"))...)

	_, err := NewRotator(mock, todayPage, nil, 1).Rotate(context.Background(), weekdayTemplate())
	require.NoError(t, err)

	require.Len(t, mock.AppendCalls, 1)
	assert.Equal(t, "today-footer", mock.AppendCalls[0].ParentID)
	assert.Empty(t, mock.Children(todayChecklist))
}

func TestRotator_EmptyTemplateSkipsAppend(t *testing.T) {
	mock := notion.NewMockClient()
	seedToday(mock, todo("Stretch", false))

	result, err := NewRotator(mock, todayPage, nil, 1).Rotate(context.Background(), &model.ChecklistTemplate{Name: model.TemplateSunday})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Empty(t, mock.AppendCalls)
	assert.Empty(t, result.Leftovers)
}

func TestRotator_TodayPageTooShort(t *testing.T) {
	mock := notion.NewMockClient()
	mock.SetChildren(todayPage, para("today-title", "Today"), para("today-quote", "Quote"))

	_, err := NewRotator(mock, todayPage, nil, 1).Rotate(context.Background(), weekdayTemplate())
	require.ErrorIs(t, err, common.ErrLayout)
	assert.Empty(t, mock.DeleteCalls)
}

func TestRotator_RetriesConflictingDeletes(t *testing.T) {
	mock := notion.NewMockClient()
	seedToday(mock, todo("2 hours Reading", false), todo("Stretch", true))

	// Concurrency 1 keeps the hook single-threaded.
	target := mock.Children(todayChecklist)[0].ID
	failures := 0
	mock.DeleteBlockFn = func(_ context.Context, blockID string) error {
		if blockID == target && failures < 2 {
			failures++
			return fmt.Errorf("failed to delete block: %w", common.ErrConflict)
		}
		return nil
	}

	store := notion.NewRetryingClient(mock, service.FixedRetry(notion.DefaultMaxRetries, time.Millisecond))
	result, err := NewRotator(store, todayPage, nil, 1).Rotate(context.Background(), weekdayTemplate())
	require.NoError(t, err)

	assert.Equal(t, 2, failures)
	assert.Equal(t, 2, result.Removed)
	assert.Len(t, mock.DeleteCalls, 4)
}

func TestRotator_DeleteFailureAborts(t *testing.T) {
	mock := notion.NewMockClient()
	seedToday(mock, todo("2 hours Reading", false))

	boom := errors.New("service unavailable")
	mock.DeleteBlockFn = func(_ context.Context, _ string) error {
		return boom
	}

	_, err := NewRotator(mock, todayPage, nil, 2).Rotate(context.Background(), weekdayTemplate())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, mock.AppendCalls)
}
