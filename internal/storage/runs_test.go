package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(started time.Time) *service.RunRecord {
	return &service.RunRecord{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Day:        "Sunday",
		Template:   "Sunday",
		Leftovers:  3,
		Updated:    1,
		Filed:      1,
		Dropped: []service.DroppedItem{
			{Text: "4 hours Knitting", CategoryKey: "Knitting", Reason: "unclassified"},
			{Text: "20 reps Pushups", CategoryKey: "Pushups", Reason: "empty section"},
		},
	}
}

func TestSaveRun_RoundTripsDroppedItems(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)

	run := testRun(started)
	require.NoError(t, store.SaveRun(ctx, run))
	assert.NotEmpty(t, run.ID)

	runs, err := store.RecentRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "Sunday", got.Day)
	assert.True(t, got.StartedAt.Equal(started))
	assert.True(t, got.FinishedAt.Equal(run.FinishedAt))
	assert.Equal(t, 3, got.Leftovers)
	assert.Equal(t, 1, got.Updated)
	assert.Equal(t, 1, got.Filed)
	assert.False(t, got.DryRun)
	assert.Equal(t, run.Dropped, got.Dropped)
}

func TestSaveRun_KeepsGivenID(t *testing.T) {
	store := createTestStorage(t)
	run := testRun(time.Now())
	run.ID = "fixed-id"
	run.Dropped = nil
	run.DryRun = true

	require.NoError(t, store.SaveRun(context.Background(), run))

	runs, err := store.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fixed-id", runs[0].ID)
	assert.True(t, runs[0].DryRun)
	assert.Empty(t, runs[0].Dropped)
}

func TestSaveRun_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		run     *service.RunRecord
		wantErr error
		name    string
	}{
		{name: "nil run", run: nil, wantErr: ErrNilParameter},
		{name: "no start", run: &service.RunRecord{Day: "Monday"}, wantErr: ErrInvalidRun},
		{name: "no day", run: &service.RunRecord{StartedAt: now}, wantErr: ErrInvalidRun},
		{
			name:    "finished before started",
			run:     &service.RunRecord{StartedAt: now, FinishedAt: now.Add(-time.Minute), Day: "Monday"},
			wantErr: ErrInvalidRun,
		},
		{
			name: "blank dropped item",
			run: &service.RunRecord{
				StartedAt: now,
				Day:       "Monday",
				Dropped:   []service.DroppedItem{{Text: " "}},
			},
			wantErr: ErrInvalidRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, store.SaveRun(ctx, tt.run), tt.wantErr)
		})
	}

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecentRuns_NewestFirstAndLimited(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	days := []string{"Friday", "Saturday", "Sunday", "Monday"}
	for i, day := range days {
		run := testRun(base.AddDate(0, 0, i))
		run.Day = day
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Monday", runs[0].Day)
	assert.Equal(t, "Sunday", runs[1].Day)

	all, err := store.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(days))
}

func TestPruneRuns(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveRun(ctx, testRun(base.AddDate(0, 0, i))))
	}

	removed, err := store.PruneRuns(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].Dropped, 2)

	var orphans int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dropped_items`).Scan(&orphans))
	assert.Equal(t, 2, orphans)
}
