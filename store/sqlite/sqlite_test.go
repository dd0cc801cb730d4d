package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := RunRecord{
		ID:          "run-1",
		Kind:        RunComparison,
		RequestJSON: `{"principal":500000}`,
		ResultJSON:  `{"months_saved":60}`,
	}
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, RunComparison, got.Kind)
	assert.Equal(t, run.RequestJSON, got.RequestJSON)
	assert.Equal(t, run.ResultJSON, got.ResultJSON)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetRunMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := RunRecord{ID: "dup", Kind: RunSchedule, RequestJSON: "{}", ResultJSON: "{}"}
	require.NoError(t, store.SaveRun(ctx, run))
	assert.Error(t, store.SaveRun(ctx, run))
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveRun(ctx, RunRecord{
			ID:          id,
			Kind:        RunMulti,
			RequestJSON: "{}",
			ResultJSON:  "{}",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[2].ID)
}

func TestListRunsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRun(ctx, RunRecord{
			ID:          string(rune('a' + i)),
			Kind:        RunSchedule,
			RequestJSON: "{}",
			ResultJSON:  "{}",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, RunRecord{ID: "r", Kind: RunSchedule, RequestJSON: "{}", ResultJSON: "{}"}))
	require.NoError(t, store.Reset(ctx))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
