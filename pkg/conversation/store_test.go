package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pc-estimate-be/pkg/parts"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb), mr
}

func TestAppendAndHistory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: "office pc 100만원"}))
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleAssistant, Content: "done"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "office pc 100만원", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	turns, err := store.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppendTrimsToMaxTurns(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := NewStoreWithLimits(rdb, 5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: fmt.Sprintf("msg %d", i)}))
	}

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 5)
	assert.Equal(t, "msg 4", turns[0].Content, "oldest turns evicted first")
	assert.Equal(t, "msg 8", turns[4].Content)
}

func TestTTLIsSliding(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: "hi"}))

	mr.FastForward(5 * time.Hour)
	_, err := store.History(ctx, "s1")
	require.NoError(t, err)

	// The read refreshed the window; another 5h still leaves the
	// session alive, but 6h of silence after that expires it.
	mr.FastForward(5 * time.Hour)
	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, turns, 1)

	mr.FastForward(6*time.Hour + time.Minute)
	turns, err = store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestLatestEstimate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	full := parts.Estimate{
		CPU:        &parts.EstimatePart{Name: "i5-14400F", Price: 250000},
		GPU:        &parts.EstimatePart{Name: "RTX 4060", Price: 410000},
		TotalPrice: 660000,
	}
	fullJSON, err := json.Marshal(full)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: "gaming pc"}))
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleAssistant, Content: string(fullJSON)}))
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: "cheaper please"}))
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleAssistant, Content: "I could not build one."}))

	est, err := store.LatestEstimate(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, est, "free-text assistant turn is skipped in favor of the last real estimate")
	assert.Equal(t, "i5-14400F", est.CPU.Name)
	assert.Equal(t, 660000, est.TotalPrice)
}

func TestLatestEstimateRequiresCoreParts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	partial, err := json.Marshal(parts.Estimate{CPU: &parts.EstimatePart{Name: "i3", Price: 1}})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleAssistant, Content: string(partial)}))

	est, err := store.LatestEstimate(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, est, "estimate without both cpu and gpu does not qualify")
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleUser, Content: "hi"}))
	require.NoError(t, store.Clear(ctx, "s1"))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
