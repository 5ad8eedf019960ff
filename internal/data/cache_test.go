package data

import (
	"testing"
	"time"

	"market-fixtures/internal/model"
	"market-fixtures/internal/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCache_PutGet(t *testing.T) {
	c := NewRunCache(time.Minute, 0)
	run := &Run{Kind: RunDecisions, Decisions: []model.Decision{1, 0}}
	id := c.Put(run)
	require.NotEmpty(t, id)
	assert.Equal(t, id, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Same(t, run, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestRunCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewRunCache(time.Minute, 0)
	c.now = func() time.Time { return now }

	id := c.Put(&Run{Kind: RunMarket, Key: "k"})
	_, ok := c.Lookup("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(id)
	assert.False(t, ok)
	_, ok = c.Lookup("k")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Len())
}

func TestRunCache_StartCleanupStops(t *testing.T) {
	c := NewRunCache(time.Millisecond, 0)
	c.Put(&Run{Kind: RunMarket})
	stop := make(chan struct{})
	c.StartCleanup(5*time.Millisecond, stop)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	close(stop)
}

func TestRunCache_EvictsOldestWhenFull(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewRunCache(time.Minute, 2)
	c.now = func() time.Time { return now }

	first := c.Put(&Run{Kind: RunMarket, Key: "a"})
	now = now.Add(time.Second)
	second := c.Put(&Run{Kind: RunMarket, Key: "b"})
	now = now.Add(time.Second)
	third := c.Put(&Run{Kind: RunMarket, Key: "c"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(first)
	assert.False(t, ok)
	_, ok = c.Lookup("a")
	assert.False(t, ok)
	_, ok = c.Get(second)
	assert.True(t, ok)
	_, ok = c.Get(third)
	assert.True(t, ok)

	// re-putting a live run does not evict anything
	run, _ := c.Get(third)
	c.Put(run)
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(second)
	assert.True(t, ok)
}

func TestGenerateCacheKey(t *testing.T) {
	p := synth.DefaultMarketParams()
	a := GenerateCacheKey(RunMarket, 42, p)
	b := GenerateCacheKey(RunMarket, 42, p)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, GenerateCacheKey(RunMarket, 43, p))
	p.Count = 10
	assert.NotEqual(t, a, GenerateCacheKey(RunMarket, 42, p))
	assert.NotEqual(t, a, GenerateCacheKey(RunDecisions, 42, synth.DefaultMarketParams()))
}
