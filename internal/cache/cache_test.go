package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New()
	c.Set("quote:AAPL", 182.5, time.Minute)

	val, ok := c.Get("quote:AAPL")
	require.True(t, ok)
	assert.Equal(t, 182.5, val)
}

func TestCache_GetMissing(t *testing.T) {
	c := New()

	val, ok := c.Get("quote:MSFT")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCache_Expiry(t *testing.T) {
	c := New()
	c.Set("beta:AAPL", 1.15, 20*time.Millisecond)

	_, ok := c.Get("beta:AAPL")
	require.True(t, ok, "entry should be visible before expiry")

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get("beta:AAPL")
	assert.False(t, ok, "entry must not be visible after expiry")

	// The expired read evicts the entry, so it no longer counts at all.
	stats := c.Stats()
	assert.Equal(t, 0, stats.TotalKeys)
}

func TestCache_OverwriteReplacesEntry(t *testing.T) {
	c := New()
	c.Set("vol30d:AAPL", 18.0, time.Minute)
	c.Set("vol30d:AAPL", 22.5, time.Minute)

	val, ok := c.Get("vol30d:AAPL")
	require.True(t, ok)
	assert.Equal(t, 22.5, val)

	stats := c.Stats()
	assert.Equal(t, 1, stats.TotalKeys)
}

func TestCache_Delete(t *testing.T) {
	c := New()
	c.Set("quote:AAPL", 182.5, time.Minute)

	c.Delete("quote:AAPL")
	_, ok := c.Get("quote:AAPL")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	c.Delete("quote:AAPL")
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Set("quote:AAPL", 182.5, time.Minute)
	c.Set("quote:MSFT", 410.0, time.Minute)

	c.Clear()

	stats := c.Stats()
	assert.Equal(t, 0, stats.TotalKeys)
	assert.Equal(t, 0, stats.AliveKeys)
}

func TestCache_StatsCountsStaleEntries(t *testing.T) {
	c := New()
	c.Set("quote:AAPL", 182.5, 10*time.Millisecond)
	c.Set("quote:MSFT", 410.0, time.Minute)

	time.Sleep(20 * time.Millisecond)

	// The AAPL entry is expired but has not been read, so it is still
	// counted in TotalKeys. This is deliberate: eviction is lazy.
	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalKeys)
	assert.Equal(t, 1, stats.AliveKeys)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("quote:SYM%d", n%10)
			c.Set(key, float64(n), time.Minute)
			c.Get(key)
			c.Stats()
		}(i)
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, 10, stats.TotalKeys)
	assert.Equal(t, 10, stats.AliveKeys)
}
