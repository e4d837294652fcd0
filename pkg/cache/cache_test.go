package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

func result(runID string, titles ...string) domain.PipelineResult {
	res := domain.PipelineResult{
		RunID:           runID,
		CategorizedNews: map[domain.Category][]domain.NewsItem{},
		SeverityStats:   map[domain.Severity]int{domain.SeverityHigh: 0, domain.SeverityMedium: 0, domain.SeverityLow: 0},
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, title := range titles {
		item, err := domain.NewNewsItem(title, "body", "https://example.com/"+title, "test", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
		if err != nil {
			panic(err)
		}
		res.NewsItems = append(res.NewsItems, item)
		res.CategorizedNews[item.Category] = append(res.CategorizedNews[item.Category], item)
		res.SeverityStats[item.Severity]++
	}
	res.TotalItems = len(res.NewsItems)
	res.DailyDigest = "digest " + runID
	return res
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	_, ok := m.Get(ctx)
	assert.False(t, ok, "empty cache")

	require.NoError(t, m.Set(ctx, result("one", "a", "b")))
	got, ok := m.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "one", got.RunID)
	assert.Equal(t, 2, got.TotalItems)

	require.NoError(t, m.Set(ctx, result("two", "c")))
	got, ok = m.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "two", got.RunID, "whole snapshot replaced")
	assert.Equal(t, 1, got.TotalItems)

	now = now.Add(time.Minute)
	_, ok = m.Get(ctx)
	assert.False(t, ok, "expired")
}

func TestMemory_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewMemory(0).ttl)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour)
	require.NoError(t, m.Set(ctx, result("init", "a")))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Set(ctx, result("writer", "a", "b")))
		}()
		go func() {
			defer wg.Done()
			got, ok := m.Get(ctx)
			assert.True(t, ok)
			assert.Equal(t, got.TotalItems, len(got.NewsItems), "no partial snapshot")
		}()
	}
	wg.Wait()
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(RedisOpts{Addr: mr.Addr(), TTL: 10 * time.Minute})
	require.NoError(t, err)
	defer r.Close()

	_, ok := r.Get(ctx)
	assert.False(t, ok, "empty cache")

	want := result("run-1", "Ransomware hits city", "Zero-day in browser")
	require.NoError(t, r.Set(ctx, want))
	assert.Equal(t, 10*time.Minute, mr.TTL(DefaultKey))

	got, ok := r.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.TotalItems, got.TotalItems)
	assert.Equal(t, want.DailyDigest, got.DailyDigest)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
	require.Len(t, got.NewsItems, 2)
	assert.Equal(t, "Zero-day in browser", got.NewsItems[1].Title)
	assert.Len(t, got.CategorizedNews[domain.CategoryGeneral], 2)
	assert.Equal(t, 2, got.SeverityStats[domain.SeverityMedium])

	mr.FastForward(11 * time.Minute)
	_, ok = r.Get(ctx)
	assert.False(t, ok, "expired")
}

func TestRedis_CustomKeyAndBrokenValue(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(RedisOpts{Addr: mr.Addr(), Key: "custom"})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(ctx, result("x", "a")))
	assert.True(t, mr.Exists("custom"))
	assert.Equal(t, DefaultTTL, mr.TTL("custom"))

	require.NoError(t, mr.Set("custom", "not json"))
	_, ok := r.Get(ctx)
	assert.False(t, ok)
}

func TestNewRedis_Errors(t *testing.T) {
	_, err := NewRedis(RedisOpts{})
	require.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(RedisOpts{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
