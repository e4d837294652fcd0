package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/cache/mocks"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

func TestRecording(t *testing.T) {
	ctx := context.Background()
	rec := &mocks.RecorderMock{SaveFunc: func(context.Context, domain.PipelineResult) error { return nil }}
	c := NewRecording(NewMemory(time.Hour), rec)

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, result("run-1", "a")))
	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.RunID)
	require.Len(t, rec.SaveCalls(), 1)
	assert.Equal(t, "run-1", rec.SaveCalls()[0].Res.RunID)
}

func TestRecording_RecorderFailureIgnored(t *testing.T) {
	ctx := context.Background()
	rec := &mocks.RecorderMock{SaveFunc: func(context.Context, domain.PipelineResult) error { return errors.New("db locked") }}
	c := NewRecording(NewMemory(time.Hour), rec)

	require.NoError(t, c.Set(ctx, result("run-1", "a")))
	_, ok := c.Get(ctx)
	assert.True(t, ok)
}

type failingCache struct{ Memory }

func (f *failingCache) Set(context.Context, domain.PipelineResult) error { return errors.New("redis down") }

func TestRecording_CacheFailureNotRecorded(t *testing.T) {
	rec := &mocks.RecorderMock{}
	c := NewRecording(&failingCache{}, rec)
	require.EqualError(t, c.Set(context.Background(), result("run-1", "a")), "redis down")
	assert.Empty(t, rec.SaveCalls())
}
