package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/cache"
	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/scheduler/mocks"
)

func TestNewScheduler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := NewScheduler(Params{Pipeline: &mocks.PipelineMock{}, Notifier: &mocks.NotifierMock{}})
		require.NoError(t, err)
		assert.Equal(t, DefaultSpec, s.Spec())
		assert.Equal(t, 20, s.maxItems)
		assert.False(t, s.Running())
		assert.True(t, s.NextRun().IsZero())
	})

	t.Run("custom", func(t *testing.T) {
		s, err := NewScheduler(Params{Spec: "@daily", MaxItems: 5})
		require.NoError(t, err)
		assert.Equal(t, "@daily", s.Spec())
		assert.Equal(t, 5, s.maxItems)
	})

	t.Run("invalid spec", func(t *testing.T) {
		_, err := NewScheduler(Params{Spec: "every morning"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid schedule")
	})

	t.Run("seconds field rejected", func(t *testing.T) {
		_, err := NewScheduler(Params{Spec: "0 0 9 * * *"})
		require.Error(t, err)
	})
}

func TestScheduler_RunNow(t *testing.T) {
	items := []domain.NewsItem{{Title: "Ransomware hits hospital", URL: "https://example.com/1", Severity: domain.SeverityHigh}}
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		return domain.PipelineResult{RunID: "run-1", NewsItems: items, TotalItems: len(items)}
	}}
	notifier := &mocks.NotifierMock{SendDailyFunc: func(ctx context.Context, items []domain.NewsItem) error {
		return nil
	}}
	mem := cache.NewMemory(time.Hour)

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier, Cache: mem, MaxItems: 7})
	require.NoError(t, err)

	res, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)

	require.Len(t, pipeline.RunFullPipelineCalls(), 1)
	assert.Equal(t, 7, pipeline.RunFullPipelineCalls()[0].MaxItems)
	require.Len(t, notifier.SendDailyCalls(), 1)
	assert.Equal(t, items, notifier.SendDailyCalls()[0].Items)

	cached, ok := mem.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, "run-1", cached.RunID)
}

func TestScheduler_RunNowNotifyError(t *testing.T) {
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		return domain.PipelineResult{RunID: "run-2"}
	}}
	notifier := &mocks.NotifierMock{SendDailyFunc: func(ctx context.Context, items []domain.NewsItem) error {
		return errors.New("smtp down")
	}}
	mem := cache.NewMemory(time.Hour)

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier, Cache: mem})
	require.NoError(t, err)

	res, err := s.RunNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Equal(t, "run-2", res.RunID)

	// result is cached even if delivery failed
	_, ok := mem.Get(context.Background())
	assert.True(t, ok)
}

func TestScheduler_RunNowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		cancel()
		return domain.PipelineResult{}
	}}
	notifier := &mocks.NotifierMock{}

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier})
	require.NoError(t, err)

	_, err = s.RunNow(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, notifier.SendDailyCalls())
}

func TestScheduler_RunNowInProgress(t *testing.T) {
	started, release := make(chan struct{}), make(chan struct{})
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		close(started)
		<-release
		return domain.PipelineResult{}
	}}
	notifier := &mocks.NotifierMock{SendDailyFunc: func(ctx context.Context, items []domain.NewsItem) error {
		return nil
	}}

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.RunNow(context.Background())
		done <- err
	}()
	<-started

	_, err = s.RunNow(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, pipeline.RunFullPipelineCalls(), 1)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler(Params{Pipeline: &mocks.PipelineMock{}, Notifier: &mocks.NotifierMock{}})
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Running())
	next := s.NextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))

	require.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRunning)

	s.Stop()
	assert.False(t, s.Running())
	assert.True(t, s.NextRun().IsZero())
	s.Stop() // second stop is a no-op

	// can be started again after stop
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

func TestScheduler_FiresJob(t *testing.T) {
	var runs atomic.Int32
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		runs.Add(1)
		return domain.PipelineResult{RunID: "tick"}
	}}
	notifier := &mocks.NotifierMock{SendDailyFunc: func(ctx context.Context, items []domain.NewsItem) error {
		return nil
	}}

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier, Spec: "@every 1s"})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool { return len(notifier.SendDailyCalls()) >= 1 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	started := make(chan struct{})
	var cancelled atomic.Bool
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		select {
		case <-started:
		default:
			close(started)
		}
		<-ctx.Done()
		cancelled.Store(true)
		return domain.PipelineResult{}
	}}
	notifier := &mocks.NotifierMock{}

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: notifier, Spec: "@every 1s"})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		s.Stop()
		t.Fatal("job was not started")
	}

	s.Stop()
	assert.True(t, cancelled.Load(), "stop should wait for the running job")
	assert.Len(t, pipeline.RunFullPipelineCalls(), 1)
	assert.Empty(t, notifier.SendDailyCalls())
}

func TestScheduler_PanicRecovered(t *testing.T) {
	var runs atomic.Int32
	pipeline := &mocks.PipelineMock{RunFullPipelineFunc: func(ctx context.Context, maxItems int) domain.PipelineResult {
		runs.Add(1)
		panic("boom")
	}}

	s, err := NewScheduler(Params{Pipeline: pipeline, Notifier: &mocks.NotifierMock{}, Spec: "@every 1s"})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.True(t, s.Running())
}
