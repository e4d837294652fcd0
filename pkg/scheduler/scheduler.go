// Package scheduler runs the pipeline on a daily cron schedule, stores the result in the cache
// and sends the daily notification.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/cache"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

//go:generate moq -out mocks/pipeline.go -pkg mocks -skip-ensure -fmt goimports . Pipeline
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

const (
	// DefaultSpec fires every day at 09:00 local time
	DefaultSpec     = "0 9 * * *"
	defaultMaxItems = 20
)

var (
	// ErrAlreadyRunning is returned by Start on a started scheduler
	ErrAlreadyRunning = errors.New("scheduler is already running")
	// ErrRunInProgress is returned by RunNow while another run is going
	ErrRunInProgress = errors.New("pipeline run in progress")
)

// Pipeline produces a classified result
type Pipeline interface {
	RunFullPipeline(ctx context.Context, maxItems int) domain.PipelineResult
}

// Notifier delivers the daily digest
type Notifier interface {
	SendDaily(ctx context.Context, items []domain.NewsItem) error
}

// Params holds scheduler dependencies and settings
type Params struct {
	Pipeline Pipeline
	Cache    cache.Cache
	Notifier Notifier
	Spec     string // 5-field cron spec or descriptor like @daily
	MaxItems int
}

// Scheduler triggers the daily job. At most one job runs at a time, a trigger that fires
// while the previous run is going is skipped.
type Scheduler struct {
	pipeline Pipeline
	cache    cache.Cache
	notifier Notifier
	spec     string
	maxItems int
	parser   cron.Parser

	mu     sync.Mutex
	cron   *cron.Cron
	entry  cron.EntryID
	cancel context.CancelFunc

	runMu sync.Mutex
}

// NewScheduler makes a scheduler and validates its cron spec
func NewScheduler(params Params) (*Scheduler, error) {
	if params.Spec == "" {
		params.Spec = DefaultSpec
	}
	if params.MaxItems <= 0 {
		params.MaxItems = defaultMaxItems
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(params.Spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", params.Spec, err)
	}
	return &Scheduler{
		pipeline: params.Pipeline,
		cache:    params.Cache,
		notifier: params.Notifier,
		spec:     params.Spec,
		maxItems: params.MaxItems,
		parser:   parser,
	}, nil
}

// Start begins firing the daily job until Stop or ctx cancellation
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	logger := cronLogger{}
	c := cron.New(cron.WithParser(s.parser), cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	entry, err := c.AddFunc(s.spec, func() {
		if _, err := s.run(ctx); err != nil {
			lgr.Printf("[WARN] scheduled run failed: %v", err)
		}
	})
	if err != nil {
		cancel()
		return fmt.Errorf("schedule daily job: %w", err)
	}
	c.Start()

	s.cron, s.entry, s.cancel = c, entry, cancel
	lgr.Printf("[INFO] daily notification scheduler started with schedule %q, next run at %v",
		s.spec, c.Entry(entry).Next.Format(time.RFC3339))
	return nil
}

// Stop cancels a running job, waits for it to finish and stops firing. It is a no-op when not started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	lgr.Printf("[INFO] stopping scheduler...")
	cancel()
	<-c.Stop().Done()
	lgr.Printf("[INFO] scheduler stopped")
}

// Running reports whether the scheduler is started
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// NextRun returns the next trigger time, zero when not started
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// Spec returns the cron spec
func (s *Scheduler) Spec() string {
	return s.spec
}

// RunNow runs the job synchronously, it fails with ErrRunInProgress if a run is going
func (s *Scheduler) RunNow(ctx context.Context) (domain.PipelineResult, error) {
	return s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) (domain.PipelineResult, error) {
	if !s.runMu.TryLock() {
		return domain.PipelineResult{}, ErrRunInProgress
	}
	defer s.runMu.Unlock()

	st := time.Now()
	lgr.Printf("[INFO] running daily notification job")
	res := s.pipeline.RunFullPipeline(ctx, s.maxItems)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("daily job interrupted: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, res); err != nil {
			lgr.Printf("[WARN] failed to cache pipeline result: %v", err)
		}
	}
	if err := s.notifier.SendDaily(ctx, res.NewsItems); err != nil {
		return res, fmt.Errorf("send daily notification: %w", err)
	}
	lgr.Printf("[INFO] daily notification job completed in %v, %s", time.Since(st), agent.Summary(res))
	return res, nil
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	lgr.Printf("[DEBUG] cron %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	lgr.Printf("[ERROR] cron %s: %v %v", msg, err, keysAndValues)
}
