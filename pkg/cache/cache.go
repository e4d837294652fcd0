// Package cache keeps the latest pipeline result for readers. The snapshot is always
// replaced as a whole and expires after a ttl.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// DefaultTTL is used when ttl is not set
const DefaultTTL = 60 * time.Minute

// Cache stores the latest pipeline result
type Cache interface {
	Get(ctx context.Context) (domain.PipelineResult, bool)
	Set(ctx context.Context, res domain.PipelineResult) error
}

// Memory keeps the snapshot in process memory
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	res     domain.PipelineResult
	expires time.Time
	set     bool
}

// NewMemory makes an in-memory cache
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, now: time.Now}
}

// Get returns the snapshot if it is present and not expired
func (m *Memory) Get(_ context.Context) (domain.PipelineResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set || !m.now().Before(m.expires) {
		return domain.PipelineResult{}, false
	}
	return m.res, true
}

// Set replaces the snapshot
func (m *Memory) Set(_ context.Context, res domain.PipelineResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.res, m.expires, m.set = res, m.now().Add(m.ttl), true
	return nil
}
