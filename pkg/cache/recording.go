package cache

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// Recorder keeps past pipeline results
type Recorder interface {
	Save(ctx context.Context, res domain.PipelineResult) error
}

// Recording is a cache decorator saving every stored snapshot to the run history.
// History failures are logged and never fail Set.
type Recording struct {
	Cache
	rec Recorder
}

// NewRecording wraps c with run history recording
func NewRecording(c Cache, rec Recorder) *Recording {
	return &Recording{Cache: c, rec: rec}
}

// Set stores the snapshot in the wrapped cache and records it
func (r *Recording) Set(ctx context.Context, res domain.PipelineResult) error {
	if err := r.Cache.Set(ctx, res); err != nil {
		return err
	}
	if err := r.rec.Save(ctx, res); err != nil {
		lgr.Printf("[WARN] failed to record run %s: %v", res.RunID, err)
	}
	return nil
}
