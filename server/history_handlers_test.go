package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/repository"
	"github.com/cybernews-agent/cybernews/server/mocks"
)

func TestServer_History(t *testing.T) {
	srv, deps := testServer(t)
	deps.history.RecentFunc = func(_ context.Context, limit int) ([]domain.RunSummary, error) {
		runs := []domain.RunSummary{
			{RunID: "run-2", TotalItems: 4, High: 1, Medium: 2, Low: 1, Timestamp: testTime.Add(time.Hour)},
			{RunID: "run-1", TotalItems: 3, High: 1, Medium: 1, Low: 1, Timestamp: testTime},
		}
		if limit > 0 && limit < len(runs) {
			runs = runs[:limit]
		}
		return runs, nil
	}

	w := serve(srv, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Runs  []domain.RunSummary `json:"runs"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "run-2", resp.Runs[0].RunID)
	assert.Equal(t, 2, resp.Runs[0].Medium)
	assert.Equal(t, 0, deps.history.RecentCalls()[0].Limit)

	w = serve(srv, http.MethodGet, "/api/v1/history?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, deps.history.RecentCalls()[1].Limit)

	for _, bad := range []string{"0", "-2", "abc"} {
		w = serve(srv, http.MethodGet, "/api/v1/history?limit="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
	assert.Len(t, deps.history.RecentCalls(), 2)

	deps.history.RecentFunc = func(context.Context, int) ([]domain.RunSummary, error) {
		return nil, errors.New("db gone")
	}
	w = serve(srv, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone")
}

func TestServer_HistoryRun(t *testing.T) {
	srv, deps := testServer(t)
	deps.history.GetFunc = func(_ context.Context, runID string) (domain.PipelineResult, error) {
		switch runID {
		case "run-1":
			return domain.PipelineResult{RunID: "run-1", NewsItems: testItems(), TotalItems: 3, Timestamp: testTime}, nil
		case "broken":
			return domain.PipelineResult{}, errors.New("bad json")
		}
		return domain.PipelineResult{}, fmt.Errorf("run %s: %w", runID, repository.ErrNotFound)
	}

	w := serve(srv, http.MethodGet, "/api/v1/history/run-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.PipelineResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "run-1", res.RunID)
	assert.Len(t, res.NewsItems, 3)

	w = serve(srv, http.MethodGet, "/api/v1/history/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(srv, http.MethodGet, "/api/v1/history/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_HistoryDisabled(t *testing.T) {
	srv := New(Params{
		Config:    &mocks.ConfigProviderMock{},
		Pipeline:  &mocks.PipelineMock{},
		Reporter:  &mocks.ReporterMock{},
		Notifier:  &mocks.NotifierMock{},
		Scheduler: &mocks.SchedulerMock{},
	})
	w := serve(srv, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
