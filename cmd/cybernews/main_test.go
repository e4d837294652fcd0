package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/cache"
	"github.com/cybernews-agent/cybernews/pkg/config"
	"github.com/cybernews-agent/cybernews/pkg/notify"
)

func testConfigPath(t *testing.T) string {
	t.Helper()
	t.Setenv("CYBERNEWS_TEST_DIR", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "testdata", "test_config.yml")
}

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_Once(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: testConfigPath(t), Once: true})
	require.NoError(t, err)

	var report struct {
		TotalItems int    `json:"total_items"`
		Digest     string `json:"digest"`
		Items      []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
			Severity string `json:"severity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 10, report.TotalItems, "placeholder items from two sources")
	assert.Len(t, report.Items, 10)
	assert.NotEmpty(t, report.Digest)
	for _, item := range report.Items {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Category)
		assert.Contains(t, []string{"High", "Medium", "Low"}, item.Severity)
	}
}

func TestRun_ServerStartStop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfgPath := testConfigPath(t)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, Opts{Config: cfgPath, RulesOnly: true})
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get("http://127.0.0.1:18765/ping")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))

	statusResp, err := http.Get("http://127.0.0.1:18765/api/v1/notifications")
	require.NoError(t, err)
	defer statusResp.Body.Close()
	var status map[string]any
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.Equal(t, false, status["scheduler_running"], "nothing to deliver to, scheduler stays off")

	cancel()
	select {
	case err := <-serverErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Error("server shutdown timeout")
	}
}

func TestNewApp(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Notify.SubscribersFile = filepath.Join(t.TempDir(), "subscribers.txt")

	a, err := newApp(context.Background(), cfg, false)
	require.NoError(t, err)
	defer a.close()

	st := a.notifier.Status(context.Background())
	assert.False(t, st.EmailConfigured)
	assert.False(t, st.WebhookConfigured)
	assert.Equal(t, "0 9 * * *", a.scheduler.Spec())
	assert.NotNil(t, a.server)

	t.Run("redis unreachable", func(t *testing.T) {
		cfg.Cache.RedisAddr = "127.0.0.1:1"
		_, err := newApp(context.Background(), cfg, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to redis")
		cfg.Cache.RedisAddr = ""
	})

	t.Run("sqlite store", func(t *testing.T) {
		cfg.Store.Path = filepath.Join(t.TempDir(), "cybernews.db")
		defer func() { cfg.Store.Path = "" }()
		ctx := context.Background()

		a, err := newApp(ctx, cfg, false)
		require.NoError(t, err)
		defer a.close()

		_, isRecording := a.cache.(*cache.Recording)
		assert.True(t, isRecording, "results are recorded in run history")
		added, err := a.notifier.Subscribe(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 1, a.notifier.Status(ctx).SubscriberCount)
		assert.FileExists(t, cfg.Store.Path)
	})

	t.Run("store path unusable", func(t *testing.T) {
		cfg.Store.Path = filepath.Join(t.TempDir(), "missing", "dir", "cybernews.db")
		defer func() { cfg.Store.Path = "" }()
		_, err := newApp(context.Background(), cfg, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open store")
	})

	t.Run("invalid schedule", func(t *testing.T) {
		cfg.Notify.Schedule = "whenever"
		_, err := newApp(context.Background(), cfg, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to make scheduler")
		cfg.Notify.Schedule = "0 9 * * *"
	})
}

func TestStoreDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/x.db?mode=rwc&_txlock=immediate", storeDSN("/tmp/x.db"))
}

func TestMakeSources(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Len(t, makeSources(cfg), 3)

	cfg.Sources.Web.Enabled = false
	cfg.Sources.Reddit.Enabled = false
	srcs := makeSources(cfg)
	require.Len(t, srcs, 1)
	assert.Equal(t, "newsapi", srcs[0].Name())
}

func TestMakeMailerAndWebhook(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Nil(t, makeMailer(cfg))
	assert.Nil(t, makeWebhook(cfg))

	cfg.Notify.SMTP.Host = "smtp.example.com"
	cfg.Notify.SMTP.From = "news@example.com"
	cfg.Notify.WebhookURL = "https://discord.example.com/hook"
	assert.NotNil(t, makeMailer(cfg))
	assert.NotNil(t, makeWebhook(cfg))
}

func TestShouldAutoStart(t *testing.T) {
	tests := []struct {
		name string
		st   notify.Status
		want bool
	}{
		{name: "nothing configured", st: notify.Status{}, want: false},
		{name: "email without subscribers", st: notify.Status{EmailConfigured: true}, want: false},
		{name: "email with subscribers", st: notify.Status{EmailConfigured: true, SubscriberCount: 2}, want: true},
		{name: "webhook only", st: notify.Status{WebhookConfigured: true}, want: true},
		{name: "subscribers without email", st: notify.Status{SubscriberCount: 3}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldAutoStart(tt.st))
		})
	}
}

func TestSecrets(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Empty(t, secrets(cfg))

	cfg.LLM.APIKey = "sk-123"
	cfg.Notify.SMTP.Password = "pass"
	assert.Equal(t, []string{"sk-123", "pass"}, secrets(cfg))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})
	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})
	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})
}
