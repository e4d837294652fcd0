package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/cache"
	"github.com/cybernews-agent/cybernews/pkg/config"
	"github.com/cybernews-agent/cybernews/pkg/llm"
	"github.com/cybernews-agent/cybernews/pkg/notify"
	"github.com/cybernews-agent/cybernews/pkg/report"
	"github.com/cybernews-agent/cybernews/pkg/repository"
	"github.com/cybernews-agent/cybernews/pkg/scheduler"
	"github.com/cybernews-agent/cybernews/pkg/source"
	"github.com/cybernews-agent/cybernews/server"
)

// Opts with all CLI options
type Opts struct {
	Config    string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used when empty"`
	Listen    string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	RulesOnly bool   `long:"rules-only" env:"RULES_ONLY" description:"use rule-based classification and template digest only"`
	Once      bool   `long:"once" description:"run the pipeline once and print the json report to stdout"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// stdout receives the report in --once mode
var stdout io.Writer = os.Stdout

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)
	log.Printf("[INFO] starting cybernews version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// app holds wired components
type app struct {
	agent     *agent.Agent
	reporter  *report.Builder
	cache     cache.Cache
	notifier  *notify.Notifier
	scheduler *scheduler.Scheduler
	server    *server.Server
	closers   []io.Closer
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.RulesOnly {
		cfg.LLM.RulesOnly = true
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, secrets(cfg)...)

	a, err := newApp(ctx, cfg, opts.Debug)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.Once {
		return a.runOnce(ctx, cfg.Pipeline.MaxItems)
	}

	if cfg.Notify.AutoStart && shouldAutoStart(a.notifier.Status(ctx)) {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	defer a.scheduler.Stop()

	if err := a.server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newApp wires sources, classifier, reports, cache, store, notifications, scheduler and http server
func newApp(ctx context.Context, cfg *config.Config, debug bool) (*app, error) {
	var completer llm.Completer // nil keeps rules-only classification
	if cfg.LLMConfigured() {
		completer = llm.NewClient(llm.ClientOpts{
			Endpoint:    cfg.LLM.Endpoint,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		})
		log.Printf("[INFO] llm classification enabled, model %s", cfg.LLM.Model)
	} else {
		log.Printf("[INFO] llm not configured, using rule-based classification")
	}

	classifier := llm.NewClassifier(completer, llm.ClassifierOpts{RulesOnly: cfg.LLM.RulesOnly, MaxTokens: cfg.LLM.MaxTokens})
	digests := classifier.DigestWriter(cfg.LLM.DigestMaxTokens)
	reporter := report.NewBuilder(digests, report.Opts{AppURL: cfg.Notify.AppURL, Schedule: cfg.Notify.Schedule})

	res := &app{
		agent:    agent.New(makeSources(cfg), classifier, reporter, agent.WithTimeout(cfg.Pipeline.Timeout)),
		reporter: reporter,
	}

	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedis(cache.RedisOpts{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Key:      cfg.Cache.Key,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Printf("[INFO] using redis cache at %s", cfg.Cache.RedisAddr)
		res.cache = rc
		res.closers = append(res.closers, rc)
	} else {
		res.cache = cache.NewMemory(cfg.Cache.TTL)
	}

	var subscribers notify.Subscribers
	var history server.History // stays nil without the sqlite store
	if cfg.StoreConfigured() {
		repos, err := repository.NewRepositories(ctx, repository.Config{
			DSN:      storeDSN(cfg.Store.Path),
			KeepRuns: cfg.Store.KeepRuns,
		})
		if err != nil {
			res.close()
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		log.Printf("[INFO] using sqlite store at %s, keeping %d runs", cfg.Store.Path, cfg.Store.KeepRuns)
		res.closers = append(res.closers, repos)
		res.cache = cache.NewRecording(res.cache, repos.Run)
		subscribers, history = repos.Subscriber, repos.Run
	} else {
		store, err := notify.NewSubscriberStore(cfg.Notify.SubscribersFile)
		if err != nil {
			res.close()
			return nil, fmt.Errorf("failed to load subscribers: %w", err)
		}
		subscribers = store
	}
	res.notifier = notify.NewNotifier(subscribers, reporter, makeMailer(cfg), makeWebhook(cfg))

	var err error
	res.scheduler, err = scheduler.NewScheduler(scheduler.Params{
		Pipeline: res.agent,
		Cache:    res.cache,
		Notifier: res.notifier,
		Spec:     cfg.Notify.Schedule,
		MaxItems: cfg.Notify.MaxItems,
	})
	if err != nil {
		res.close()
		return nil, fmt.Errorf("failed to make scheduler: %w", err)
	}

	res.server = server.New(server.Params{
		Config:    cfg,
		Pipeline:  res.agent,
		Cache:     res.cache,
		Reporter:  reporter,
		Notifier:  res.notifier,
		Scheduler: res.scheduler,
		History:   history,
		BaseURL:   cfg.Server.BaseURL,
		MaxItems:  cfg.Pipeline.MaxItems,
		Version:   revision,
		Debug:     debug,
	})
	return res, nil
}

// runOnce runs a single pipeline and writes the json report
func (a *app) runOnce(ctx context.Context, maxItems int) error {
	res := a.agent.RunFullPipeline(ctx, maxItems)
	if err := a.cache.Set(ctx, res); err != nil {
		log.Printf("[WARN] failed to cache pipeline result: %v", err)
	}
	log.Printf("[INFO] %s", agent.Summary(res))

	data, err := a.reporter.JSON(ctx, res.NewsItems)
	if err != nil {
		return fmt.Errorf("failed to make json report: %w", err)
	}
	if _, err := stdout.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("[WARN] close failed: %v", err)
		}
	}
}

// storeDSN makes the sqlite dsn for a database file
func storeDSN(path string) string {
	return "file:" + path + "?mode=rwc&_txlock=immediate"
}

func makeSources(cfg *config.Config) []agent.Source {
	sc := cfg.Sources
	var res []agent.Source
	if sc.NewsAPI.Enabled {
		res = append(res, source.NewNewsAPI(source.NewsAPIOpts{
			APIKey:         sc.NewsAPI.APIKey,
			BaseURL:        sc.NewsAPI.BaseURL,
			SearchTerms:    sc.NewsAPI.SearchTerms,
			TrustedSources: sc.NewsAPI.TrustedSources,
			MaxSources:     sc.NewsAPI.MaxSources,
			RequestDelay:   sc.NewsAPI.RequestDelay,
			SourceDelay:    sc.NewsAPI.SourceDelay,
			Timeout:        sc.Timeout,
			UserAgent:      sc.UserAgent,
		}))
	}
	if sc.Web.Enabled {
		res = append(res, source.NewWeb(source.WebOpts{
			Feeds:            sc.Web.Feeds,
			Sites:            sc.Web.Sites,
			PerFeedLimit:     sc.Web.PerFeedLimit,
			PerSiteLimit:     sc.Web.PerSiteLimit,
			FeedDelay:        sc.Web.FeedDelay,
			SiteDelay:        sc.Web.SiteDelay,
			MaxContentLength: sc.Web.MaxContentLength,
			Timeout:          sc.Timeout,
			UserAgent:        sc.UserAgent,
		}))
	}
	if sc.Reddit.Enabled {
		res = append(res, source.NewReddit(source.RedditOpts{
			ClientID:       sc.Reddit.ClientID,
			ClientSecret:   sc.Reddit.ClientSecret,
			TokenURL:       sc.Reddit.TokenURL,
			APIURL:         sc.Reddit.APIURL,
			Subreddits:     sc.Reddit.Subreddits,
			MaxChannels:    sc.Reddit.MaxChannels,
			ChannelDelay:   sc.Reddit.ChannelDelay,
			MinTitleLength: sc.Reddit.MinTitleLength,
			Timeout:        sc.Timeout,
			UserAgent:      sc.UserAgent,
		}))
	}
	log.Printf("[INFO] %d sources enabled", len(res))
	return res
}

// makeMailer returns nil interface when smtp is not configured
func makeMailer(cfg *config.Config) notify.Mailer {
	if !cfg.EmailConfigured() {
		return nil
	}
	smtp := cfg.Notify.SMTP
	return notify.NewSMTPMailer(notify.SMTPOpts{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
		StartTLS: smtp.StartTLS,
		Timeout:  smtp.Timeout,
	})
}

// makeWebhook returns nil interface when webhook url is not set
func makeWebhook(cfg *config.Config) notify.WebhookSender {
	if cfg.Notify.WebhookURL == "" {
		return nil
	}
	return notify.NewWebhook(notify.WebhookOpts{
		URL:     cfg.Notify.WebhookURL,
		AppURL:  cfg.Notify.AppURL,
		Timeout: 10 * time.Second,
	})
}

// shouldAutoStart reports whether daily notifications have someone to deliver to
func shouldAutoStart(st notify.Status) bool {
	return (st.EmailConfigured && st.SubscriberCount > 0) || st.WebhookConfigured
}

// secrets collects config values masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Sources.NewsAPI.APIKey, cfg.Sources.Reddit.ClientSecret,
		cfg.Notify.SMTP.Password, cfg.Cache.RedisPassword} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
