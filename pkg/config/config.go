package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" jsonschema:"description=Pipeline run settings"`
	Sources  SourcesConfig  `yaml:"sources" json:"sources" jsonschema:"description=News source connectors"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article classification and digests"`
	Notify   NotifyConfig   `yaml:"notify" json:"notify" jsonschema:"description=Subscriber notification settings"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" jsonschema:"description=Latest pipeline result cache"`
	Store    StoreConfig    `yaml:"store" json:"store" jsonschema:"description=Persistent subscriber and run history store"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
}

// PipelineConfig holds settings of a single pipeline run
type PipelineConfig struct {
	MaxItems int           `yaml:"max_items" json:"max_items" jsonschema:"default=50,minimum=1,description=Maximum items kept per pipeline run"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10m,description=Upper bound for a whole pipeline run"`
}

// SourcesConfig holds connector settings
type SourcesConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Timeout for every outgoing HTTP call"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=CyberNewsAgent/1.0,description=User agent for HTTP requests"`
	NewsAPI   NewsAPIConfig `yaml:"newsapi" json:"newsapi" jsonschema:"description=Structured news API connector"`
	Web       WebConfig     `yaml:"web" json:"web" jsonschema:"description=RSS feeds and direct site scraping"`
	Reddit    RedditConfig  `yaml:"reddit" json:"reddit" jsonschema:"description=Discussion platform connector"`
}

// NewsAPIConfig holds the structured news API connector settings
type NewsAPIConfig struct {
	Enabled        bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the connector"`
	APIKey         string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key, placeholder items are served when empty"`
	BaseURL        string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://newsapi.org/v2,description=API base URL"`
	SearchTerms    []string      `yaml:"search_terms" json:"search_terms" jsonschema:"description=Search terms for the broad search sub-fetch"`
	TrustedSources []string      `yaml:"trusted_sources" json:"trusted_sources" jsonschema:"description=Source ids always used by the curated sources sub-fetch"`
	MaxSources     int           `yaml:"max_sources" json:"max_sources" jsonschema:"default=3,description=Number of curated sources to query"`
	RequestDelay   time.Duration `yaml:"request_delay" json:"request_delay" jsonschema:"default=5s,description=Delay between search requests"`
	SourceDelay    time.Duration `yaml:"source_delay" json:"source_delay" jsonschema:"default=1s,description=Delay between curated source requests"`
}

// WebConfig holds the rss and scraping connector settings
type WebConfig struct {
	Enabled          bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the connector"`
	Feeds            []string      `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feed URLs"`
	Sites            []string      `yaml:"sites" json:"sites" jsonschema:"description=Site front pages for direct scraping"`
	PerFeedLimit     int           `yaml:"per_feed_limit" json:"per_feed_limit" jsonschema:"default=5,description=Entries taken from each feed"`
	PerSiteLimit     int           `yaml:"per_site_limit" json:"per_site_limit" jsonschema:"default=3,description=Articles taken from each site"`
	FeedDelay        time.Duration `yaml:"feed_delay" json:"feed_delay" jsonschema:"default=1s,description=Delay between feeds"`
	SiteDelay        time.Duration `yaml:"site_delay" json:"site_delay" jsonschema:"default=2s,description=Delay between sites"`
	MaxContentLength int           `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=2000,description=Maximum characters of scraped article body"`
}

// RedditConfig holds the discussion platform connector settings
type RedditConfig struct {
	Enabled        bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the connector"`
	ClientID       string        `yaml:"client_id" json:"client_id" jsonschema:"description=OAuth client id, placeholder items are served when empty"`
	ClientSecret   string        `yaml:"client_secret" json:"client_secret" jsonschema:"description=OAuth client secret"`
	TokenURL       string        `yaml:"token_url" json:"token_url" jsonschema:"default=https://www.reddit.com/api/v1/access_token,description=Token endpoint"`
	APIURL         string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://oauth.reddit.com,description=API base URL"`
	Subreddits     []string      `yaml:"subreddits" json:"subreddits" jsonschema:"description=Channels to read hot listings from"`
	MaxChannels    int           `yaml:"max_channels" json:"max_channels" jsonschema:"default=5,description=Number of channels queried per run"`
	ChannelDelay   time.Duration `yaml:"channel_delay" json:"channel_delay" jsonschema:"default=1s,description=Delay between channels"`
	MinTitleLength int           `yaml:"min_title_length" json:"min_title_length" jsonschema:"default=10,description=Posts with shorter titles are dropped"`
}

// LLMConfig holds LLM configuration for article classification
type LLMConfig struct {
	Endpoint        string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey          string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key, rule-based classification is used when empty"`
	Model           string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature     float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens       int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in classification response"`
	DigestMaxTokens int           `yaml:"digest_max_tokens" json:"digest_max_tokens" jsonschema:"default=800,description=Maximum tokens in digest response"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	RulesOnly       bool          `yaml:"rules_only" json:"rules_only" jsonschema:"default=false,description=Always use rule-based classification"`
}

// NotifyConfig holds notification settings
type NotifyConfig struct {
	Schedule        string     `yaml:"schedule" json:"schedule" jsonschema:"default=0 9 * * *,description=Cron spec of the daily notification"`
	AutoStart       bool       `yaml:"auto_start" json:"auto_start" jsonschema:"default=true,description=Start the scheduler on boot when subscribers and smtp are configured"`
	MaxItems        int        `yaml:"max_items" json:"max_items" jsonschema:"default=20,description=Items collected for the daily notification"`
	SubscribersFile string     `yaml:"subscribers_file" json:"subscribers_file" jsonschema:"default=subscribers.txt,description=Line-delimited subscriber list"`
	AppURL          string     `yaml:"app_url" json:"app_url" jsonschema:"default=http://localhost:8080,description=Dashboard link used in notifications"`
	WebhookURL      string     `yaml:"webhook_url" json:"webhook_url" jsonschema:"description=Discord/Slack compatible webhook"`
	SMTP            SMTPConfig `yaml:"smtp" json:"smtp" jsonschema:"description=SMTP delivery"`
}

// SMTPConfig holds smtp delivery settings
type SMTPConfig struct {
	Host     string        `yaml:"host" json:"host" jsonschema:"description=SMTP host, email is disabled when empty"`
	Port     int           `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=SMTP user"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=SMTP password"`
	From     string        `yaml:"from" json:"from" jsonschema:"description=Sender address, defaults to username"`
	StartTLS bool          `yaml:"starttls" json:"starttls" jsonschema:"default=true,description=Use STARTTLS"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=SMTP timeout"`
}

// CacheConfig holds the latest result cache settings
type CacheConfig struct {
	TTL           time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=1h,description=Lifetime of a cached pipeline result"`
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr" jsonschema:"description=Redis address, in-memory cache is used when empty"`
	RedisPassword string        `yaml:"redis_password" json:"redis_password" jsonschema:"description=Redis password"`
	RedisDB       int           `yaml:"redis_db" json:"redis_db" jsonschema:"default=0,description=Redis database"`
	Key           string        `yaml:"key" json:"key" jsonschema:"default=cybernews:latest,description=Redis key of the latest result"`
}

// StoreConfig holds the sqlite store settings
type StoreConfig struct {
	Path     string `yaml:"path" json:"path" jsonschema:"description=SQLite database for subscribers and run history, disabled when empty"`
	KeepRuns int    `yaml:"keep_runs" json:"keep_runs" jsonschema:"default=30,minimum=1,description=Number of pipeline runs kept in history"`
}

// Default values shared with connectors and tests
var (
	DefaultSearchTerms    = []string{"cybersecurity", "cyber attack"}
	DefaultTrustedSources = []string{
		"krebsonsecurity", "dark-reading", "securityweek", "bleepingcomputer",
		"the-hacker-news", "cso-online", "infosecurity-magazine", "threatpost",
		"cyberscoop", "security-boulevard", "helpnetsecurity", "tripwire",
	}
	DefaultFeeds = []string{
		"https://krebsonsecurity.com/feed/",
		"https://feeds.feedburner.com/SecurityWeek",
		"https://feeds.feedburner.com/TheHackersNews",
		"https://www.bleepingcomputer.com/feed/",
		"https://feeds.feedburner.com/eset/blog",
		"https://www.schneier.com/feed/",
		"https://feeds.feedburner.com/securityweek",
		"https://www.csoonline.com/index.rss",
	}
	DefaultSites = []string{
		"https://krebsonsecurity.com",
		"https://thehackernews.com",
		"https://www.bleepingcomputer.com",
	}
	DefaultSubreddits = []string{
		"cybersecurity", "netsec", "security", "malware", "AskNetsec",
		"ComputerSecurity", "cyber", "infosec", "hacking", "privacy",
	}
)

// Load reads configuration from a YAML file. Empty path means all defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	// connectors are on unless explicitly disabled
	cfg.Sources.NewsAPI.Enabled = true
	cfg.Sources.Web.Enabled = true
	cfg.Sources.Reddit.Enabled = true
	cfg.Notify.AutoStart = true
	cfg.Notify.SMTP.StartTLS = true

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	setDefault(&c.Server.Listen, ":8080")
	setDefault(&c.Server.Timeout, 30*time.Second)
	setDefault(&c.Server.BaseURL, "http://localhost:8080")

	setDefault(&c.Pipeline.MaxItems, 50)
	setDefault(&c.Pipeline.Timeout, 10*time.Minute)

	setDefault(&c.Sources.Timeout, 10*time.Second)
	setDefault(&c.Sources.UserAgent, "CyberNewsAgent/1.0")

	na := &c.Sources.NewsAPI
	setDefault(&na.BaseURL, "https://newsapi.org/v2")
	setDefault(&na.MaxSources, 3)
	setDefault(&na.RequestDelay, 5*time.Second)
	setDefault(&na.SourceDelay, time.Second)
	if len(na.SearchTerms) == 0 {
		na.SearchTerms = DefaultSearchTerms
	}
	if len(na.TrustedSources) == 0 {
		na.TrustedSources = DefaultTrustedSources
	}

	web := &c.Sources.Web
	setDefault(&web.PerFeedLimit, 5)
	setDefault(&web.PerSiteLimit, 3)
	setDefault(&web.FeedDelay, time.Second)
	setDefault(&web.SiteDelay, 2*time.Second)
	setDefault(&web.MaxContentLength, 2000)
	if web.Feeds == nil {
		web.Feeds = DefaultFeeds
	}
	if web.Sites == nil {
		web.Sites = DefaultSites
	}

	rd := &c.Sources.Reddit
	setDefault(&rd.TokenURL, "https://www.reddit.com/api/v1/access_token")
	setDefault(&rd.APIURL, "https://oauth.reddit.com")
	setDefault(&rd.MaxChannels, 5)
	setDefault(&rd.ChannelDelay, time.Second)
	setDefault(&rd.MinTitleLength, 10)
	if len(rd.Subreddits) == 0 {
		rd.Subreddits = DefaultSubreddits
	}

	setDefault(&c.LLM.Endpoint, "https://api.openai.com/v1")
	setDefault(&c.LLM.Model, "gpt-4o-mini")
	setDefault(&c.LLM.Temperature, 0.3)
	setDefault(&c.LLM.MaxTokens, 500)
	setDefault(&c.LLM.DigestMaxTokens, 800)
	setDefault(&c.LLM.Timeout, 30*time.Second)

	setDefault(&c.Notify.Schedule, "0 9 * * *")
	setDefault(&c.Notify.MaxItems, 20)
	setDefault(&c.Notify.SubscribersFile, "subscribers.txt")
	setDefault(&c.Notify.AppURL, c.Server.BaseURL)
	setDefault(&c.Notify.SMTP.Port, 587)
	setDefault(&c.Notify.SMTP.From, c.Notify.SMTP.Username)
	setDefault(&c.Notify.SMTP.Timeout, 10*time.Second)

	setDefault(&c.Cache.TTL, time.Hour)
	setDefault(&c.Cache.Key, "cybernews:latest")

	setDefault(&c.Store.KeepRuns, 30)
}

// setDefault sets *v to def if *v is the zero value
func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Pipeline.MaxItems < 1 {
		return errors.New("pipeline.max_items must be at least 1")
	}
	if cfg.Sources.Timeout < time.Second {
		return errors.New("sources.timeout must be at least 1 second")
	}
	if cfg.Sources.Web.MaxContentLength < 1 {
		return errors.New("sources.web.max_content_length must be positive")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxTokens < 1 || cfg.LLM.DigestMaxTokens < 1 {
		return errors.New("llm token limits must be positive")
	}
	if cfg.Notify.MaxItems < 1 {
		return errors.New("notify.max_items must be at least 1")
	}
	if cfg.Notify.SMTP.Host != "" && cfg.Notify.SMTP.From == "" {
		return errors.New("notify.smtp.from or notify.smtp.username is required when smtp host is set")
	}
	if cfg.Cache.TTL < time.Second {
		return errors.New("cache.ttl must be at least 1 second")
	}
	if cfg.Store.KeepRuns < 1 {
		return errors.New("store.keep_runs must be at least 1")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// EmailConfigured reports whether smtp delivery is set up
func (c *Config) EmailConfigured() bool {
	return c.Notify.SMTP.Host != "" && c.Notify.SMTP.From != ""
}

// StoreConfigured reports whether the sqlite store is enabled
func (c *Config) StoreConfigured() bool {
	return c.Store.Path != ""
}

// LLMConfigured reports whether the generative classifier path can be used
func (c *Config) LLMConfigured() bool {
	return c.LLM.APIKey != "" && !c.LLM.RulesOnly
}
