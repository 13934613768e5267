package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend   string `mapstructure:"backend"`   // memory, sqlite or redis
	Path      string `mapstructure:"path"`      // sqlite file
	Retention string `mapstructure:"retention"` // duration string, e.g., "168h"
	History   int    `mapstructure:"history"`   // recent queries kept
}

// ForumConfig controls the community forum source.
type ForumConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	LinkURL   string `mapstructure:"link_url"`
	Community string `mapstructure:"community"`
	Thread    string `mapstructure:"thread"`
	UserAgent string `mapstructure:"user_agent"`
	Timeout   string `mapstructure:"timeout"`
}

// WebConfig controls the instant-answer source.
type WebConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Prefix  string `mapstructure:"prefix"`
	Suffix  string `mapstructure:"suffix"`
	Timeout string `mapstructure:"timeout"`
}

// DataSources groups the suggestion sources.
type DataSources struct {
	Forum ForumConfig `mapstructure:"forum"`
	Web   WebConfig   `mapstructure:"web"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// WarmerConfig controls background cache refreshes.
type WarmerConfig struct {
	Schedule string   `mapstructure:"schedule"` // cron spec, e.g., "@every 6h"
	Queries  []string `mapstructure:"queries"`
}

// OpenAIConfig enables AI-written trip briefs.
type OpenAIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig    `mapstructure:"app"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Sources DataSources  `mapstructure:"sources"`
	Server  ServerConfig `mapstructure:"server"`
	Warmer  WarmerConfig `mapstructure:"warmer"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = "./suggestions.db"
	}
	if c.Cache.Retention == "" {
		c.Cache.Retention = "168h"
	}
	if c.Cache.History == 0 {
		c.Cache.History = 10
	}
	if c.Sources.Forum.BaseURL == "" {
		c.Sources.Forum.BaseURL = "https://www.reddit.com"
	}
	if c.Sources.Forum.LinkURL == "" {
		c.Sources.Forum.LinkURL = "https://reddit.com"
	}
	if c.Sources.Forum.Community == "" {
		c.Sources.Forum.Community = "istanbul"
	}
	if c.Sources.Forum.Thread == "" {
		c.Sources.Forum.Thread = "1oldiw4/visiting_istanbul_have_a_quick_question_ask_here"
	}
	if c.Sources.Forum.Timeout == "" {
		c.Sources.Forum.Timeout = "10s"
	}
	if c.Sources.Web.BaseURL == "" {
		c.Sources.Web.BaseURL = "https://api.duckduckgo.com"
	}
	if c.Sources.Web.Prefix == "" {
		c.Sources.Web.Prefix = "Istanbul"
	}
	if c.Sources.Web.Suffix == "" {
		c.Sources.Web.Suffix = "2025"
	}
	if c.Sources.Web.Timeout == "" {
		c.Sources.Web.Timeout = "10s"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Warmer.Schedule == "" {
		c.Warmer.Schedule = "@every 6h"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "English"
	}
}
