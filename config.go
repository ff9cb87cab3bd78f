package blogshell

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/blogshell/content"
)

// Content sources accepted by SiteConfig.ContentSource.
const (
	SourceDir    = "dir"
	SourceSQLite = "sqlite"
)

// SiteConfig holds all configuration for a blogshell site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Default post author and JSON-LD author
	About       string `mapstructure:"about"`       // Markdown intro on the home page

	Addr string `mapstructure:"addr"` // Listen address (default ":3000")

	ContentSource string `mapstructure:"content_source"` // "dir" (default) or "sqlite"
	ContentDir    string `mapstructure:"content_dir"`    // Markdown directory (default "posts")
	DatabasePath  string `mapstructure:"database_path"`  // SQLite path (default "data/blog.db")

	AvatarPath string `mapstructure:"avatar_path"` // Optional header avatar image

	SessionSecret string `mapstructure:"session_secret"` // Required: visitor session secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl"` // Post cache TTL (default 5min)
	ShellIdleTTL time.Duration `mapstructure:"shell_idle_ttl"` // Idle page shell lifetime (default 30min)
	MountLimit   int           `mapstructure:"mount_limit"`    // Page shells per IP per minute (default 120)

	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error, off (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentSource == "" {
		c.ContentSource = SourceDir
	}
	if c.ContentDir == "" {
		c.ContentDir = "posts"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.ShellIdleTTL == 0 {
		c.ShellIdleTTL = 30 * time.Minute
	}
	if c.MountLimit == 0 {
		c.MountLimit = 120
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *SiteConfig) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("blogshell: SessionSecret is required")
	}
	switch c.ContentSource {
	case SourceDir, SourceSQLite:
	default:
		return fmt.Errorf("blogshell: unknown content source %q", c.ContentSource)
	}
	if c.ShellIdleTTL <= 0 {
		return fmt.Errorf("blogshell: shell_idle_ttl must be positive, got %v", c.ShellIdleTTL)
	}
	if c.MountLimit <= 0 {
		return fmt.Errorf("blogshell: mount_limit must be positive, got %d", c.MountLimit)
	}
	if c.PostCacheTTL < 0 {
		return fmt.Errorf("blogshell: post_cache_ttl must not be negative, got %v", c.PostCacheTTL)
	}
	return nil
}

// LoadConfig reads configuration from an optional TOML file and the
// environment. The file is BLOGSHELL_CONFIG when set, otherwise
// blogshell.toml in the working directory. Env vars use the prefix
// BLOGSHELL_, e.g. BLOGSHELL_SESSION_SECRET.
func LoadConfig() (SiteConfig, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv can see it on Unmarshal.
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("about", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_source", SourceDir)
	v.SetDefault("content_dir", "posts")
	v.SetDefault("database_path", "data/blog.db")
	v.SetDefault("avatar_path", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("post_cache_ttl", 5*time.Minute)
	v.SetDefault("shell_idle_ttl", 30*time.Minute)
	v.SetDefault("mount_limit", 120)
	v.SetDefault("log_level", "info")

	v.SetConfigType("toml")
	if path := os.Getenv("BLOGSHELL_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blogshell")
	}

	v.SetEnvPrefix("BLOGSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; a missing explicit one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return SiteConfig{}, fmt.Errorf("blogshell: read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("blogshell: unmarshal config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithProvider serves content from p instead of the configured source.
func WithProvider(p content.Provider) Option {
	return func(a *App) {
		a.Provider = p
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
