package blog

import (
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags
	Author      string // Author name for JSON-LD and the feed

	Addr       string // Listen address (default ":3000")
	ContentDir string // Directory holding the posts (default "content")
	StaticDir  string // User-owned static assets (default "public")

	ContentExtensions []string // Recognised post extensions (default .mdx, .md)
	SkipInvalid       bool     // Log and skip malformed posts instead of failing

	FeedLimit int           // Entries in feed.xml/atom.xml (default 20, negative means all)
	CacheTTL  time.Duration // How long the post cache trusts itself (default 1min)

	OGBackground string // Optional image drawn behind generated OG cards
	LogLevel     string // debug, info, warn or error (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.FeedLimit == 0 {
		c.FeedLimit = 20
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c SiteConfig) logLevel() log.Lvl {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContentFS reads posts from fsys instead of the working directory.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithClock overrides the time source used for relative dates and the sitemap.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
