// Package blog serves a personal blog whose posts are front-mattered markup
// files on disk. It derives the listing, feeds, sitemap and page metadata
// from those files and renders pages through user-supplied views.
package blog

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/jyodsh/jyothish-in/content"
)

// ViewFuncs holds the components the site calls when rendering pages.
// Callers own all markup; the site only decides what data each page gets.
type ViewFuncs struct {
	Home        func(cfg SiteConfig, recent []content.Record, meta PageMeta) templ.Component
	Blog        func(cfg SiteConfig, posts []content.Record, meta PageMeta) templ.Component
	Post        func(cfg SiteConfig, post content.Record, meta PageMeta) templ.Component
	NotFound    func(cfg SiteConfig) templ.Component
	ServerError func(cfg SiteConfig) templ.Component
}

// App wires together the content repository, cache, handlers, middleware and
// views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Repo   *content.Repository
	Cache  *content.Cache
	Views  ViewFuncs
	OG     *OGCard

	ogLimiter    *RateLimiter
	contentFS    fs.FS
	now          func() time.Time
	customRoutes []func(*App)
	initialized  bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		now:    time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init builds the repository, cache, preview renderer, middleware and
// routes. It is called by Start and Export and is safe to call more than once.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Views.Home == nil || a.Views.Blog == nil || a.Views.Post == nil ||
		a.Views.NotFound == nil || a.Views.ServerError == nil {
		return errors.New("blog: all view functions are required")
	}

	a.Echo.Logger.SetLevel(a.Config.logLevel())

	fsys := a.contentFS
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	policy := content.FailFast
	if a.Config.SkipInvalid {
		policy = content.SkipInvalid
	}
	a.Repo = content.NewRepository(fsys, content.RepositoryConfig{
		Dir:        a.Config.ContentDir,
		Extensions: a.Config.ContentExtensions,
		Policy:     policy,
		Logger:     a.Echo.Logger,
	})
	a.Cache = content.NewCache(a.Repo, a.Config.CacheTTL)

	og, err := a.newOGCard()
	if err != nil {
		return fmt.Errorf("blog: init og card: %w", err)
	}
	a.OG = og
	a.ogLimiter = NewRateLimiter(30, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func (a *App) newOGCard() (*OGCard, error) {
	if a.Config.OGBackground == "" {
		return NewOGCard(a.Config.Name, nil)
	}
	bg, err := LoadImage(a.Config.OGBackground)
	if err != nil {
		return nil, err
	}
	return NewOGCard(a.Config.Name, bg)
}

// Start initializes the app, checks that the content loads, and serves HTTP.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	coll, err := a.Cache.Collection()
	if err != nil {
		return fmt.Errorf("blog: load content: %w", err)
	}
	a.Echo.Logger.Infof("loaded %d posts from %s", coll.Len(), a.Config.ContentDir)

	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// The bundled stylesheet is served first; everything else under /public
	// falls through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.Config.StaticDir)

	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/atom.xml", a.handleAtom)
	e.GET("/og", a.handleOG)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
}

// Close releases background resources. Call it when the app shuts down.
func (a *App) Close() error {
	if a.ogLimiter != nil {
		a.ogLimiter.Close()
	}
	return a.Echo.Close()
}
