// Package blogshell serves a personal blog built with Go, Echo, and templ:
// a header, a navigation sidebar listing the posts, an overlay drawer
// that repeats it on small screens, and one page per post.
//
// Each rendered page mounts a page shell whose disclosure controller owns
// the drawer's open/closed state; the menu and close affordances post
// their activations back to that shell.
package blogshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/blogshell/content"
	"github.com/eringen/blogshell/shell"
	"github.com/eringen/blogshell/views"
)

// App is the central blogshell application. It wires together the
// content provider, the shell registry, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Provider content.Provider
	Shells   *shell.Registry

	mountLimiter *RateLimiter
	avatar       []byte
	closers      []io.Closer
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new blogshell App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start sets the app up and starts the server. It returns when the server
// stops; http.ErrServerClosed is not reported.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

// setup validates the config and builds everything Start serves.
func (a *App) setup() error {
	if err := a.Config.validate(); err != nil {
		return err
	}

	a.Echo.Logger.SetLevel(parseLogLevel(a.Config.LogLevel))

	if a.Provider == nil {
		p, closer, err := openProvider(a.Config)
		if err != nil {
			return err
		}
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
		a.Provider = content.NewCache(p, a.Config.PostCacheTTL)
	}

	a.Shells = shell.NewRegistry(a.Config.ShellIdleTTL)
	a.mountLimiter = NewRateLimiter(a.Config.MountLimit, time.Minute)

	if a.Config.AvatarPath != "" {
		img, err := loadAvatar(a.Config.AvatarPath)
		if err != nil {
			return fmt.Errorf("blogshell: avatar: %w", err)
		}
		a.avatar = img
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// openProvider opens the configured content source. The returned closer
// is nil when the source holds no resources.
func openProvider(cfg SiteConfig) (content.Provider, io.Closer, error) {
	switch cfg.ContentSource {
	case SourceSQLite:
		store, err := content.NewStore(cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("blogshell: init store: %w", err)
		}
		return store, store, nil
	default:
		return content.NewDir(cfg.ContentDir, content.WithDefaultAuthor(cfg.Author)), nil, nil
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded assets take precedence over the static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET(views.ScriptURL, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/avatar.png", a.handleAvatar)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	e.POST("/shell/:id/toggle/", a.handleToggle)
	e.DELETE("/shell/:id/", a.handleUnmount)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Shells != nil {
		a.Shells.Close()
	}
	if a.mountLimiter != nil {
		a.mountLimiter.Close()
	}
	var err error
	for _, c := range a.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	a.closers = nil
	return err
}

// viewConfig is the subset of the config templates read.
func (a *App) viewConfig() views.SiteConfig {
	cfg := views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		About:       a.Config.About,
	}
	if a.avatar != nil {
		cfg.AvatarURL = "/avatar.png"
	}
	return cfg
}

func parseLogLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
