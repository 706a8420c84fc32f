// Package cyberfolio is a personal portfolio and blog server built with Go,
// Echo, and templ. It serves the public site, a session-gated admin panel
// with post CRUD and cover-image management, and a local visit-analytics
// dashboard backed by the visits package.
package cyberfolio

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"cyberfolio/visits"
)

// App is the central application. It wires together the store, cache,
// middleware, handlers, and the visit tracking core.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	counters     *visits.Counters
	visitsKV     *visits.SQLiteKV
	recorder     *visits.Recorder
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a cyberfolio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the databases, cache, middleware, and routes, then
// starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if !a.Config.adminEnabled() {
		log.Print("cyberfolio: admin credentials not configured; admin login is disabled")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("cyberfolio: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	kv, err := visits.OpenKV(a.Config.VisitsDatabasePath)
	if err != nil {
		return fmt.Errorf("cyberfolio: init visits store: %w", err)
	}
	a.visitsKV = kv
	a.counters = visits.NewCounters(kv)
	locator := visits.NewLocator(a.Config.GeoIPDatabasePath, a.Config.GeoEndpoint)
	a.recorder = visits.NewRecorder(a.counters, locator)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/contact/", a.handleContact)

	// Auth
	e.GET("/login/", a.handleLoginPage)
	e.POST("/login/", a.handleLogin)
	e.POST("/logout/", a.handleLogout)

	// Admin panel
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/", a.handleAdmin)
	admin.GET("/new/", a.handleAdminNew)
	admin.GET("/edit/:id/", a.handleAdminEdit)
	admin.POST("/save/", a.handleAdminSave)
	admin.DELETE("/post/:id/", a.handleAdminDelete)
	admin.GET("/images/", a.handleImageList)
	admin.POST("/images/upload/", a.handleImageUpload)
	admin.DELETE("/images/:filename/", a.handleImageDelete)

	// Analytics dashboard, admin-gated
	visitsHandler := visits.NewHandler(a.counters)
	visitsHandler.RegisterRoutes(e, requireAdmin)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.visitsKV != nil {
		a.visitsKV.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
