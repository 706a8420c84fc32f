package cyberfolio

import (
	"time"

	"cyberfolio/views"
)

// SiteConfig holds all configuration for a cyberfolio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD and the footer
	Email       string // Contact email shown on /contact
	GitHub      string // GitHub profile URL
	LinkedIn    string // LinkedIn profile URL

	Addr               string // Listen address (default ":3000")
	DatabasePath       string // Posts SQLite path (default "data/site.db")
	VisitsDatabasePath string // Visit counter SQLite path (default "data/visits.db")

	// Admin credentials. When either is empty the site still runs but every
	// login attempt fails, so the admin surface is effectively disabled.
	AdminEmail    string
	AdminPassword string
	SessionSecret string // Required when admin is configured
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)

	// Visitor geolocation. A local MaxMind City database takes precedence;
	// otherwise GeoEndpoint is queried per qualifying visit. Both empty
	// disables location enrichment entirely.
	GeoIPDatabasePath string
	GeoEndpoint       string // e.g. "https://ipapi.co"
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.VisitsDatabasePath == "" {
		c.VisitsDatabasePath = "data/visits.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// viewConfig projects the site-facing fields for templates.
func (c *SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
		Email:       c.Email,
		GitHub:      c.GitHub,
		LinkedIn:    c.LinkedIn,
	}
}

// adminEnabled reports whether login can ever succeed.
func (c *SiteConfig) adminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != "" && c.SessionSecret != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
