package main

import (
	"log"
	"strings"

	"cyberfolio"
)

func main() {
	cfg := cyberfolio.SiteConfig{
		Name:        cyberfolio.EnvOr("SITE_NAME", "Portfolio"),
		URL:         strings.TrimSuffix(cyberfolio.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: cyberfolio.EnvOr("SITE_DESCRIPTION", ""),
		Author:      cyberfolio.EnvOr("SITE_AUTHOR", ""),
		Email:       cyberfolio.EnvOr("SITE_EMAIL", ""),
		GitHub:      cyberfolio.EnvOr("SITE_GITHUB", ""),
		LinkedIn:    cyberfolio.EnvOr("SITE_LINKEDIN", ""),

		Addr:               cyberfolio.EnvOr("ADDR", ":3000"),
		DatabasePath:       cyberfolio.EnvOr("DATABASE_PATH", "data/site.db"),
		VisitsDatabasePath: cyberfolio.EnvOr("VISITS_DATABASE_PATH", "data/visits.db"),

		AdminEmail:    cyberfolio.EnvOr("ADMIN_EMAIL", ""),
		AdminPassword: cyberfolio.EnvOr("ADMIN_PASSWORD", ""),
		SessionSecret: cyberfolio.EnvOr("ADMIN_SESSION_SECRET", ""),
		CookieSecure:  strings.EqualFold(cyberfolio.EnvOr("COOKIE_SECURE", ""), "true"),

		GeoIPDatabasePath: cyberfolio.EnvOr("GEOIP_DATABASE_PATH", ""),
		GeoEndpoint:       cyberfolio.EnvOr("GEO_ENDPOINT", "https://ipapi.co"),
	}

	app := cyberfolio.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
