package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Contact is a static page listing the ways to reach the site author.
func Contact(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title: "Contact | " + cfg.Name,
			URL:   buildURL(cfg.URL, "contact"),
		}
		pageOpen(w, cfg, meta, "")

		fmt.Fprint(w, `<section class="contact"><h1>Contact</h1>`)
		fmt.Fprint(w, `<ul class="contact-list">`)
		if cfg.Email != "" {
			fmt.Fprintf(w, `<li><span class="label">Email</span> <a href="mailto:%s">%s</a></li>`,
				html.EscapeString(cfg.Email), html.EscapeString(cfg.Email))
		}
		if cfg.GitHub != "" {
			fmt.Fprintf(w, `<li><span class="label">GitHub</span> <a href="%s" rel="noopener">%s</a></li>`,
				html.EscapeString(cfg.GitHub), html.EscapeString(cfg.GitHub))
		}
		if cfg.LinkedIn != "" {
			fmt.Fprintf(w, `<li><span class="label">LinkedIn</span> <a href="%s" rel="noopener">%s</a></li>`,
				html.EscapeString(cfg.LinkedIn), html.EscapeString(cfg.LinkedIn))
		}
		fmt.Fprint(w, `</ul></section>`)

		pageClose(w, cfg, nil)
		return nil
	})
}
