package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Home is the portfolio landing page: hero, recent posts, footer visit badge.
func Home(cfg SiteConfig, recent []BlogPost, stats VisitStats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageOpen(w, cfg, PageMeta{}, WebsiteJsonLD(cfg))

		fmt.Fprint(w, `<section class="hero">`)
		fmt.Fprintf(w, `<h1>%s</h1>`, html.EscapeString(cfg.Name))
		if cfg.Description != "" {
			fmt.Fprintf(w, `<p class="tagline">%s</p>`, html.EscapeString(cfg.Description))
		}
		fmt.Fprint(w, `<p class="hero-actions"><a class="button" href="/blog/">Read the blog</a> <a class="button ghost" href="/contact/">Get in touch</a></p>`)
		fmt.Fprint(w, `</section>`)

		fmt.Fprint(w, `<section class="recent-posts"><h2>Recent writing</h2>`)
		if len(recent) == 0 {
			fmt.Fprint(w, `<p class="empty">Nothing published yet.</p>`)
		} else {
			fmt.Fprint(w, `<div class="post-grid">`)
			for _, p := range recent {
				postCard(w, p)
			}
			fmt.Fprint(w, `</div>`)
		}
		fmt.Fprint(w, `</section>`)

		pageClose(w, cfg, &stats)
		return nil
	})
}
