package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Blog is the post listing page with tag filtering. The list itself is an
// HTMX target so tag clicks can swap it without a full page load.
func Blog(cfg SiteConfig, posts []BlogPost, activeTag string, tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title: "Blog | " + cfg.Name,
			URL:   buildURL(cfg.URL, "blog"),
		}
		pageOpen(w, cfg, meta, "")

		fmt.Fprint(w, `<section class="blog"><h1>Blog</h1>`)
		writeTagFilter(w, tags, activeTag)
		fmt.Fprint(w, `<div id="post-list">`)
		if err := BlogList(posts, activeTag).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, `</div></section>`)

		pageClose(w, cfg, nil)
		return nil
	})
}

// BlogList is the post list fragment swapped on tag filter changes.
func BlogList(posts []BlogPost, activeTag string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(posts) == 0 {
			if activeTag != "" {
				fmt.Fprintf(w, `<p class="empty">No posts tagged &ldquo;%s&rdquo;.</p>`, html.EscapeString(activeTag))
			} else {
				fmt.Fprint(w, `<p class="empty">Nothing published yet.</p>`)
			}
			return nil
		}
		fmt.Fprint(w, `<div class="post-grid">`)
		for _, p := range posts {
			postCard(w, p)
		}
		_, err := fmt.Fprint(w, `</div>`)
		return err
	})
}

func writeTagFilter(w io.Writer, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	fmt.Fprint(w, `<ul class="tags tag-filter">`)
	cls := "tag"
	if active == "" {
		cls = "tag active"
	}
	fmt.Fprintf(w, `<li><a class="%s" href="/blog/" hx-get="/blog/?partial=list" hx-target="#post-list" hx-push-url="/blog/">All</a></li>`, cls)
	for _, t := range tags {
		cls := "tag"
		if t == active {
			cls = "tag active"
		}
		fmt.Fprintf(w, `<li><a class="%s" href="/blog/?tag=%s" hx-get="/blog/?tag=%s&amp;partial=list" hx-target="#post-list" hx-push-url="/blog/?tag=%s">%s</a></li>`,
			cls, PathEscape(t), PathEscape(t), PathEscape(t), html.EscapeString(t))
	}
	fmt.Fprint(w, `</ul>`)
}
