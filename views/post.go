package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Post renders a single blog post with markdown content and related posts.
func Post(cfg SiteConfig, post BlogPost, all []BlogPost) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title:       post.Title + " | " + cfg.Name,
			Description: post.Summary,
			URL:         buildURL(cfg.URL, "blog", post.Slug),
			OGType:      "article",
		}
		pageOpen(w, cfg, meta, BlogPostingJsonLD(cfg, post))

		fmt.Fprint(w, `<article class="post">`)
		if post.CoverImage != "" {
			fmt.Fprintf(w, `<img class="cover" src="%s" alt="" fetchpriority="high"/>`,
				html.EscapeString(post.CoverImage))
		}
		fmt.Fprint(w, `<header>`)
		fmt.Fprintf(w, `<h1>%s</h1>`, html.EscapeString(post.Title))
		fmt.Fprintf(w, `<time datetime="%s">%s</time>`, html.EscapeString(post.Date), html.EscapeString(post.Date))
		tagPills(w, post.Tags, "")
		fmt.Fprint(w, `</header><div class="post-body">`)
		if err := Markdown(post.Content).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, `</div></article>`)

		if related := FilterRelatedPosts(post, all); len(related) > 0 {
			if len(related) > 3 {
				related = related[:3]
			}
			fmt.Fprint(w, `<section class="related"><h2>Related posts</h2><div class="post-grid">`)
			for _, p := range related {
				postCard(w, p)
			}
			fmt.Fprint(w, `</div></section>`)
		}

		pageClose(w, cfg, nil)
		return nil
	})
}
