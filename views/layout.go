package views

import (
	"fmt"
	"html"
	"io"
)

// pageOpen writes the document head and site navigation shared by every
// public page. Must be paired with pageClose.
func pageOpen(w io.Writer, cfg SiteConfig, meta PageMeta, jsonLD string) {
	title := meta.Title
	if title == "" {
		title = cfg.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = cfg.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	canonical := meta.URL
	if canonical == "" {
		canonical = buildURL(cfg.URL)
	}

	fmt.Fprint(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	fmt.Fprint(w, `<meta charset="utf-8"/>`)
	fmt.Fprint(w, `<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	fmt.Fprintf(w, `<title>%s</title>`, html.EscapeString(title))
	fmt.Fprintf(w, `<meta name="description" content="%s"/>`, html.EscapeString(desc))
	fmt.Fprintf(w, `<link rel="canonical" href="%s"/>`, html.EscapeString(canonical))
	fmt.Fprintf(w, `<meta property="og:title" content="%s"/>`, html.EscapeString(title))
	fmt.Fprintf(w, `<meta property="og:description" content="%s"/>`, html.EscapeString(desc))
	fmt.Fprintf(w, `<meta property="og:url" content="%s"/>`, html.EscapeString(canonical))
	fmt.Fprintf(w, `<meta property="og:type" content="%s"/>`, html.EscapeString(ogType))
	fmt.Fprintf(w, `<meta property="og:site_name" content="%s"/>`, html.EscapeString(cfg.Name))
	fmt.Fprint(w, `<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
	fmt.Fprint(w, `<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
	fmt.Fprint(w, `<link rel="stylesheet" href="/public/site.css"/>`)
	fmt.Fprint(w, `<script src="/public/htmx.min.js" defer></script>`)
	if jsonLD != "" {
		fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
	}
	fmt.Fprint(w, "\n</head>\n<body>\n")

	fmt.Fprint(w, `<header class="site-header"><nav class="container">`)
	fmt.Fprintf(w, `<a class="brand" href="/">%s</a>`, html.EscapeString(cfg.Name))
	fmt.Fprint(w, `<ul class="nav-links">`)
	fmt.Fprint(w, `<li><a href="/">Home</a></li>`)
	fmt.Fprint(w, `<li><a href="/blog/">Blog</a></li>`)
	fmt.Fprint(w, `<li><a href="/contact/">Contact</a></li>`)
	fmt.Fprint(w, `</ul></nav></header>`)
	fmt.Fprint(w, `<main class="container">`)
}

// pageClose writes the footer, optionally with the public visit badge.
func pageClose(w io.Writer, cfg SiteConfig, stats *VisitStats) {
	fmt.Fprint(w, `</main><footer class="site-footer"><div class="container">`)
	if cfg.Author != "" {
		fmt.Fprintf(w, `<p>&copy; %s</p>`, html.EscapeString(cfg.Author))
	}
	fmt.Fprint(w, `<ul class="footer-links">`)
	if cfg.GitHub != "" {
		fmt.Fprintf(w, `<li><a href="%s" rel="noopener">GitHub</a></li>`, html.EscapeString(cfg.GitHub))
	}
	if cfg.LinkedIn != "" {
		fmt.Fprintf(w, `<li><a href="%s" rel="noopener">LinkedIn</a></li>`, html.EscapeString(cfg.LinkedIn))
	}
	fmt.Fprint(w, `<li><a href="/feed.xml">RSS</a></li>`)
	fmt.Fprint(w, `</ul>`)
	if stats != nil {
		fmt.Fprintf(w, `<p class="visit-badge" title="today / this month / total">Visits: %d &middot; %d &middot; %d</p>`,
			stats.Today, stats.ThisMonth, stats.Total)
	}
	fmt.Fprint(w, "</div></footer>\n</body>\n</html>")
}

func postCard(w io.Writer, p BlogPost) {
	fmt.Fprint(w, `<article class="post-card">`)
	if p.CoverImage != "" {
		fmt.Fprintf(w, `<a href="%s"><img class="cover" src="%s" alt="" loading="lazy"/></a>`,
			html.EscapeString(p.Link), html.EscapeString(p.CoverImage))
	}
	fmt.Fprintf(w, `<h3><a href="%s">%s</a></h3>`, html.EscapeString(p.Link), html.EscapeString(p.Title))
	fmt.Fprintf(w, `<time datetime="%s">%s</time>`, html.EscapeString(p.Date), html.EscapeString(p.Date))
	if p.Summary != "" {
		fmt.Fprintf(w, `<p>%s</p>`, html.EscapeString(p.Summary))
	}
	tagPills(w, p.Tags, "")
	fmt.Fprint(w, `</article>`)
}

func tagPills(w io.Writer, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	fmt.Fprint(w, `<ul class="tags">`)
	for _, t := range tags {
		cls := "tag"
		if active != "" && t == active {
			cls = "tag active"
		}
		fmt.Fprintf(w, `<li><a class="%s" href="/blog/?tag=%s">%s</a></li>`,
			cls, PathEscape(t), html.EscapeString(t))
	}
	fmt.Fprint(w, `</ul>`)
}
