package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NotFound is the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageOpen(w, cfg, PageMeta{Title: "Not found | " + cfg.Name}, "")
		fmt.Fprint(w, `<section class="error-page"><h1>404</h1><p>That page does not exist.</p><p><a class="button" href="/">Back home</a></p></section>`)
		pageClose(w, cfg, nil)
		return nil
	})
}

// ServerError is the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageOpen(w, cfg, PageMeta{Title: "Error | " + cfg.Name}, "")
		fmt.Fprint(w, `<section class="error-page"><h1>500</h1><p>Something went wrong. Try again in a moment.</p><p><a class="button" href="/">Back home</a></p></section>`)
		pageClose(w, cfg, nil)
		return nil
	})
}
