package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Login is the admin sign-in form.
func Login(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{Title: "Sign in | " + cfg.Name}
		pageOpen(w, cfg, meta, "")

		fmt.Fprint(w, `<section class="login"><h1>Sign in</h1>`)
		if showError {
			fmt.Fprint(w, `<p class="form-error">Invalid email or password.</p>`)
		}
		fmt.Fprint(w, `<form method="post" action="/login/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, html.EscapeString(csrfToken))
		fmt.Fprint(w, `<label>Email <input type="email" name="email" required autocomplete="username"/></label>`)
		fmt.Fprint(w, `<label>Password <input type="password" name="password" required autocomplete="current-password"/></label>`)
		fmt.Fprint(w, `<button class="button" type="submit">Sign in</button>`)
		fmt.Fprint(w, `</form></section>`)

		pageClose(w, cfg, nil)
		return nil
	})
}
