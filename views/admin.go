package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// AdminDashboard lists every post (drafts included) with edit and delete
// controls. Deletes go through HTMX so the table swaps in place.
func AdminDashboard(cfg SiteConfig, posts []BlogPost, msg, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageOpen(w, cfg, PageMeta{Title: "Admin | " + cfg.Name}, "")

		fmt.Fprint(w, `<section class="admin"><header class="admin-header"><h1>Posts</h1>`)
		fmt.Fprint(w, `<nav class="admin-actions">`)
		fmt.Fprint(w, `<a class="button" href="/admin/new/">New post</a>`)
		fmt.Fprint(w, `<a class="button ghost" href="/analytics/">Analytics</a>`)
		fmt.Fprintf(w, `<form class="inline" method="post" action="/logout/"><input type="hidden" name="_csrf" value="%s"/><button class="button ghost" type="submit">Sign out</button></form>`,
			html.EscapeString(csrfToken))
		fmt.Fprint(w, `</nav></header>`)
		if msg != "" {
			fmt.Fprintf(w, `<p class="flash">%s</p>`, html.EscapeString(msg))
		}

		if len(posts) == 0 {
			fmt.Fprint(w, `<p class="empty">No posts yet. Write the first one.</p>`)
		} else {
			fmt.Fprint(w, `<table class="admin-table"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
			for _, p := range posts {
				status := "draft"
				if p.Published {
					status = "published"
				}
				fmt.Fprint(w, `<tr>`)
				fmt.Fprintf(w, `<td><a href="/admin/edit/%s/">%s</a></td>`, html.EscapeString(p.ID), html.EscapeString(p.Title))
				fmt.Fprintf(w, `<td>%s</td>`, html.EscapeString(p.Date))
				fmt.Fprintf(w, `<td><span class="status %s">%s</span></td>`, status, status)
				fmt.Fprintf(w, `<td><button class="button danger" hx-delete="/admin/post/%s/" hx-headers='{"X-CSRF-Token":"%s"}' hx-confirm="Delete this post?" hx-target="body">Delete</button></td>`,
					html.EscapeString(p.ID), html.EscapeString(csrfToken))
				fmt.Fprint(w, `</tr>`)
			}
			fmt.Fprint(w, `</tbody></table>`)
		}
		fmt.Fprint(w, `</section>`)

		pageClose(w, cfg, nil)
		return nil
	})
}

// AdminEditor is the create/edit form. An empty post.ID means create.
func AdminEditor(cfg SiteConfig, post BlogPost, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "Edit post"
		if post.ID == "" {
			heading = "New post"
		}
		pageOpen(w, cfg, PageMeta{Title: heading + " | " + cfg.Name}, "")

		fmt.Fprintf(w, `<section class="admin editor"><h1>%s</h1>`, heading)
		fmt.Fprint(w, `<form method="post" action="/admin/save/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, html.EscapeString(csrfToken))
		fmt.Fprintf(w, `<input type="hidden" name="id" value="%s"/>`, html.EscapeString(post.ID))
		fmt.Fprintf(w, `<label>Title <input type="text" name="title" value="%s" required/></label>`, html.EscapeString(post.Title))
		fmt.Fprintf(w, `<label>Slug <input type="text" name="slug" value="%s" placeholder="derived from title when empty"/></label>`, html.EscapeString(post.Slug))
		fmt.Fprintf(w, `<label>Date <input type="date" name="date" value="%s"/></label>`, html.EscapeString(post.Date))
		fmt.Fprintf(w, `<label>Tags <input type="text" name="tags" value="%s" placeholder="comma, separated"/></label>`, html.EscapeString(JoinTags(post.Tags)))
		fmt.Fprintf(w, `<label>Cover image <input type="text" name="cover_image" value="%s" placeholder="/public/uploads/..."/></label>`, html.EscapeString(post.CoverImage))
		fmt.Fprintf(w, `<label>Summary <textarea name="summary" rows="3">%s</textarea></label>`, html.EscapeString(post.Summary))
		fmt.Fprintf(w, `<label>Content <textarea name="content" rows="20">%s</textarea></label>`, html.EscapeString(post.Content))
		checked := ""
		if post.Published {
			checked = " checked"
		}
		fmt.Fprintf(w, `<label class="check"><input type="checkbox" name="published"%s/> Published</label>`, checked)
		fmt.Fprint(w, `<div class="editor-actions"><button class="button" type="submit">Save</button> <a class="button ghost" href="/admin/">Cancel</a></div>`)
		fmt.Fprint(w, `</form>`)

		// Cover image manager loads as a fragment below the form.
		fmt.Fprint(w, `<section id="image-manager" hx-get="/admin/images/" hx-trigger="load"><p class="loading">Loading images&hellip;</p></section>`)
		fmt.Fprint(w, `</section>`)

		pageClose(w, cfg, nil)
		return nil
	})
}

// ImageManager is the upload form plus current image list, rendered as an
// HTMX fragment inside the editor.
func ImageManager(images []Image, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h2>Cover images</h2>`)
		fmt.Fprintf(w, `<form hx-post="/admin/images/upload/" hx-encoding="multipart/form-data" hx-target="#image-manager">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, html.EscapeString(csrfToken))
		fmt.Fprint(w, `<input type="file" name="image" accept="image/*" required/>`)
		fmt.Fprint(w, `<button class="button" type="submit">Upload</button></form>`)

		if len(images) == 0 {
			fmt.Fprint(w, `<p class="empty">No images uploaded.</p>`)
			return nil
		}
		fmt.Fprint(w, `<ul class="image-list">`)
		for _, img := range images {
			fmt.Fprint(w, `<li>`)
			fmt.Fprintf(w, `<img src="/public/uploads/%s" alt="%s" loading="lazy"/>`,
				html.EscapeString(img.Filename), html.EscapeString(img.OriginalName))
			fmt.Fprintf(w, `<code>/public/uploads/%s</code> <span class="dim">%dx%d</span>`,
				html.EscapeString(img.Filename), img.Width, img.Height)
			fmt.Fprintf(w, `<button class="button danger" hx-delete="/admin/images/%s/" hx-headers='{"X-CSRF-Token":"%s"}' hx-confirm="Delete this image?" hx-target="#image-manager">Delete</button>`,
				PathEscape(img.Filename), html.EscapeString(csrfToken))
			fmt.Fprint(w, `</li>`)
		}
		_, err := fmt.Fprint(w, `</ul>`)
		return err
	})
}
