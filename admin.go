package cyberfolio

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cyberfolio/views"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.Login(a.Config.viewConfig(), false, CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.TrimSpace(c.FormValue("email"))
	pass := c.FormValue("password")

	// Both comparisons always run. With no credentials configured nothing
	// can match, so the admin surface stays closed instead of failing startup.
	emailOK := a.Config.adminEnabled() &&
		subtle.ConstantTimeCompare([]byte(email), []byte(a.Config.AdminEmail)) == 1
	passOK := a.Config.adminEnabled() &&
		subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
	if emailOK && passOK {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.Login(a.Config.viewConfig(), true, CsrfToken(c)))
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// requireAdmin gates a route group behind the session check.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/login/")
		}
		return next(c)
	}
}

func (a *App) handleAdmin(c echo.Context) error {
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminNew(c echo.Context) error {
	post := views.BlogPost{Date: time.Now().Format("2006-01-02")}
	return Render(c, views.AdminEditor(a.Config.viewConfig(), post, CsrfToken(c)))
}

func (a *App) handleAdminEdit(c echo.Context) error {
	post, err := a.Store.GetByID(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+not+found.")
		}
		return err
	}
	return Render(c, views.AdminEditor(a.Config.viewConfig(), post, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	id := strings.TrimSpace(c.FormValue("id"))
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	taken, err := a.Store.SlugTaken(slug, id)
	if err != nil {
		return err
	}
	if taken {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+already+in+use.")
	}
	tags := FilterEmpty(strings.Split(c.FormValue("tags"), ","))

	post := views.BlogPost{
		ID:         id,
		Slug:       slug,
		Title:      title,
		Date:       date,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		Tags:       tags,
		Summary:    c.FormValue("summary"),
		Content:    c.FormValue("content"),
		CoverImage: strings.TrimSpace(c.FormValue("cover_image")),
		Published:  c.FormValue("published") != "",
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
		err = a.Store.CreatePost(post)
	} else {
		err = a.Store.UpdatePost(post)
	}
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if err := a.Store.DeletePost(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.Config.viewConfig(), posts, msg, CsrfToken(c)))
}
