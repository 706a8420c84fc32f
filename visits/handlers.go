package visits

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cyberfolio/visits/templates"
)

// Report window defaults, matching the dashboard's fixed view.
const (
	reportWindowDays   = 30
	reportWindowMonths = 12
)

// Handler serves the analytics dashboard and report endpoints.
type Handler struct {
	counters *Counters
	filler   Filler
	now      func() time.Time
}

// NewHandler builds the analytics handler over a counter store.
func NewHandler(counters *Counters) *Handler {
	return &Handler{
		counters: counters,
		filler:   RandomFiller{},
		now:      time.Now,
	}
}

// RegisterRoutes mounts all analytics routes behind the given auth
// middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/analytics", auth)
	g.GET("/", h.Dashboard)
	g.GET("/fragments/report", h.ReportFragment)
	g.GET("/api/report", h.ReportJSON)
	g.GET("/api/stats", h.StatsJSON)
	g.GET("/export/json", h.ExportJSON)
	g.GET("/export/csv", h.ExportCSV)
}

// Dashboard serves the page shell; the report fragment loads on mount.
func (h *Handler) Dashboard(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return templates.Dashboard().Render(c.Request().Context(), c.Response())
}

// ReportFragment computes the report and renders it as an HTMX fragment.
// On failure it renders the retriable error state instead of a 500 page.
func (h *Handler) ReportFragment(c echo.Context) error {
	report, err := h.build()
	if err != nil {
		c.Logger().Errorf("build analytics report: %v", err)
		return templates.ErrorFragment().Render(c.Request().Context(), c.Response())
	}
	return templates.ReportFragment(toViewModel(report)).Render(c.Request().Context(), c.Response())
}

// ReportJSON returns the full report as JSON.
func (h *Handler) ReportJSON(c echo.Context) error {
	report, err := h.build()
	if err != nil {
		c.Logger().Errorf("build analytics report: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, report)
}

// StatsJSON returns the three headline counters.
func (h *Handler) StatsJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, ReadStats(h.counters, h.now()))
}

// ExportJSON downloads the structured report export.
func (h *Handler) ExportJSON(c echo.Context) error {
	report, err := h.build()
	if err != nil {
		return err
	}
	now := h.now()
	body, err := ExportJSON(report, now)
	if err != nil {
		return err
	}
	attachment(c, ExportFilename(now, "json"))
	return c.Blob(http.StatusOK, "application/json", body)
}

// ExportCSV downloads the flat daily-series export.
func (h *Handler) ExportCSV(c echo.Context) error {
	report, err := h.build()
	if err != nil {
		return err
	}
	body, err := ExportCSV(report)
	if err != nil {
		return err
	}
	attachment(c, ExportFilename(h.now(), "csv"))
	return c.Blob(http.StatusOK, "text/csv", body)
}

func (h *Handler) build() (*Report, error) {
	return BuildReport(h.counters, h.now(), reportWindowDays, reportWindowMonths, h.filler)
}

func attachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
}

func toViewModel(r *Report) *templates.ReportViewModel {
	vm := &templates.ReportViewModel{
		TotalVisits:     r.TotalVisits,
		TodayVisits:     r.TodayVisits,
		ThisMonthVisits: r.ThisMonthVisits,
		AvgDailyVisits:  r.AvgDailyVisits,
		PeakDay:         r.PeakDay,
		GrowthRate:      r.GrowthRate,
		VisitorsLogged:  r.VisitorsLogged,
	}
	vm.DailyStats = make([]templates.DailyStatViewModel, len(r.DailyStats))
	for i, d := range r.DailyStats {
		vm.DailyStats[i] = templates.DailyStatViewModel{
			Date:           d.Date,
			Visits:         d.Visits,
			UniqueVisitors: d.UniqueVisitors,
		}
	}
	vm.MonthlyStats = make([]templates.MonthlyStatViewModel, len(r.MonthlyStats))
	for i, m := range r.MonthlyStats {
		vm.MonthlyStats[i] = templates.MonthlyStatViewModel{Month: m.Month, Visits: m.Visits}
	}
	vm.PageStats = make([]templates.PageStatViewModel, len(r.PageStats))
	for i, p := range r.PageStats {
		vm.PageStats[i] = templates.PageStatViewModel{
			Page:       p.Page,
			Visits:     p.Visits,
			Percentage: p.Percentage,
		}
	}
	return vm
}
