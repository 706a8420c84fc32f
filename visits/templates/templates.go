package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Dashboard is the analytics page shell. The report fragment loads itself
// on mount, giving the page its loading state without blocking the shell.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Analytics</title>
<script src="/public/htmx.min.js"></script>
<link rel="stylesheet" href="/public/site.css"/>
</head>
<body class="analytics">
<main class="container">
<header class="analytics-header">
<h1>Visit Analytics</h1>
<nav class="analytics-actions">
<a class="button" href="/analytics/export/csv">Export CSV</a>
<a class="button" href="/analytics/export/json">Export JSON</a>
<a class="button" href="/admin/">Back to admin</a>
</nav>
</header>
<section id="report" hx-get="/analytics/fragments/report" hx-trigger="load">
<p class="loading">Loading analytics&hellip;</p>
</section>
</main>
</body>
</html>`)
		return err
	})
}

// ReportFragment renders the computed report (the "ready" state).
func ReportFragment(vm *ReportViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<div class="report">`)

		fmt.Fprint(w, `<div class="summary-cards">`)
		card(w, "Total visits", fmt.Sprintf("%d", vm.TotalVisits))
		card(w, "Today", fmt.Sprintf("%d", vm.TodayVisits))
		card(w, "This month", fmt.Sprintf("%d", vm.ThisMonthVisits))
		card(w, "Daily average (30d)", fmt.Sprintf("%d", vm.AvgDailyVisits))
		card(w, "Peak day", html.EscapeString(vm.PeakDay))
		card(w, "30-day growth", fmt.Sprintf("%+.1f%%", vm.GrowthRate))
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<section><h2>Daily trend</h2><table class="stats-table"><thead><tr><th>Date</th><th>Visits</th><th>Unique visitors</th></tr></thead><tbody>`)
		for _, d := range vm.DailyStats {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%d</td></tr>`,
				html.EscapeString(d.Date), d.Visits, d.UniqueVisitors)
		}
		fmt.Fprint(w, `</tbody></table></section>`)

		maxMonthly := 1
		for _, m := range vm.MonthlyStats {
			if m.Visits > maxMonthly {
				maxMonthly = m.Visits
			}
		}
		fmt.Fprint(w, `<section><h2>Monthly trend</h2><div class="bars">`)
		for _, m := range vm.MonthlyStats {
			fmt.Fprintf(w, `<div class="bar-row"><span class="bar-label">%s</span><span class="bar" style="width:%d%%"></span><span class="bar-value">%d</span></div>`,
				html.EscapeString(m.Month), m.Visits*100/maxMonthly, m.Visits)
		}
		fmt.Fprint(w, `</div></section>`)

		fmt.Fprint(w, `<section><h2>Page breakdown</h2><table class="stats-table"><thead><tr><th>Page</th><th>Visits</th><th>Share</th></tr></thead><tbody>`)
		for _, p := range vm.PageStats {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td><span class="bar" style="width:%d%%"></span> %d%%</td></tr>`,
				html.EscapeString(p.Page), p.Visits, p.Percentage, p.Percentage)
		}
		fmt.Fprint(w, `</tbody></table><p class="note">Proportional estimate; per-page counters are not tracked.</p></section>`)

		fmt.Fprintf(w, `<p class="note">%d visitor records retained.</p>`, vm.VisitorsLogged)
		_, err := fmt.Fprint(w, `</div>`)
		return err
	})
}

// ErrorFragment is the retriable error state of the dashboard.
func ErrorFragment() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<div class="report-error">
<p>Failed to load analytics data.</p>
<button class="button" hx-get="/analytics/fragments/report" hx-target="#report">Retry</button>
</div>`)
		return err
	})
}

func card(w io.Writer, label, value string) {
	fmt.Fprintf(w, `<div class="card"><span class="card-value">%s</span><span class="card-label">%s</span></div>`,
		value, html.EscapeString(label))
}
