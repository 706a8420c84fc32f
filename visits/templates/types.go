// Package templates renders the analytics dashboard as templ components.
package templates

// ReportViewModel mirrors visits.Report for rendering.
type ReportViewModel struct {
	TotalVisits     int
	TodayVisits     int
	ThisMonthVisits int
	AvgDailyVisits  int
	PeakDay         string
	GrowthRate      float64
	VisitorsLogged  int
	DailyStats      []DailyStatViewModel
	MonthlyStats    []MonthlyStatViewModel
	PageStats       []PageStatViewModel
}

// DailyStatViewModel is one row of the daily trend table.
type DailyStatViewModel struct {
	Date           string
	Visits         int
	UniqueVisitors int
}

// MonthlyStatViewModel is one bar of the monthly trend.
type MonthlyStatViewModel struct {
	Month  string
	Visits int
}

// PageStatViewModel is one slice of the page breakdown.
type PageStatViewModel struct {
	Page       string
	Visits     int
	Percentage int
}
