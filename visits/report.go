package visits

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Filler produces the display smoothing added to sparse real counters.
// It exists so tests can swap in NoFiller and assert exact values.
type Filler interface {
	Daily() int
	Monthly() int
}

// RandomFiller adds uniform noise: [0,20) per day, [0,200) per month.
type RandomFiller struct{}

func (RandomFiller) Daily() int   { return rand.Intn(20) }
func (RandomFiller) Monthly() int { return rand.Intn(200) }

// NoFiller reports stored counters unchanged.
type NoFiller struct{}

func (NoFiller) Daily() int   { return 0 }
func (NoFiller) Monthly() int { return 0 }

// DailyStat is one day of the daily series. UniqueVisitors is a fixed
// 0.8 approximation of visits, not a true distinct count.
type DailyStat struct {
	Date           string `json:"date"`
	Visits         int    `json:"visits"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// MonthlyStat is one month of the monthly series.
type MonthlyStat struct {
	Month  string `json:"month"`
	Visits int    `json:"visits"`
}

// PageStat is a fixed proportional split of the total. No per-page counters
// exist in the store; this is a presentation placeholder, not measured data.
type PageStat struct {
	Page       string `json:"page"`
	Visits     int    `json:"visits"`
	Percentage int    `json:"percentage"`
}

// Report is the full analytics view over the counter store.
type Report struct {
	TotalVisits     int           `json:"total_visits"`
	TodayVisits     int           `json:"today_visits"`
	ThisMonthVisits int           `json:"this_month_visits"`
	DailyStats      []DailyStat   `json:"daily_stats"`
	MonthlyStats    []MonthlyStat `json:"monthly_stats"`
	PageStats       []PageStat    `json:"page_stats"`
	AvgDailyVisits  int           `json:"avg_daily_visits"`
	PeakDay         string        `json:"peak_day"`
	GrowthRate      float64       `json:"growth_rate"`
	VisitorsLogged  int           `json:"visitors_logged"`
}

var pageSplit = []struct {
	page string
	pct  int
}{
	{"Home", 40},
	{"Projects", 25},
	{"Blog", 20},
	{"Contact", 15},
}

// BuildReport reconstructs the daily and monthly series from the counter
// store and derives the summary metrics. It reads but never writes the
// store; a storage failure is returned as an error so the caller can show
// a retriable error state.
func BuildReport(c *Counters, now time.Time, windowDays, windowMonths int, filler Filler) (*Report, error) {
	if filler == nil {
		filler = RandomFiller{}
	}
	if windowDays <= 0 {
		windowDays = 30
	}
	if windowMonths <= 0 {
		windowMonths = 12
	}

	total, err := c.Total()
	if err != nil {
		return nil, fmt.Errorf("read total: %w", err)
	}
	today, err := c.DayCount(now)
	if err != nil {
		return nil, fmt.Errorf("read today: %w", err)
	}
	thisMonth, err := c.MonthCount(now)
	if err != nil {
		return nil, fmt.Errorf("read month: %w", err)
	}

	daily := make([]DailyStat, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		stored, err := c.DayCount(day)
		if err != nil {
			return nil, fmt.Errorf("read day %s: %w", DayKey(day), err)
		}
		v := stored + filler.Daily()
		daily = append(daily, DailyStat{
			Date:           day.Format("2006-01-02"),
			Visits:         v,
			UniqueVisitors: v * 8 / 10,
		})
	}

	monthly := make([]MonthlyStat, 0, windowMonths)
	for i := windowMonths - 1; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		stored, err := c.MonthCount(month)
		if err != nil {
			return nil, fmt.Errorf("read month %s: %w", MonthKey(month), err)
		}
		monthly = append(monthly, MonthlyStat{
			Month:  month.Format("2006-01"),
			Visits: stored + filler.Monthly(),
		})
	}

	pages := make([]PageStat, len(pageSplit))
	for i, s := range pageSplit {
		pages[i] = PageStat{Page: s.page, Visits: total * s.pct / 100, Percentage: s.pct}
	}

	logged, err := c.Log()
	if err != nil {
		return nil, fmt.Errorf("read visitor log: %w", err)
	}

	r := &Report{
		TotalVisits:     total,
		TodayVisits:     today,
		ThisMonthVisits: thisMonth,
		DailyStats:      daily,
		MonthlyStats:    monthly,
		PageStats:       pages,
		VisitorsLogged:  len(logged),
	}

	sum := 0
	peak := daily[0]
	for _, d := range daily {
		sum += d.Visits
		if d.Visits > peak.Visits {
			peak = d
		}
	}
	r.AvgDailyVisits = sum / len(daily)
	r.PeakDay = peak.Date

	first, last := daily[0], daily[len(daily)-1]
	// A zero first day would divide by zero; report flat growth instead.
	if len(daily) > 1 && first.Visits > 0 {
		r.GrowthRate = float64(last.Visits-first.Visits) / float64(first.Visits) * 100
	}

	return r, nil
}

// exportEnvelope is the structured export: the report plus a timestamp.
type exportEnvelope struct {
	Report     *Report   `json:"report"`
	ExportedAt time.Time `json:"exported_at"`
}

// ExportJSON renders the report as an indented JSON document.
func ExportJSON(r *Report, exportedAt time.Time) ([]byte, error) {
	return json.MarshalIndent(exportEnvelope{Report: r, ExportedAt: exportedAt}, "", "  ")
}

// ExportCSV renders the daily series as a flat table, header row first,
// oldest day first.
func ExportCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Visits", "Unique Visitors"}); err != nil {
		return nil, err
	}
	for _, d := range r.DailyStats {
		row := []string{d.Date, strconv.Itoa(d.Visits), strconv.Itoa(d.UniqueVisitors)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename names a downloaded report after the current date.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("analytics-%s.%s", now.Format("2006-01-02"), ext)
}
