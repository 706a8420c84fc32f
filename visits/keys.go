package visits

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Key schema of the counter store. Day keys use the locale-independent
// "Mon Jan 02 2006" form so historical keys stay addressable by date math.
const (
	keyTotal         = "visits_total"
	keyLastVisitDate = "last_visit_date"
	keyLastVisitTime = "last_visit_time"
	keyVisitorsLog   = "visitors_log"

	dayKeyLayout = "Mon Jan 02 2006"
)

// DayKey returns the per-day counter suffix for t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// MonthKey returns the per-month counter suffix for t ("2025-7", month 1-12).
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

func dayCounterKey(t time.Time) string {
	return "visits_" + DayKey(t)
}

func monthCounterKey(t time.Time) string {
	return "visits_month_" + MonthKey(t)
}

// VisitorInfo is one entry of the bounded visitor log. Location fields are
// best-effort and absent when the lookup failed.
type VisitorInfo struct {
	IP               string `json:"ip,omitempty"`
	Country          string `json:"country,omitempty"`
	City             string `json:"city,omitempty"`
	Browser          string `json:"browser"`
	OS               string `json:"os"`
	Device           string `json:"device"`
	Timestamp        int64  `json:"timestamp"` // epoch milliseconds
	UserAgent        string `json:"user_agent"`
	Language         string `json:"language,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
	ScreenResolution string `json:"screen_resolution,omitempty"`
	Referrer         string `json:"referrer,omitempty"`
}

// Counters is the typed accessor layer over the raw KV store. All key
// construction and string parsing happens here; malformed values read as
// zero rather than erroring.
type Counters struct {
	kv KV
}

// NewCounters wraps a KV store.
func NewCounters(kv KV) *Counters {
	return &Counters{kv: kv}
}

func (c *Counters) intAt(key string) (int, error) {
	raw, err := c.kv.Get(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (c *Counters) bump(key string) error {
	n, err := c.intAt(key)
	if err != nil {
		return err
	}
	return c.kv.Set(key, strconv.Itoa(n+1))
}

// Total returns the all-time visit count.
func (c *Counters) Total() (int, error) {
	return c.intAt(keyTotal)
}

// DayCount returns the count for t's calendar day.
func (c *Counters) DayCount(t time.Time) (int, error) {
	return c.intAt(dayCounterKey(t))
}

// MonthCount returns the count for t's calendar month.
func (c *Counters) MonthCount(t time.Time) (int, error) {
	return c.intAt(monthCounterKey(t))
}

// LastVisit returns the de-duplication anchors: the day key and epoch-ms
// timestamp of the most recent counted visit. Zero values mean "never".
func (c *Counters) LastVisit() (day string, epochMS int64, err error) {
	day, err = c.kv.Get(keyLastVisitDate)
	if err != nil {
		return "", 0, err
	}
	raw, err := c.kv.Get(keyLastVisitTime)
	if err != nil {
		return "", 0, err
	}
	ms, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil {
		ms = 0
	}
	return day, ms, nil
}

// CountVisit increments the day, month, and total counters by exactly one
// and moves both de-duplication anchors to t.
func (c *Counters) CountVisit(t time.Time) error {
	if err := c.bump(dayCounterKey(t)); err != nil {
		return err
	}
	if err := c.bump(monthCounterKey(t)); err != nil {
		return err
	}
	if err := c.bump(keyTotal); err != nil {
		return err
	}
	if err := c.kv.Set(keyLastVisitDate, DayKey(t)); err != nil {
		return err
	}
	return c.kv.Set(keyLastVisitTime, strconv.FormatInt(t.UnixMilli(), 10))
}

// Log returns the visitor log, oldest first. A missing or corrupt log reads
// as empty.
func (c *Counters) Log() ([]VisitorInfo, error) {
	raw, err := c.kv.Get(keyVisitorsLog)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var entries []VisitorInfo
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// AppendLog appends one entry, dropping the oldest entries beyond max.
func (c *Counters) AppendLog(v VisitorInfo, max int) error {
	entries, err := c.Log()
	if err != nil {
		return err
	}
	entries = append(entries, v)
	if len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.kv.Set(keyVisitorsLog, string(b))
}
