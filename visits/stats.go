package visits

import (
	"log"
	"time"
)

// Stats is the headline visit summary shown on public pages.
type Stats struct {
	Today     int `json:"today"`
	ThisMonth int `json:"this_month"`
	Total     int `json:"total"`
}

// ReadStats returns today's, this month's, and the all-time counts at the
// given instant. It never mutates the store and is safe before any visit
// has been recorded; storage failures are logged and read as zero.
func ReadStats(c *Counters, now time.Time) Stats {
	var s Stats
	var err error
	if s.Today, err = c.DayCount(now); err != nil {
		log.Printf("visits: read day count: %v", err)
	}
	if s.ThisMonth, err = c.MonthCount(now); err != nil {
		log.Printf("visits: read month count: %v", err)
	}
	if s.Total, err = c.Total(); err != nil {
		log.Printf("visits: read total count: %v", err)
	}
	return s
}
