package visits

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	// A page load within this window of the last counted visit on the same
	// day is not a new visit. Sliding window, not once-per-day.
	dedupWindow = 30 * time.Minute

	// The visitor log keeps only the newest entries, oldest dropped first.
	logLimit = 1000
)

// PageView carries the ambient request context for one page load.
type PageView struct {
	RemoteIP         string
	UserAgent        string
	Language         string
	Timezone         string // client-reported, usually absent
	ScreenResolution string // client-reported, usually absent
	Referrer         string
}

// Recorder decides whether a page load counts as a new visit and, if so,
// updates the counter store and visitor log. It never returns an error:
// storage and lookup failures are logged and swallowed so recording can
// never break page rendering.
type Recorder struct {
	mu       sync.Mutex
	counters *Counters
	geo      Locator
	now      func() time.Time
	window   time.Duration
	logMax   int
}

// NewRecorder builds a recorder over the given counter store and locator.
func NewRecorder(counters *Counters, geo Locator) *Recorder {
	if geo == nil {
		geo = NopLocator{}
	}
	return &Recorder{
		counters: counters,
		geo:      geo,
		now:      time.Now,
		window:   dedupWindow,
		logMax:   logLimit,
	}
}

// WithClock overrides the time source (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record registers one page load. Callers that must not wait on the
// geolocation lookup should invoke it in its own goroutine and not await
// the result; Record itself is safe for concurrent use.
func (r *Recorder) Record(ctx context.Context, pv PageView) {
	if IsBot(pv.UserAgent) {
		return
	}

	r.mu.Lock()
	now := r.now()
	qualifies, err := r.qualifies(now)
	if err != nil {
		r.mu.Unlock()
		log.Printf("visits: read dedup anchors: %v", err)
		return
	}
	if !qualifies {
		r.mu.Unlock()
		return
	}
	// Counters and anchors move together while the lock is held, so a
	// concurrent call on the same instant cannot double-count.
	if err := r.counters.CountVisit(now); err != nil {
		r.mu.Unlock()
		log.Printf("visits: count visit: %v", err)
		return
	}
	r.mu.Unlock()

	// Best-effort enrichment outside the lock; an empty location is fine.
	loc := r.geo.Locate(ctx, pv.RemoteIP)

	browser, os, device := ClassifyUserAgent(pv.UserAgent)
	entry := VisitorInfo{
		IP:               loc.IP,
		Country:          loc.Country,
		City:             loc.City,
		Browser:          browser,
		OS:               os,
		Device:           device,
		Timestamp:        now.UnixMilli(),
		UserAgent:        pv.UserAgent,
		Language:         pv.Language,
		Timezone:         pv.Timezone,
		ScreenResolution: pv.ScreenResolution,
		Referrer:         pv.Referrer,
	}

	r.mu.Lock()
	err = r.counters.AppendLog(entry, r.logMax)
	r.mu.Unlock()
	if err != nil {
		log.Printf("visits: append visitor log: %v", err)
	}
}

// qualifies applies the de-duplication policy: a new calendar day always
// counts; the same day counts again only after the window has elapsed.
func (r *Recorder) qualifies(now time.Time) (bool, error) {
	lastDay, lastMS, err := r.counters.LastVisit()
	if err != nil {
		return false, err
	}
	if lastDay != DayKey(now) {
		return true, nil
	}
	return now.UnixMilli()-lastMS >= r.window.Milliseconds(), nil
}
