package visits

import (
	"context"
	"testing"
	"time"
)

const desktopChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestRecorder() (*Recorder, *Counters, *MemKV, *fakeClock) {
	kv := NewMemKV()
	counters := NewCounters(kv)
	clock := &fakeClock{t: time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)}
	r := NewRecorder(counters, NopLocator{}).WithClock(clock.now)
	return r, counters, kv, clock
}

func record(r *Recorder) {
	r.Record(context.Background(), PageView{UserAgent: desktopChromeUA, RemoteIP: "203.0.113.5"})
}

func TestFirstVisitIncrementsAllCounters(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	record(r)

	total, _ := counters.Total()
	day, _ := counters.DayCount(clock.t)
	month, _ := counters.MonthCount(clock.t)
	if total != 1 || day != 1 || month != 1 {
		t.Errorf("counters = total %d, day %d, month %d; want 1,1,1", total, day, month)
	}

	lastDay, lastMS, _ := counters.LastVisit()
	if lastDay != DayKey(clock.t) {
		t.Errorf("last_visit_date = %q, want %q", lastDay, DayKey(clock.t))
	}
	if lastMS != clock.t.UnixMilli() {
		t.Errorf("last_visit_time = %d, want %d", lastMS, clock.t.UnixMilli())
	}
}

func TestVisitWithinWindowIsNoOp(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	record(r)
	clock.advance(10 * time.Minute)
	record(r)

	total, _ := counters.Total()
	if total != 1 {
		t.Errorf("total after two visits 10m apart = %d, want 1", total)
	}
	log, _ := counters.Log()
	if len(log) != 1 {
		t.Errorf("log length = %d, want 1", len(log))
	}
}

func TestVisitAfterWindowCountsAgain(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	record(r)
	clock.advance(40 * time.Minute)
	record(r)

	total, _ := counters.Total()
	day, _ := counters.DayCount(clock.t)
	month, _ := counters.MonthCount(clock.t)
	if total != 2 || day != 2 || month != 2 {
		t.Errorf("counters = total %d, day %d, month %d; want 2,2,2", total, day, month)
	}
}

func TestVisitAtExactWindowBoundaryCounts(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	record(r)
	clock.advance(30 * time.Minute)
	record(r)

	total, _ := counters.Total()
	if total != 2 {
		t.Errorf("total at exact 30m boundary = %d, want 2", total)
	}
}

func TestNewDayAlwaysCounts(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	record(r)
	// Jump less than 30 minutes but across midnight.
	clock.t = time.Date(2025, 7, 16, 0, 5, 0, 0, time.UTC)
	record(r)

	total, _ := counters.Total()
	if total != 2 {
		t.Errorf("total after crossing midnight = %d, want 2", total)
	}
	yesterday, _ := counters.DayCount(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	today, _ := counters.DayCount(clock.t)
	if yesterday != 1 || today != 1 {
		t.Errorf("day counters = %d and %d, want 1 and 1", yesterday, today)
	}
}

func TestTotalEqualsSumOfDailyCounters(t *testing.T) {
	r, counters, _, clock := newTestRecorder()

	days := []time.Time{
		time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 16, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 16, 11, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		clock.t = d
		record(r)
	}

	total, _ := counters.Total()
	d1, _ := counters.DayCount(days[0])
	d2, _ := counters.DayCount(days[1])
	d3, _ := counters.DayCount(days[3])
	if sum := d1 + d2 + d3; total != sum {
		t.Errorf("total = %d, sum of daily counters = %d", total, sum)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
}

func TestVisitorLogBounded(t *testing.T) {
	r, counters, _, clock := newTestRecorder()
	r.logMax = 5

	for i := 0; i < 8; i++ {
		record(r)
		clock.advance(time.Hour)
	}

	log, _ := counters.Log()
	if len(log) != 5 {
		t.Fatalf("log length = %d, want 5", len(log))
	}
	// Oldest entries dropped first: the first retained entry is visit #4.
	wantOldest := time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC).UnixMilli()
	if log[0].Timestamp != wantOldest {
		t.Errorf("oldest retained timestamp = %d, want %d", log[0].Timestamp, wantOldest)
	}
	if last := log[len(log)-1].Timestamp; last <= log[0].Timestamp {
		t.Errorf("log not in append order: first %d, last %d", log[0].Timestamp, last)
	}
}

func TestLogEntryFields(t *testing.T) {
	r, counters, _, _ := newTestRecorder()

	r.Record(context.Background(), PageView{
		UserAgent:        desktopChromeUA,
		RemoteIP:         "203.0.113.5",
		Language:         "en-US",
		ScreenResolution: "1920x1080",
		Referrer:         "https://example.org/",
	})

	log, _ := counters.Log()
	if len(log) != 1 {
		t.Fatalf("log length = %d, want 1", len(log))
	}
	e := log[0]
	if e.Browser != "Chrome" || e.OS != "Windows" || e.Device != "Desktop" {
		t.Errorf("classified as %s/%s/%s, want Chrome/Windows/Desktop", e.Browser, e.OS, e.Device)
	}
	if e.Language != "en-US" || e.ScreenResolution != "1920x1080" || e.Referrer != "https://example.org/" {
		t.Errorf("ambient fields not recorded: %+v", e)
	}
	if e.IP != "" || e.Country != "" || e.City != "" {
		t.Errorf("expected empty location from NopLocator, got %+v", e)
	}
}

func TestBotVisitsNotCounted(t *testing.T) {
	r, counters, _, _ := newTestRecorder()

	r.Record(context.Background(), PageView{UserAgent: "Mozilla/5.0 (compatible; Googlebot/2.1)"})

	total, _ := counters.Total()
	if total != 0 {
		t.Errorf("total after bot visit = %d, want 0", total)
	}
}

func TestStorageFailureDoesNotPanic(t *testing.T) {
	kv := NewMemKV()
	kv.FailAll = true
	r := NewRecorder(NewCounters(kv), NopLocator{})

	// Must swallow the failure, not panic or propagate.
	record(r)
}
