package visits

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	d := time.Date(2025, 7, 15, 23, 59, 0, 0, time.UTC)
	if got := DayKey(d); got != "Tue Jul 15 2025" {
		t.Errorf("DayKey = %q, want %q", got, "Tue Jul 15 2025")
	}
	// Single-digit days keep the zero pad.
	d = time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	if got := DayKey(d); got != "Sat Jul 05 2025" {
		t.Errorf("DayKey = %q, want %q", got, "Sat Jul 05 2025")
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)); got != "2025-7" {
		t.Errorf("MonthKey = %q, want 2025-7", got)
	}
	if got := MonthKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)); got != "2025-12" {
		t.Errorf("MonthKey = %q, want 2025-12", got)
	}
}

func TestCountersMalformedValueReadsZero(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set(keyTotal, "garbage"); err != nil {
		t.Fatal(err)
	}
	c := NewCounters(kv)

	n, err := c.Total()
	if err != nil || n != 0 {
		t.Errorf("Total on malformed value = %d, %v; want 0, nil", n, err)
	}

	// bump resets the counter rather than erroring.
	if err := c.bump(keyTotal); err != nil {
		t.Fatal(err)
	}
	if n, _ := c.Total(); n != 1 {
		t.Errorf("Total after bump over malformed = %d, want 1", n)
	}
}

func TestLastVisitNever(t *testing.T) {
	c := NewCounters(NewMemKV())

	day, ms, err := c.LastVisit()
	if err != nil {
		t.Fatal(err)
	}
	if day != "" || ms != 0 {
		t.Errorf("LastVisit on empty store = %q, %d; want empty, 0", day, ms)
	}
}

func TestAppendLogTrimsOldest(t *testing.T) {
	c := NewCounters(NewMemKV())

	for i := 0; i < 4; i++ {
		v := VisitorInfo{Timestamp: int64(i), Browser: "Chrome", OS: "Linux", Device: "Desktop"}
		if err := c.AppendLog(v, 3); err != nil {
			t.Fatal(err)
		}
	}

	log, err := c.Log()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 3 {
		t.Fatalf("log length = %d, want 3", len(log))
	}
	if log[0].Timestamp != 1 || log[2].Timestamp != 3 {
		t.Errorf("log timestamps = %d..%d, want 1..3", log[0].Timestamp, log[2].Timestamp)
	}
}

func TestLogCorruptReadsEmpty(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set(keyVisitorsLog, "{not json"); err != nil {
		t.Fatal(err)
	}
	c := NewCounters(kv)

	log, err := c.Log()
	if err != nil || log != nil {
		t.Errorf("Log on corrupt value = %v, %v; want nil, nil", log, err)
	}

	// Appending over a corrupt log starts fresh.
	if err := c.AppendLog(VisitorInfo{Timestamp: 9}, 10); err != nil {
		t.Fatal(err)
	}
	log, _ = c.Log()
	if len(log) != 1 || log[0].Timestamp != 9 {
		t.Errorf("log after recovery = %+v", log)
	}
}
