package visits

import (
	"testing"
	"time"
)

func TestReadStatsEmptyStore(t *testing.T) {
	c := NewCounters(NewMemKV())

	s := ReadStats(c, time.Now())
	if s.Today != 0 || s.ThisMonth != 0 || s.Total != 0 {
		t.Errorf("stats on empty store = %+v, want zeros", s)
	}
}

func TestReadStatsTotalOnly(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set("visits_total", "42"); err != nil {
		t.Fatal(err)
	}

	s := ReadStats(NewCounters(kv), time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC))
	if s.Today != 0 || s.ThisMonth != 0 || s.Total != 42 {
		t.Errorf("stats = %+v, want {0 0 42}", s)
	}
}

func TestReadStatsMalformedCounter(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set("visits_total", "not-a-number"); err != nil {
		t.Fatal(err)
	}

	s := ReadStats(NewCounters(kv), time.Now())
	if s.Total != 0 {
		t.Errorf("malformed total read as %d, want 0", s.Total)
	}
}

func TestReadStatsStorageFailure(t *testing.T) {
	kv := NewMemKV()
	kv.FailAll = true

	s := ReadStats(NewCounters(kv), time.Now())
	if s.Today != 0 || s.ThisMonth != 0 || s.Total != 0 {
		t.Errorf("stats on failing store = %+v, want zeros", s)
	}
}

func TestReadStatsAfterVisits(t *testing.T) {
	c := NewCounters(NewMemKV())
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	if err := c.CountVisit(now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	if err := c.CountVisit(now); err != nil {
		t.Fatal(err)
	}

	s := ReadStats(c, now)
	if s.Today != 1 || s.ThisMonth != 2 || s.Total != 2 {
		t.Errorf("stats = %+v, want {1 2 2}", s)
	}
}
