package visits

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv, err := OpenKV(filepath.Join(t.TempDir(), "visits.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	if v, err := kv.Get("missing"); err != nil || v != "" {
		t.Errorf("Get missing = %q, %v; want empty, nil", v, err)
	}

	if err := kv.Set("visits_total", "7"); err != nil {
		t.Fatal(err)
	}
	if v, _ := kv.Get("visits_total"); v != "7" {
		t.Errorf("Get = %q, want 7", v)
	}

	// Overwrite.
	if err := kv.Set("visits_total", "8"); err != nil {
		t.Fatal(err)
	}
	if v, _ := kv.Get("visits_total"); v != "8" {
		t.Errorf("Get after overwrite = %q, want 8", v)
	}

	if err := kv.Remove("visits_total"); err != nil {
		t.Fatal(err)
	}
	if v, _ := kv.Get("visits_total"); v != "" {
		t.Errorf("Get after remove = %q, want empty", v)
	}
}

func TestSQLiteKVPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.db")

	kv, err := OpenKV(path)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCounters(kv)
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	if err := c.CountVisit(now); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	kv2, err := OpenKV(path)
	if err != nil {
		t.Fatal(err)
	}
	defer kv2.Close()

	total, err := NewCounters(kv2).Total()
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("total after reopen = %d, want 1", total)
	}
}

func TestOpenKVCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "visits.db")
	kv, err := OpenKV(path)
	if err != nil {
		t.Fatal(err)
	}
	kv.Close()
}
