package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%s): %v", name, err)
	}
	return loc
}

func txn(id, category string, amount string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:       id,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

func TestDayStart_SameDayKeysMatch(t *testing.T) {
	loc := mustZone(t, "Asia/Shanghai")

	morning := time.Date(2024, 3, 15, 0, 0, 1, 0, loc)
	noon := time.Date(2024, 3, 15, 12, 30, 0, 0, loc)
	night := time.Date(2024, 3, 15, 23, 59, 59, 999000000, loc)

	keyMorning := DayStart(morning.UnixMilli(), loc)
	keyNoon := DayStart(noon.UnixMilli(), loc)
	keyNight := DayStart(night.UnixMilli(), loc)

	if keyMorning != keyNoon || keyNoon != keyNight {
		t.Errorf("same-day timestamps produced different keys: %d, %d, %d",
			keyMorning, keyNoon, keyNight)
	}

	want := time.Date(2024, 3, 15, 0, 0, 0, 0, loc).UnixMilli()
	if keyNoon != want {
		t.Errorf("DayStart = %d, want local midnight %d", keyNoon, want)
	}
}

func TestDayStart_DifferentDaysDiffer(t *testing.T) {
	loc := mustZone(t, "America/New_York")

	night := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)
	nextMorning := time.Date(2024, 3, 16, 0, 0, 1, 0, loc)

	if DayStart(night.UnixMilli(), loc) == DayStart(nextMorning.UnixMilli(), loc) {
		t.Error("timestamps on different calendar days mapped to the same key")
	}
}

func TestDayStart_Idempotent(t *testing.T) {
	for _, name := range []string{"UTC", "Asia/Shanghai", "America/New_York"} {
		loc := mustZone(t, name)
		ts := time.Date(2024, 7, 4, 18, 45, 12, 0, loc).UnixMilli()

		once := DayStart(ts, loc)
		twice := DayStart(once, loc)
		if once != twice {
			t.Errorf("%s: DayStart not idempotent: %d != %d", name, once, twice)
		}
	}
}

func TestDayStart_ZoneDependence(t *testing.T) {
	// 02:00 UTC is the previous day in New York but the same day in Shanghai.
	utc := time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)
	ny := mustZone(t, "America/New_York")
	sh := mustZone(t, "Asia/Shanghai")

	keyNY := DayStart(utc.UnixMilli(), ny)
	keySH := DayStart(utc.UnixMilli(), sh)
	if keyNY == keySH {
		t.Error("expected different bucket keys across time zones")
	}
}

func TestBuildDailyBuckets(t *testing.T) {
	loc := mustZone(t, "UTC")
	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, loc)
	day2 := time.Date(2024, 5, 2, 9, 0, 0, 0, loc)

	mood4, mood2 := 4, 2
	txns := []model.Transaction{
		txn("t1", "food", "-25.50", day1),
		txn("t2", "salary", "3000", day1.Add(2*time.Hour)),
		txn("t3", "transport", "-4.20", day1.Add(8*time.Hour)),
		txn("t4", "food", "-12.00", day2),
	}
	txns[0].Mood = &mood4
	txns[2].Mood = &mood2

	buckets := BuildDailyBuckets(txns, loc)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	// Most recent day first.
	if buckets[0].DayStartMillis != DayStart(day2.UnixMilli(), loc) {
		t.Error("buckets not sorted most recent day first")
	}

	first := buckets[1] // day1
	if got := first.Expense.String(); got != "29.7" {
		t.Errorf("day1 expense = %s, want 29.7", got)
	}
	if got := first.Income.String(); got != "3000" {
		t.Errorf("day1 income = %s, want 3000", got)
	}
	if first.MoodSum != 6 || first.MoodCount != 2 {
		t.Errorf("day1 mood = %d/%d, want 6/2", first.MoodSum, first.MoodCount)
	}
	if first.Count != 3 {
		t.Errorf("day1 count = %d, want 3", first.Count)
	}
	if got := first.Net().String(); got != "2970.3" {
		t.Errorf("day1 net = %s, want 2970.3", got)
	}
	if got := first.AverageMood(); got != 3.0 {
		t.Errorf("day1 average mood = %v, want 3", got)
	}

	second := buckets[0] // day2
	if second.MoodCount != 0 || second.AverageMood() != 0 {
		t.Error("day2 should have no mood data")
	}
	if got := second.Expense.String(); got != "12" {
		t.Errorf("day2 expense = %s, want 12", got)
	}
}

func TestBuildDailyBuckets_Empty(t *testing.T) {
	if got := BuildDailyBuckets(nil, time.UTC); len(got) != 0 {
		t.Errorf("expected no buckets, got %d", len(got))
	}
}
