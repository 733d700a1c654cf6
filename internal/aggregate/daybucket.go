// Package aggregate builds calendar-day groupings and category rankings
// from flat transaction lists. All functions are pure: they take immutable
// inputs and return fresh values, and are safe for concurrent use.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// DayBucket aggregates the transactions of one zone-local calendar day.
// DayStartMillis is the zone-local midnight instant keying the bucket.
// Income and Expense are both positive sums; Expense is the sum of absolute
// values of negative amounts.
type DayBucket struct {
	DayStartMillis int64
	Income         decimal.Decimal
	Expense        decimal.Decimal
	MoodSum        int
	MoodCount      int
	Count          int
}

// DayStart truncates a millisecond timestamp to local midnight in the given
// zone. It is idempotent: DayStart(DayStart(t)) == DayStart(t).
func DayStart(tsMillis int64, loc *time.Location) int64 {
	t := time.UnixMilli(tsMillis).In(loc)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return midnight.UnixMilli()
}

// BuildDailyBuckets groups transactions by zone-local calendar day. Buckets
// are independent per day, with no cross-day carry-over, and are returned
// most recent day first.
func BuildDailyBuckets(txns []model.Transaction, loc *time.Location) []DayBucket {
	byDay := make(map[int64]*DayBucket)

	for i := range txns {
		txn := &txns[i]
		key := DayStart(txn.Date.UnixMilli(), loc)

		bucket, ok := byDay[key]
		if !ok {
			bucket = &DayBucket{
				DayStartMillis: key,
				Income:         decimal.Zero,
				Expense:        decimal.Zero,
			}
			byDay[key] = bucket
		}

		if txn.IsExpense() {
			bucket.Expense = bucket.Expense.Add(txn.AbsAmount())
		} else {
			bucket.Income = bucket.Income.Add(txn.Amount)
		}
		if txn.Mood != nil {
			bucket.MoodSum += *txn.Mood
			bucket.MoodCount++
		}
		bucket.Count++
	}

	buckets := make([]DayBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].DayStartMillis > buckets[j].DayStartMillis
	})
	return buckets
}

// AverageMood returns the mean mood score of the bucket, or 0 when no
// transaction in the bucket recorded one.
func (b DayBucket) AverageMood() float64 {
	if b.MoodCount == 0 {
		return 0
	}
	return float64(b.MoodSum) / float64(b.MoodCount)
}

// Net returns income minus expense for the day.
func (b DayBucket) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}
