package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// roundTo rounds half away from zero using decimal arithmetic so that
// values like 1.005 round the way a ledger would.
func roundTo(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// RoundCents rounds half away from zero to two decimals.
func RoundCents(value float64) float64 {
	return roundTo(value, 2)
}

// addMonths behaves like a spreadsheet EDATE: Jan 31 + 1 month is the last
// day of February instead of rolling into March.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
