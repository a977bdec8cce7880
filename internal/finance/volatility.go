package finance

import (
	"math"
	"time"

	"financialCharts/internal/dataset"
)

// MonthEnd returns the last calendar day of t's month.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// MonthlyVolatility resamples volatility_20d of the rows dated on or after
// since into calendar-month means. Every month between the first and last
// such row gets a bucket, keyed by its last day even when the data stops
// earlier; months without a value are NaN and do not count toward Mean.
func MonthlyVolatility(daily []dataset.DailyRecord, since time.Time) MonthlySeries {
	type bucket struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*bucket)
	var first, last time.Time
	for _, r := range daily {
		if r.Date.Before(since) {
			continue
		}
		key := MonthEnd(r.Date)
		if first.IsZero() || key.Before(first) {
			first = key
		}
		if key.After(last) {
			last = key
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		if !math.IsNaN(r.Volatility20D) {
			b.sum += r.Volatility20D
			b.n++
		}
	}

	out := MonthlySeries{Mean: math.NaN()}
	if first.IsZero() {
		return out
	}
	var valid []float64
	for m := first; !m.After(last); m = MonthEnd(m.AddDate(0, 0, 1)) {
		v := math.NaN()
		if b, ok := buckets[m]; ok && b.n > 0 {
			v = b.sum / float64(b.n)
			valid = append(valid, v)
		}
		out.Months = append(out.Months, m)
		out.Values = append(out.Values, v)
	}
	out.Mean = mean(valid)
	return out
}
