package finance

import (
	"fmt"
	"sort"

	"financialCharts/internal/dataset"
)

const (
	minDecadeRows = 2
	// a year needs more than this many trading days to be charted
	annualRowThreshold = 20
)

// periodGroup tracks the first and last row of a group in table order.
type periodGroup struct {
	first, last dataset.DailyRecord
	count       int
}

func (g periodGroup) totalReturn() float64 {
	return (g.last.Close - g.first.Close) / g.first.Close * 100
}

// groupDaily buckets date-ordered rows by key, returning the keys ascending.
func groupDaily(daily []dataset.DailyRecord, key func(dataset.DailyRecord) int) ([]int, map[int]*periodGroup) {
	groups := make(map[int]*periodGroup)
	var keys []int
	for _, r := range daily {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &periodGroup{first: r}
			groups[k] = g
			keys = append(keys, k)
		}
		g.last = r
		g.count++
	}
	sort.Ints(keys)
	return keys, groups
}

// DecadeReturns computes the percent change from the first to the last close of
// every decade with at least two rows. Rows must be sorted by date.
func DecadeReturns(daily []dataset.DailyRecord) []LabeledValue {
	keys, groups := groupDaily(daily, dataset.DailyRecord.Decade)
	out := make([]LabeledValue, 0, len(keys))
	for _, decade := range keys {
		g := groups[decade]
		if g.count < minDecadeRows {
			continue
		}
		out = append(out, LabeledValue{Label: fmt.Sprintf("%ds", decade), Value: g.totalReturn()})
	}
	return out
}

// AnnualReturns is DecadeReturns per calendar year, for years with more than
// 20 trading days.
func AnnualReturns(daily []dataset.DailyRecord) []YearValue {
	keys, groups := groupDaily(daily, func(r dataset.DailyRecord) int { return r.Year })
	out := make([]YearValue, 0, len(keys))
	for _, year := range keys {
		g := groups[year]
		if g.count <= annualRowThreshold {
			continue
		}
		out = append(out, YearValue{Year: year, Value: g.totalReturn()})
	}
	return out
}
