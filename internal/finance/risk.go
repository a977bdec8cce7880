package finance

import (
	"math"

	"financialCharts/internal/dataset"
)

const (
	tradingDaysPerYear = 252.0
	// a year needs more than this many trading days to be scored
	riskRowThreshold = 50
)

// RiskAdjustedReturns scores each year from sinceYear on:
//
//	score = mean(return_1d) * 252 / mean(volatility_20d) * 100
//
// Years with 50 or fewer rows, and years whose volatility is not positive or
// missing, are left out. A year without any return keeps a NaN score.
func RiskAdjustedReturns(daily []dataset.DailyRecord, sinceYear int) []RiskAdjusted {
	byYear := make(map[int][]dataset.DailyRecord)
	maxYear := math.MinInt
	for _, r := range daily {
		byYear[r.Year] = append(byYear[r.Year], r)
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	var out []RiskAdjusted
	for year := sinceYear; year <= maxYear; year++ {
		rows := byYear[year]
		if len(rows) <= riskRowThreshold {
			continue
		}
		returns := make([]float64, len(rows))
		vols := make([]float64, len(rows))
		for i, r := range rows {
			returns[i] = r.Return1D
			vols[i] = r.Volatility20D
		}
		avgReturn := mean(returns) * tradingDaysPerYear
		volatility := mean(vols)
		// NaN fails the comparison
		if !(volatility > 0) {
			continue
		}
		out = append(out, RiskAdjusted{
			Year:       year,
			AvgReturn:  avgReturn,
			Volatility: volatility,
			Score:      avgReturn / volatility * 100,
		})
	}
	return out
}

// mean skips NaN values; it is NaN when nothing is left.
func mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
