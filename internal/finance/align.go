package finance

import (
	"math"

	"financialCharts/internal/dataset"
)

type fiscalKey struct {
	year    int
	quarter string
}

// AlignClosePrices looks up the end-of-quarter close for every quarter by exact
// (fiscal_year, fiscal_quarter). The first master row wins on duplicates; a
// quarter without a match gets NaN.
func AlignClosePrices(quarters []dataset.QuarterlySummary, master []dataset.QuarterlyMaster) []float64 {
	prices := make(map[fiscalKey]float64, len(master))
	for _, m := range master {
		k := fiscalKey{m.FiscalYear, m.FiscalQuarter}
		if _, seen := prices[k]; !seen {
			prices[k] = m.ClosePrice
		}
	}
	out := make([]float64, len(quarters))
	for i, q := range quarters {
		if p, ok := prices[fiscalKey{q.FiscalYear, q.FiscalQuarter}]; ok {
			out[i] = p
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
