package finance

import (
	"math"
	"sort"

	"financialCharts/internal/dataset"
)

const billion = 1e9

// Categories lists the revenue line items in stacking order.
var Categories = []Category{
	{
		Label:         "iPhone",
		RevenueColumn: dataset.ColRevenueIPhone,
		ShareColumn:   dataset.ColShareIPhone,
		Revenue:       func(q dataset.QuarterlySummary) float64 { return q.RevenueIPhone },
		Share:         func(q dataset.QuarterlySummary) float64 { return q.ShareIPhone },
	},
	{
		Label:         "Services",
		RevenueColumn: dataset.ColRevenueServices,
		ShareColumn:   dataset.ColShareServices,
		Revenue:       func(q dataset.QuarterlySummary) float64 { return q.RevenueServices },
		Share:         func(q dataset.QuarterlySummary) float64 { return q.ShareServices },
	},
	{
		Label:         "Mac",
		RevenueColumn: dataset.ColRevenueMac,
		ShareColumn:   dataset.ColShareMac,
		Revenue:       func(q dataset.QuarterlySummary) float64 { return q.RevenueMac },
		Share:         func(q dataset.QuarterlySummary) float64 { return q.ShareMac },
	},
	{
		Label:         "iPad",
		RevenueColumn: dataset.ColRevenueIPad,
		ShareColumn:   dataset.ColShareIPad,
		Revenue:       func(q dataset.QuarterlySummary) float64 { return q.RevenueIPad },
		Share:         func(q dataset.QuarterlySummary) float64 { return q.ShareIPad },
	},
	{
		Label:         "Wearables & Other",
		RevenueColumn: dataset.ColRevenueWearablesOther,
		ShareColumn:   dataset.ColShareWearablesOther,
		Revenue:       func(q dataset.QuarterlySummary) float64 { return q.RevenueWearablesOther },
		Share:         func(q dataset.QuarterlySummary) float64 { return q.ShareWearablesOther },
	},
}

// Billions converts dollars to billions of dollars.
func Billions(v float64) float64 { return v / billion }

// RevenueQuarters drops quarters without revenue_total and orders the rest by
// (fiscal_year, fiscal_quarter). The input is not modified.
func RevenueQuarters(rows []dataset.QuarterlySummary) []dataset.QuarterlySummary {
	out := make([]dataset.QuarterlySummary, 0, len(rows))
	for _, q := range rows {
		if !math.IsNaN(q.RevenueTotal) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FiscalYear != out[j].FiscalYear {
			return out[i].FiscalYear < out[j].FiscalYear
		}
		return out[i].FiscalQuarter < out[j].FiscalQuarter
	})
	return out
}

// Periods returns the "year-quarter" axis labels of quarters.
func Periods(quarters []dataset.QuarterlySummary) []string {
	out := make([]string, len(quarters))
	for i, q := range quarters {
		out[i] = q.Period()
	}
	return out
}

// TotalRevenue returns revenue_total in billions per quarter.
func TotalRevenue(quarters []dataset.QuarterlySummary) []float64 {
	out := make([]float64, len(quarters))
	for i, q := range quarters {
		out[i] = Billions(q.RevenueTotal)
	}
	return out
}

// Composition returns every category's revenue in billions, missing as zero,
// in Categories order.
func Composition(quarters []dataset.QuarterlySummary) []CategorySeries {
	out := make([]CategorySeries, 0, len(Categories))
	for _, c := range Categories {
		values := make([]float64, len(quarters))
		for i, q := range quarters {
			values[i] = Billions(zeroIfNaN(c.Revenue(q)))
		}
		out = append(out, CategorySeries{Category: c, Values: values})
	}
	return out
}

// ShareEvolution returns each category's share of total in percent, missing as
// zero. Categories whose share column is absent from the table are omitted.
func ShareEvolution(table *dataset.SummaryTable, quarters []dataset.QuarterlySummary) []CategorySeries {
	var out []CategorySeries
	for _, c := range Categories {
		if !table.HasColumn(c.ShareColumn) {
			continue
		}
		values := make([]float64, len(quarters))
		for i, q := range quarters {
			values[i] = zeroIfNaN(c.Share(q)) * 100
		}
		out = append(out, CategorySeries{Category: c, Values: values})
	}
	return out
}

// ServicesFocus returns services revenue in billions and its share in percent.
// Missing values stay NaN.
func ServicesFocus(quarters []dataset.QuarterlySummary) (revenue, share []float64) {
	revenue = make([]float64, len(quarters))
	share = make([]float64, len(quarters))
	for i, q := range quarters {
		revenue[i] = Billions(q.RevenueServices)
		share[i] = q.ShareServices * 100
	}
	return revenue, share
}

// GrowthRates is the quarter-over-quarter percent change of revenue_total.
// The first quarter, and any quarter following a zero or missing total, is NaN.
func GrowthRates(quarters []dataset.QuarterlySummary) []float64 {
	out := make([]float64, len(quarters))
	for i := range quarters {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		prev, cur := quarters[i-1].RevenueTotal, quarters[i].RevenueTotal
		if prev == 0 || math.IsNaN(prev) || math.IsNaN(cur) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (cur - prev) / prev * 100
	}
	return out
}

// IPhoneDependency splits each quarter's revenue into iPhone and non-iPhone.
// A zero total yields a NaN share instead of a division failure.
func IPhoneDependency(quarters []dataset.QuarterlySummary) []IPhoneSplit {
	out := make([]IPhoneSplit, len(quarters))
	for i, q := range quarters {
		split := IPhoneSplit{
			IPhone:    q.RevenueIPhone,
			NonIPhone: q.RevenueTotal - q.RevenueIPhone,
			Share:     math.NaN(),
		}
		if q.RevenueTotal != 0 {
			split.Share = q.RevenueIPhone / q.RevenueTotal * 100
		}
		out[i] = split
	}
	return out
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
