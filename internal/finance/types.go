package finance

import (
	"time"

	"financialCharts/internal/dataset"
)

// LabeledValue is one bar of a category-axis chart.
type LabeledValue struct {
	Label string
	Value float64
}

// YearValue is one bar of a year-axis chart.
type YearValue struct {
	Year  int
	Value float64
}

// RiskAdjusted is the yearly return-per-unit-of-risk score and its inputs.
type RiskAdjusted struct {
	Year       int
	AvgReturn  float64 // mean daily return, annualized
	Volatility float64 // mean 20-day volatility
	Score      float64
}

// Category is a revenue line item with accessors into QuarterlySummary.
type Category struct {
	Label         string
	RevenueColumn string
	ShareColumn   string
	Revenue       func(dataset.QuarterlySummary) float64
	Share         func(dataset.QuarterlySummary) float64
}

// CategorySeries is one category's value per quarter, aligned with the
// RevenueQuarters ordering.
type CategorySeries struct {
	Category Category
	Values   []float64
}

// IPhoneSplit splits one quarter's revenue (in dollars) into iPhone and the rest.
type IPhoneSplit struct {
	IPhone    float64
	NonIPhone float64
	Share     float64 // iPhone percent of total; NaN when total is zero
}

// MonthlySeries holds calendar-month buckets keyed by the month's last day.
type MonthlySeries struct {
	Months []time.Time
	Values []float64 // NaN for months without data
	Mean   float64   // grand mean over non-missing months
}

// Milestone is a dated event annotated on the long-term price chart.
type Milestone struct {
	Date  time.Time
	Label string
}

// MilestonePoint is a milestone found in the daily table, with that day's close.
type MilestonePoint struct {
	Milestone
	Close float64
}
