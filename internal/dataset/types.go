package dataset

import (
	"fmt"
	"math"
	"time"
)

// DailyRecord is one trading day. Missing numeric cells are NaN.
type DailyRecord struct {
	Date          time.Time
	Close         float64
	Year          int
	Return1D      float64 // fractional daily return
	Volatility20D float64 // rolling 20-day realized volatility, precomputed upstream
}

// Decade floors the year to its decade, e.g. 1987 -> 1980.
func (r DailyRecord) Decade() int {
	return int(math.Floor(float64(r.Year)/10)) * 10
}

// QuarterlySummary is one fiscal quarter with its revenue breakdown.
type QuarterlySummary struct {
	FiscalYear    int
	FiscalQuarter string

	RevenueTotal          float64
	RevenueIPhone         float64
	RevenueServices       float64
	RevenueMac            float64
	RevenueIPad           float64
	RevenueWearablesOther float64

	ShareIPhone         float64
	ShareServices       float64
	ShareMac            float64
	ShareIPad           float64
	ShareWearablesOther float64
}

// Period is the display label used on quarter axes, e.g. "2020-Q1".
func (q QuarterlySummary) Period() string {
	return fmt.Sprintf("%d-%s", q.FiscalYear, q.FiscalQuarter)
}

// SummaryTable keeps the rows together with the set of columns present in the
// source, since share columns are optional.
type SummaryTable struct {
	Rows    []QuarterlySummary
	columns map[string]bool
}

func NewSummaryTable(rows []QuarterlySummary, columns ...string) *SummaryTable {
	t := &SummaryTable{Rows: rows, columns: make(map[string]bool, len(columns))}
	for _, c := range columns {
		t.columns[c] = true
	}
	return t
}

func (t *SummaryTable) HasColumn(name string) bool {
	return t != nil && t.columns[name]
}

// QuarterlyMaster carries the end-of-quarter stock price.
type QuarterlyMaster struct {
	FiscalYear    int
	FiscalQuarter string
	ClosePrice    float64
}

// Tables bundles the three read-only inputs shared by every chart.
type Tables struct {
	Daily   []DailyRecord
	Summary *SummaryTable
	Master  []QuarterlyMaster
}
