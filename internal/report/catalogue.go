package report

import (
	"errors"
	"fmt"
	"time"

	"financialCharts/internal/dataset"
	"financialCharts/internal/finance"
)

// ErrNoData is returned by a renderer whose aggregate came out empty.
var ErrNoData = errors.New("no data to chart")

// Input is what every renderer reads. It is never modified after NewInput.
type Input struct {
	Tables          *dataset.Tables
	Quarters        []dataset.QuarterlySummary // revenue quarters, sorted
	VolatilitySince time.Time
	RiskSinceYear   int
	Milestones      []finance.Milestone
}

func NewInput(tables *dataset.Tables, volatilitySince time.Time, riskSinceYear int) *Input {
	in := &Input{
		Tables:          tables,
		VolatilitySince: volatilitySince,
		RiskSinceYear:   riskSinceYear,
		Milestones:      finance.DefaultMilestones,
	}
	if tables != nil && tables.Summary != nil {
		in.Quarters = finance.RevenueQuarters(tables.Summary.Rows)
	}
	return in
}

func (in *Input) daily() []dataset.DailyRecord {
	if in.Tables == nil {
		return nil
	}
	return in.Tables.Daily
}

func (in *Input) master() []dataset.QuarterlyMaster {
	if in.Tables == nil {
		return nil
	}
	return in.Tables.Master
}

func (in *Input) summary() *dataset.SummaryTable {
	if in.Tables == nil {
		return nil
	}
	return in.Tables.Summary
}

type renderFunc func(in *Input, st Style) ([]byte, error)

// Chart is one entry of the fixed output catalogue.
type Chart struct {
	Ordinal int
	Slug    string
	Title   string // shown in the completion banner
	Step    string // shown while generating
	render  renderFunc
}

func (c Chart) FileName() string {
	return fmt.Sprintf("%02d_%s.png", c.Ordinal, c.Slug)
}

// Catalogue lists the twelve charts in output order.
func Catalogue() []Chart {
	return []Chart{
		{1, "longterm_stock_performance", "Long-term stock performance (45+ years)", "Long-term stock price growth", renderLongTerm},
		{2, "decade_returns", "Decade-by-decade returns comparison", "Returns by decade", renderDecades},
		{3, "revenue_composition", "Revenue composition by product", "Revenue composition evolution", renderComposition},
		{4, "total_revenue_trend", "Total revenue growth trend", "Total revenue trend", renderRevenueTrend},
		{5, "revenue_share_evolution", "Product portfolio market share evolution", "Product share evolution", renderShareEvolution},
		{6, "services_growth", "Services revenue strategic growth", "Services business growth", renderServices},
		{7, "stock_volatility", "Stock volatility and risk assessment", "Volatility analysis", renderVolatility},
		{8, "annual_returns", "Annual returns performance", "Annual returns", renderAnnualReturns},
		{9, "revenue_growth_rate", "Quarterly revenue growth rate", "Revenue growth rate", renderGrowth},
		{10, "iphone_dependency", "iPhone dependency analysis", "iPhone dependency", renderIPhoneDependency},
		{11, "stock_vs_revenue", "Stock price vs revenue correlation", "Revenue vs stock price", renderRevenueVsStock},
		{12, "risk_adjusted_returns", "Risk-adjusted performance metrics", "Risk-adjusted returns", renderRiskAdjusted},
	}
}
