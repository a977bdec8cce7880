package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"financialCharts/internal/finance"
)

func renderGraph(graph chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderLongTerm(in *Input, st Style) ([]byte, error) {
	var dates []time.Time
	var closes []float64
	for _, r := range in.daily() {
		if math.IsNaN(r.Close) {
			continue
		}
		dates = append(dates, r.Date)
		closes = append(closes, r.Close)
	}
	if len(dates) == 0 {
		return nil, ErrNoData
	}
	lo, hi := bounds(closes)
	yRange := valueRange(closes)
	if yRange != nil {
		lo, hi = yRange.GetMin(), yRange.GetMax()
	}

	graph := st.newGraph("Apple Stock Price: 45+ Years of Shareholder Value Creation", 14, 7)
	graph.XAxis = chart.XAxis{
		Name:           "Year",
		ValueFormatter: chart.TimeValueFormatterWithFormat("2006"),
		Range:          timeRange(dates),
	}
	graph.YAxis = chart.YAxis{Name: "Stock Price ($)", ValueFormatter: dollarFormatter, Range: yRange}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name: "Close",
			Style: chart.Style{
				StrokeColor: palette[0],
				StrokeWidth: 1.5,
				FillColor:   palette[0].WithAlpha(77),
			},
			XValues: dates,
			YValues: closes,
		},
	}

	var notes []chart.Value2
	for _, m := range finance.LocateMilestones(in.daily(), in.Milestones) {
		graph.Series = append(graph.Series, chart.TimeSeries{
			Style: chart.Style{
				StrokeColor:     colorRed.WithAlpha(128),
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []time.Time{m.Date, m.Date},
			YValues: []float64{lo, hi},
		})
		notes = append(notes, chart.Value2{XValue: chart.TimeToFloat64(m.Date), YValue: m.Close, Label: m.Label})
	}
	if len(notes) > 0 {
		graph.Series = append(graph.Series, chart.AnnotationSeries{Annotations: notes})
	}
	return renderGraph(graph)
}

func renderVolatility(in *Input, st Style) ([]byte, error) {
	monthly := finance.MonthlyVolatility(in.daily(), in.VolatilitySince)
	var months []time.Time
	var values []float64
	for i, v := range monthly.Values {
		if math.IsNaN(v) {
			continue
		}
		months = append(months, monthly.Months[i])
		values = append(values, v)
	}
	if len(months) == 0 {
		return nil, ErrNoData
	}

	graph := st.newGraph("Apple Stock Volatility: Market Risk Assessment", 14, 7)
	graph.XAxis = chart.XAxis{
		Name:           "Year",
		ValueFormatter: chart.TimeValueFormatterWithFormat("2006"),
		Range:          timeRange(months),
	}
	graph.YAxis = chart.YAxis{
		Name:           "20-Day Volatility",
		ValueFormatter: decimalFormatter,
		Range:          valueRange(values, monthly.Mean),
	}
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name: "Monthly mean volatility",
			Style: chart.Style{
				StrokeColor: palette[0],
				StrokeWidth: 1.5,
				FillColor:   palette[0].WithAlpha(77),
			},
			XValues: months,
			YValues: values,
		},
		chart.TimeSeries{
			Name: fmt.Sprintf("Average Volatility: %.2f", monthly.Mean),
			Style: chart.Style{
				StrokeColor:     colorRed.WithAlpha(180),
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
			XValues: []time.Time{months[0], months[len(months)-1]},
			YValues: []float64{monthly.Mean, monthly.Mean},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderGraph(graph)
}

// significantYear marks the annual returns worth a value label.
func significantYear(year int, ret float64) bool {
	switch year {
	case 2007, 2008, 2020:
		return true
	}
	return math.Abs(ret) > 50
}

func renderAnnualReturns(in *Input, st Style) ([]byte, error) {
	annual := finance.AnnualReturns(in.daily())
	if len(annual) == 0 {
		return nil, ErrNoData
	}
	values := make([]float64, len(annual))
	years := make([]string, len(annual))
	labels := make([]string, len(annual))
	for i, a := range annual {
		values[i] = a.Value
		years[i] = strconv.Itoa(a.Year)
		if significantYear(a.Year, a.Value) {
			labels[i] = fmt.Sprintf("%.0f%%", a.Value)
		}
	}

	graph := st.newGraph("Apple Annual Stock Returns: Year-by-Year Performance", 16, 7)
	graph.XAxis = chart.XAxis{Name: "Year", Ticks: quarterTicks(years, 5)}
	graph.YAxis = chart.YAxis{Name: "Annual Return (%)", ValueFormatter: percentFormatter, Range: valueRange(values, 0)}
	graph.Series = []chart.Series{
		barSeries{
			Name:     "Annual return",
			Style:    chart.Style{FillColor: palette[0]},
			Values:   values,
			Edge:     colorBlack,
			FillFunc: func(v float64) drawing.Color { return signColor(v).WithAlpha(204) },
			Labels:   labels,
			BaseLine: true,
		},
	}
	return renderGraph(graph)
}

func renderRiskAdjusted(in *Input, st Style) ([]byte, error) {
	risk := finance.RiskAdjustedReturns(in.daily(), in.RiskSinceYear)
	if len(risk) == 0 {
		return nil, ErrNoData
	}
	values := make([]float64, len(risk))
	years := make([]string, len(risk))
	labels := make([]string, len(risk))
	for i, r := range risk {
		values[i] = r.Score
		years[i] = strconv.Itoa(r.Year)
		if !math.IsNaN(r.Score) {
			labels[i] = fmt.Sprintf("%.1f", r.Score)
		}
	}

	graph := st.newGraph("Risk-Adjusted Performance: Return per Unit of Risk", 14, 7)
	graph.XAxis = chart.XAxis{Name: "Year", Ticks: quarterTicks(years, 1)}
	graph.YAxis = chart.YAxis{Name: "Risk-Adjusted Return Score", ValueFormatter: decimalFormatter, Range: valueRange(values, 0)}
	graph.Series = []chart.Series{
		barSeries{
			Name:     "Risk-adjusted score",
			Style:    chart.Style{FillColor: palette[0]},
			Values:   values,
			Edge:     colorBlack,
			FillFunc: func(v float64) drawing.Color { return signColor(v).WithAlpha(204) },
			Labels:   labels,
			BaseLine: true,
		},
	}
	return renderGraph(graph)
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
