package report

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"financialCharts/internal/finance"
)

func quarterAxis(periods []string, every int) chart.XAxis {
	return chart.XAxis{Name: "Quarter", Ticks: quarterTicks(periods, every)}
}

func billionsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0fB", f)
	}
	return ""
}

func renderComposition(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	composition := finance.Composition(in.Quarters)
	layers := make([][]float64, len(composition))
	for k, c := range composition {
		layers[k] = c.Values
	}
	bottoms := stack(layers)

	graph := st.newGraph("Apple Revenue Composition by Product Category", 14, 7)
	graph.XAxis = quarterAxis(finance.Periods(in.Quarters), 2)
	graph.YAxis = chart.YAxis{
		Name:           "Revenue ($ Billions)",
		ValueFormatter: billionsFormatter,
		Range:          valueRange(stackTop(layers), 0),
	}
	for k, c := range composition {
		graph.Series = append(graph.Series, barSeries{
			Name:    c.Category.Label,
			Style:   chart.Style{FillColor: palette[k].WithAlpha(217), StrokeColor: palette[k], StrokeWidth: 4},
			Values:  c.Values,
			Bottoms: bottoms[k],
			Edge:    colorWhite,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderGraph(graph)
}

func renderGrowth(in *Input, st Style) ([]byte, error) {
	growth := finance.GrowthRates(in.Quarters)
	if !anyPresent(growth) {
		return nil, ErrNoData
	}

	graph := st.newGraph("Quarterly Revenue Growth Rate: Business Momentum Analysis", 14, 7)
	graph.XAxis = quarterAxis(finance.Periods(in.Quarters), 2)
	graph.YAxis = chart.YAxis{
		Name:           "Quarter-over-Quarter Growth (%)",
		ValueFormatter: percentFormatter,
		Range:          valueRange(growth, 0),
	}
	graph.Series = []chart.Series{
		barSeries{
			Name:     "QoQ growth",
			Style:    chart.Style{FillColor: palette[0], StrokeColor: palette[0], StrokeWidth: 4},
			Values:   growth,
			Edge:     colorBlack,
			FillFunc: func(v float64) drawing.Color { return signColor(v).WithAlpha(204) },
			BaseLine: true,
		},
	}
	if trend, ok := finance.FitIndexed(growth); ok {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: "Trend Line",
			Style: chart.Style{
				StrokeColor:     colorRed.WithAlpha(180),
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
			XValues: indexes(len(growth)),
			YValues: trend.Over(len(growth)),
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderGraph(graph)
}

func renderServices(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	return renderGraph(servicesGraph(in, st))
}

func servicesGraph(in *Input, st Style) chart.Chart {
	revenue, share := finance.ServicesFocus(in.Quarters)

	graph := st.newGraph("Services Revenue: Strategic Shift Toward Recurring Income", 14, 7)
	graph.XAxis = quarterAxis(finance.Periods(in.Quarters), 2)
	graph.YAxis = chart.YAxis{
		Name:           "Services Revenue ($ Billions)",
		NameStyle:      chart.Style{FontColor: palette[1]},
		ValueFormatter: billionsFormatter,
		Range:          valueRange(revenue, 0),
	}
	graph.Series = []chart.Series{
		barSeries{
			Name:   "Services Revenue ($ B)",
			Style:  chart.Style{FillColor: palette[1].WithAlpha(179), StrokeColor: palette[1], StrokeWidth: 4},
			Values: revenue,
			Edge:   colorBlack,
		},
	}
	if anyPresent(share) {
		graph.YAxisSecondary = chart.YAxis{
			Name:           "Share of Total Revenue (%)",
			NameStyle:      chart.Style{FontColor: palette[3]},
			ValueFormatter: percentFormatter,
			Range:          valueRange(share),
		}
		graph.Series = append(graph.Series, newGapLine("Revenue Share (%)", chart.Style{
			StrokeColor: palette[3],
			StrokeWidth: 2.5,
			DotColor:    palette[3],
			DotWidth:    4,
		}, chart.YAxisSecondary, share))
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

func renderIPhoneDependency(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	split := finance.IPhoneDependency(in.Quarters)
	iphone := make([]float64, len(split))
	rest := make([]float64, len(split))
	labels := make([]string, len(split))
	for i, s := range split {
		iphone[i] = finance.Billions(s.IPhone)
		rest[i] = finance.Billions(s.NonIPhone)
		if i%3 == 0 && !math.IsNaN(s.Share) {
			labels[i] = fmt.Sprintf("%.0f%%", s.Share)
		}
	}

	graph := st.newGraph("iPhone Revenue Dependency: Diversification Progress", 14, 7)
	graph.XAxis = quarterAxis(finance.Periods(in.Quarters), 2)
	graph.YAxis = chart.YAxis{
		Name:           "Revenue ($ Billions)",
		ValueFormatter: billionsFormatter,
		Range:          valueRange(stackTop([][]float64{iphone, rest}), 0),
	}
	graph.Series = []chart.Series{
		barSeries{
			Name:        "iPhone Revenue",
			Style:       chart.Style{FillColor: palette[0].WithAlpha(204), StrokeColor: palette[0], StrokeWidth: 4},
			Values:      iphone,
			Edge:        colorBlack,
			Labels:      labels,
			LabelInside: true,
			LabelColor:  colorWhite,
		},
		barSeries{
			Name:    "Non-iPhone Revenue",
			Style:   chart.Style{FillColor: palette[2].WithAlpha(204), StrokeColor: palette[2], StrokeWidth: 4},
			Values:  rest,
			Bottoms: iphone,
			Edge:    colorBlack,
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderGraph(graph)
}

func renderRevenueVsStock(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	revenue := finance.TotalRevenue(in.Quarters)
	prices := finance.AlignClosePrices(in.Quarters, in.master())

	graph := st.newGraph("Stock Price vs Revenue: Market Valuation Alignment", 14, 7)
	graph.XAxis = quarterAxis(finance.Periods(in.Quarters), 2)
	graph.YAxis = chart.YAxis{
		Name:           "Revenue ($ Billions)",
		NameStyle:      chart.Style{FontColor: palette[0]},
		ValueFormatter: billionsFormatter,
		Range:          valueRange(revenue),
	}
	graph.Series = []chart.Series{
		newGapLine("Total Revenue", chart.Style{
			StrokeColor: palette[0],
			StrokeWidth: 2.5,
			DotColor:    palette[0],
			DotWidth:    4,
		}, chart.YAxisPrimary, revenue),
	}
	if anyPresent(prices) {
		graph.YAxisSecondary = chart.YAxis{
			Name:           "Stock Price ($)",
			NameStyle:      chart.Style{FontColor: palette[1]},
			ValueFormatter: dollarFormatter,
			Range:          valueRange(prices),
		}
		graph.Series = append(graph.Series, newGapLine("Stock Price", chart.Style{
			StrokeColor: palette[1],
			StrokeWidth: 2.5,
			DotColor:    palette[1],
			DotWidth:    4,
		}, chart.YAxisSecondary, prices))
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderGraph(graph)
}

func anyPresent(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
