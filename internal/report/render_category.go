package report

import (
	"math"

	"github.com/vicanso/go-charts/v2"

	"financialCharts/internal/finance"
)

// splitEvery asks go-charts for roughly one axis label per every points.
func splitEvery(n, every int) int {
	split := int(math.Ceil(float64(n) / float64(every)))
	if split < 1 {
		split = 1
	}
	return split
}

func renderDecades(in *Input, st Style) ([]byte, error) {
	decades := finance.DecadeReturns(in.daily())
	if len(decades) == 0 {
		return nil, ErrNoData
	}
	labels := make([]string, len(decades))
	values := make([]float64, len(decades))
	for i, d := range decades {
		labels[i] = d.Label
		values[i] = d.Value
	}

	seriesList := charts.NewSeriesListDataFromValues([][]float64{values}, charts.ChartTypeBar)
	seriesList[0].Name = "Total Return (%)"
	seriesList[0].Label = charts.SeriesLabel{Show: true, Formatter: "{c}%"}

	w, h := st.canvasSize(12, 7)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Apple Stock Performance by Decade: Strategic Era Analysis", "Total return (%) per decade"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{seriesList[0].Name}, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
		charts.WidthOptionFunc(w),
		charts.HeightOptionFunc(h),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

func renderRevenueTrend(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	revenue := finance.TotalRevenue(in.Quarters)
	periods := finance.Periods(in.Quarters)

	values := [][]float64{revenue}
	names := []string{"Quarterly Revenue"}
	if trend, ok := finance.FitIndexed(revenue); ok {
		values = append(values, trend.Over(len(revenue)))
		names = append(names, "Trend Line")
	}
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	w, h := st.canvasSize(14, 7)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Apple Total Revenue Trend: Growth Trajectory", "Total revenue ($ billions)"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: periods, BoundaryGap: charts.FalseFlag(), SplitNumber: splitEvery(len(periods), 3)}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
		charts.WidthOptionFunc(w),
		charts.HeightOptionFunc(h),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

func renderShareEvolution(in *Input, st Style) ([]byte, error) {
	if len(in.Quarters) == 0 {
		return nil, ErrNoData
	}
	shares := finance.ShareEvolution(in.summary(), in.Quarters)
	if len(shares) == 0 {
		return nil, ErrNoData
	}
	periods := finance.Periods(in.Quarters)
	values := make([][]float64, len(shares))
	names := make([]string, len(shares))
	for i, s := range shares {
		values[i] = s.Values
		names[i] = s.Category.Label
	}
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	yMin, yMax := 0.0, 70.0
	w, h := st.canvasSize(14, 7)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Product Portfolio Evolution: Revenue Share Trends", "Revenue share (%)"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: periods, BoundaryGap: charts.FalseFlag(), SplitNumber: splitEvery(len(periods), 3)}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 7}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
		charts.WidthOptionFunc(w),
		charts.HeightOptionFunc(h),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
