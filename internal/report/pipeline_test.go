package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"financialCharts/internal/dataset"
	"financialCharts/internal/finance"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// sampleTables builds eight years of daily prices and twelve fiscal quarters
// with enough variation for every chart to have a non-degenerate range.
func sampleTables() *dataset.Tables {
	var daily []dataset.DailyRecord
	start := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)
	for i, d := 0, start; !d.After(end); i, d = i+1, d.AddDate(0, 0, 1) {
		x := float64(i)
		daily = append(daily, dataset.DailyRecord{
			Date:          d,
			Close:         50 + 10*math.Sin(x/50) + 0.05*x,
			Year:          d.Year(),
			Return1D:      0.0005 + 0.001*math.Sin(x/7),
			Volatility20D: 0.2 + 0.05*math.Sin(x/30),
		})
	}

	var rows []dataset.QuarterlySummary
	var master []dataset.QuarterlyMaster
	for i := 0; i < 12; i++ {
		year, q := 2018+i/4, fmt.Sprintf("Q%d", i%4+1)
		total := 60e9 + 5e9*float64(i) + 3e9*math.Sin(float64(i))
		rows = append(rows, dataset.QuarterlySummary{
			FiscalYear:            year,
			FiscalQuarter:         q,
			RevenueTotal:          total,
			RevenueIPhone:         0.5 * total,
			RevenueServices:       0.2 * total,
			RevenueMac:            0.1 * total,
			RevenueIPad:           0.1 * total,
			RevenueWearablesOther: 0.1 * total,
			ShareIPhone:           0.5,
			ShareServices:         0.2 + 0.01*float64(i),
			ShareMac:              0.1,
			ShareIPad:             0.1,
			ShareWearablesOther:   0.1,
		})
		if i != 5 {
			master = append(master, dataset.QuarterlyMaster{FiscalYear: year, FiscalQuarter: q, ClosePrice: 30 + 2*float64(i)})
		}
	}
	summary := dataset.NewSummaryTable(rows,
		dataset.ColShareIPhone, dataset.ColShareServices, dataset.ColShareMac,
		dataset.ColShareIPad, dataset.ColShareWearablesOther)
	return &dataset.Tables{Daily: daily, Summary: summary, Master: master}
}

func sampleInput() *Input {
	return NewInput(sampleTables(), time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), 2010)
}

func TestCatalogue(t *testing.T) {
	charts := Catalogue()
	require.Len(t, charts, 12)
	seen := map[string]bool{}
	for i, c := range charts {
		assert.Equal(t, i+1, c.Ordinal)
		assert.NotNil(t, c.render, c.Slug)
		assert.False(t, seen[c.FileName()], "duplicate %s", c.FileName())
		seen[c.FileName()] = true
	}
	assert.Equal(t, "01_longterm_stock_performance.png", charts[0].FileName())
	assert.Equal(t, "12_risk_adjusted_returns.png", charts[11].FileName())
}

func TestNewInputSortsQuarters(t *testing.T) {
	tables := sampleTables()
	rows := tables.Summary.Rows
	rows[0], rows[11] = rows[11], rows[0]
	rows[3].RevenueTotal = math.NaN()

	in := NewInput(tables, time.Time{}, 2010)
	require.Len(t, in.Quarters, 11)
	assert.Equal(t, "2018-Q1", in.Quarters[0].Period())
	assert.Equal(t, "2020-Q4", in.Quarters[10].Period())
}

func TestGeneratorWritesEveryChart(t *testing.T) {
	dir := t.TempDir()
	gen := &Generator{OutputDir: dir, Style: Style{DPI: 100}}

	results, err := gen.Run(context.Background(), sampleInput())
	require.NoError(t, err)
	require.Len(t, results, 12)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 12)

	for i, r := range results {
		assert.Equal(t, i+1, r.Chart.Ordinal, "results keep catalogue order")
		assert.False(t, r.Empty, r.Chart.Slug)
		data, err := os.ReadFile(r.Path)
		require.NoError(t, err, r.Path)
		assert.True(t, bytes.HasPrefix(data, pngSignature), "%s is not a PNG", r.Path)
		assert.Equal(t, len(data), r.Bytes)
	}
}

func TestGeneratorIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	gen := &Generator{OutputDir: dir, Style: Style{DPI: 72}}
	in := sampleInput()

	first, err := gen.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := gen.Run(context.Background(), in)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 12, "second run overwrites in place")
}

func TestGeneratorKeepsOrderWithWorkers(t *testing.T) {
	var list []Chart
	for i := 1; i <= 8; i++ {
		i := i
		list = append(list, Chart{Ordinal: i, Slug: fmt.Sprintf("stub%d", i), render: func(*Input, Style) ([]byte, error) {
			if i%3 == 0 {
				return nil, ErrNoData
			}
			return pngSignature, nil
		}})
	}
	gen := &Generator{OutputDir: t.TempDir(), Workers: 4, Charts: list}

	results, err := gen.Run(context.Background(), sampleInput())
	require.NoError(t, err)
	require.Len(t, results, len(list))
	for i, r := range results {
		assert.Equal(t, i+1, r.Chart.Ordinal)
		assert.Equal(t, (i+1)%3 == 0, r.Empty)
		assert.FileExists(t, r.Path)
	}
}

func TestGeneratorWritesEmptyAxesForEmptyAggregates(t *testing.T) {
	dir := t.TempDir()
	empty := &dataset.Tables{Summary: dataset.NewSummaryTable(nil)}
	gen := &Generator{OutputDir: dir, Style: Style{DPI: 72}}

	results, err := gen.Run(context.Background(), NewInput(empty, time.Time{}, 2010))
	require.NoError(t, err)
	require.Len(t, results, 12)
	for _, r := range results {
		assert.True(t, r.Empty, r.Chart.Slug)
		data, err := os.ReadFile(r.Path)
		require.NoError(t, err, r.Path)
		assert.True(t, bytes.HasPrefix(data, pngSignature), "%s is not a PNG", r.Path)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestGeneratorRequiresOutputDir(t *testing.T) {
	gen := &Generator{OutputDir: filepath.Join(t.TempDir(), "missing"), Style: Style{DPI: 72}}
	_, err := gen.Run(context.Background(), sampleInput())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGeneratorEmptyShareChartWithoutShareColumns(t *testing.T) {
	tables := sampleTables()
	tables.Summary = dataset.NewSummaryTable(tables.Summary.Rows)
	gen := &Generator{
		OutputDir: t.TempDir(),
		Style:     Style{DPI: 72},
		Charts:    []Chart{Catalogue()[4]},
	}

	results, err := gen.Run(context.Background(), NewInput(tables, time.Time{}, 2010))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Empty)
	assert.FileExists(t, results[0].Path)
}

func TestGeneratorStopsOnRenderError(t *testing.T) {
	boom := errors.New("boom")
	gen := &Generator{
		OutputDir: t.TempDir(),
		Charts: []Chart{{Ordinal: 1, Slug: "broken", render: func(*Input, Style) ([]byte, error) {
			return nil, boom
		}}},
	}
	_, err := gen.Run(context.Background(), sampleInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chart 1 (broken)")
}

func TestGeneratorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &Generator{OutputDir: t.TempDir()}
	_, err := gen.Run(ctx, sampleInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBanner(t *testing.T) {
	charts := Catalogue()
	results := make([]Result, len(charts))
	for i, c := range charts {
		results[i] = Result{Chart: c, Empty: i == 4}
	}
	var buf bytes.Buffer
	Banner(&buf, "charts", results)
	out := buf.String()

	assert.Contains(t, out, "CHART GENERATION COMPLETE")
	assert.Contains(t, out, "Generated 12 business-focused charts in the 'charts/' directory")
	assert.Contains(t, out, "  1. Long-term stock performance (45+ years)")
	assert.Contains(t, out, " 12. Risk-adjusted performance metrics")
	assert.Contains(t, out, "Product portfolio market share evolution (no data)")
	assert.Equal(t, 12, strings.Count(out, ". "))
}

// Degenerate but valid inputs must render without go-chart range errors.
func TestGeneratorHandlesDegenerateSeries(t *testing.T) {
	day := time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)
	quarter := dataset.QuarterlySummary{
		FiscalYear: 2020, FiscalQuarter: "Q1",
		RevenueTotal: 60e9, RevenueIPhone: 30e9, RevenueServices: 12e9,
		RevenueMac: 6e9, RevenueIPad: 6e9, RevenueWearablesOther: 6e9,
		ShareIPhone: 0.5, ShareServices: 0.2, ShareMac: 0.1, ShareIPad: 0.1, ShareWearablesOther: 0.1,
	}
	second := quarter
	second.FiscalQuarter = "Q2"
	second.RevenueTotal = 66e9

	tests := []struct {
		name     string
		daily    []dataset.DailyRecord
		quarters []dataset.QuarterlySummary
	}{
		{"single daily row", []dataset.DailyRecord{{Date: day, Close: 80, Year: 2012, Return1D: 0.01, Volatility20D: 0.3}}, nil},
		{"single quarter", nil, []dataset.QuarterlySummary{quarter}},
		{"two quarters", nil, []dataset.QuarterlySummary{quarter, second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := &dataset.Tables{
				Daily:   tt.daily,
				Summary: dataset.NewSummaryTable(tt.quarters, dataset.ColShareServices),
				Master:  []dataset.QuarterlyMaster{{FiscalYear: 2020, FiscalQuarter: "Q1", ClosePrice: 70}},
			}
			gen := &Generator{OutputDir: t.TempDir(), Style: Style{DPI: 72}}
			results, err := gen.Run(context.Background(), NewInput(tables, time.Time{}, 2010))
			require.NoError(t, err)
			require.Len(t, results, 12)
			for _, r := range results {
				assert.FileExists(t, r.Path)
			}
		})
	}
}

func TestLongTermRendersFlatPrices(t *testing.T) {
	tables := sampleTables()
	for i := range tables.Daily {
		tables.Daily[i].Close = 42
	}
	in := NewInput(tables, time.Time{}, 2010)
	in.Milestones = []finance.Milestone{{Date: tables.Daily[10].Date, Label: "event"}}

	done := make(chan error, 1)
	go func() {
		_, err := renderLongTerm(in, Style{DPI: 72})
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("flat price chart did not finish rendering")
	}
}

// Only the final year loses money, so its bar is the one red region.
func TestAnnualReturnsDrawsLastBar(t *testing.T) {
	tables := sampleTables()
	for i, r := range tables.Daily {
		if r.Year == 2012 {
			tables.Daily[i].Close = 200 - float64(r.Date.YearDay())/4
		} else {
			tables.Daily[i].Close = 20 + float64(i)/20
		}
	}

	img, err := renderAnnualReturns(NewInput(tables, time.Time{}, 2010), Style{DPI: 72})
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)

	b := decoded.Bounds()
	red, right := 0, 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := decoded.At(x, y).RGBA()
			if r>>8 > 180 && g>>8 < 120 && bl>>8 < 120 {
				red++
				if x > b.Dx()*3/4 {
					right++
				}
			}
		}
	}
	assert.Positive(t, red, "negative final year is drawn")
	assert.Equal(t, red, right, "final bar sits at the right edge")
}

func TestServicesShareKeepsGaps(t *testing.T) {
	tables := sampleTables()
	tables.Summary.Rows[4].ShareServices = math.NaN()
	in := NewInput(tables, time.Time{}, 2010)

	graph := servicesGraph(in, Style{DPI: 72})
	require.Len(t, graph.Series, 2)
	line, ok := graph.Series[1].(gapLineSeries)
	require.True(t, ok, "share is drawn as a gap line")
	assert.Equal(t, chart.YAxisSecondary, line.GetYAxis())
	assert.True(t, math.IsNaN(line.Values[4]), "missing share is not plotted as zero")
	assert.Equal(t, len(in.Quarters)-1, line.Len())

	_, err := renderServices(in, Style{DPI: 72})
	assert.NoError(t, err)
}
