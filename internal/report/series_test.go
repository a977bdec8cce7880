package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

func TestStack(t *testing.T) {
	bottoms := stack([][]float64{
		{1, 2, 3},
		{10, math.NaN(), 30},
		{100, 200, 300},
	})
	require.Len(t, bottoms, 3)
	assert.Equal(t, []float64{0, 0, 0}, bottoms[0])
	assert.Equal(t, []float64{1, 2, 3}, bottoms[1])
	assert.Equal(t, []float64{11, 2, 33}, bottoms[2])
	assert.Nil(t, stack(nil))
}

func TestSegments(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   [][]int
	}{
		{"all present", []float64{1, 2, 3}, [][]int{{0, 1, 2}}},
		{"gap in middle", []float64{1, nan, 3, 4}, [][]int{{0}, {2, 3}}},
		{"leading and trailing gaps", []float64{nan, 2, 3, nan}, [][]int{{1, 2}}},
		{"all missing", []float64{nan, nan}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segments(tt.values))
		})
	}
}

func TestQuarterTicks(t *testing.T) {
	labels := []string{"2018-Q1", "2018-Q2", "2018-Q3", "2018-Q4", "2019-Q1"}
	ticks := quarterTicks(labels, 2)
	assert.Equal(t, []chart.Tick{
		{Value: -0.5},
		{Value: 0, Label: "2018-Q1"},
		{Value: 2, Label: "2018-Q3"},
		{Value: 4, Label: "2019-Q1"},
		{Value: 4.5},
	}, ticks)

	assert.Len(t, quarterTicks(labels, 3), 4)
	assert.Len(t, quarterTicks(labels, 0), len(labels)+2)
}

// go-chart takes the x range from the outermost ticks, so they must enclose
// every bar, including the last one when it is not a labelled position.
func TestQuarterTicksEncloseEveryBar(t *testing.T) {
	labels := []string{"2005", "2006", "2007", "2008", "2009", "2010", "2011", "2012"}
	ticks := quarterTicks(labels, 5)
	b := barSeries{Values: make([]float64, len(labels))}
	first, _ := b.GetValues(0)
	last, _ := b.GetValues(b.Len() - 1)
	assert.LessOrEqual(t, ticks[0].Value, first)
	assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, last)

	single := quarterTicks([]string{"2020-Q1"}, 2)
	assert.Greater(t, single[len(single)-1].Value, single[0].Value)
}

func TestValueRange(t *testing.T) {
	nan := math.NaN()
	assert.Nil(t, valueRange([]float64{1, 5}))
	assert.Nil(t, valueRange([]float64{3, 3}, 0), "anchor widens a flat series")

	flat := valueRange([]float64{42, nan, 42})
	require.NotNil(t, flat)
	assert.InDelta(t, 39.9, flat.GetMin(), 1e-9)
	assert.InDelta(t, 44.1, flat.GetMax(), 1e-9)

	zero := valueRange([]float64{0}, 0)
	require.NotNil(t, zero)
	assert.Equal(t, -1.0, zero.GetMin())
	assert.Equal(t, 1.0, zero.GetMax())

	none := valueRange([]float64{nan})
	require.NotNil(t, none)
	assert.Less(t, none.GetMin(), none.GetMax())
}

func TestTimeRange(t *testing.T) {
	day := time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, timeRange(nil))
	assert.Nil(t, timeRange([]time.Time{day, day.AddDate(0, 0, 1)}))

	r := timeRange([]time.Time{day})
	require.NotNil(t, r)
	assert.InDelta(t, chart.TimeToFloat64(day.AddDate(0, 0, -14)), r.GetMin(), 1e6)
	assert.InDelta(t, chart.TimeToFloat64(day.AddDate(0, 0, 14)), r.GetMax(), 1e6)
}

func TestStackTop(t *testing.T) {
	top := stackTop([][]float64{{1, 2}, {10, math.NaN()}})
	assert.Equal(t, []float64{11, 2}, top)
	assert.Nil(t, stackTop(nil))
}

func TestBarSeriesValuesCoverWholeBar(t *testing.T) {
	b := barSeries{Values: []float64{5, -3}, Width: 0.5}
	require.NoError(t, b.Validate())
	require.Equal(t, 4, b.Len())

	x, y := b.GetValues(0)
	assert.Equal(t, -0.25, x)
	assert.Equal(t, 0.0, y)
	x, y = b.GetValues(1)
	assert.Equal(t, 0.25, x)
	assert.Equal(t, 5.0, y)
	x, y = b.GetValues(3)
	assert.Equal(t, 1.25, x)
	assert.Equal(t, -3.0, y)
}

func TestBarSeriesStacksOnBottoms(t *testing.T) {
	b := barSeries{Values: []float64{2, math.NaN()}, Bottoms: []float64{10, 4}}
	_, top := b.GetValues(1)
	assert.Equal(t, 12.0, top)
	_, bottom := b.GetValues(2)
	assert.Equal(t, 4.0, bottom)
	_, top = b.GetValues(3)
	assert.Equal(t, 4.0, top, "missing value collapses to its bottom")
}

func TestBarSeriesValidate(t *testing.T) {
	assert.Error(t, barSeries{}.Validate())
	assert.Error(t, barSeries{Values: []float64{1}, Bottoms: []float64{1, 2}}.Validate())
}

func TestGapLineSkipsMissing(t *testing.T) {
	g := newGapLine("price", chart.Style{}, chart.YAxisSecondary, []float64{math.NaN(), 3, math.NaN(), 7})
	require.NoError(t, g.Validate())
	assert.Equal(t, 2, g.Len())
	x, y := g.GetValues(1)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 7.0, y)
	assert.Equal(t, chart.YAxisSecondary, g.GetYAxis())

	empty := newGapLine("none", chart.Style{}, chart.YAxisPrimary, []float64{math.NaN()})
	assert.Error(t, empty.Validate())
}

func TestSignificantYear(t *testing.T) {
	tests := []struct {
		year int
		ret  float64
		want bool
	}{
		{2007, 5, true},
		{2008, -56, true},
		{2020, 80, true},
		{1999, 150, true},
		{2002, -51, true},
		{2012, 32, false},
		{2015, -50, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, significantYear(tt.year, tt.ret), "year %d return %.0f", tt.year, tt.ret)
	}
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, 10, splitEvery(30, 3))
	assert.Equal(t, 16, splitEvery(31, 2))
	assert.Equal(t, 1, splitEvery(0, 3))
}

func TestSignColor(t *testing.T) {
	assert.Equal(t, palette[0], signColor(0.1))
	assert.Equal(t, palette[3], signColor(0))
	assert.Equal(t, palette[3], signColor(-4))
}
