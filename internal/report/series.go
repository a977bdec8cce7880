package report

import (
	"errors"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barSeries draws one vertical bar per value, centred on x = 0..n-1. A bar
// spans bottom(i) to bottom(i)+value, which gives stacked bars when Bottoms
// holds the running total of the layers below. NaN values leave a gap.
type barSeries struct {
	Name   string
	Style  chart.Style // legend colour; FillColor is the default bar fill
	YAxis  chart.YAxisType
	Values []float64

	Bottoms  []float64
	Base     float64
	Width    float64 // in x units
	Edge     drawing.Color
	FillFunc func(v float64) drawing.Color

	Labels      []string
	LabelInside bool
	LabelColor  drawing.Color
	BaseLine    bool
}

var _ chart.Series = barSeries{}
var _ chart.ValuesProvider = barSeries{}

func (b barSeries) GetName() string           { return b.Name }
func (b barSeries) GetStyle() chart.Style     { return b.Style }
func (b barSeries) GetYAxis() chart.YAxisType { return b.YAxis }

func (b barSeries) Validate() error {
	if len(b.Values) == 0 {
		return errors.New("bar series: no values")
	}
	if b.Bottoms != nil && len(b.Bottoms) != len(b.Values) {
		return errors.New("bar series: bottoms and values differ in length")
	}
	return nil
}

func (b barSeries) width() float64 {
	if b.Width <= 0 {
		return 0.8
	}
	return b.Width
}

func (b barSeries) bottom(i int) float64 {
	if b.Bottoms != nil && !math.IsNaN(b.Bottoms[i]) {
		return b.Bottoms[i]
	}
	return b.Base
}

// Len and GetValues expose both corners of every bar so the chart ranges
// cover the whole bar, not only its top.
func (b barSeries) Len() int { return 2 * len(b.Values) }

func (b barSeries) GetValues(index int) (float64, float64) {
	i := index / 2
	half := b.width() / 2
	bottom := b.bottom(i)
	v := b.Values[i]
	if math.IsNaN(v) {
		return float64(i), bottom
	}
	if index%2 == 0 {
		return float64(i) - half, bottom
	}
	return float64(i) + half, bottom + v
}

func (b barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := b.Style.InheritFrom(defaults)
	half := b.width() / 2
	x := func(v float64) int { return canvasBox.Left + xrange.Translate(v) }
	y := func(v float64) int { return canvasBox.Bottom - yrange.Translate(v) }

	if b.BaseLine {
		r.SetStrokeColor(colorBlack)
		r.SetStrokeWidth(1)
		r.MoveTo(canvasBox.Left, y(b.Base))
		r.LineTo(canvasBox.Right, y(b.Base))
		r.Stroke()
	}

	for i, v := range b.Values {
		if math.IsNaN(v) {
			continue
		}
		bottom := b.bottom(i)
		x0, x1 := x(float64(i)-half), x(float64(i)+half)
		y0, y1 := y(bottom), y(bottom+v)

		fill := style.FillColor
		if b.FillFunc != nil {
			fill = b.FillFunc(v)
		}
		r.SetFillColor(fill)
		r.SetStrokeColor(b.Edge)
		r.SetStrokeWidth(0.5)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.FillStroke()

		if i < len(b.Labels) && b.Labels[i] != "" {
			b.drawLabel(r, style, b.Labels[i], (x0+x1)/2, y0, y1, v)
		}
	}
}

func (b barSeries) drawLabel(r chart.Renderer, style chart.Style, text string, cx, y0, y1 int, v float64) {
	font := style.Font
	if font == nil {
		f, err := chart.GetDefaultFont()
		if err != nil {
			return
		}
		font = f
	}
	r.SetFont(font)
	r.SetFontSize(8)
	color := b.LabelColor
	if color.IsZero() {
		color = colorBlack
	}
	r.SetFontColor(color)

	box := r.MeasureText(text)
	tx := cx - box.Width()/2
	var ty int
	switch {
	case b.LabelInside:
		ty = (y0+y1)/2 + box.Height()/2
	case v >= 0:
		ty = y1 - box.Height()/2
	default:
		ty = y1 + box.Height()*3/2
	}
	r.Text(text, tx, ty)
}

// stack turns layers of values into the running bottoms each layer sits on.
// NaN counts as zero.
func stack(layers [][]float64) [][]float64 {
	if len(layers) == 0 {
		return nil
	}
	bottoms := make([][]float64, len(layers))
	running := make([]float64, len(layers[0]))
	for k, layer := range layers {
		bottoms[k] = append([]float64(nil), running...)
		for i, v := range layer {
			if i < len(running) && !math.IsNaN(v) {
				running[i] += v
			}
		}
	}
	return bottoms
}

// segments splits positions 0..n-1 into runs of consecutive present values.
func segments(values []float64) [][]int {
	var out [][]int
	var run []int
	for i, v := range values {
		if math.IsNaN(v) {
			if len(run) > 0 {
				out = append(out, run)
				run = nil
			}
			continue
		}
		run = append(run, i)
	}
	if len(run) > 0 {
		out = append(out, run)
	}
	return out
}

// quarterTicks labels every nth position on an index axis. go-chart takes the
// x range from the outermost ticks, so unlabeled ticks half a slot beyond
// either end keep edge bars whole and give a single position some width.
func quarterTicks(labels []string, every int) []chart.Tick {
	if every < 1 {
		every = 1
	}
	ticks := make([]chart.Tick, 0, len(labels)/every+3)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i := 0; i < len(labels); i += every {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return append(ticks, chart.Tick{Value: float64(len(labels)) - 0.5})
}

// valueRange pins a y axis whose values, together with anchors, span nothing:
// go-chart cannot scale a zero-width axis. Otherwise it returns nil and the
// axis ranges itself.
func valueRange(values []float64, anchors ...float64) chart.Range {
	lo, hi := bounds(values)
	for _, a := range anchors {
		lo, hi = min(lo, a), max(hi, a)
	}
	switch {
	case math.IsInf(lo, 1):
		return &chart.ContinuousRange{Min: 0, Max: 1}
	case hi > lo:
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.05, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// timeRange widens a time axis holding a single instant by two weeks either side.
func timeRange(ts []time.Time) chart.Range {
	if len(ts) == 0 || !ts[0].Equal(ts[len(ts)-1]) {
		return nil
	}
	mid := chart.TimeToFloat64(ts[0])
	pad := float64(14 * 24 * time.Hour)
	return &chart.ContinuousRange{Min: mid - pad, Max: mid + pad}
}

// stackTop is the height of each stacked bar.
func stackTop(layers [][]float64) []float64 {
	if len(layers) == 0 {
		return nil
	}
	last := len(layers) - 1
	bottoms := stack(layers)
	top := make([]float64, len(bottoms[last]))
	for i := range top {
		top[i] = bottoms[last][i]
		if v := layers[last][i]; !math.IsNaN(v) {
			top[i] += v
		}
	}
	return top
}

func indexes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// gapLineSeries is a line over x = 0..n-1 that breaks wherever a value is
// missing. Isolated points still get a marker.
type gapLineSeries struct {
	Name   string
	Style  chart.Style
	YAxis  chart.YAxisType
	Values []float64

	present []int
}

func newGapLine(name string, style chart.Style, axis chart.YAxisType, values []float64) gapLineSeries {
	g := gapLineSeries{Name: name, Style: style, YAxis: axis, Values: values}
	for i, v := range values {
		if !math.IsNaN(v) {
			g.present = append(g.present, i)
		}
	}
	return g
}

var _ chart.Series = gapLineSeries{}
var _ chart.ValuesProvider = gapLineSeries{}

func (g gapLineSeries) GetName() string           { return g.Name }
func (g gapLineSeries) GetStyle() chart.Style     { return g.Style }
func (g gapLineSeries) GetYAxis() chart.YAxisType { return g.YAxis }

func (g gapLineSeries) Validate() error {
	if len(g.present) == 0 {
		return errors.New("gap line series: no values")
	}
	return nil
}

func (g gapLineSeries) Len() int { return len(g.present) }

func (g gapLineSeries) GetValues(index int) (float64, float64) {
	i := g.present[index]
	return float64(i), g.Values[i]
}

func (g gapLineSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := g.Style.InheritFrom(defaults)
	x := func(i int) int { return canvasBox.Left + xrange.Translate(float64(i)) }
	y := func(i int) int { return canvasBox.Bottom - yrange.Translate(g.Values[i]) }

	for _, run := range segments(g.Values) {
		if len(run) < 2 {
			continue
		}
		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		r.SetStrokeDashArray(style.StrokeDashArray)
		r.MoveTo(x(run[0]), y(run[0]))
		for _, i := range run[1:] {
			r.LineTo(x(i), y(i))
		}
		r.Stroke()
	}

	if style.DotWidth <= 0 {
		return
	}
	r.SetStrokeDashArray(nil)
	r.SetFillColor(style.DotColor)
	r.SetStrokeColor(style.DotColor)
	r.SetStrokeWidth(1)
	for _, i := range g.present {
		r.Circle(style.DotWidth, x(i), y(i))
		r.FillStroke()
	}
}
