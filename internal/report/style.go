package report

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
}

var (
	colorBlack = drawing.ColorFromHex("000000")
	colorWhite = drawing.ColorFromHex("ffffff")
	colorRed   = drawing.ColorFromHex("ff0000")
)

// Style fixes the output resolution. Figure sizes are given in inches.
type Style struct {
	DPI float64
}

func DefaultStyle() Style { return Style{DPI: 300} }

func (s Style) pixels(inches float64) int {
	return int(math.Round(inches * s.DPI))
}

// newGraph returns a go-chart canvas of w x h inches with room for the title.
func (s Style) newGraph(title string, w, h float64) chart.Chart {
	return chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      s.pixels(w),
		Height:     s.pixels(h),
		DPI:        s.DPI,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    s.pixels(0.7),
				Left:   s.pixels(0.3),
				Right:  s.pixels(0.3),
				Bottom: s.pixels(0.3),
			},
		},
	}
}

// canvasSize is the go-charts canvas in pixels. go-charts sizes text in
// pixels rather than points, so it renders at half the print size.
func (s Style) canvasSize(w, h float64) (int, int) {
	return s.pixels(w) / 2, s.pixels(h) / 2
}

// signColor is blue for gains and red for losses.
func signColor(v float64) drawing.Color {
	if v > 0 {
		return palette[0]
	}
	return palette[3]
}

func dollarFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0f", f)
	}
	return ""
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}

func decimalFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return ""
}
