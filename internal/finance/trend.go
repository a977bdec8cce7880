package finance

import "math"

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

func (l Line) At(x float64) float64 { return l.Slope*x + l.Intercept }

// Over evaluates the line at 0..n-1.
func (l Line) Over(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.At(float64(i))
	}
	return out
}

// FitLine is an ordinary least-squares straight-line fit over the pairs where
// both coordinates are present. It reports false with fewer than two such
// pairs or when every x is the same.
func FitLine(x, y []float64) (Line, bool) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var xs, ys []float64
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return Line{}, false
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return Line{}, false
	}
	slope := sxy / sxx
	return Line{Slope: slope, Intercept: my - slope*mx}, true
}

// FitIndexed fits values against their positions 0..n-1, skipping NaN values.
func FitIndexed(values []float64) (Line, bool) {
	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	return FitLine(x, values)
}
