package report

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
)

// renderEmpty draws a titled figure with bare axes and a "No data" note, so an
// empty aggregate still produces its file.
func renderEmpty(title string, st Style) ([]byte, error) {
	w, h := st.pixels(14), st.pixels(7)
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, err
	}
	r.SetDPI(st.DPI)
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(colorWhite)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()

	top := st.pixels(0.7)
	box := chart.Box{Top: top, Left: st.pixels(0.6), Right: w - st.pixels(0.3), Bottom: h - st.pixels(0.6)}
	r.SetStrokeColor(colorBlack)
	r.SetStrokeWidth(1)
	r.MoveTo(box.Left, box.Top)
	r.LineTo(box.Left, box.Bottom)
	r.LineTo(box.Right, box.Bottom)
	r.Stroke()

	r.SetFont(font)
	r.SetFontColor(colorBlack)
	r.SetFontSize(14)
	tb := r.MeasureText(title)
	r.Text(title, (w-tb.Width())/2, (top+tb.Height())/2)

	const note = "No data"
	r.SetFontSize(10)
	nb := r.MeasureText(note)
	r.Text(note, (box.Left+box.Right-nb.Width())/2, (box.Top+box.Bottom+nb.Height())/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
