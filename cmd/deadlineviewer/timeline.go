package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Jtensminger/uocava-deadline-dataviz/cmd/deadlineviewer/uihelpers"
	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

// Legend labels double as the dot series names.
const (
	legendMailLabel     = "Recommended Mail Date"
	legendPostmarkLabel = "Ballot Postmark Deadline"
	legendReceiptLabel  = "Ballot Receipt Deadline"

	legendFontSize = 10.0
	dotRadius      = 6.0
	axisTickLen    = 6
)

// pointStyle returns a style that renders dots only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    dotRadius,
		DotColor:    col,
	}
}

// spanStyle returns a style for the mail-to-receipt connecting line.
func spanStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// buildTimelineSeries converts the visible records into go-chart series: one
// unnamed two-point line per record with both a mail date and a receipt
// deadline, then the three named dot series. Every mark category filters on
// null-presence independently, so a record contributes 0-3 dots and 0-1 lines.
func buildTimelineSeries(visible []deadlines.Record, band uihelpers.BandScale, stateIndex map[string]int, plotH float64, style StyleConfig) []chart.Series {
	series := []chart.Series{}
	// span lines first so dots draw on top of them
	for _, rec := range visible {
		if rec.RecommendedMailDate == nil || rec.BallotReceiptDeadline == nil {
			continue
		}
		v := plotH - band.Center(stateIndex[rec.State])
		series = append(series, chart.TimeSeries{
			XValues: []time.Time{*rec.RecommendedMailDate, *rec.BallotReceiptDeadline},
			YValues: []float64{v, v},
			Style:   spanStyle(hexColor(style.Colors.SpanLine)),
		})
	}
	add := func(name string, sel func(deadlines.Record) *time.Time, col drawing.Color) {
		var times []time.Time
		var ys []float64
		for _, rec := range visible {
			d := sel(rec)
			if d == nil {
				continue
			}
			times = append(times, *d)
			ys = append(ys, plotH-band.Center(stateIndex[rec.State]))
		}
		if len(times) == 0 {
			return
		}
		if len(times) == 1 {
			// pad to two X values so go-chart accepts the series
			times = append(times, times[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{Name: name, XValues: times, YValues: ys, Style: pointStyle(col)})
	}
	add(legendMailLabel, func(r deadlines.Record) *time.Time { return r.RecommendedMailDate }, hexColor(style.Colors.MailDate))
	add(legendPostmarkLabel, func(r deadlines.Record) *time.Time { return r.BallotPostmarkDeadline }, hexColor(style.Colors.PostmarkDeadline))
	add(legendReceiptLabel, func(r deadlines.Record) *time.Time { return r.BallotReceiptDeadline }, hexColor(style.Colors.ReceiptDeadline))
	return series
}

// buildTimelineChart lays out the deadline timeline for the visible subset.
// The time domain always comes from the full collection, so switching filters
// never rescales the x axis; only the band domain is recomputed. The plot
// keeps its full-dataset height, so fewer visible states get taller bands.
func buildTimelineChart(records, visible []deadlines.Record, style StyleConfig) (*chart.Chart, error) {
	start, end, err := deadlines.TimeDomain(records)
	if err != nil {
		return nil, err
	}
	states := deadlines.VisibleStates(visible)
	m := style.Margins()
	plotH := float64(len(records) * style.Layout.RowHeight)
	band := uihelpers.NewBandScale(len(states), plotH)
	stateIndex := make(map[string]int, len(states))
	for i, s := range states {
		stateIndex[s] = i
	}

	series := buildTimelineSeries(visible, band, stateIndex, plotH, style)
	if len(series) == 0 {
		// invisible anchor so an empty filter result still renders the frame
		series = append(series, chart.TimeSeries{
			XValues: []time.Time{start, end},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeWidth: 1, StrokeColor: drawing.ColorTransparent},
		})
	}

	w, h := uihelpers.ChartDimensions(len(records), style.Layout.RowHeight, m, style.Layout.ChartWidth)
	ch := &chart.Chart{
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: m.Top, Left: m.Left, Right: m.Right, Bottom: m.Bottom}},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: chart.TimeToFloat64(start), Max: chart.TimeToFloat64(end)},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: plotH},
		},
		Series: series,
	}
	attachLegend(ch, style)
	ch.Elements = append(ch.Elements, timelineAxes(timelineAxisData{
		ticks:  uihelpers.BuildDateTicks(start, end),
		start:  start,
		end:    end,
		states: states,
		band:   band,
		style:  style,
	}))
	return ch, nil
}

// legendSpec captures one legend entry as attached to a chart; tests assert
// the specs stay uniform and positioned purely by index.
type legendSpec struct {
	Label    string
	Color    drawing.Color
	FontSize float64
	XOffset  int
}

var lastLegendSpecs []legendSpec

// legendEntryOffset returns the x offset of legend entry i from the plot's
// left edge. Pure function of the index; the legend never depends on data.
func legendEntryOffset(i int) int {
	return i * 230
}

// attachLegend adds the fixed three-entry legend row above the plot.
func attachLegend(ch *chart.Chart, style StyleConfig) {
	entries := []struct {
		label string
		col   drawing.Color
	}{
		{legendMailLabel, hexColor(style.Colors.MailDate)},
		{legendPostmarkLabel, hexColor(style.Colors.PostmarkDeadline)},
		{legendReceiptLabel, hexColor(style.Colors.ReceiptDeadline)},
	}
	specs := make([]legendSpec, 0, len(entries))
	for i, e := range entries {
		specs = append(specs, legendSpec{Label: e.label, Color: e.col, FontSize: legendFontSize, XOffset: legendEntryOffset(i)})
	}
	lastLegendSpecs = append(lastLegendSpecs, specs...)
	ch.Elements = append(ch.Elements, timelineLegend(specs))
}

// timelineLegend draws colored dots with labels in the top margin.
func timelineLegend(specs []legendSpec) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		st := chart.Style{FontSize: legendFontSize, FontColor: chart.DefaultTextColor}.InheritFrom(defaults)
		st.GetTextOptions().WriteToRenderer(r)
		y := canvasBox.Top / 2
		for _, sp := range specs {
			x := canvasBox.Left + sp.XOffset
			r.SetFillColor(sp.Color)
			r.Circle(dotRadius, x, y)
			r.Fill()
			r.Text(sp.Label, x+12, y+4)
		}
	}
}

type timelineAxisData struct {
	ticks  []time.Time
	start  time.Time
	end    time.Time
	states []string
	band   uihelpers.BandScale
	style  StyleConfig
}

// timelineAxes renders both axes by hand: go-chart puts its primary value
// axis on the right and cannot right-anchor rotated tick labels, so the
// built-in axes stay hidden and this renderable draws into the margins.
func timelineAxes(d timelineAxisData) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		axisCol := hexColor(d.style.Colors.AxisLabel)
		highlightCol := hexColor(d.style.Colors.Highlight)

		textStyle := chart.Style{FontSize: 9, FontColor: axisCol}.InheritFrom(defaults)
		textStyle.GetTextOptions().WriteToRenderer(r)

		r.SetStrokeColor(axisCol)
		r.SetStrokeWidth(1.0)
		r.MoveTo(canvasBox.Left, canvasBox.Bottom)
		r.LineTo(canvasBox.Right, canvasBox.Bottom)
		r.Stroke()
		r.MoveTo(canvasBox.Left, canvasBox.Top)
		r.LineTo(canvasBox.Left, canvasBox.Bottom)
		r.Stroke()

		xr := &chart.ContinuousRange{
			Min:    chart.TimeToFloat64(d.start),
			Max:    chart.TimeToFloat64(d.end),
			Domain: canvasBox.Width(),
		}
		diag := math.Sqrt2 / 2
		rot := -45 * math.Pi / 180
		for _, tk := range d.ticks {
			x := canvasBox.Left + xr.Translate(chart.TimeToFloat64(tk))
			r.SetStrokeColor(axisCol)
			r.SetStrokeWidth(1.0)
			r.MoveTo(x, canvasBox.Bottom)
			r.LineTo(x, canvasBox.Bottom+axisTickLen)
			r.Stroke()

			// rotate -45 degrees with the label end anchored under the tick
			label := uihelpers.TickLabel(tk)
			tw := float64(r.MeasureText(label).Width())
			ox := x - int(tw*diag)
			oy := canvasBox.Bottom + axisTickLen + 8 + int(tw*diag)
			r.SetTextRotation(rot)
			r.Text(label, ox, oy)
			r.ClearTextRotation()
		}

		caption := "Ballot Deadlines"
		r.SetFontSize(12)
		cw := r.MeasureText(caption).Width()
		r.Text(caption, canvasBox.Left+canvasBox.Width()/2-cw/2, canvasBox.Bottom+d.style.Layout.MarginBottom-15)
		r.SetFontSize(9)

		for i, st := range d.states {
			y := canvasBox.Top + int(d.band.Center(i))
			r.SetStrokeColor(axisCol)
			r.SetStrokeWidth(1.0)
			r.MoveTo(canvasBox.Left-axisTickLen, y)
			r.LineTo(canvasBox.Left, y)
			r.Stroke()

			if d.style.IsHighlighted(st) {
				r.SetFontColor(highlightCol)
			} else {
				r.SetFontColor(axisCol)
			}
			tw := r.MeasureText(st).Width()
			r.Text(st, canvasBox.Left-axisTickLen-4-tw, y+4)
		}
	}
}

// renderTimelineChart rasterizes the timeline for the current filter state.
// Falls back to a blank canvas on any build or render failure so the UI
// still visibly updates.
func renderTimelineChart(state *uiState) image.Image {
	style := state.styleOrDefault()
	m := style.Margins()
	w, h := uihelpers.ChartDimensions(len(state.records), style.Layout.RowHeight, m, style.Layout.ChartWidth)
	if len(state.records) == 0 {
		return blank(w, h)
	}
	visible := filteredRecords(state)
	ch, err := buildTimelineChart(state.records, visible, style)
	if err != nil {
		fmt.Printf("[viewer] timeline build error: %v; showing blank fallback\n", err)
		return blank(w, h)
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		fmt.Printf("[viewer] timeline render error: %v; showing blank fallback\n", err)
		return blank(w, h)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		fmt.Printf("[viewer] timeline decode error: %v; showing blank fallback\n", err)
		return blank(w, h)
	}
	if state.showHints {
		return drawHint(img, "Hint: dots mark mail-by, postmark and receipt dates; lines span mail-by to receipt.")
	}
	return img
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	return img
}

// drawHint overlays a one-line hint along the bottom edge of a chart image.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	pad := 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
