package uihelpers

import (
	"math"
	"time"
)

// Fixed chart geometry. The timeline is data-sized, not viewport-sized: the
// plot is always DefaultChartWidth wide and rowCount*DefaultRowHeight tall.
const (
	DefaultChartWidth = 1030
	DefaultRowHeight  = 20
	BandPadding       = 0.2
)

// Margins is the fixed border around the plot area.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// DefaultMargins returns the timeline margins: top 60 (legend), right 20,
// bottom 80 (rotated date labels + caption), left 150 (state labels).
func DefaultMargins() Margins {
	return Margins{Top: 60, Right: 20, Bottom: 80, Left: 150}
}

// ChartDimensions returns the total image size for rowCount records: plot area
// plus margins. rowCount is clamped to 1 so an empty dataset still yields a
// drawable canvas.
func ChartDimensions(rowCount, rowHeight int, m Margins, chartWidth int) (int, int) {
	rows := rowCount
	if rows < 1 {
		rows = 1
	}
	w := chartWidth + m.Left + m.Right
	h := rows*rowHeight + m.Top + m.Bottom
	return w, h
}

// BandScale maps a band index to a vertical position inside the plot area,
// top origin. Every band owns Height/Count pixels of slot; the Padding
// fraction of each slot is gap, split evenly above and below the band.
type BandScale struct {
	Count   int
	Height  float64
	Padding float64
}

// NewBandScale builds a scale over count bands across height pixels with the
// standard padding fraction.
func NewBandScale(count int, height float64) BandScale {
	return BandScale{Count: count, Height: height, Padding: BandPadding}
}

// Step is the per-band slot height (band + gap).
func (b BandScale) Step() float64 {
	if b.Count <= 0 {
		return 0
	}
	return b.Height / float64(b.Count)
}

// Bandwidth is the visible band height inside a slot.
func (b BandScale) Bandwidth() float64 {
	return b.Step() * (1 - b.Padding)
}

// Top returns the upper edge of band i (gap above already applied).
func (b BandScale) Top(i int) float64 {
	return float64(i)*b.Step() + b.Step()*b.Padding/2
}

// Center returns the vertical midpoint of band i. Marks and labels anchor here.
func (b BandScale) Center(i int) float64 {
	return (float64(i) + 0.5) * b.Step()
}

// Index maps a y position (plot coordinates) back to the nearest band index,
// clamped to the valid range. Used for hover snapping.
func (b BandScale) Index(y float64) int {
	if b.Count <= 0 {
		return 0
	}
	step := b.Step()
	if step <= 0 {
		return 0
	}
	i := int(math.Floor(y / step))
	if i < 0 {
		i = 0
	}
	if i >= b.Count {
		i = b.Count - 1
	}
	return i
}

// BuildDateTicks returns tick positions every two days across [start,end],
// anchored at midnight of the start day. Returns nil when end precedes start.
func BuildDateTicks(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	anchor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	var out []time.Time
	for t := anchor; !t.After(end); t = t.AddDate(0, 0, 2) {
		out = append(out, t)
	}
	return out
}

// TickLabel formats a time tick as abbreviated month plus zero-padded day ("Nov 05").
func TickLabel(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatDeadline renders a nullable deadline for table cells and hover text.
func FormatDeadline(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("01/02/2006")
}

// ComputeContainRect fits an image of imgW x imgH into a view of viewW x viewH
// preserving aspect ratio (letterboxed, centered). Returns the drawn rect
// origin and size in view coordinates; zero rect when any dimension is invalid.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0
	}
	scale := viewW / imgW
	if s := viewH / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	x = (viewW - w) / 2
	y = (viewH - h) / 2
	return x, y, w, h
}
