package main

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Jtensminger/uocava-deadline-dataviz/cmd/deadlineviewer/uihelpers"
	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

// rowHoverOverlay sits on top of the timeline image, snaps a horizontal line
// to the band under the cursor and shows that state's deadlines near it.
type rowHoverOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
}

func newRowHoverOverlay(state *uiState) *rowHoverOverlay {
	o := &rowHoverOverlay{state: state}
	o.ExtendBaseWidget(o)
	return o
}

func (o *rowHoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	line := canvas.NewLine(color.RGBA{R: 140, G: 140, B: 140, A: 220})
	line.StrokeWidth = 1.0
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	label.Segments = []widget.RichTextSegment{}
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	objs := []fyne.CanvasObject{bg, line, labelBG, label}
	return &rowHoverRenderer{o: o, bg: bg, line: line, labelBG: labelBG, label: label, objs: objs}
}

type rowHoverRenderer struct {
	o       *rowHoverOverlay
	bg      *canvas.Rectangle
	line    *canvas.Line
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *rowHoverRenderer) Destroy() {}

func (r *rowHoverRenderer) park() {
	r.line.Position1 = fyne.NewPos(-10, -10)
	r.line.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *rowHoverRenderer) Layout(size fyne.Size) {
	if r.o == nil {
		return
	}
	if r.bg != nil {
		r.bg.Resize(size)
		r.bg.Move(fyne.NewPos(0, 0))
	}
	if !r.o.hovering || r.o.state == nil {
		r.park()
		return
	}
	x := r.o.mouse.X
	y := r.o.mouse.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > size.Width {
		x = size.Width
	}
	if y > size.Height {
		y = size.Height
	}
	// Map through the drawn image rect (ImageFillContain aware)
	var imgW, imgH float32
	if img := r.o.state.timelineImgCanvas; img != nil && img.Image != nil {
		b := img.Image.Bounds()
		imgW = float32(b.Dx())
		imgH = float32(b.Dy())
	}
	drawX, drawY, drawW, drawH := uihelpers.ComputeContainRect(imgW, imgH, size.Width, size.Height)
	if drawW <= 0 || drawH <= 0 {
		r.park()
		return
	}
	scale := drawW / imgW
	if !(x >= drawX && x <= drawX+drawW && y >= drawY && y <= drawY+drawH) {
		r.park()
		return
	}

	visible := filteredRecords(r.o.state)
	states := deadlines.VisibleStates(visible)
	if len(states) == 0 {
		r.park()
		return
	}
	style := r.o.state.styleOrDefault()
	m := style.Margins()
	plotH := float64(len(r.o.state.records) * style.Layout.RowHeight)
	band := uihelpers.NewBandScale(len(states), plotH)

	// cursor -> image pixels -> plot space -> band index
	imgY := float64((y - drawY) / scale)
	idx := band.Index(imgY - float64(m.Top))
	centerView := drawY + float32(float64(m.Top)+band.Center(idx))*scale

	r.line.Position1 = fyne.NewPos(drawX, centerView)
	r.line.Position2 = fyne.NewPos(drawX+drawW, centerView)

	if rec, ok := recordForState(visible, states[idx]); ok {
		r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: strings.Join(labelForRecord(rec), "\n")}}
	} else {
		r.label.Segments = nil
	}
	r.label.Refresh()

	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	if len(r.label.Segments) == 0 {
		r.labelBG.Resize(fyne.NewSize(0, 0))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
	} else {
		r.labelBG.Resize(fyne.NewSize(bgW, bgH))
		r.labelBG.Move(fyne.NewPos(tx, ty))
		r.label.Move(fyne.NewPos(tx+pad, ty+pad))
	}
}

func (r *rowHoverRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *rowHoverRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *rowHoverRenderer) Refresh() {
	r.Layout(r.o.Size())
	if r.bg != nil {
		r.bg.Refresh()
	}
	// Track the theme on each refresh
	r.line.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.line.StrokeWidth = 1
	r.line.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (o *rowHoverOverlay) MouseMoved(ev *desktop.MouseEvent) {
	o.hovering = true
	o.mouse = ev.Position
	o.Refresh()
}
func (o *rowHoverOverlay) MouseIn(ev *desktop.MouseEvent) { o.hovering = true; o.Refresh() }
func (o *rowHoverOverlay) MouseOut()                      { o.hovering = false; o.Refresh() }

// recordForState returns the first visible record for a state label.
func recordForState(records []deadlines.Record, state string) (deadlines.Record, bool) {
	for _, r := range records {
		if r.State == state {
			return r, true
		}
	}
	return deadlines.Record{}, false
}

// labelForRecord builds the hover readout lines for one record.
func labelForRecord(rec deadlines.Record) []string {
	return []string{
		rec.State,
		"Mail by: " + uihelpers.FormatDeadline(rec.RecommendedMailDate),
		"Postmark by: " + uihelpers.FormatDeadline(rec.BallotPostmarkDeadline),
		"Receive by: " + uihelpers.FormatDeadline(rec.BallotReceiptDeadline),
	}
}

// Assert that rowHoverOverlay implements desktop.Hoverable
var _ desktop.Hoverable = (*rowHoverOverlay)(nil)
