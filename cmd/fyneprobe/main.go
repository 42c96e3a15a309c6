package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/Jtensminger/uocava-deadline-dataviz/cmd/deadlineviewer/uihelpers"
)

// Minimal display probe: opens one window holding a timeline-sized canvas so
// driver or display-server problems show up without involving the full viewer.
func main() {
	fmt.Println("[fyneprobe] starting minimal Fyne app")
	a := app.New()
	w := a.NewWindow("Deadline Viewer Probe")
	cw, ch := uihelpers.ChartDimensions(24, uihelpers.DefaultRowHeight, uihelpers.DefaultMargins(), uihelpers.DefaultChartWidth)
	img := image.NewRGBA(image.Rect(0, 0, cw, ch))
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	w.SetContent(pic)
	w.Resize(fyne.NewSize(900, 500))
	go func() {
		time.Sleep(5 * time.Second)
		fmt.Println("[fyneprobe] closing window via fyne.Do")
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}
