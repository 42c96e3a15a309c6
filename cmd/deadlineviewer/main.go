package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Jtensminger/uocava-deadline-dataviz/cmd/deadlineviewer/uihelpers"
	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

// defaultDataFile is loaded when no -file flag or saved path is present.
const defaultDataFile = "uocava_deadlines.csv"

type uiState struct {
	app       fyne.App
	window    fyne.Window
	filePath  string
	stylePath string

	style   StyleConfig
	records []deadlines.Record
	filter  deadlines.FilterState

	// widgets
	table             *widget.Table
	filterRadio       *widget.RadioGroup
	timelineImgCanvas *canvas.Image
	hoverOverlay      *rowHoverOverlay

	// chart hints toggle
	showHints bool
}

// styleOrDefault guards render paths against a zero-value state.
func (s *uiState) styleOrDefault() StyleConfig {
	if s == nil || s.style.Layout.ChartWidth <= 0 {
		return DefaultStyleConfig()
	}
	return s.style
}

// modeForFilterLabel maps a radio label to its filter mode.
func modeForFilterLabel(label string) deadlines.FilterMode {
	switch label {
	case "post":
		return deadlines.FilterPost
	case "post+electronic":
		return deadlines.FilterPostElectronic
	default:
		return deadlines.FilterAll
	}
}

func filterLabelForMode(mode deadlines.FilterMode) string {
	switch mode {
	case deadlines.FilterPost:
		return "post"
	case deadlines.FilterPostElectronic:
		return "post+electronic"
	default:
		return "all"
	}
}

// light theme wrapper; the timeline renders on a white canvas
type lightTheme struct{}

func (l *lightTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}
func (l *lightTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (l *lightTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (l *lightTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, styleFlag, screenshotsDir, logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to the deadlines CSV")
	flag.StringVar(&styleFlag, "style", "", "Path to an optional style YAML")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render timeline PNGs into this directory and exit")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if !deadlines.SetLogLevel(logLevel) {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", logLevel)
	}

	style, err := LoadStyleConfig(styleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if screenshotsDir != "" {
		if err := RunScreenshotsMode(fileFlag, screenshotsDir, style); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.uocava.deadlineviewer")
	a.Settings().SetTheme(&lightTheme{})
	w := a.NewWindow("UOCAVA Ballot Deadlines")
	w.Resize(fyne.NewSize(1240, 800))

	state := &uiState{
		app:       a,
		window:    w,
		filePath:  fileFlag,
		stylePath: styleFlag,
		style:     style,
		filter:    deadlines.NewFilterState(),
	}
	// Load showHints early so the checkbox reflects it on creation
	state.showHints = a.Preferences().BoolWithFallback("showHints", false)

	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))

	// filter controls; callback assigned after canvases exist
	filterRadio := widget.NewRadioGroup([]string{"post", "post+electronic", "all"}, nil)
	filterRadio.Horizontal = true
	filterRadio.Required = true
	filterRadio.Selected = filterLabelForMode(state.filter.Mode)
	state.filterRadio = filterRadio

	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	// States table (one row per record under the current filter)
	state.table = widget.NewTable(
		func() (int, int) {
			rows := len(filteredRecords(state)) + 1
			if rows < 1 {
				rows = 1
			}
			return rows, 5
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			rows := filteredRecords(state)
			if id.Row == 0 {
				switch id.Col {
				case 0:
					lbl.SetText("State")
				case 1:
					lbl.SetText("Mail By")
				case 2:
					lbl.SetText("Postmark By")
				case 3:
					lbl.SetText("Receive By")
				case 4:
					lbl.SetText("Return Methods")
				}
				return
			}
			rix := id.Row - 1
			if rix < 0 || rix >= len(rows) {
				lbl.SetText("")
				return
			}
			rec := rows[rix]
			switch id.Col {
			case 0:
				lbl.SetText(rec.State)
			case 1:
				lbl.SetText(uihelpers.FormatDeadline(rec.RecommendedMailDate))
			case 2:
				lbl.SetText(uihelpers.FormatDeadline(rec.BallotPostmarkDeadline))
			case 3:
				lbl.SetText(uihelpers.FormatDeadline(rec.BallotReceiptDeadline))
			case 4:
				lbl.SetText(rec.ReturnMethods)
			}
		},
	)
	state.table.SetColumnWidth(0, 160)
	state.table.SetColumnWidth(1, 110)
	state.table.SetColumnWidth(2, 110)
	state.table.SetColumnWidth(3, 110)
	state.table.SetColumnWidth(4, 200)

	// timeline canvas with the hover overlay stacked on top
	state.timelineImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.timelineImgCanvas.FillMode = canvas.ImageFillContain
	state.hoverOverlay = newRowHoverOverlay(state)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		widget.NewLabel("Return methods:"), filterRadio,
		hintsChk,
		widget.NewLabel("File:"), fileLabel,
	)

	timelineScroll := container.NewScroll(container.NewStack(state.timelineImgCanvas, state.hoverOverlay))
	timelineScroll.SetMinSize(fyne.NewSize(1000, 650))

	tabs := container.NewAppTabs(
		container.NewTabItem("Timeline", timelineScroll),
		container.NewTabItem("States", state.table),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		if state != nil && state.app != nil {
			state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
		}
	}
	content := container.NewBorder(top, nil, nil, nil, tabs)
	w.SetContent(content)
	w.SetOnClosed(func() { savePrefs(state) })

	// Now that canvases are ready, assign control callbacks
	filterRadio.OnChanged = func(v string) {
		state.filter.Mode = modeForFilterLabel(v)
		fmt.Printf("[viewer] filter changed to %q; visible records=%d\n", v, len(filteredRecords(state)))
		savePrefs(state)
		if state.table != nil {
			state.table.Refresh()
		}
		redrawTimeline(state)
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawTimeline(state)
	}

	buildMenus(state, fileLabel)
	loadPrefs(state, fileLabel, hintsChk, tabs)
	// Reflect the restored filter in the radio now that its callback exists
	filterRadio.SetSelected(filterLabelForMode(state.filter.Mode))

	// Always load once at startup (falls back to uocava_deadlines.csv if present)
	loadAll(state, fileLabel)

	w.ShowAndRun()
}

func filteredRecords(state *uiState) []deadlines.Record {
	if state == nil {
		return nil
	}
	return deadlines.Filter(state.records, state.filter)
}

// redrawTimeline re-renders the chart image and re-binds the hover overlay.
// The canvas min size tracks the rendered image, not the window, because the
// chart is data-sized; the surrounding scroll container absorbs the overflow.
func redrawTimeline(state *uiState) {
	img := renderTimelineChart(state)
	if img == nil {
		return
	}
	if state.timelineImgCanvas != nil {
		state.timelineImgCanvas.Image = img
		b := img.Bounds()
		state.timelineImgCanvas.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		state.timelineImgCanvas.Refresh()
	}
	if state.hoverOverlay != nil {
		state.hoverOverlay.Refresh()
	}
}

// menus and dialogs
func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.filePath = f
			fileLabel.SetText(truncatePath(state.filePath, 60))
			savePrefs(state)
			loadAll(state, fileLabel)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state, fileLabel) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Timeline PNG…", func() { exportChartPNG(state, state.timelineImgCanvas, "ballot_deadlines.png") }),
		fyne.NewMenuItem("Export Timeline SVG…", func() { exportChartSVG(state, "ballot_deadlines.svg") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	mainMenu := fyne.NewMainMenu(fileMenu, recentMenu)
	state.window.SetMainMenu(mainMenu)

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog
func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.filePath, 60))
		addRecentFile(state, state.filePath)
		savePrefs(state)
		loadAll(state, fileLabel)
	}, state.window)
	d.Show()
}

// loadAll reads the CSV and redraws. On a load error the previous dataset
// stays on screen untouched; there is no partial chart.
func loadAll(state *uiState, fileLabel *widget.Label) {
	if state.filePath == "" {
		if _, err := os.Stat(defaultDataFile); err == nil {
			state.filePath = defaultDataFile
			if fileLabel != nil {
				fileLabel.SetText(truncatePath(state.filePath, 60))
			}
		} else {
			return
		}
	}
	records, err := deadlines.LoadRecords(state.filePath)
	if err != nil {
		if state.window != nil {
			dialog.ShowError(err, state.window)
		} else {
			fmt.Printf("[viewer] load error: %v\n", err)
		}
		return
	}
	state.records = records
	counts := deadlines.CountByReturnMethod(records)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	fmt.Printf("[viewer] loaded %d records. Return method counts: %s\n", len(records), strings.Join(parts, ", "))
	if state.table != nil {
		state.table.Refresh()
	}
	redrawTimeline(state)
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// exportChartSVG re-renders the current chart through the vector backend.
func exportChartSVG(state *uiState, defaultName string) {
	if state == nil || state.window == nil || len(state.records) == 0 {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		ch, err := buildTimelineChart(state.records, filteredRecords(state), state.styleOrDefault())
		if err != nil {
			fmt.Printf("[viewer] svg export build error: %v\n", err)
			return
		}
		if err := ch.Render(chart.SVG, wc); err != nil {
			fmt.Printf("[viewer] svg export render error: %v\n", err)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("filterMode", string(state.filter.Mode))
	prefs.SetBool("showHints", state.showHints)
}

func loadPrefs(state *uiState, fileLabel *widget.Label, hints *widget.Check, tabs *container.AppTabs) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	// an explicit -file flag wins over the remembered path
	if state.filePath == "" {
		if f := prefs.StringWithFallback("lastFile", ""); f != "" {
			state.filePath = f
			if fileLabel != nil {
				fileLabel.SetText(truncatePath(state.filePath, 60))
			}
		}
	}
	if mode, ok := deadlines.ParseFilterMode(prefs.StringWithFallback("filterMode", string(state.filter.Mode))); ok {
		state.filter.Mode = mode
	}
	state.showHints = prefs.BoolWithFallback("showHints", state.showHints)
	if hints != nil {
		hints.SetChecked(state.showHints)
	}
	if tabs != nil {
		idx := prefs.IntWithFallback("selectedTabIndex", 0)
		if idx >= 0 && idx < len(tabs.Items) {
			tabs.SelectIndex(idx)
		}
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
