package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

// RunScreenshotsMode renders the timeline once per filter mode and writes the
// results under outDir. It runs headlessly without creating a UI window.
func RunScreenshotsMode(filePath, outDir string, style StyleConfig) error {
	if filePath == "" {
		filePath = defaultDataFile
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	records, err := deadlines.LoadRecords(filePath)
	if err != nil {
		return err
	}
	st := &uiState{
		filePath: filePath,
		style:    style,
		records:  records,
		filter:   deadlines.NewFilterState(),
	}

	toRender := []struct {
		name string
		mode deadlines.FilterMode
	}{
		{"timeline_all.png", deadlines.FilterAll},
		{"timeline_post.png", deadlines.FilterPost},
		{"timeline_post_electronic.png", deadlines.FilterPostElectronic},
	}
	for _, item := range toRender {
		st.filter.Mode = item.mode
		img := renderTimelineChart(st)
		if img == nil {
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}

	// one vector copy of the unfiltered view
	st.filter.Mode = deadlines.FilterAll
	ch, err := buildTimelineChart(st.records, filteredRecords(st), st.styleOrDefault())
	if err != nil {
		return fmt.Errorf("build svg chart: %w", err)
	}
	var svg bytes.Buffer
	if err := ch.Render(chart.SVG, &svg); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	outPath := filepath.Join(outDir, "timeline_all.svg")
	if err := os.WriteFile(outPath, svg.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// renderFilterModeImage is a small seam for tests that probe rendered pixels.
func renderFilterModeImage(records []deadlines.Record, mode deadlines.FilterMode, style StyleConfig) image.Image {
	st := &uiState{style: style, records: records, filter: deadlines.FilterState{Mode: mode}}
	return renderTimelineChart(st)
}
