package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"

	"github.com/Jtensminger/uocava-deadline-dataviz/cmd/deadlineviewer/uihelpers"
)

// StyleColors holds mark and label colors as css hex codes.
type StyleColors struct {
	MailDate         string `yaml:"mail_date"`         // dot color for recommended mail dates
	PostmarkDeadline string `yaml:"postmark_deadline"` // dot color for postmark deadlines
	ReceiptDeadline  string `yaml:"receipt_deadline"`  // dot color for receipt deadlines
	SpanLine         string `yaml:"span_line"`         // connecting line between mail date and receipt
	Highlight        string `yaml:"highlight"`         // state label color for battleground states
	AxisLabel        string `yaml:"axis_label"`        // default axis text color
}

// StyleLayout holds the chart geometry in pixels.
type StyleLayout struct {
	ChartWidth   int `yaml:"chart_width"`
	RowHeight    int `yaml:"row_height"`
	MarginTop    int `yaml:"margin_top"`
	MarginRight  int `yaml:"margin_right"`
	MarginBottom int `yaml:"margin_bottom"`
	MarginLeft   int `yaml:"margin_left"`
}

// StyleConfig is the optional YAML style sheet for the timeline chart.
type StyleConfig struct {
	Colors          StyleColors `yaml:"colors"`
	Layout          StyleLayout `yaml:"layout"`
	HighlightStates []string    `yaml:"highlight_states"`
}

// DefaultStyleConfig returns the built-in style: the three category colors,
// standard geometry, and the battleground states drawn with the highlight color.
func DefaultStyleConfig() StyleConfig {
	m := uihelpers.DefaultMargins()
	return StyleConfig{
		Colors: StyleColors{
			MailDate:         "#1f77b4",
			PostmarkDeadline: "#ff7f0e",
			ReceiptDeadline:  "#2ca02c",
			SpanLine:         "#999999",
			Highlight:        "#d62728",
			AxisLabel:        "#333333",
		},
		Layout: StyleLayout{
			ChartWidth:   uihelpers.DefaultChartWidth,
			RowHeight:    uihelpers.DefaultRowHeight,
			MarginTop:    m.Top,
			MarginRight:  m.Right,
			MarginBottom: m.Bottom,
			MarginLeft:   m.Left,
		},
		HighlightStates: []string{
			"Pennsylvania", "Georgia", "North Carolina", "Wisconsin",
			"Michigan", "Arizona", "Nevada", "Nebraska",
			"New Hampshire", "Ohio", "Montana",
		},
	}
}

// LoadStyleConfig unmarshals path over the defaults, so a partial file
// overrides only the keys it names. An empty path returns the defaults.
func LoadStyleConfig(path string) (StyleConfig, error) {
	cfg := DefaultStyleConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleConfig{}, fmt.Errorf("read style config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StyleConfig{}, fmt.Errorf("parse style config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return StyleConfig{}, fmt.Errorf("style config %s: %w", path, err)
	}
	return cfg, nil
}

func (s StyleConfig) validate() error {
	colors := []struct{ key, val string }{
		{"colors.mail_date", s.Colors.MailDate},
		{"colors.postmark_deadline", s.Colors.PostmarkDeadline},
		{"colors.receipt_deadline", s.Colors.ReceiptDeadline},
		{"colors.span_line", s.Colors.SpanLine},
		{"colors.highlight", s.Colors.Highlight},
		{"colors.axis_label", s.Colors.AxisLabel},
	}
	for _, c := range colors {
		if _, err := parseHexColor(c.val); err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
	}
	if s.Layout.ChartWidth <= 0 || s.Layout.RowHeight <= 0 {
		return fmt.Errorf("layout sizes must be positive")
	}
	if s.Layout.MarginTop < 0 || s.Layout.MarginRight < 0 || s.Layout.MarginBottom < 0 || s.Layout.MarginLeft < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	return nil
}

// Margins converts the layout block for the chart helpers.
func (s StyleConfig) Margins() uihelpers.Margins {
	return uihelpers.Margins{
		Top:    s.Layout.MarginTop,
		Right:  s.Layout.MarginRight,
		Bottom: s.Layout.MarginBottom,
		Left:   s.Layout.MarginLeft,
	}
}

// IsHighlighted reports whether a state label uses the highlight color.
func (s StyleConfig) IsHighlighted(state string) bool {
	for _, h := range s.HighlightStates {
		if h == state {
			return true
		}
	}
	return false
}

// parseHexColor converts "#rrggbb" (or shorthand "#rgb") into a drawing color.
func parseHexColor(s string) (drawing.Color, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 {
		return drawing.Color{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8 & 0xff), B: uint8(v & 0xff), A: 255}, nil
}

// hexColor is parseHexColor with a neutral fallback for already validated input.
func hexColor(s string) drawing.Color {
	c, err := parseHexColor(s)
	if err != nil {
		return drawing.Color{R: 128, G: 128, B: 128, A: 255}
	}
	return c
}
