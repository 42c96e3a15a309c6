package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// TestDefaultStyleConfig pins the shipped defaults: valid colors, the fixed
// layout, and the eleven battleground states.
func TestDefaultStyleConfig(t *testing.T) {
	cfg := DefaultStyleConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if len(cfg.HighlightStates) != 11 {
		t.Fatalf("highlight states = %d, want 11", len(cfg.HighlightStates))
	}
	for _, s := range cfg.HighlightStates {
		if !cfg.IsHighlighted(s) {
			t.Fatalf("%s not highlighted", s)
		}
	}
	for _, s := range []string{"Texas", "California", "Vermont", ""} {
		if cfg.IsHighlighted(s) {
			t.Fatalf("%q unexpectedly highlighted", s)
		}
	}
	if cfg.Layout.ChartWidth != 1030 || cfg.Layout.RowHeight != 20 {
		t.Fatalf("layout = %+v", cfg.Layout)
	}
	m := cfg.Margins()
	if m.Top != 60 || m.Right != 20 || m.Bottom != 80 || m.Left != 150 {
		t.Fatalf("margins = %+v", m)
	}
}

// TestLoadStyleConfigEmptyPath returns the defaults untouched.
func TestLoadStyleConfigEmptyPath(t *testing.T) {
	cfg, err := LoadStyleConfig("")
	if err != nil {
		t.Fatalf("LoadStyleConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultStyleConfig()) {
		t.Fatalf("empty path should yield defaults")
	}
}

// TestLoadStyleConfigPartialOverride: a file overrides only the keys it
// names; everything else keeps its default.
func TestLoadStyleConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	doc := "colors:\n  mail_date: \"#ff0000\"\nlayout:\n  row_height: 30\nhighlight_states: [\"Texas\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadStyleConfig(path)
	if err != nil {
		t.Fatalf("LoadStyleConfig: %v", err)
	}
	if cfg.Colors.MailDate != "#ff0000" {
		t.Fatalf("mail_date = %q", cfg.Colors.MailDate)
	}
	if cfg.Colors.ReceiptDeadline != DefaultStyleConfig().Colors.ReceiptDeadline {
		t.Fatalf("untouched color changed: %q", cfg.Colors.ReceiptDeadline)
	}
	if cfg.Layout.RowHeight != 30 {
		t.Fatalf("row_height = %d", cfg.Layout.RowHeight)
	}
	if cfg.Layout.ChartWidth != 1030 {
		t.Fatalf("chart_width = %d", cfg.Layout.ChartWidth)
	}
	if !cfg.IsHighlighted("Texas") || cfg.IsHighlighted("Wisconsin") {
		t.Fatalf("highlight override not applied: %v", cfg.HighlightStates)
	}
}

// TestLoadStyleConfigRejectsBadValues covers the validation paths.
func TestLoadStyleConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad color", "colors:\n  highlight: \"bogus!\"\n"},
		{"zero width", "layout:\n  chart_width: 0\n"},
		{"negative margin", "layout:\n  margin_left: -4\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "style.yaml")
		if err := os.WriteFile(path, []byte(tc.doc), 0o644); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		if _, err := LoadStyleConfig(path); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

// TestLoadStyleConfigMissingFile wraps the read error.
func TestLoadStyleConfigMissingFile(t *testing.T) {
	_, err := LoadStyleConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read style config") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    drawing.Color
		wantErr bool
	}{
		{in: "#1f77b4", want: drawing.Color{R: 31, G: 119, B: 180, A: 255}},
		{in: "#fff", want: drawing.Color{R: 255, G: 255, B: 255, A: 255}},
		{in: "d62728", want: drawing.Color{R: 214, G: 39, B: 40, A: 255}},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseHexColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestHexColorFallback(t *testing.T) {
	want := drawing.Color{R: 128, G: 128, B: 128, A: 255}
	if got := hexColor("nope"); got != want {
		t.Fatalf("fallback = %+v, want %+v", got, want)
	}
}
