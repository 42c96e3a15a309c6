package main

import (
	"strings"
	"testing"

	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

// TestFilterLabelRoundTrip keeps the radio labels and stored modes in sync.
func TestFilterLabelRoundTrip(t *testing.T) {
	for _, mode := range []deadlines.FilterMode{deadlines.FilterAll, deadlines.FilterPost, deadlines.FilterPostElectronic} {
		if got := modeForFilterLabel(filterLabelForMode(mode)); got != mode {
			t.Fatalf("round trip %q -> %q", mode, got)
		}
	}
	if got := modeForFilterLabel("something else"); got != deadlines.FilterAll {
		t.Fatalf("unknown label = %q, want all", got)
	}
}

// TestStyleOrDefaultGuardsZeroState: render paths may run before any style is
// loaded; a zero or nil state must fall back to the defaults.
func TestStyleOrDefaultGuardsZeroState(t *testing.T) {
	var nilState *uiState
	if got := nilState.styleOrDefault(); got.Layout.ChartWidth != 1030 {
		t.Fatalf("nil state width = %d", got.Layout.ChartWidth)
	}
	if got := (&uiState{}).styleOrDefault(); got.Layout.RowHeight != 20 {
		t.Fatalf("zero state row height = %d", got.Layout.RowHeight)
	}
	custom := DefaultStyleConfig()
	custom.Layout.RowHeight = 28
	s := &uiState{style: custom}
	if got := s.styleOrDefault(); got.Layout.RowHeight != 28 {
		t.Fatalf("loaded style ignored: %d", got.Layout.RowHeight)
	}
}

// TestFilteredRecords applies the state's current mode.
func TestFilteredRecords(t *testing.T) {
	state := &uiState{records: fixtureRecords(t), filter: deadlines.NewFilterState()}
	if got := len(filteredRecords(state)); got != 4 {
		t.Fatalf("all mode = %d records", got)
	}
	state.filter.Mode = deadlines.FilterPostElectronic
	got := filteredRecords(state)
	if len(got) != 2 || got[0].State != "Bravo" || got[1].State != "Delta" {
		t.Fatalf("post+electronic subset = %+v", got)
	}
}

// TestRecordForState finds the hovered row's record by state name.
func TestRecordForState(t *testing.T) {
	records := fixtureRecords(t)
	rec, ok := recordForState(records, "Charlie")
	if !ok || rec.ReturnMethods != "Post" {
		t.Fatalf("lookup Charlie: ok=%v rec=%+v", ok, rec)
	}
	if _, ok := recordForState(records, "Zulu"); ok {
		t.Fatalf("unexpected match for absent state")
	}
}

// TestLabelForRecord formats the hover readout with N/A passthrough.
func TestLabelForRecord(t *testing.T) {
	records := fixtureRecords(t)
	lines := labelForRecord(records[1]) // Bravo has no postmark deadline
	want := []string{"Bravo", "Mail by: 10/03/2024", "Postmark by: N/A", "Receive by: 11/09/2024"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

// TestTruncatePath keeps the basename readable and shortens the directory.
func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short.csv", 40); got != "/short.csv" {
		t.Fatalf("short path altered: %q", got)
	}
	long := "/very/long/path/to/some/deeply/nested/deadlines.csv"
	got := truncatePath(long, 30)
	if len(got) > 30 {
		t.Fatalf("not truncated: %q (%d)", got, len(got))
	}
	if !strings.HasSuffix(got, "deadlines.csv") {
		t.Fatalf("basename lost: %q", got)
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("no ellipsis marker: %q", got)
	}
	if got := truncatePath(long, 10); got != "...deadlines.csv" {
		t.Fatalf("tight max = %q, want bare basename", got)
	}
}
