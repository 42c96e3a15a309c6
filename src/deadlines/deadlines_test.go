package deadlines

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeCSV writes a deadline CSV with the standard header plus the given data
// rows and returns its path.
func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadlines.csv")
	lines := append([]string{"State,Recommended Mail Date,Ballot Postmark Deadline,Ballot Receipt Deadline,Return Methods"}, rows...)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestParseDeadlineDate(t *testing.T) {
	d, err := parseDeadlineDate("11/05/2024")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d == nil || !d.Equal(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}
	na, err := parseDeadlineDate("N/A")
	if err != nil {
		t.Fatalf("sentinel should not error: %v", err)
	}
	if na != nil {
		t.Fatalf("sentinel should parse to nil, got %v", na)
	}
	// lowercase sentinel is not the sentinel
	if _, err := parseDeadlineDate("n/a"); err == nil {
		t.Fatalf("expected error for lowercase sentinel")
	}
	if _, err := parseDeadlineDate("2024-11-05"); err == nil {
		t.Fatalf("expected error for ISO date")
	}
	if _, err := parseDeadlineDate(""); err == nil {
		t.Fatalf("expected error for empty cell")
	}
}

func TestLoadRecordsSortsByMailDateNilsLast(t *testing.T) {
	// Mail dates [nil, 10/01, nil, 09/15] must come back [09/15, 10/01, nil, nil]
	// with the nil-dated rows keeping their input order.
	path := writeCSV(t,
		"Alpha,N/A,11/05/2024,11/12/2024,Post",
		"Bravo,10/01/2024,N/A,11/05/2024,Post",
		"Charlie,N/A,11/04/2024,11/09/2024,Post",
		"Delta,09/15/2024,11/05/2024,11/15/2024,Post",
	)
	recs, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = r.State
	}
	want := []string{"Delta", "Bravo", "Alpha", "Charlie"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort order mismatch: got %v want %v", got, want)
		}
	}
	if recs[0].RecommendedMailDate == nil || !recs[0].RecommendedMailDate.Equal(date(t, "09/15/2024")) {
		t.Fatalf("first record mail date wrong: %v", recs[0].RecommendedMailDate)
	}
	if recs[2].RecommendedMailDate != nil || recs[3].RecommendedMailDate != nil {
		t.Fatalf("nil mail dates must sort last: %+v", recs)
	}
}

func TestLoadRecordsMalformedDateIsFatal(t *testing.T) {
	path := writeCSV(t,
		"Alpha,09/15/2024,11/05/2024,11/12/2024,Post",
		"Bravo,Oct 1 2024,N/A,11/05/2024,Post",
	)
	_, err := LoadRecords(path)
	if err == nil {
		t.Fatalf("expected fatal parse error for malformed date")
	}
	if !strings.Contains(err.Error(), "Bravo") {
		t.Fatalf("error should name the offending state: %v", err)
	}
}

func TestLoadRecordsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadlines.csv")
	content := "State,Recommended Mail Date,Ballot Receipt Deadline,Return Methods\nAlpha,09/15/2024,11/12/2024,Post\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, err := LoadRecords(path)
	if err == nil || !strings.Contains(err.Error(), "Ballot Postmark Deadline") {
		t.Fatalf("expected missing-column error, got %v", err)
	}
}

func TestLoadRecordsMissingFile(t *testing.T) {
	if _, err := LoadRecords(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadRecordsKeepsMethodsVerbatim(t *testing.T) {
	// Leading space and casing must survive; filtering depends on exact match.
	path := writeCSV(t,
		`Alpha,09/15/2024,N/A,11/12/2024," Post"`,
		"Bravo,09/16/2024,N/A,11/12/2024,post",
		`Charlie,09/17/2024,N/A,11/12/2024,"Post, Electronic"`,
	)
	recs, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if recs[0].ReturnMethods != " Post" {
		t.Fatalf("leading space lost: %q", recs[0].ReturnMethods)
	}
	if recs[1].ReturnMethods != "post" {
		t.Fatalf("case changed: %q", recs[1].ReturnMethods)
	}
	if recs[2].ReturnMethods != "Post, Electronic" {
		t.Fatalf("combined value mangled: %q", recs[2].ReturnMethods)
	}
}

func TestDateCount(t *testing.T) {
	d := date(t, "09/15/2024")
	cases := []struct {
		rec  Record
		want int
	}{
		{Record{}, 0},
		{Record{RecommendedMailDate: &d}, 1},
		{Record{RecommendedMailDate: &d, BallotReceiptDeadline: &d}, 2},
		{Record{RecommendedMailDate: &d, BallotPostmarkDeadline: &d, BallotReceiptDeadline: &d}, 3},
	}
	for i, c := range cases {
		if got := c.rec.DateCount(); got != c.want {
			t.Fatalf("case %d: got %d want %d", i, got, c.want)
		}
	}
}
