package deadlines

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"
)

// DateLayout is the only accepted cell format for deadline dates (MM/DD/YYYY).
const DateLayout = "01/02/2006"

// NotApplicable is the source sentinel meaning a state has no such deadline.
const NotApplicable = "N/A"

// DomainLeadDays is subtracted from the earliest recommended mail date so the
// first marks don't sit on the chart's left edge.
const DomainLeadDays = 10

// Required header columns of the source CSV, matched exactly.
const (
	ColState    = "State"
	ColMailDate = "Recommended Mail Date"
	ColPostmark = "Ballot Postmark Deadline"
	ColReceipt  = "Ballot Receipt Deadline"
	ColMethods  = "Return Methods"
)

// Record is one state's deadline row. Date fields are nil when the source
// cell held the N/A sentinel. Records are never mutated after load.
type Record struct {
	State                  string
	RecommendedMailDate    *time.Time
	BallotPostmarkDeadline *time.Time
	BallotReceiptDeadline  *time.Time
	ReturnMethods          string
}

// DateCount returns how many of the record's three date fields are set.
func (r Record) DateCount() int {
	n := 0
	for _, d := range []*time.Time{r.RecommendedMailDate, r.BallotPostmarkDeadline, r.BallotReceiptDeadline} {
		if d != nil {
			n++
		}
	}
	return n
}

// parseDeadlineDate maps the N/A sentinel to nil and anything else through the
// fixed MM/DD/YYYY layout. A non-sentinel, non-conforming cell is an error;
// the caller treats it as fatal for the whole load.
func parseDeadlineDate(cell string) (*time.Time, error) {
	if cell == NotApplicable {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, cell)
	if err != nil {
		return nil, fmt.Errorf("date cell %q is neither %q nor MM/DD/YYYY", cell, NotApplicable)
	}
	return &t, nil
}

// headerIndex maps the required column names to their positions in the header
// row. Every required column must be present, by exact name.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, want := range []string{ColState, ColMailDate, ColPostmark, ColReceipt, ColMethods} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}
	return idx, nil
}

// parseRecord converts one raw CSV row into a Record. The return-methods cell
// passes through untouched (no trimming or folding).
func parseRecord(row []string, idx map[string]int) (Record, error) {
	state := row[idx[ColState]]
	rec := Record{State: state, ReturnMethods: row[idx[ColMethods]]}
	var err error
	if rec.RecommendedMailDate, err = parseDeadlineDate(row[idx[ColMailDate]]); err != nil {
		return Record{}, fmt.Errorf("state %q: recommended mail date: %w", state, err)
	}
	if rec.BallotPostmarkDeadline, err = parseDeadlineDate(row[idx[ColPostmark]]); err != nil {
		return Record{}, fmt.Errorf("state %q: ballot postmark deadline: %w", state, err)
	}
	if rec.BallotReceiptDeadline, err = parseDeadlineDate(row[idx[ColReceipt]]); err != nil {
		return Record{}, fmt.Errorf("state %q: ballot receipt deadline: %w", state, err)
	}
	return rec, nil
}

// LoadRecords reads the deadline CSV at path, parses every row, and returns
// the records sorted ascending by recommended mail date with nil dates last.
// Any read or parse failure aborts the whole load; there is no partial result.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deadlines file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty file, expected a header row", path)
	}
	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}
	SortByMailDate(records)

	if start, end, derr := TimeDomain(records); derr == nil {
		Infof("loaded %d state records from %s (span %s .. %s)",
			len(records), path, start.Format(DateLayout), end.Format(DateLayout))
	} else {
		Infof("loaded %d state records from %s", len(records), path)
	}
	return records, nil
}

// SortByMailDate sorts in place, ascending by RecommendedMailDate. A nil date
// sorts after every non-nil one; the sort is stable so nil-dated records keep
// their input order relative to each other.
func SortByMailDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].RecommendedMailDate, records[j].RecommendedMailDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// TimeDomain derives the time-axis domain from the full record collection:
// start is the earliest recommended mail date minus DomainLeadDays, end the
// latest ballot receipt deadline. When a bound's primary field is nil across
// every record it falls back to the extreme over all three date fields, and
// when no record carries any date at all the domain is undefined and an error
// is returned.
func TimeDomain(records []Record) (time.Time, time.Time, error) {
	minOf := func(sel func(Record) *time.Time) *time.Time {
		var m *time.Time
		for _, r := range records {
			if d := sel(r); d != nil && (m == nil || d.Before(*m)) {
				m = d
			}
		}
		return m
	}
	maxOf := func(sel func(Record) *time.Time) *time.Time {
		var m *time.Time
		for _, r := range records {
			if d := sel(r); d != nil && (m == nil || d.After(*m)) {
				m = d
			}
		}
		return m
	}
	anyDate := func(r Record) *time.Time { return earliestOf(r) }

	start := minOf(func(r Record) *time.Time { return r.RecommendedMailDate })
	if start == nil {
		start = minOf(anyDate)
	}
	end := maxOf(func(r Record) *time.Time { return r.BallotReceiptDeadline })
	if end == nil {
		end = maxOf(func(r Record) *time.Time { return latestOf(r) })
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("no usable dates in %d records", len(records))
	}
	return start.AddDate(0, 0, -DomainLeadDays), *end, nil
}

// earliestOf returns the earliest non-nil date of a record, or nil.
func earliestOf(r Record) *time.Time {
	var m *time.Time
	for _, d := range []*time.Time{r.RecommendedMailDate, r.BallotPostmarkDeadline, r.BallotReceiptDeadline} {
		if d != nil && (m == nil || d.Before(*m)) {
			m = d
		}
	}
	return m
}

// latestOf returns the latest non-nil date of a record, or nil.
func latestOf(r Record) *time.Time {
	var m *time.Time
	for _, d := range []*time.Time{r.RecommendedMailDate, r.BallotPostmarkDeadline, r.BallotReceiptDeadline} {
		if d != nil && (m == nil || d.After(*m)) {
			m = d
		}
	}
	return m
}
