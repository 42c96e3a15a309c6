package deadlines

// FilterMode selects which return-method subset is displayed.
type FilterMode string

const (
	FilterAll            FilterMode = "all"
	FilterPost           FilterMode = "post"
	FilterPostElectronic FilterMode = "postElectronic"
)

// Exact return-method strings the two specific modes match against. Matching
// is literal: no trimming, case folding, or substring semantics.
const (
	MethodPost           = "Post"
	MethodPostElectronic = "Post, Electronic"
)

// FilterState holds the current exclusive selection. It is an explicit value
// passed around, not package state; exactly one mode is active at a time by
// construction.
type FilterState struct {
	Mode FilterMode
}

// NewFilterState returns the initial selection, showing every record.
func NewFilterState() FilterState { return FilterState{Mode: FilterAll} }

// ParseFilterMode maps a stored or user-facing mode name onto a FilterMode.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(s) {
	case FilterAll, FilterPost, FilterPostElectronic:
		return FilterMode(s), true
	}
	return FilterAll, false
}

// Filter computes the visible subset for the current selection. Mode checks
// run in priority order: all, then post, then postElectronic. Records whose
// ReturnMethods value matches neither known string simply never appear in the
// two specific modes; that is not an error.
func Filter(records []Record, fs FilterState) []Record {
	switch fs.Mode {
	case FilterAll:
		return records
	case FilterPost:
		return filterByMethod(records, MethodPost)
	case FilterPostElectronic:
		return filterByMethod(records, MethodPostElectronic)
	}
	return nil
}

func filterByMethod(records []Record, method string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ReturnMethods == method {
			out = append(out, r)
		}
	}
	return out
}

// VisibleStates returns the distinct state names of a subset in first
// appearance order; this is the categorical axis domain.
func VisibleStates(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.State]; ok {
			continue
		}
		seen[r.State] = struct{}{}
		out = append(out, r.State)
	}
	return out
}

// CountByReturnMethod tallies records per exact ReturnMethods value.
func CountByReturnMethod(records []Record) map[string]int {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.ReturnMethods]++
	}
	return counts
}
