package rollup

import (
	"strings"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
)

// FilterOptions selects records by date range and free text.
type FilterOptions struct {
	// Start and End bound the record date. A nil bound is open. End covers its whole
	// calendar day.
	Start *time.Time
	End   *time.Time
	// Search is matched case-insensitively as a substring of any of Fields.
	Search string
	// Fields defaults to model.AllFields when empty.
	Fields []model.Field
}

// Filter returns the records that fall inside the date range and match the search term,
// in their original order. It never returns nil.
func Filter(records []model.PurchaseRecord, opts FilterOptions) []model.PurchaseRecord {
	var start, end time.Time
	hasStart, hasEnd := opts.Start != nil, opts.End != nil
	if hasStart {
		start = StartOfDay(*opts.Start)
	}
	if hasEnd {
		end = EndOfDay(*opts.End)
	}

	term := strings.ToLower(strings.TrimSpace(opts.Search))
	fields := opts.Fields
	if len(fields) == 0 {
		fields = model.AllFields
	}

	out := make([]model.PurchaseRecord, 0, len(records))
	for _, r := range records {
		if hasStart && r.Date.Before(start) {
			continue
		}
		if hasEnd && r.Date.After(end) {
			continue
		}
		if term != "" && !matchesAny(r, fields, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAny(r model.PurchaseRecord, fields []model.Field, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(r.Text(f)), term) {
			return true
		}
	}
	return false
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, t.Location())
}
