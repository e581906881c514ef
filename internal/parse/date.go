package parse

import (
	"strings"
	"time"
)

// DateParser converts a date cell into a calendar date. ok is false when the text
// does not hold a date the policy understands.
type DateParser interface {
	ParseDate(text string) (date time.Time, ok bool)
}

// DefaultDateLayout reads day/month/year with or without zero padding.
const DefaultDateLayout = "2/1/2006"

// isoLayout is always accepted as a fallback.
const isoLayout = "2006-01-02"

// LayoutDate parses the first whitespace separated token of a cell with the
// configured layouts, so "31/01/2024 14:05" yields 2024-01-31.
type LayoutDate struct {
	Location *time.Location
	Layouts  []string
}

// DayMonthYear is the default date policy.
var DayMonthYear DateParser = NewLayoutDate(DefaultDateLayout)

// NewLayoutDate builds a LayoutDate that tries layout first and ISO dates second,
// in the local time zone.
func NewLayoutDate(layout string) LayoutDate {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultDateLayout
	}
	layouts := []string{layout}
	if layout != isoLayout {
		layouts = append(layouts, isoLayout)
	}
	return LayoutDate{Layouts: layouts, Location: time.Local}
}

// ParseDate implements DateParser.
func (p LayoutDate) ParseDate(text string) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range p.Layouts {
		if t, err := time.ParseInLocation(layout, fields[0], loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
