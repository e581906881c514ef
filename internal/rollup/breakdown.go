package rollup

import (
	"sort"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

// RecordGroup keeps the records of one inner key in source order.
type RecordGroup struct {
	Key     string                 `json:"key"`
	Total   decimal.Decimal        `json:"total"`
	Records []model.PurchaseRecord `json:"records"`
}

// Section is one outer key of a Breakdown.
type Section struct {
	Key    string          `json:"key"`
	Total  decimal.Decimal `json:"total"`
	Groups []RecordGroup   `json:"groups"`
}

// RecordCount is the number of records in the section.
func (s Section) RecordCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Records)
	}
	return n
}

// Breakdown groups records by outer then inner key while keeping the records
// themselves. Sections are ordered by key; groups inside a section by total
// descending with first-seen tie break. Outer keys with no records never appear.
func Breakdown(records []model.PurchaseRecord, outer, inner KeyFunc, value ValueFunc) []Section {
	sections := make([]Section, 0)
	sectionIndex := make(map[string]int)
	groupIndex := make(map[string]map[string]int)

	for _, r := range records {
		outerKey, innerKey := outer(r), inner(r)
		si, found := sectionIndex[outerKey]
		if !found {
			si = len(sections)
			sectionIndex[outerKey] = si
			groupIndex[outerKey] = make(map[string]int)
			sections = append(sections, Section{Key: outerKey, Total: decimal.Zero})
		}
		s := &sections[si]
		v := value(r)
		s.Total = s.Total.Add(v)

		gi, found := groupIndex[outerKey][innerKey]
		if !found {
			gi = len(s.Groups)
			groupIndex[outerKey][innerKey] = gi
			s.Groups = append(s.Groups, RecordGroup{Key: innerKey, Total: decimal.Zero})
		}
		g := &s.Groups[gi]
		g.Total = g.Total.Add(v)
		g.Records = append(g.Records, r)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Key < sections[j].Key
	})
	for i := range sections {
		groups := sections[i].Groups
		sort.SliceStable(groups, func(a, b int) bool {
			return groups[a].Total.GreaterThan(groups[b].Total)
		})
	}
	return sections
}
