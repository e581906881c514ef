package rollup

import (
	"sort"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

// Group is one entry of a flat rollup.
type Group struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// SharePercent is the group's share of grandTotal, in percent.
func (g Group) SharePercent(grandTotal decimal.Decimal) decimal.Decimal {
	return SharePercent(g.Total, grandTotal)
}

// Ranking is a flat rollup ordered by total, largest first.
type Ranking struct {
	Groups     []Group         `json:"groups"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Share returns the share percent of the i-th group.
func (r Ranking) Share(i int) decimal.Decimal {
	return r.Groups[i].SharePercent(r.GrandTotal)
}

// Flat groups records by key and sums value per group. Groups are sorted by total
// descending; equal totals keep the order in which their keys were first seen.
func Flat(records []model.PurchaseRecord, key KeyFunc, value ValueFunc) Ranking {
	groups := accumulate(records, key, value)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	grand := decimal.Zero
	for _, g := range groups {
		grand = grand.Add(g.Total)
	}
	return Ranking{Groups: groups, GrandTotal: grand}
}

// accumulate sums value per key, returning groups in first-seen order.
func accumulate(records []model.PurchaseRecord, key KeyFunc, value ValueFunc) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(value(r))
		groups[i].Count++
	}
	return groups
}
