package rollup

import (
	"sort"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// Period is the spend of one calendar month.
type Period struct {
	Month time.Time       `json:"month"` // first day of the month
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Label formats the month as "January 2024".
func (p Period) Label() string {
	return p.Month.Format("January 2006")
}

// Monthly sums value per calendar month in chronological order. Months without
// records are not emitted.
func Monthly(records []model.PurchaseRecord, value ValueFunc) []Period {
	groups := accumulate(records, ByMonth, value)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})

	periods := make([]Period, 0, len(groups))
	for _, g := range groups {
		month, err := time.Parse(monthLayout, g.Key)
		if err != nil {
			continue
		}
		periods = append(periods, Period{Month: month, Total: g.Total, Count: g.Count})
	}
	return periods
}
