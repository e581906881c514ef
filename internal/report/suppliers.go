package report

import (
	"strconv"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/rollup"
	"github.com/shopspring/decimal"
)

// Suppliers ranks suppliers by spend.
type Suppliers struct {
	Start     *time.Time      `json:"start,omitempty"`
	End       *time.Time      `json:"end,omitempty"`
	Search    string          `json:"search,omitempty"`
	Records   int             `json:"records"`
	Total     decimal.Decimal `json:"total"`
	Suppliers rollup.Ranking  `json:"suppliers"`
}

// NewSuppliers filters records on the supplier name only and ranks suppliers.
func NewSuppliers(records []model.PurchaseRecord, opts Options) *Suppliers {
	filtered := opts.filter(records, SupplierFields)
	ranking := rollup.Flat(filtered, rollup.BySupplier, rollup.TotalValue)

	return &Suppliers{
		Start:     opts.Start,
		End:       opts.End,
		Search:    opts.Search,
		Records:   len(filtered),
		Total:     ranking.GrandTotal,
		Suppliers: ranking,
	}
}

// Title implements Report.
func (s *Suppliers) Title() string {
	return "Supplier ranking"
}

// Summary implements Report.
func (s *Suppliers) Summary() []Stat {
	return []Stat{
		{Label: "Period", Value: formatWindow(s.Start, s.End)},
		{Label: "Records", Value: strconv.Itoa(s.Records)},
		{Label: "Total spend", Value: money(s.Total)},
		{Label: "Suppliers", Value: strconv.Itoa(len(s.Suppliers.Groups))},
	}
}

// Tables implements Report.
func (s *Suppliers) Tables() []Table {
	t := Table{
		Title:   "Suppliers",
		Header:  []string{"Rank", "Supplier", "Records", "Total", "Share"},
		Numeric: []int{0, 2, 3, 4},
	}
	for i, g := range s.Suppliers.Groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), g.Key, strconv.Itoa(g.Count), money(g.Total), percent(s.Suppliers.Share(i)),
		})
	}
	return []Table{t}
}
