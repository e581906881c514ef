package report

import (
	"strconv"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/Veraticus/supply-flow/internal/rollup"
	"github.com/shopspring/decimal"
)

// Products lists purchases per company and supplier.
type Products struct {
	Start     *time.Time       `json:"start,omitempty"`
	End       *time.Time       `json:"end,omitempty"`
	Search    string           `json:"search,omitempty"`
	Records   int              `json:"records"`
	Total     decimal.Decimal  `json:"total"`
	Companies []rollup.Section `json:"companies"`

	quantity parse.NumberParser
}

// NewProducts searches item, supplier and invoice, then groups the matching records
// by company (alphabetical) and supplier (by total). Companies left without records
// are omitted.
func NewProducts(records []model.PurchaseRecord, opts Options) *Products {
	filtered := opts.filter(records, ProductFields)

	return &Products{
		Start:     opts.Start,
		End:       opts.End,
		Search:    opts.Search,
		Records:   len(filtered),
		Total:     rollup.Total(filtered, rollup.TotalValue),
		Companies: rollup.Breakdown(filtered, rollup.ByCompany, rollup.BySupplier, rollup.TotalValue),
		quantity:  opts.numbers(),
	}
}

// Title implements Report.
func (p *Products) Title() string {
	return "Products by company"
}

// Summary implements Report.
func (p *Products) Summary() []Stat {
	return []Stat{
		{Label: "Period", Value: formatWindow(p.Start, p.End)},
		{Label: "Records", Value: strconv.Itoa(p.Records)},
		{Label: "Total spend", Value: money(p.Total)},
		{Label: "Companies", Value: strconv.Itoa(len(p.Companies))},
	}
}

// Tables implements Report.
func (p *Products) Tables() []Table {
	totals := Table{
		Title:   "Supplier totals",
		Header:  []string{"Company", "Supplier", "Records", "Total"},
		Numeric: []int{2, 3},
	}
	lines := Table{
		Title:   "Purchases",
		Header:  []string{"Company", "Supplier", "Date", "Invoice", "Item", "Unit", "Quantity", "Unit value", "Total"},
		Numeric: []int{6, 7, 8},
	}

	for _, section := range p.Companies {
		for _, group := range section.Groups {
			totals.Rows = append(totals.Rows, []string{
				section.Key, group.Key, strconv.Itoa(len(group.Records)), money(group.Total),
			})
			for _, r := range group.Records {
				lines.Rows = append(lines.Rows, []string{
					section.Key, group.Key, formatDate(r.Date), r.InvoiceNumber, r.ItemDescription,
					r.Unit, p.quantity.ParseNumber(r.Quantity).String(), money(r.UnitValue), money(r.TotalValue),
				})
			}
		}
	}
	return []Table{totals, lines}
}
