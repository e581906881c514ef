package report

import (
	"strconv"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/Veraticus/supply-flow/internal/rollup"
	"github.com/shopspring/decimal"
)

// Period is the printable purchase listing of a date window.
type Period struct {
	Start     *time.Time             `json:"start,omitempty"`
	End       *time.Time             `json:"end,omitempty"`
	Search    string                 `json:"search,omitempty"`
	Total     decimal.Decimal        `json:"total"`
	Purchases []model.PurchaseRecord `json:"purchases"`
	Months    []rollup.Period        `json:"months"`

	quantity parse.NumberParser
}

// NewPeriod searches company, supplier, invoice and item inside the window and
// totals the matching purchases overall and per month.
func NewPeriod(records []model.PurchaseRecord, opts Options) *Period {
	filtered := opts.filter(records, PeriodFields)

	return &Period{
		Start:     opts.Start,
		End:       opts.End,
		Search:    opts.Search,
		Total:     rollup.Total(filtered, rollup.TotalValue),
		Purchases: filtered,
		Months:    rollup.Monthly(filtered, rollup.TotalValue),
		quantity:  opts.numbers(),
	}
}

// Title implements Report.
func (p *Period) Title() string {
	return "Purchases by period"
}

// Summary implements Report.
func (p *Period) Summary() []Stat {
	return []Stat{
		{Label: "Period", Value: formatWindow(p.Start, p.End)},
		{Label: "Records", Value: strconv.Itoa(len(p.Purchases))},
		{Label: "Period total", Value: money(p.Total)},
	}
}

// Tables implements Report.
func (p *Period) Tables() []Table {
	purchases := Table{
		Title:   "Purchases",
		Header:  []string{"Date", "Company", "Supplier", "Invoice", "Item", "Quantity", "Unit", "Unit value", "Total"},
		Numeric: []int{5, 7, 8},
	}
	for _, r := range p.Purchases {
		purchases.Rows = append(purchases.Rows, []string{
			formatDate(r.Date), r.Company, r.Supplier, r.InvoiceNumber, r.ItemDescription,
			p.quantity.ParseNumber(r.Quantity).String(), r.Unit, money(r.UnitValue), money(r.TotalValue),
		})
	}

	months := Table{
		Title:   "Months",
		Header:  []string{"Month", "Records", "Total"},
		Numeric: []int{1, 2},
	}
	for _, m := range p.Months {
		months.Rows = append(months.Rows, []string{m.Label(), strconv.Itoa(m.Count), money(m.Total)})
	}

	return []Table{purchases, months}
}
