// Package report assembles the purchasing views (dashboard, suppliers, products and
// period listing) from filtered records and lays them out as tables.
package report

import (
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/Veraticus/supply-flow/internal/rollup"
	"github.com/shopspring/decimal"
)

// Search fields per view.
var (
	DashboardFields = []model.Field{model.FieldCompany, model.FieldSupplier, model.FieldAccountPlan, model.FieldItemDescription}
	SupplierFields  = []model.Field{model.FieldSupplier}
	ProductFields   = []model.Field{model.FieldItemDescription, model.FieldSupplier, model.FieldInvoiceNumber}
	PeriodFields    = []model.Field{model.FieldCompany, model.FieldSupplier, model.FieldInvoiceNumber, model.FieldItemDescription}
)

// Options are the user selections shared by every view.
type Options struct {
	Start  *time.Time
	End    *time.Time
	Search string
	// Fields overrides the view's search fields when set.
	Fields []model.Field
	// Quantity parses quantity text in tree leaves and listings; nil uses the comma
	// decimal policy.
	Quantity parse.NumberParser
}

func (o Options) numbers() parse.NumberParser {
	if o.Quantity == nil {
		return parse.CommaDecimal
	}
	return o.Quantity
}

func (o Options) filter(records []model.PurchaseRecord, fields []model.Field) []model.PurchaseRecord {
	if len(o.Fields) > 0 {
		fields = o.Fields
	}
	return rollup.Filter(records, rollup.FilterOptions{
		Start:  o.Start,
		End:    o.End,
		Search: o.Search,
		Fields: fields,
	})
}

// Table is a rectangular layout of part of a report.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	// Numeric lists the column indexes holding plain decimal numbers ("1234.5").
	Numeric []int
}

// Stat is one labeled summary figure.
type Stat struct {
	Label string
	Value string
}

// Report is a view that can be rendered in every output format.
type Report interface {
	Title() string
	Summary() []Stat
	Tables() []Table
}

// LastDays returns the window covering the days calendar days that end today.
func LastDays(now time.Time, days int) (start, end time.Time) {
	return rollup.StartOfDay(now.AddDate(0, 0, -days)), rollup.EndOfDay(now)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatWindow(start, end *time.Time) string {
	from, to := "start", "today"
	if start != nil {
		from = formatDate(*start)
	}
	if end != nil {
		to = formatDate(*end)
	}
	return from + " to " + to
}
