package rollup

import (
	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

// KeyFunc extracts a grouping key from a record.
type KeyFunc func(model.PurchaseRecord) string

// ValueFunc extracts the measure summed by a rollup.
type ValueFunc func(model.PurchaseRecord) decimal.Decimal

// ByField groups on the value of a text field.
func ByField(f model.Field) KeyFunc {
	return func(r model.PurchaseRecord) string {
		return r.Text(f)
	}
}

// Common grouping keys.
var (
	ByCompany     = ByField(model.FieldCompany)
	BySupplier    = ByField(model.FieldSupplier)
	ByAccountPlan = ByField(model.FieldAccountPlan)
	ByCategory    = ByField(model.FieldCategory)
)

// ByMonth groups on the calendar month of the record date, formatted as 2006-01.
func ByMonth(r model.PurchaseRecord) string {
	return r.Date.Format(monthLayout)
}

// TotalValue is the default measure.
func TotalValue(r model.PurchaseRecord) decimal.Decimal {
	return r.TotalValue
}

// Total sums value over records.
func Total(records []model.PurchaseRecord, value ValueFunc) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(value(r))
	}
	return total
}
