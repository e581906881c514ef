package rollup

import (
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

// nodeAt follows keys down from nodes and returns the last node, or nil.
func nodeAt(nodes []*Node, keys ...string) *Node {
	var found *Node
	for _, key := range keys {
		found = nil
		for _, n := range nodes {
			if n.Key == key {
				found = n
				break
			}
		}
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// rec builds a fully populated record; overrides are applied in order.
func rec(id int, total string, overrides ...func(*model.PurchaseRecord)) model.PurchaseRecord {
	r := model.PurchaseRecord{
		ID:              id,
		Date:            day(2024, time.January, 10),
		Company:         "Acme",
		Supplier:        "Paper Co",
		ItemDescription: "Box",
		AccountPlan:     "Packaging",
		Category:        "Boxes",
		Unit:            model.FallbackUnit,
		Quantity:        "1",
		UnitValue:       dec(total),
		TotalValue:      dec(total),
	}
	for _, o := range overrides {
		o(&r)
	}
	return r
}

func company(c string) func(*model.PurchaseRecord) {
	return func(r *model.PurchaseRecord) { r.Company = c }
}

func supplier(s string) func(*model.PurchaseRecord) {
	return func(r *model.PurchaseRecord) { r.Supplier = s }
}

func item(desc, unit, qty string) func(*model.PurchaseRecord) {
	return func(r *model.PurchaseRecord) {
		r.ItemDescription = desc
		r.Unit = unit
		r.Quantity = qty
	}
}

func dated(t time.Time) func(*model.PurchaseRecord) {
	return func(r *model.PurchaseRecord) { r.Date = t }
}

func plan(p, c string) func(*model.PurchaseRecord) {
	return func(r *model.PurchaseRecord) {
		r.AccountPlan = p
		r.Category = c
	}
}

func ids(records []model.PurchaseRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
