package report

import (
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func purchase(id int, date time.Time, company, supplier, item, plan, total string) model.PurchaseRecord {
	return model.PurchaseRecord{
		ID:              id,
		Date:            date,
		Company:         company,
		Supplier:        supplier,
		ItemDescription: item,
		AccountPlan:     plan,
		Category:        "General",
		Unit:            "UN",
		Quantity:        "2",
		UnitValue:       decimal.RequireFromString(total).Div(decimal.NewFromInt(2)),
		TotalValue:      decimal.RequireFromString(total),
		InvoiceNumber:   "NF-" + company,
	}
}

// fixture: Acme spends 150 (Steel 100, Paper 50), Beta spends 75 with Steel.
func fixture() []model.PurchaseRecord {
	return []model.PurchaseRecord{
		purchase(0, day(2024, time.January, 5), "Acme", "Steel Co", "Bolt", "Materials", "100"),
		purchase(1, day(2024, time.January, 20), "Acme", "Paper Co", "Box", "Packaging", "50"),
		purchase(2, day(2024, time.February, 2), "Beta", "Steel Co", "Nut", "Materials", "75"),
	}
}
