package source

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/shopspring/decimal"
)

// Normalizer converts raw rows into records, applying fallback labels and the
// configured parsing policies.
type Normalizer struct {
	Numbers parse.NumberParser
	Dates   parse.DateParser
	// Now supplies the date of rows whose date cell cannot be parsed.
	Now    func() time.Time
	Logger *slog.Logger
}

// DefaultNormalizer uses the comma decimal and day/month/year policies.
func DefaultNormalizer() Normalizer {
	return Normalizer{
		Numbers: parse.CommaDecimal,
		Dates:   parse.DayMonthYear,
		Now:     time.Now,
	}
}

func (n Normalizer) withDefaults() Normalizer {
	if n.Numbers == nil {
		n.Numbers = parse.CommaDecimal
	}
	if n.Dates == nil {
		n.Dates = parse.DayMonthYear
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	if n.Logger == nil {
		n.Logger = slog.Default()
	}
	return n
}

// Records converts rows, header first, into records. IDs follow row order starting
// at zero. Fewer than two rows yield no records.
func (n Normalizer) Records(rows [][]string) ([]model.PurchaseRecord, error) {
	if len(rows) < 2 {
		return []model.PurchaseRecord{}, nil
	}

	headers, err := NewHeaderMap(rows[0])
	if err != nil {
		return nil, fmt.Errorf("failed to map header row: %w", err)
	}

	n = n.withDefaults()
	today := n.Now()
	records := make([]model.PurchaseRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, n.record(i, row, headers, today))
	}
	return records, nil
}

func (n Normalizer) record(id int, row []string, h HeaderMap, today time.Time) model.PurchaseRecord {
	item := h.cell(row, colItem)
	if item == "" {
		item = h.cell(row, colProduct)
	}

	date, ok := n.Dates.ParseDate(h.cell(row, colDate))
	if !ok {
		date = today
	}

	quantity := h.cell(row, colQuantity)
	if quantity == "" {
		quantity = "0"
	}

	return model.PurchaseRecord{
		ID:              id,
		Date:            date,
		Company:         orDefault(h.cell(row, colCompany), model.FallbackCompany),
		Supplier:        orDefault(SupplierName(h.cell(row, colSupplier)), model.FallbackSupplier),
		ItemDescription: orDefault(item, model.FallbackItem),
		AccountPlan:     orDefault(h.cell(row, colAccountPlan), model.FallbackAccountPlan),
		Category:        orDefault(h.cell(row, colCategory), model.FallbackCategory),
		Unit:            orDefault(h.cell(row, colUnit), model.FallbackUnit),
		Quantity:        quantity,
		UnitValue:       n.money(id, h.cell(row, colUnitValue)),
		TotalValue:      n.money(id, h.cell(row, colTotalValue)),
		InvoiceNumber:   h.cell(row, colInvoice),
		MaterialType:    h.cell(row, colMaterialType),
		Warehouse:       h.cell(row, colWarehouse),
	}
}

// money parses a monetary cell; negative amounts are clamped to zero.
func (n Normalizer) money(id int, text string) decimal.Decimal {
	v := n.Numbers.ParseNumber(text)
	if v.IsNegative() {
		n.Logger.Debug("clamping negative amount", "record", id, "value", text)
		return decimal.Zero
	}
	return v
}

// SupplierName drops a leading supplier code written as "CODE - Name".
func SupplierName(raw string) string {
	parts := strings.Split(raw, " - ")
	if len(parts) < 2 {
		return raw
	}
	return strings.TrimSpace(parts[1])
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
