// Package model defines the purchasing records shared across the application.
package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Fallback labels applied at ingestion when a classification cell is empty.
const (
	FallbackCompany     = "Others"
	FallbackSupplier    = "Unknown"
	FallbackItem        = "Item without name"
	FallbackAccountPlan = "Unclassified"
	FallbackCategory    = "General"
	FallbackUnit        = "UN"
)

// PurchaseRecord is one line item of a purchase.
// Records are immutable once produced by a source.
type PurchaseRecord struct {
	Date            time.Time       `json:"date"`
	UnitValue       decimal.Decimal `json:"unit_value"`
	TotalValue      decimal.Decimal `json:"total_value"`
	Company         string          `json:"company"`
	Supplier        string          `json:"supplier"`
	ItemDescription string          `json:"item_description"`
	AccountPlan     string          `json:"account_plan"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	Quantity        string          `json:"quantity"` // Locale formatted, e.g. "1.234,50"
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	MaterialType    string          `json:"material_type,omitempty"`
	Warehouse       string          `json:"warehouse,omitempty"`
	ID              int             `json:"id"`
}

// Validate checks the ingestion invariants of a record.
func (r PurchaseRecord) Validate() error {
	if r.Date.IsZero() {
		return errors.New("record date is required")
	}
	if r.TotalValue.IsNegative() {
		return errors.New("total value cannot be negative")
	}
	if r.UnitValue.IsNegative() {
		return errors.New("unit value cannot be negative")
	}
	for _, f := range []Field{FieldCompany, FieldSupplier, FieldItemDescription, FieldAccountPlan, FieldCategory, FieldUnit} {
		if r.Text(f) == "" {
			return errors.New(string(f) + " is required")
		}
	}
	return nil
}
