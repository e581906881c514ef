package model

import "fmt"

// Field names a searchable text field of a PurchaseRecord.
type Field string

// Searchable fields.
const (
	FieldCompany         Field = "company"
	FieldSupplier        Field = "supplier"
	FieldItemDescription Field = "item"
	FieldAccountPlan     Field = "account_plan"
	FieldCategory        Field = "category"
	FieldUnit            Field = "unit"
	FieldInvoiceNumber   Field = "invoice"
	FieldMaterialType    Field = "material_type"
	FieldWarehouse       Field = "warehouse"
)

// AllFields lists every searchable field in declaration order.
var AllFields = []Field{
	FieldCompany,
	FieldSupplier,
	FieldItemDescription,
	FieldAccountPlan,
	FieldCategory,
	FieldUnit,
	FieldInvoiceNumber,
	FieldMaterialType,
	FieldWarehouse,
}

// Text returns the value of a text field, or "" for an unknown field.
func (r PurchaseRecord) Text(f Field) string {
	switch f {
	case FieldCompany:
		return r.Company
	case FieldSupplier:
		return r.Supplier
	case FieldItemDescription:
		return r.ItemDescription
	case FieldAccountPlan:
		return r.AccountPlan
	case FieldCategory:
		return r.Category
	case FieldUnit:
		return r.Unit
	case FieldInvoiceNumber:
		return r.InvoiceNumber
	case FieldMaterialType:
		return r.MaterialType
	case FieldWarehouse:
		return r.Warehouse
	default:
		return ""
	}
}

// ParseField converts a user supplied name into a Field.
func ParseField(name string) (Field, error) {
	for _, f := range AllFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field: %q", name)
}
