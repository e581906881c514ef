// Package source turns spreadsheet rows into purchase records.
package source

import (
	"fmt"
	"strings"

	"github.com/Veraticus/supply-flow/internal/common"
)

// column identifies a record attribute carried by a spreadsheet column.
type column int

const (
	colCompany column = iota
	colSupplier
	colDate
	colInvoice
	colProduct
	colItem
	colAccountPlan
	colCategory
	colUnit
	colQuantity
	colUnitValue
	colTotalValue
	colMaterialType
	colWarehouse
	columnCount
)

// headerAliases lists, per column, the lower-case header fragments that identify it.
var headerAliases = [columnCount][]string{
	colCompany:      {"empresa", "company"},
	colSupplier:     {"fornecedor", "supplier", "vendor"},
	colDate:         {"data", "entrada", "emissão", "date"},
	colInvoice:      {"nfe", "nota", "invoice"},
	colProduct:      {"descrição", "produto", "description", "product"},
	colItem:         {"descrição item", "item fornecedor", "item description", "supplier item"},
	colAccountPlan:  {"plano de contas", "account plan", "chart of accounts"},
	colCategory:     {"categoria", "category"},
	colUnit:         {"un. compra", "unidade", "unit of measure", "uom", "unit"},
	colQuantity:     {"qtd compra", "quantidade", "quantity", "qty"},
	colUnitValue:    {"r$ unitário", "unitario", "unitário", "unit price", "unit value"},
	colTotalValue:   {"r$ total", "valor total", "total value", "total amount"},
	colMaterialType: {"tipo material", "material type"},
	colWarehouse:    {"almoxarifado", "warehouse"},
}

// HeaderMap holds the index of each known column in a header row, -1 when absent.
type HeaderMap struct {
	index [columnCount]int
}

// NewHeaderMap locates the known columns in header. A header equal to an alias wins;
// otherwise the leftmost header containing any alias is used. The total value column
// is required.
func NewHeaderMap(header []string) (HeaderMap, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var m HeaderMap
	for c := column(0); c < columnCount; c++ {
		m.index[c] = findColumn(normalized, headerAliases[c])
	}

	if m.index[colTotalValue] < 0 {
		return m, fmt.Errorf("%w: total value", common.ErrMissingColumns)
	}
	return m, nil
}

func findColumn(headers, aliases []string) int {
	for i, h := range headers {
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	for i, h := range headers {
		for _, a := range aliases {
			if strings.Contains(h, a) {
				return i
			}
		}
	}
	return -1
}

// cell returns the trimmed value of column c in row, or "" when the column is absent
// or the row is short.
func (m HeaderMap) cell(row []string, c column) string {
	i := m.index[c]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
