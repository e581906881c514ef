package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/Veraticus/supply-flow/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewSuppliers(fixture(), Options{}), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Supplier ranking")
	assert.Contains(t, out, "Total spend")
	assert.Contains(t, out, "Steel Co")
	assert.Contains(t, out, "175.00")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewSuppliers(nil, Options{}), FormatTable))
	assert.Contains(t, buf.String(), "No purchases match the current filters.")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewSuppliers(fixture(), Options{}), FormatJSON))

	var decoded struct {
		Records   int    `json:"records"`
		Total     string `json:"total"`
		Suppliers struct {
			Groups []struct {
				Key   string `json:"key"`
				Total string `json:"total"`
			} `json:"groups"`
		} `json:"suppliers"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Records)
	assert.Equal(t, "175", decoded.Total)
	require.Len(t, decoded.Suppliers.Groups, 2)
	assert.Equal(t, "Steel Co", decoded.Suppliers.Groups[0].Key)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewPeriod(fixture(), Options{}), FormatCSV))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// Purchases title, header, 3 rows, Months title, header, 2 rows. The blank
	// separator line is skipped by the reader.
	require.Len(t, records, 9)
	assert.Equal(t, []string{"Purchases"}, records[0])
	assert.Equal(t, "Date", records[1][0])
	assert.Equal(t, "100.00", records[2][8])
	assert.Equal(t, []string{"Months"}, records[5])
	assert.Equal(t, []string{"January 2024", "2", "150.00"}, records[7])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDashboard(fixture(), Options{}), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "Companies", "Accounts", "Materials"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Purchasing dashboard", title)

	rows, err := f.GetRows("Companies")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Company", "Records", "Total", "Share"}, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "150", rows[1][2], "amounts are stored as numbers")
	assert.Equal(t, "66.7%", rows[1][3], "percentages stay text")
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Summary": true}
	assert.Equal(t, "Purchases", sheetName("Purchases", used))
	assert.Equal(t, "Purchases 2", sheetName("Purchases", used))

	long := "A very long worksheet title that overflows"
	name := sheetName(long, used)
	assert.Len(t, []rune(name), 31)
	second := sheetName(long, used)
	assert.Len(t, []rune(second), 31)
	assert.NotEqual(t, name, second)
}

type recordingTabWriter struct {
	tabs []sheets.Tab
	err  error
}

func (w *recordingTabWriter) WriteTabs(_ context.Context, tabs []sheets.Tab) error {
	w.tabs = tabs
	return w.err
}

func TestExport(t *testing.T) {
	w := &recordingTabWriter{}
	require.NoError(t, Export(context.Background(), w, NewSuppliers(fixture(), Options{})))

	require.Len(t, w.tabs, 2)
	assert.Equal(t, "Supplier ranking", w.tabs[0].Title)
	assert.Equal(t, []any{"Records", "3"}, w.tabs[0].Rows[1])
	assert.Equal(t, "Supplier ranking - Suppliers", w.tabs[1].Title)
	assert.Equal(t, []any{"Rank", "Supplier", "Records", "Total", "Share"}, w.tabs[1].Rows[0])
	assert.Len(t, w.tabs[1].Rows, 3)

	w.err = errors.New("quota")
	assert.EqualError(t, Export(context.Background(), w, NewSuppliers(nil, Options{})), "quota")
}

func TestQuantityFollowsNumberPolicy(t *testing.T) {
	records := fixture()
	records[0].Quantity = "1.000"
	records[1].Quantity = "1,5"

	t.Run("xlsx stores the parsed quantity", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, NewPeriod(records, Options{}), FormatXLSX))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		thousand, err := f.GetCellValue("Purchases", "F2", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		assert.Equal(t, "1000", thousand)

		fraction, err := f.GetCellValue("Purchases", "F3", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		assert.Equal(t, "1.5", fraction)
	})

	t.Run("products listing uses the configured policy", func(t *testing.T) {
		comma := NewProducts(records, Options{}).Tables()[1]
		assert.Equal(t, "1000", comma.Rows[0][6])

		dot := NewProducts(records, Options{Quantity: parse.DotDecimal}).Tables()[1]
		assert.Equal(t, "1", dot.Rows[0][6])
	})

	t.Run("sheets tabs carry numbers", func(t *testing.T) {
		tabs := Tabs(NewPeriod(records, Options{}))
		require.Len(t, tabs, 3)
		purchases := tabs[1]
		assert.Equal(t, "Purchases by period - Purchases", purchases.Title)
		assert.Equal(t, float64(1000), purchases.Rows[1][5])
		assert.Equal(t, 100.0, purchases.Rows[1][8])
		assert.Equal(t, "Acme", purchases.Rows[1][1])
	})
}
