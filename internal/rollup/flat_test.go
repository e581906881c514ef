package rollup

import (
	"testing"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_ByCompany(t *testing.T) {
	records := []model.PurchaseRecord{
		rec(1, "100", company("A")),
		rec(2, "50", company("A")),
		rec(3, "75", company("B")),
	}

	got := Flat(records, ByCompany, TotalValue)

	require.Len(t, got.Groups, 2)
	assert.Equal(t, "A", got.Groups[0].Key)
	assert.True(t, got.Groups[0].Total.Equal(dec("150")))
	assert.Equal(t, 2, got.Groups[0].Count)
	assert.Equal(t, "B", got.Groups[1].Key)
	assert.True(t, got.Groups[1].Total.Equal(dec("75")))
	assert.True(t, got.GrandTotal.Equal(dec("225")))

	assert.Equal(t, "66.7", got.Share(0).StringFixed(1))
	assert.Equal(t, "33.3", got.Share(1).StringFixed(1))
}

func TestFlat_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []model.PurchaseRecord{
		rec(1, "10", supplier("Zeta")),
		rec(2, "30", supplier("Mid")),
		rec(3, "10", supplier("Alpha")),
		rec(4, "10", supplier("Beta")),
	}

	got := Flat(records, BySupplier, TotalValue)

	keys := make([]string, len(got.Groups))
	for i, g := range got.Groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"Mid", "Zeta", "Alpha", "Beta"}, keys)
}

func TestFlat_EmptyInput(t *testing.T) {
	got := Flat(nil, ByCompany, TotalValue)

	assert.NotNil(t, got.Groups)
	assert.Empty(t, got.Groups)
	assert.True(t, got.GrandTotal.IsZero())
}

func TestFlat_ZeroGrandTotal(t *testing.T) {
	records := []model.PurchaseRecord{rec(1, "0", company("A")), rec(2, "0", company("B"))}

	got := Flat(records, ByCompany, TotalValue)

	require.Len(t, got.Groups, 2)
	assert.True(t, got.Share(0).IsZero())
	assert.True(t, got.Share(1).IsZero())
}

func TestFlat_CustomValue(t *testing.T) {
	records := []model.PurchaseRecord{
		rec(1, "100", company("A")),
		rec(2, "1", company("B")),
		rec(3, "1", company("B")),
	}
	count := func(model.PurchaseRecord) decimal.Decimal { return dec("1") }

	got := Flat(records, ByCompany, count)

	require.Len(t, got.Groups, 2)
	assert.Equal(t, "B", got.Groups[0].Key)
	assert.True(t, got.GrandTotal.Equal(dec("3")))
}

func TestSharePercent(t *testing.T) {
	assert.True(t, SharePercent(dec("25"), dec("200")).Equal(dec("12.5")))
	assert.True(t, SharePercent(dec("25"), dec("0")).IsZero())
	assert.True(t, SharePercent(dec("0"), dec("0")).IsZero())
}
