package quotes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
)

func TestItemTotal(t *testing.T) {
	require.Equal(t, 1000.0, ItemTotal(2, 500))
	require.Equal(t, 0.0, ItemTotal(0, 500))
	require.Equal(t, 87.5, ItemTotal(2.5, 35))
}

func TestItemTotalCoercesBadInput(t *testing.T) {
	require.Equal(t, 0.0, ItemTotal(-3, 500))
	require.Equal(t, 0.0, ItemTotal(2, math.NaN()))
	require.Equal(t, 0.0, ItemTotal(math.Inf(1), 10))
}

func TestComputeTotalsAppliesSixteenPercentVAT(t *testing.T) {
	items := dbtypes.LineItems{
		{ID: "a", Name: "Drip kit", Quantity: 2, UnitPrice: 500},
		{ID: "b", Name: "Pump", Quantity: 1, UnitPrice: 1000},
	}

	totals := ComputeTotals(items)
	require.Equal(t, 2000.0, totals.Subtotal)
	require.Equal(t, 320.0, totals.VAT)
	require.Equal(t, 2320.0, totals.Total)
}

func TestComputeTotalsExactAtCentPrecision(t *testing.T) {
	items := dbtypes.LineItems{
		{ID: "a", Quantity: 3, UnitPrice: 33.33},
		{ID: "b", Quantity: 7, UnitPrice: 0.1},
	}

	totals := ComputeTotals(items)
	require.Equal(t, 100.69, totals.Subtotal)
	require.Equal(t, 16.11, totals.VAT)
	require.Equal(t, 116.8, totals.Total)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil)
	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.VAT)
	require.Zero(t, totals.Total)
}

func TestNormalizeItemsRecomputesAndIgnoresClientTotals(t *testing.T) {
	items := dbtypes.LineItems{
		{Name: "Sprinkler", Quantity: 4, UnitPrice: 250, Total: 999999},
	}

	out := NormalizeItems(items)
	require.Len(t, out, 1)
	require.NotEmpty(t, out[0].ID)
	require.Equal(t, 1000.0, out[0].Total)
}

func TestNormalizeItemsKeepsClientIDs(t *testing.T) {
	items := dbtypes.LineItems{
		{ID: "item-a", Name: "Drip line", Quantity: 2, UnitPrice: 500},
		{Name: "Filter", Quantity: 1, UnitPrice: 2500},
	}

	out := NormalizeItems(items)
	require.Len(t, out, 2)
	require.Equal(t, "item-a", out[0].ID)
	require.NotEmpty(t, out[1].ID)
	require.NotEqual(t, out[0].ID, out[1].ID)
}

func TestAddItemPrefillsFromProduct(t *testing.T) {
	product := &models.Product{Name: "Drip line 16mm", Description: "30cm spacing", Unit: "m", Price: 35}
	items := AddItem(nil, product)

	require.Len(t, items, 1)
	require.Equal(t, "Drip line 16mm", items[0].Name)
	require.Equal(t, "m", items[0].Unit)
	require.Equal(t, 1.0, items[0].Quantity)
	require.Equal(t, 35.0, items[0].Total)
	require.NotEmpty(t, items[0].ID)
}

func TestAddItemBlankWithoutProduct(t *testing.T) {
	items := AddItem(nil, nil)
	require.Len(t, items, 1)
	require.Empty(t, items[0].Name)
	require.Equal(t, 1.0, items[0].Quantity)
	require.Zero(t, items[0].Total)
}

func TestAddSuggestedItem(t *testing.T) {
	items := AddSuggestedItem(nil, 0)
	require.Len(t, items, 1)
	require.Equal(t, "Drip line 16mm", items[0].Name)
	require.Equal(t, 35.0, items[0].Total)

	fallback := AddSuggestedItem(nil, 99)
	require.Len(t, fallback, 1)
	require.Empty(t, fallback[0].Name)
}

func TestUpdateItemFieldRecomputesNumericEdits(t *testing.T) {
	items := dbtypes.LineItems{{ID: "x", Quantity: 1, UnitPrice: 100, Total: 100}}

	items = UpdateItemField(items, "x", FieldQuantity, 3.0)
	require.Equal(t, 300.0, items[0].Total)

	items = UpdateItemField(items, "x", FieldUnitPrice, 50.0)
	require.Equal(t, 150.0, items[0].Total)

	items = UpdateItemField(items, "x", FieldName, "Filter")
	require.Equal(t, "Filter", items[0].Name)
	require.Equal(t, 150.0, items[0].Total)
}

func TestUpdateItemFieldUnknownIDIsNoOp(t *testing.T) {
	items := dbtypes.LineItems{{ID: "x", Quantity: 1, UnitPrice: 100, Total: 100}}
	out := UpdateItemField(items, "missing", FieldQuantity, 5.0)
	require.Equal(t, 100.0, out[0].Total)
}

func TestRemoveItemKeepsAtLeastOne(t *testing.T) {
	one := dbtypes.LineItems{{ID: "only"}}
	require.Len(t, RemoveItem(one, "only"), 1)

	two := dbtypes.LineItems{{ID: "a"}, {ID: "b"}}
	out := RemoveItem(two, "a")
	require.Len(t, out, 1)
	require.Equal(t, "b", out[0].ID)
}

func TestDuplicateItemInsertsAfterSource(t *testing.T) {
	items := dbtypes.LineItems{
		{ID: "a", Name: "First", Quantity: 2, UnitPrice: 10, Total: 20},
		{ID: "b", Name: "Second"},
	}

	out := DuplicateItem(items, "a")
	require.Len(t, out, 3)
	require.Equal(t, "First", out[1].Name)
	require.NotEqual(t, "a", out[1].ID)
	require.Equal(t, 20.0, out[1].Total)
	require.Equal(t, "b", out[2].ID)
}

func TestDuplicateItemUnknownIDIsNoOp(t *testing.T) {
	items := dbtypes.LineItems{{ID: "a"}}
	require.Len(t, DuplicateItem(items, "zzz"), 1)
}
