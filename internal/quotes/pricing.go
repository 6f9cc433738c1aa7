package quotes

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
)

// vatRate is the Kenyan standard VAT rate applied to every quote.
var vatRate = decimal.NewFromFloat(0.16)

// Totals aggregates the money fields derived from a quote's line items.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

// suggestedMaterials is the fixed picklist offered when building a quote by hand.
var suggestedMaterials = []dbtypes.LineItem{
	{Name: "Drip line 16mm", Description: "Emitter spacing 30cm", Unit: "m", UnitPrice: 35},
	{Name: "HDPE pipe 32mm", Description: "PN6 supply line", Unit: "m", UnitPrice: 85},
	{Name: "Screen filter 1\"", Description: "120 mesh", Unit: "pcs", UnitPrice: 2500},
	{Name: "Venturi injector 3/4\"", Description: "Fertigation", Unit: "pcs", UnitPrice: 4200},
	{Name: "Pressure compensating dripper", Description: "4 l/h", Unit: "pcs", UnitPrice: 25},
	{Name: "Installation labour", Description: "Per day, two technicians", Unit: "day", UnitPrice: 3500},
}

// sanitizeAmount coerces unusable numeric input to zero. Strict validation
// happens at the API boundary; the engine itself never rejects.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ItemTotal computes quantity times unit price exactly, rounded to cents.
func ItemTotal(quantity, unitPrice float64) float64 {
	q := decimal.NewFromFloat(sanitizeAmount(quantity))
	p := decimal.NewFromFloat(sanitizeAmount(unitPrice))
	total, _ := q.Mul(p).Round(2).Float64()
	return total
}

// ComputeTotals derives subtotal, VAT and grand total from the line items.
// Decimal arithmetic keeps Total == Subtotal * 1.16 exact at cent precision.
func ComputeTotals(items dbtypes.LineItems) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		q := decimal.NewFromFloat(sanitizeAmount(item.Quantity))
		p := decimal.NewFromFloat(sanitizeAmount(item.UnitPrice))
		subtotal = subtotal.Add(q.Mul(p).Round(2))
	}
	vat := subtotal.Mul(vatRate).Round(2)

	sub, _ := subtotal.Float64()
	vatF, _ := vat.Float64()
	total, _ := subtotal.Add(vat).Float64()
	return Totals{Subtotal: sub, VAT: vatF, Total: total}
}

// NormalizeItems recomputes every item total, discarding any client-supplied
// totals, and returns the recomputed slice with fresh ids where missing.
func NormalizeItems(items dbtypes.LineItems) dbtypes.LineItems {
	out := make(dbtypes.LineItems, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.Quantity = sanitizeAmount(item.Quantity)
		item.UnitPrice = sanitizeAmount(item.UnitPrice)
		item.Total = ItemTotal(item.Quantity, item.UnitPrice)
		out = append(out, item)
	}
	return out
}

// AddItem appends a new line item. With a product it prefills name, unit and
// price at quantity one; otherwise it appends a blank row ready for editing.
func AddItem(items dbtypes.LineItems, product *models.Product) dbtypes.LineItems {
	item := dbtypes.LineItem{ID: uuid.NewString(), Quantity: 1, Unit: "pcs"}
	if product != nil {
		item.Name = product.Name
		item.Description = product.Description
		item.Unit = product.Unit
		item.UnitPrice = sanitizeAmount(product.Price)
	}
	item.Total = ItemTotal(item.Quantity, item.UnitPrice)
	return append(items, item)
}

// AddSuggestedItem appends an entry from the fixed materials picklist.
// Unknown indexes fall back to a blank item.
func AddSuggestedItem(items dbtypes.LineItems, index int) dbtypes.LineItems {
	if index < 0 || index >= len(suggestedMaterials) {
		return AddItem(items, nil)
	}
	item := suggestedMaterials[index]
	item.ID = uuid.NewString()
	item.Quantity = 1
	item.Total = ItemTotal(item.Quantity, item.UnitPrice)
	return append(items, item)
}

// SuggestedMaterials exposes a copy of the picklist for the admin UI.
func SuggestedMaterials() []dbtypes.LineItem {
	out := make([]dbtypes.LineItem, len(suggestedMaterials))
	copy(out, suggestedMaterials)
	return out
}

// Editable line item fields accepted by UpdateItemField.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldUnit        = "unit"
	FieldUnitPrice   = "unitPrice"
)

// UpdateItemField sets one field on the identified item. Numeric edits
// recompute that item's total; unknown ids or fields are a no-op.
func UpdateItemField(items dbtypes.LineItems, id, field string, value any) dbtypes.LineItems {
	for i := range items {
		if items[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			if s, ok := value.(string); ok {
				items[i].Name = s
			}
		case FieldDescription:
			if s, ok := value.(string); ok {
				items[i].Description = s
			}
		case FieldUnit:
			if s, ok := value.(string); ok {
				items[i].Unit = s
			}
		case FieldQuantity:
			items[i].Quantity = sanitizeAmount(toFloat(value))
			items[i].Total = ItemTotal(items[i].Quantity, items[i].UnitPrice)
		case FieldUnitPrice:
			items[i].UnitPrice = sanitizeAmount(toFloat(value))
			items[i].Total = ItemTotal(items[i].Quantity, items[i].UnitPrice)
		}
		break
	}
	return items
}

// RemoveItem drops the identified item but never empties the quote; the last
// remaining row stays.
func RemoveItem(items dbtypes.LineItems, id string) dbtypes.LineItems {
	if len(items) <= 1 {
		return items
	}
	out := make(dbtypes.LineItems, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return items
	}
	return out
}

// DuplicateItem copies the identified item with a fresh id, inserting the
// copy directly after the source.
func DuplicateItem(items dbtypes.LineItems, id string) dbtypes.LineItems {
	for i, item := range items {
		if item.ID != id {
			continue
		}
		dup := item
		dup.ID = uuid.NewString()
		out := make(dbtypes.LineItems, 0, len(items)+1)
		out = append(out, items[:i+1]...)
		out = append(out, dup)
		out = append(out, items[i+1:]...)
		return out
	}
	return items
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
