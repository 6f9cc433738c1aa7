package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineItem is one row of a quote's materials/services breakdown. The JSON
// field names are the persisted document shape; Total is always derived from
// Quantity and UnitPrice before a write, never trusted from input.
type LineItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// LineItems is the ordered item list stored as a JSONB document column.
type LineItems []LineItem

func (l *LineItems) Scan(src any) error {
	if src == nil {
		*l = LineItems{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("LineItems: unsupported Scan type %T", src)
	}

	if len(raw) == 0 {
		*l = LineItems{}
		return nil
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("LineItems: unmarshal: %w", err)
	}
	*l = LineItems(items)
	return nil
}

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	raw, err := json.Marshal([]LineItem(l))
	if err != nil {
		return nil, fmt.Errorf("LineItems: marshal: %w", err)
	}
	return string(raw), nil
}

// GormDataType keeps GORM from guessing a column type for the document.
func (LineItems) GormDataType() string {
	return "jsonb"
}
