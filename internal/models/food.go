package models

import (
	"encoding/json"
	"maps"
)

// Reserved JSON keys written by FoodItem.MarshalJSON
const (
	FieldName      = "name"
	FieldCategory  = "_category"
	FieldOrderLink = "orderLink"
)

// FoodItem represents a single catalog entry.
// Fields carries the descriptive attributes from the catalog document (id, img,
// dsc, price, rate, ...) and is never mutated after load.
type FoodItem struct {
	Name      string
	Category  string
	OrderLink string
	Fields    map[string]any
}

// MarshalJSON flattens Fields next to name, _category and orderLink.
// orderLink is omitted until a recommendation sets it.
func (f FoodItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Fields)+3)
	maps.Copy(out, f.Fields)
	out[FieldName] = f.Name
	out[FieldCategory] = f.Category
	if f.OrderLink != "" {
		out[FieldOrderLink] = f.OrderLink
	} else {
		delete(out, FieldOrderLink)
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON
func (f *FoodItem) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Name, _ = raw[FieldName].(string)
	f.Category, _ = raw[FieldCategory].(string)
	f.OrderLink, _ = raw[FieldOrderLink].(string)
	delete(raw, FieldName)
	delete(raw, FieldCategory)
	delete(raw, FieldOrderLink)
	f.Fields = raw
	return nil
}
