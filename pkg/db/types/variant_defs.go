package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VariantDef is one option group a product offers (e.g. size -> 250ml/500ml).
type VariantDef struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// VariantDefs stores the product's option groups as a JSON column.
type VariantDefs []VariantDef

func (v *VariantDefs) Scan(src any) error {
	if src == nil {
		*v = VariantDefs{}
		return nil
	}
	switch raw := src.(type) {
	case []byte:
		return v.unmarshal(raw)
	case string:
		return v.unmarshal([]byte(raw))
	default:
		return fmt.Errorf("VariantDefs: unsupported Scan type %T", src)
	}
}

func (v VariantDefs) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func (v *VariantDefs) unmarshal(payload []byte) error {
	if len(payload) == 0 {
		*v = VariantDefs{}
		return nil
	}
	return json.Unmarshal(payload, v)
}
