package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringMap stores a map[string]string as a JSON column. Used for the
// variant selections snapshotted onto order items.
type StringMap map[string]string

func (m *StringMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return m.unmarshal(v)
	case string:
		return m.unmarshal([]byte(v))
	default:
		return fmt.Errorf("StringMap: unsupported Scan type %T", src)
	}
}

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func (m *StringMap) unmarshal(payload []byte) error {
	if len(payload) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(payload, m)
}
