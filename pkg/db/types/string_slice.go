package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a []string as a JSON column (images, tags).
type StringSlice []string

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return s.unmarshal(v)
	case string:
		return s.unmarshal([]byte(v))
	default:
		return fmt.Errorf("StringSlice: unsupported Scan type %T", src)
	}
}

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func (s *StringSlice) unmarshal(payload []byte) error {
	if len(payload) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(payload, s)
}
