package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SkillMap maps a skill name to a 1-5 rating. Stored as a JSON text column.
type SkillMap map[string]int

func (m SkillMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan decodes the stored JSON. Malformed values decode to an empty map so
// a corrupt row never fails a read.
func (m *SkillMap) Scan(value interface{}) error {
	data, ok := rawBytes(value)
	if !ok || len(data) == 0 {
		*m = nil
		return nil
	}
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		*m = SkillMap{}
		return nil
	}
	*m = decoded
	return nil
}

// Validate checks that every rating is within [1,5].
func (m SkillMap) Validate() error {
	for name, rating := range m {
		if rating < 1 || rating > 5 {
			return fmt.Errorf("skill %q rating %d out of range [1,5]", name, rating)
		}
	}
	return nil
}

// StringMap is a generic name-to-string mapping (social links). Stored as a
// JSON text column.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *StringMap) Scan(value interface{}) error {
	data, ok := rawBytes(value)
	if !ok || len(data) == 0 {
		*m = nil
		return nil
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		*m = StringMap{}
		return nil
	}
	*m = decoded
	return nil
}

// StringList is an ordered list of strings (platforms, tags, roles,
// screenshots). Stored as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	data, ok := rawBytes(value)
	if !ok || len(data) == 0 {
		*l = nil
		return nil
	}
	var decoded []string
	if err := json.Unmarshal(data, &decoded); err != nil {
		*l = StringList{}
		return nil
	}
	*l = decoded
	return nil
}

func rawBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}
