package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	return scanJSON(value, j)
}

// Value implements driver.Valuer interface
func (c *Coordinates) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner interface
func (c *Coordinates) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Value implements driver.Valuer interface
func (a Agent) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface
func (a *Agent) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func scanJSON(value interface{}, target interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}
