package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDocument stores raw JSON in a jsonb (postgres) or text (sqlite) column.
type JSONDocument json.RawMessage

func (d *JSONDocument) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case string:
		*d = append((*d)[:0], v...)
		return nil
	case []byte:
		*d = append((*d)[:0], v...)
		return nil
	default:
		return fmt.Errorf("JSONDocument: unsupported Scan type %T", src)
	}
}

func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	if !json.Valid(d) {
		return nil, fmt.Errorf("JSONDocument: invalid json")
	}
	return string(d), nil
}

// Marshal encodes v into a document.
func Marshal(v any) (JSONDocument, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONDocument(raw), nil
}

// Unmarshal decodes the document into v. An empty document leaves v untouched.
func (d JSONDocument) Unmarshal(v any) error {
	if len(d) == 0 {
		return nil
	}
	return json.Unmarshal(d, v)
}
