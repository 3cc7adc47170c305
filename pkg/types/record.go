package types

import (
	"bytes"
	"encoding/json"
)

// Field names with structural meaning in every record.
const (
	FieldID    = "id"
	FieldFecha = "fecha"
)

// Record is a schema-free entity: field name to JSON-compatible value.
// Only the id field is structurally significant to the store.
type Record map[string]any

// ID returns the record's id field, or "" if it is missing or not a string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone returns a deep copy of the record. Nested maps and slices produced by
// JSON decoding are copied as well.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case Record:
		return val.Clone()
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// Normalize returns r in the form it has after a save and reload: encoded as
// JSON and decoded with numbers as json.Number. The result shares no memory
// with r, including typed slices and maps inside it.
func (r Record) Normalize() (Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var out Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Record{}
	}
	return out, nil
}

// CloneRecords deep-copies a slice of records. A nil slice yields an empty one.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
