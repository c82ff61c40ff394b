// Package record provides the ordered name-value row representation
// returned by the query gateway.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Well-known keys used by the gateway's structured results.
const (
	// ErrorKey marks a record that carries a trapped statement failure.
	ErrorKey = "error"

	// AffectedRowsKey marks the result of a successful non-SELECT statement.
	AffectedRowsKey = "affected_rows"
)

// Record is one result row as an ordered mapping from column name to
// value. Column order is preserved through JSON marshaling. Assigning a
// name that is already present replaces its value but keeps the
// position of the first occurrence, so duplicate column names in a
// result set collapse to a single entry with the last value winning.
type Record struct {
	keys   []string
	values map[string]any
}

// New returns an empty record.
func New() Record {
	return Record{values: make(map[string]any)}
}

// FromRow builds a record from parallel column and value slices. Extra
// values beyond the column count are ignored.
func FromRow(columns []string, values []any) Record {
	r := New()
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		r.Set(col, values[i])
	}
	return r
}

// Error returns the single-record representation of a trapped
// statement failure.
func Error(msg string) Record {
	r := New()
	r.Set(ErrorKey, msg)
	return r
}

// AffectedRows returns the single-record representation of a
// successful write or DDL statement.
func AffectedRows(n int64) Record {
	r := New()
	r.Set(AffectedRowsKey, n)
	return r
}

// Set assigns a value to a name, appending the name if it is new.
func (r *Record) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the value for a name and whether it is present.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Keys returns the column names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of entries.
func (r Record) Len() int {
	return len(r.keys)
}

// IsError reports whether the record carries a trapped failure.
func (r Record) IsError() bool {
	_, ok := r.values[ErrorKey]
	return ok
}

// ErrorText returns the failure description, or "" for non-error records.
func (r Record) ErrorText() string {
	v, ok := r.values[ErrorKey]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// MarshalJSON encodes the record as a JSON object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the record. Key order
// follows the document; duplicate keys collapse last-value-wins.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("record: expected JSON object")
	}

	*r = New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Set(key, value)
	}

	_, err = dec.Token()
	return err
}
