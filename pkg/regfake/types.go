package regfake

import (
	"bytes"
	"encoding/json"
)

// FieldName names a logical datum in a record, e.g. "inn" or "grnz".
type FieldName string

// Value is the result of a field generator. A Value either holds something
// or is absent; absent values encode as JSON null.
type Value struct {
	v  any
	ok bool
}

// None is the absent value.
var None = Value{}

// Some wraps v as a present value.
func Some(v any) Value {
	return Value{v: v, ok: true}
}

// Get returns the wrapped value and whether it is present.
func (v Value) Get() (any, bool) {
	return v.v, v.ok
}

// IsPresent reports whether the value holds something.
func (v Value) IsPresent() bool {
	return v.ok
}

// Any returns the wrapped value, or nil when absent.
func (v Value) Any() any {
	if !v.ok {
		return nil
	}
	return v.v
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// Record is a generated record. Keys keep the order the template declares them in.
type Record struct {
	keys   []FieldName
	values map[FieldName]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[FieldName]Value)}
}

// Set stores a value under name. A new name is appended to the key order.
func (r *Record) Set(name FieldName, v Value) {
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// Get returns the value stored under name and whether the key exists.
func (r *Record) Get(name FieldName) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []FieldName {
	keys := make([]FieldName, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Map flattens the record into a plain map; absent values become nil.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		m[string(k)] = r.values[k].Any()
	}
	return m
}

// MarshalJSON writes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Account is a provisioned login/password pair.
type Account struct {
	Login    string `json:"login" yaml:"login" msgpack:"login"`
	Password string `json:"password" yaml:"password" msgpack:"password"`
}

// Vehicle is a registered vehicle known to the reference data.
type Vehicle struct {
	Plate string `json:"plate" yaml:"plate"`
	Mark  string `json:"mark,omitempty" yaml:"mark,omitempty"`
}
