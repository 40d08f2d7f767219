package storage

import (
	"encoding/json"
	"fmt"
)

// PutJSON stores a JSON-encoded value.
func PutJSON(w Writer, bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return w.Put(bucket, key, data)
}

// GetJSON loads and decodes a value. ok is false when the key is missing,
// in which case v is left untouched.
func GetJSON(b Backend, bucket, key string, v any) (bool, error) {
	data, ok, err := b.Get(bucket, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return true, nil
}

// DecodeJSON unmarshals a value read through ForEach.
func DecodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
