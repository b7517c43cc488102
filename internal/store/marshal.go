package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalRecord converts a record to JSON TEXT for storage.
// HTML escaping is disabled so stored text reads the same as the values.
func marshalRecord(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalRecord parses stored JSON TEXT into a record.
func unmarshalRecord[T any](data string) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return rec, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
