package repository

import (
	"encoding/json"
	"fmt"
)

// jsonColumn encodes v for a JSON column.  A nil value becomes SQL NULL.
func jsonColumn(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return string(b), nil
}

// rawJSON turns a scanned JSON column into a json.RawMessage; NULL stays nil.
func rawJSON(b []byte) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
