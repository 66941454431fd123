package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number or boolean and keeps its text.
// Clients send question IDs and answers in either form.  Use *FlexString
// where a JSON null must stay NULL.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexString(b)
	return nil
}

// FlexNumber accepts a JSON number or a numeric string ("3", " 2.5 ").
// null, booleans, objects and non-numeric strings decode as 0.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*n = FlexNumber(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			f = 0
		}
		*n = FlexNumber(f)
	default:
		*n = 0
	}
	return nil
}
