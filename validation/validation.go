// Package validation collects field-level problems found in request payloads.
package validation

import (
	"bytes"
	"encoding/json"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields splits a JSON object into its members. ok is false when raw is not
// a JSON object.
func Fields(raw []byte) (fields map[string]json.RawMessage, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// String records a violation when field is present with a value other than
// a JSON string or null.
func String(field string, fields map[string]json.RawMessage, v Violations) {
	if kind(fields, field) > kindString {
		v[field] = "must_be_string"
	}
}

// Array records a violation when field is present with a value other than
// a JSON array or null.
func Array(field string, fields map[string]json.RawMessage, v Violations) {
	if k := kind(fields, field); k != kindAbsent && k != kindArray {
		v[field] = "must_be_array"
	}
}

// Scalar accepts strings, numbers and null, the forms a numeric-like value
// may take.
func Scalar(field string, fields map[string]json.RawMessage, v Violations) {
	if k := kind(fields, field); k == kindArray || k == kindObject {
		v[field] = "must_be_scalar"
	}
}

type jsonKind int

const (
	kindAbsent jsonKind = iota // missing or null
	kindString
	kindArray
	kindObject
	kindOther // number or boolean
)

func kind(fields map[string]json.RawMessage, field string) jsonKind {
	raw := bytes.TrimSpace(fields[field])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return kindAbsent
	}
	switch raw[0] {
	case '"':
		return kindString
	case '[':
		return kindArray
	case '{':
		return kindObject
	}
	return kindOther
}
