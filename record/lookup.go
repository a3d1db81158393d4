/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package record

import "fmt"

// Kind tags what a Lookup found at the end of a field path.
type Kind int

const (
	// KindAbsent means the path did not resolve: a key was missing, an
	// intermediate value was not an object, or the value was JSON null.
	KindAbsent Kind = iota
	// KindScalar means the path resolved to a single value.
	KindScalar
	// KindList means the path resolved to an array.
	KindList
)

// Value is the tagged result of a field lookup. Callers pick the default
// they need (empty string or empty list) via String and Strings; no lookup
// outcome is ever an error.
type Value struct {
	Kind Kind
	raw  any
}

// Lookup traverses a record by a path of keys. Any missing key or non-object
// intermediate yields an absent Value immediately. It never panics on
// malformed model output.
func Lookup(rec Record, keys ...string) Value {
	var current any = rec
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return Value{Kind: KindAbsent}
		}
		current, ok = obj[key]
		if !ok {
			return Value{Kind: KindAbsent}
		}
	}
	switch v := current.(type) {
	case nil:
		return Value{Kind: KindAbsent}
	case []any:
		return Value{Kind: KindList, raw: v}
	default:
		return Value{Kind: KindScalar, raw: v}
	}
}

// String returns the scalar value, stringified, or "" when the value is
// absent or a list. Models occasionally emit numbers where the schema says
// string, so non-string scalars are formatted rather than dropped.
func (v Value) String() string {
	if v.Kind != KindScalar {
		return ""
	}
	if s, ok := v.raw.(string); ok {
		return s
	}
	return fmt.Sprint(v.raw)
}

// Strings coerces the value to a list of strings. Absent values, scalars
// where a list was expected, and any other type mismatch all yield an empty
// list so a single malformed field never takes down a validation run.
func (v Value) Strings() []string {
	if v.Kind != KindList {
		return nil
	}
	items := v.raw.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
