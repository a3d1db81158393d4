/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package record loads and navigates the loosely structured JSON records
// produced by the extraction pipeline and hand-labeled gold datasets.
// Records are plain maps because model output cannot be trusted to match
// the schema: absent or oddly typed fields are data, not errors.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Record is one extraction result or gold-standard entry.
// Nesting is at most two levels deep (e.g. diabetes.a1c_values).
type Record = map[string]any

var (
	// ErrNotFound indicates the dataset file does not exist.
	ErrNotFound = errors.New("dataset file not found")

	// ErrBadFormat indicates the file exists but does not contain a
	// top-level JSON array of records.
	ErrBadFormat = errors.New("dataset is not a JSON array")
)

// Load reads a dataset file containing a top-level JSON array of records.
// Fails with ErrNotFound when the file is absent and ErrBadFormat when the
// content cannot be parsed or the top level is not an array. Both are
// matchable with errors.Is.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Decode into any first so a non-array top level is reported as a
	// format error rather than a generic unmarshal type error.
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadFormat, path, err)
	}

	items, ok := top.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: got %T", ErrBadFormat, path, top)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
			continue
		}
		// A non-object element still occupies a position so alignment
		// with the other dataset is preserved.
		records = append(records, Record{})
	}
	return records, nil
}
