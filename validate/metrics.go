/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validate scores extraction results against a gold-standard dataset.
// Scalar fields are scored with exact-match accuracy and list fields with
// micro-averaged recall; both operate on positionally aligned record pairs.
package validate

import (
	"strings"

	"github.com/clinsift/clinsift/record"
)

// normalize maps absent and empty values to "" and strips surrounding
// whitespace from everything else. No further normalization is applied:
// "7.2%" and "7.2 %" are distinct values.
func normalize(v record.Value) string {
	return strings.TrimSpace(v.String())
}

// ExactMatchAccuracy returns the fraction of aligned record pairs whose
// normalized scalar values are identical (case-sensitive). Returns 0.0 for
// empty input; callers report zero samples separately.
func ExactMatchAccuracy(gold, pred []record.Record, getGold, getPred record.Getter) float64 {
	n := len(gold)
	if n == 0 {
		return 0.0
	}
	correct := 0
	for i := 0; i < n && i < len(pred); i++ {
		if normalize(getGold(gold[i])) == normalize(getPred(pred[i])) {
			correct++
		}
	}
	return float64(correct) / float64(n)
}

// ListRecall returns micro-averaged recall over a list field: true positives
// and false negatives are summed across all aligned records before dividing,
// so a record with many gold items weighs more than one with a single item.
// A gold item is a true positive when its whitespace-stripped string appears
// anywhere in the predicted list for the same record; order and duplicates on
// the predicted side are irrelevant, and predicted-only items are ignored.
// When no gold items exist at all, recall is vacuously 1.0.
func ListRecall(gold, pred []record.Record, getGold, getPred record.Getter) float64 {
	var tp, fn int
	for i := 0; i < len(gold) && i < len(pred); i++ {
		predicted := make(map[string]struct{})
		for _, item := range getPred(pred[i]).Strings() {
			predicted[strings.TrimSpace(item)] = struct{}{}
		}
		for _, item := range getGold(gold[i]).Strings() {
			if _, ok := predicted[strings.TrimSpace(item)]; ok {
				tp++
			} else {
				fn++
			}
		}
	}
	if tp+fn == 0 {
		return 1.0
	}
	return float64(tp) / float64(tp+fn)
}
