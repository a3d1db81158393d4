/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"context"

	"github.com/chainguard-dev/clog"

	"github.com/clinsift/clinsift/record"
)

// Summary holds the metrics from one validation run. The JSON tags match the
// metric keys emitted by the extraction pipeline's tooling.
type Summary struct {
	NSamples int `json:"n_samples"`

	DiabetesTypeAccuracy         float64 `json:"diabetes_type_accuracy"`
	DiabetesStatusAccuracy       float64 `json:"diabetes_status_accuracy"`
	DiabetesA1CRecall            float64 `json:"diabetes_a1c_recall"`
	DiabetesGlucoseRecall        float64 `json:"diabetes_glucose_recall"`
	BPHypertensionStatusAccuracy float64 `json:"bp_hypertension_status_accuracy"`
	BPReadingsRecall             float64 `json:"bp_readings_recall"`
}

// Run loads the gold and prediction datasets, aligns them by position, and
// computes all metrics. A length mismatch is not an error: the longer dataset
// is truncated to the shorter. File-level failures (missing file, bad format)
// are returned as-is so the caller can abort without a partial report.
func Run(ctx context.Context, goldPath, predPath string) (Summary, error) {
	log := clog.FromContext(ctx)

	gold, err := record.Load(goldPath)
	if err != nil {
		return Summary{}, err
	}
	pred, err := record.Load(predPath)
	if err != nil {
		return Summary{}, err
	}

	n := min(len(gold), len(pred))
	if len(gold) != len(pred) {
		log.With("gold", len(gold)).With("pred", len(pred)).With("aligned", n).
			Warn("Dataset lengths differ, truncating to the shorter")
	}
	if n == 0 {
		// Conventional values for the empty run: accuracies 0.0 and
		// vacuously perfect recalls. The report renders only the
		// no-samples notice.
		return Summary{
			DiabetesA1CRecall:     1.0,
			DiabetesGlucoseRecall: 1.0,
			BPReadingsRecall:      1.0,
		}, nil
	}
	gold, pred = gold[:n], pred[:n]

	return Summary{
		NSamples: n,

		DiabetesTypeAccuracy:   ExactMatchAccuracy(gold, pred, record.DiabetesType, record.DiabetesType),
		DiabetesStatusAccuracy: ExactMatchAccuracy(gold, pred, record.DiabetesStatus, record.DiabetesStatus),
		DiabetesA1CRecall:      ListRecall(gold, pred, record.DiabetesA1C, record.DiabetesA1C),
		DiabetesGlucoseRecall:  ListRecall(gold, pred, record.DiabetesGlucose, record.DiabetesGlucose),

		BPHypertensionStatusAccuracy: ExactMatchAccuracy(gold, pred, record.HypertensionStatus, record.HypertensionStatus),
		BPReadingsRecall:             ListRecall(gold, pred, record.BloodPressureReading, record.BloodPressureReading),
	}, nil
}
