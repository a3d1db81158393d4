/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package notes

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
)

// Note is one filtered discharge note queued for extraction.
type Note struct {
	PatientID string
	Text      string
}

// patientIDColumns lists the columns tried, in order, for a patient
// identifier. MIMIC exports carry subject_id and hadm_id; synthetic
// datasets use patient_id.
var patientIDColumns = []string{"subject_id", "hadm_id", "patient_id"}

// Read loads up to limit notes from a filtered CSV. Rows with a blank text
// column are skipped with a warning; a row without any identifier column
// falls back to its zero-based row index.
func Read(ctx context.Context, path string, textColumn string, limit int) ([]Note, error) {
	log := clog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("filtered notes file not found: %s (run the filter step first)", path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	textIdx := -1
	idIdx := -1
	for i, col := range header {
		if col == textColumn {
			textIdx = i
		}
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("column %q does not exist, available columns: %v", textColumn, header)
	}
	for _, want := range patientIDColumns {
		for i, col := range header {
			if col == want {
				idIdx = i
				break
			}
		}
		if idIdx != -1 {
			break
		}
	}

	var out []Note
	for row := 0; limit <= 0 || len(out) < limit; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}

		text := ""
		if textIdx < len(rec) {
			text = strings.TrimSpace(rec[textIdx])
		}
		if text == "" {
			log.With("row", row).Warn("Empty note, skipping")
			continue
		}

		id := strconv.Itoa(row)
		if idIdx != -1 && idIdx < len(rec) && strings.TrimSpace(rec[idIdx]) != "" {
			id = strings.TrimSpace(rec[idIdx])
		}

		out = append(out, Note{PatientID: id, Text: text})
	}
	return out, nil
}
