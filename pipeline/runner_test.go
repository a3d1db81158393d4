/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/clinsift/clinsift/extract"
	"github.com/clinsift/clinsift/notes"
)

type fakeExtractor struct {
	calls atomic.Int32
	fn    func(patientID, text string) (*extract.Extraction, error)
}

func (f *fakeExtractor) Execute(_ context.Context, patientID, text string) (*extract.Extraction, error) {
	f.calls.Add(1)
	return f.fn(patientID, text)
}

func TestRunPreservesOrder(t *testing.T) {
	t.Parallel()

	fake := &fakeExtractor{fn: func(patientID, _ string) (*extract.Extraction, error) {
		return &extract.Extraction{PatientID: patientID, AbnormalMarkers: []string{}}, nil
	}}
	r, err := NewRunner(fake, 3)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	batch := []notes.Note{
		{PatientID: "p1", Text: "note one"},
		{PatientID: "p2", Text: "note two"},
		{PatientID: "p3", Text: "note three"},
	}
	results, err := r.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if results[i].PatientID != want {
			t.Errorf("results[%d].PatientID = %q, want %q", i, results[i].PatientID, want)
		}
	}
	if got := fake.calls.Load(); got != 3 {
		t.Errorf("extractor called %d times, want 3", got)
	}
}

func TestRunStubsFailures(t *testing.T) {
	t.Parallel()

	fake := &fakeExtractor{fn: func(patientID, _ string) (*extract.Extraction, error) {
		if patientID == "p2" {
			return nil, errors.New("model returned garbage")
		}
		return &extract.Extraction{PatientID: patientID, AbnormalMarkers: []string{}}, nil
	}}
	r, err := NewRunner(fake, 1)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	batch := []notes.Note{
		{PatientID: "p1", Text: "fine"},
		{PatientID: "p2", Text: "broken"},
		{PatientID: "p3", Text: "fine"},
	}
	results, err := r.Run(context.Background(), batch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[1].Error == "" {
		t.Error("expected stub record with error for p2")
	}
	if results[1].PatientID != "p2" {
		t.Errorf("stub PatientID = %q, want p2", results[1].PatientID)
	}
	if results[0].Error != "" || results[2].Error != "" {
		t.Error("unexpected error on successful records")
	}
}

func TestRunContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeExtractor{fn: func(patientID, _ string) (*extract.Extraction, error) {
		cancel()
		return nil, ctx.Err()
	}}
	r, err := NewRunner(fake, 1)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	_, err = r.Run(ctx, []notes.Note{{PatientID: "p1", Text: "x"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestNewRunnerRequiresExtractor(t *testing.T) {
	t.Parallel()

	if _, err := NewRunner(nil, 1); err == nil {
		t.Error("expected error for nil extractor")
	}
}

func TestNewRunnerDefaultsWorkers(t *testing.T) {
	t.Parallel()

	r, err := NewRunner(&fakeExtractor{}, 0)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if r.workers != 1 {
		t.Errorf("workers = %d, want 1", r.workers)
	}
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "extraction_results.json")
	results := []*extract.Extraction{
		{PatientID: "p1", AbnormalMarkers: []string{"elevated A1c"}},
		extract.Stub("p2", errors.New("boom")),
	}
	if err := WriteResults(path, results); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("results are not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d records, want 2", len(decoded))
	}
	if decoded[0]["patient_id"] != "p1" {
		t.Errorf("patient_id = %v, want p1", decoded[0]["patient_id"])
	}
	if decoded[1]["error"] != "boom" {
		t.Errorf("error = %v, want boom", decoded[1]["error"])
	}
}
