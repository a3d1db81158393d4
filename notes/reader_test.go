/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package notes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filtered.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeCSV(t, `subject_id,text
10001,"Pt with Type 2 diabetes mellitus."
10002,""
10003,"Hypertension, BP 150/95 mmHg."
`)

	got, err := Read(context.Background(), path, "text", 0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []Note{
		{PatientID: "10001", Text: "Pt with Type 2 diabetes mellitus."},
		{PatientID: "10003", Text: "Hypertension, BP 150/95 mmHg."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLimit(t *testing.T) {
	path := writeCSV(t, `subject_id,text
1,"note one about diabetes"
2,"note two about diabetes"
3,"note three about diabetes"
`)

	got, err := Read(context.Background(), path, "text", 2)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Read() returned %d notes, want 2", len(got))
	}
}

func TestReadFallbackID(t *testing.T) {
	path := writeCSV(t, `text
"first note about a1c"
"second note about a1c"
`)

	got, err := Read(context.Background(), path, "text", 0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	// No identifier column: the zero-based row index stands in.
	if got[0].PatientID != "0" || got[1].PatientID != "1" {
		t.Errorf("fallback IDs = %q, %q; want 0, 1", got[0].PatientID, got[1].PatientID)
	}
}

func TestReadPrefersSubjectID(t *testing.T) {
	path := writeCSV(t, `patient_id,subject_id,text
p-1,s-1,"note about diabetes"
`)

	got, err := Read(context.Background(), path, "text", 0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got[0].PatientID != "s-1" {
		t.Errorf("PatientID = %q, want s-1 (subject_id wins)", got[0].PatientID)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "text", 0)
	if err == nil {
		t.Fatal("Read() expected error for missing file")
	}
}
