/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package extract runs a Gemini model over filtered discharge notes and
// parses its output into structured diabetes and blood-pressure findings.
package extract

import (
	"errors"
	"fmt"
)

// Extraction is the structured output expected from the model for one
// discharge note. Values are copied verbatim from the note; empty string or
// empty array means not found.
type Extraction struct {
	PatientID       string                `json:"patient_id"`
	Diabetes        DiabetesFindings      `json:"diabetes"`
	BloodPressure   BloodPressureFindings `json:"blood_pressure"`
	AbnormalMarkers []string              `json:"abnormal_markers"`

	// Error is set on stub records when extraction failed for this note.
	// The pipeline keeps going and the validation step scores the stub's
	// empty fields.
	Error string `json:"error,omitempty"`
}

// DiabetesFindings holds the diabetes-related fields of an extraction.
type DiabetesFindings struct {
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	A1CValues     []string `json:"a1c_values"`
	GlucoseValues []string `json:"glucose_values"`
	Medications   []string `json:"medications"`
}

// BloodPressureFindings holds the blood-pressure-related fields.
type BloodPressureFindings struct {
	HypertensionStatus string   `json:"hypertension_status"`
	BPReadings         []string `json:"bp_readings"`
	Medications        []string `json:"medications"`
}

// Allowed values for the constrained scalar fields, as communicated to the
// model. Empty string means the note does not establish the field.
var (
	DiabetesTypeValues = []string{
		"Type 1 diabetes mellitus",
		"Type 2 diabetes mellitus",
		"Gestational diabetes",
		"Unspecified diabetes",
		"",
	}
	DiabetesStatusValues = []string{"active", "historical", "family history", ""}
)

// Validate checks the minimal structural contract on a raw decoded response.
// It operates on the untyped form because a response that failed to decode
// into Extraction would otherwise mask which part was malformed.
func Validate(obj map[string]any) error {
	if obj == nil {
		return errors.New("root must be a JSON object")
	}
	for _, key := range []string{"patient_id", "diabetes", "blood_pressure", "abnormal_markers"} {
		if _, ok := obj[key]; !ok {
			return fmt.Errorf("missing required key: %s", key)
		}
	}
	if _, ok := obj["diabetes"].(map[string]any); !ok {
		return errors.New("missing or invalid 'diabetes' object")
	}
	if _, ok := obj["blood_pressure"].(map[string]any); !ok {
		return errors.New("missing or invalid 'blood_pressure' object")
	}
	if _, ok := obj["abnormal_markers"].([]any); !ok {
		return errors.New("'abnormal_markers' must be an array")
	}
	return nil
}

// Stub builds the placeholder record written when a note cannot be
// extracted, preserving its position in the results file.
func Stub(patientID string, err error) *Extraction {
	return &Extraction{
		PatientID:       patientID,
		AbnormalMarkers: []string{},
		Error:           err.Error(),
	}
}
