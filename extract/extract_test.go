/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinsift/clinsift/retry"
)

func TestValidate(t *testing.T) {
	valid := map[string]any{
		"patient_id":       "1001",
		"diabetes":         map[string]any{"type": "Type 2 diabetes mellitus"},
		"blood_pressure":   map[string]any{},
		"abnormal_markers": []any{"elevated A1C"},
	}

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{{
		name:   "valid response",
		mutate: func(map[string]any) {},
	}, {
		name:    "missing patient_id",
		mutate:  func(m map[string]any) { delete(m, "patient_id") },
		wantErr: "missing required key: patient_id",
	}, {
		name:    "diabetes not an object",
		mutate:  func(m map[string]any) { m["diabetes"] = "Type 2" },
		wantErr: "invalid 'diabetes' object",
	}, {
		name:    "missing blood_pressure",
		mutate:  func(m map[string]any) { delete(m, "blood_pressure") },
		wantErr: "missing required key: blood_pressure",
	}, {
		name:    "abnormal_markers not an array",
		mutate:  func(m map[string]any) { m["abnormal_markers"] = "none" },
		wantErr: "'abnormal_markers' must be an array",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := make(map[string]any, len(valid))
			for k, v := range valid {
				obj[k] = v
			}
			tt.mutate(obj)

			err := Validate(obj)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse(t *testing.T) {
	response := "```json\n" + `{
		"patient_id": "1001",
		"diabetes": {
			"type": "Type 2 diabetes mellitus",
			"status": "active",
			"a1c_values": ["7.2%"],
			"glucose_values": ["142 mg/dL"],
			"medications": ["metformin 500 mg PO BID"]
		},
		"blood_pressure": {
			"hypertension_status": "active",
			"bp_readings": ["150/95 mmHg"],
			"medications": ["lisinopril 10 mg daily"]
		},
		"abnormal_markers": ["elevated A1C"]
	}` + "\n```"

	got, err := Parse(response)
	require.NoError(t, err)
	require.Equal(t, "1001", got.PatientID)
	require.Equal(t, "Type 2 diabetes mellitus", got.Diabetes.Type)
	require.Equal(t, []string{"7.2%"}, got.Diabetes.A1CValues)
	require.Equal(t, []string{"150/95 mmHg"}, got.BloodPressure.BPReadings)
	require.Empty(t, got.Error)
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := Parse("I am sorry, I cannot process this note.")
	require.ErrorContains(t, err, "not valid JSON")
}

func TestParseRejectsWrongShape(t *testing.T) {
	_, err := Parse(`{"patient_id": "1001", "diabetes": [], "blood_pressure": {}, "abnormal_markers": []}`)
	require.ErrorContains(t, err, "schema validation")
}

func TestStub(t *testing.T) {
	stub := Stub("1001", errorString("agent output is not valid JSON"))
	require.Equal(t, "1001", stub.PatientID)
	require.Contains(t, stub.Error, "not valid JSON")
	require.Empty(t, stub.Diabetes.Type)
	require.NotNil(t, stub.AbnormalMarkers)
	require.Empty(t, stub.AbnormalMarkers)
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{{
		name: "valid model",
		opt:  WithModel("gemini-2.0-flash"),
	}, {
		name:    "non-gemini model",
		opt:     WithModel("claude-sonnet-4-5"),
		wantErr: true,
	}, {
		name: "valid temperature",
		opt:  WithTemperature(0.0),
	}, {
		name:    "temperature out of range",
		opt:     WithTemperature(2.5),
		wantErr: true,
	}, {
		name: "valid max tokens",
		opt:  WithMaxOutputTokens(4096),
	}, {
		name:    "non-positive max tokens",
		opt:     WithMaxOutputTokens(0),
		wantErr: true,
	}, {
		name: "valid retry config",
		opt:  WithRetryConfig(retry.Default()),
	}, {
		name:    "invalid retry config",
		opt:     WithRetryConfig(retry.Config{MaxRetries: -1}),
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt(&extractor{maxOutputTokens: 8192})
			if (err != nil) != tt.wantErr {
				t.Errorf("option error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsRetryableGeminiError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"googleapi: Error 429: RESOURCE_EXHAUSTED", true},
		{"rpc error: code = ResourceExhausted desc = Quota exceeded. Please retry in 31.98s", true},
		{"503 Service Unavailable", true},
		{"model is Overloaded", true},
		{"googleapi: Error 400: invalid request", false},
		{"context deadline exceeded", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := errorString(tt.msg)
			if got := isRetryableGeminiError(err); got != tt.want {
				t.Errorf("isRetryableGeminiError(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
	if isRetryableGeminiError(nil) {
		t.Error("isRetryableGeminiError(nil) = true, want false")
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }

func TestPromptSchema(t *testing.T) {
	got, err := PromptSchema()
	require.NoError(t, err)
	for _, field := range []string{"patient_id", "diabetes", "blood_pressure", "abnormal_markers", "a1c_values", "bp_readings"} {
		require.Contains(t, got, field)
	}
}

func TestResponseSchemaCoversScoredFields(t *testing.T) {
	s := ResponseSchema()
	require.Contains(t, s.Properties, "diabetes")
	require.Contains(t, s.Properties["diabetes"].Properties, "a1c_values")
	require.Contains(t, s.Properties["diabetes"].Properties, "glucose_values")
	require.Contains(t, s.Properties, "blood_pressure")
	require.Contains(t, s.Properties["blood_pressure"].Properties, "bp_readings")
}
