/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package extract

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// reflector is configured so the reflected schema matches what the prompt
// promises: a flat object, no $ref indirection, field presence enforced.
var reflector = jsonschema.Reflector{
	RequiredFromJSONSchemaTags: true,
	ExpandedStruct:             true,
	AllowAdditionalProperties:  true,
	DoNotReference:             true,
}

// PromptSchema renders the Extraction JSON schema as indented JSON for
// embedding in the model instructions. Deriving it from the struct keeps the
// prompt and the decoder from drifting apart.
func PromptSchema() (string, error) {
	s := reflector.Reflect(&Extraction{})
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling extraction schema: %w", err)
	}
	return string(b), nil
}

// ResponseSchema constrains Gemini's structured output to the extraction
// shape. The genai schema language is narrower than JSON Schema, so this is
// maintained by hand alongside the Extraction struct.
func ResponseSchema() *genai.Schema {
	stringList := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        "array",
			Items:       &genai.Schema{Type: "string"},
			Description: desc,
		}
	}
	return &genai.Schema{
		Type: "object",
		Properties: map[string]*genai.Schema{
			"patient_id": {
				Type:        "string",
				Description: "The provided patient identifier, unchanged",
			},
			"diabetes": {
				Type: "object",
				Properties: map[string]*genai.Schema{
					"type": {
						Type:        "string",
						Description: "One of: Type 1 diabetes mellitus, Type 2 diabetes mellitus, Gestational diabetes, Unspecified diabetes, or empty",
					},
					"status": {
						Type:        "string",
						Description: "One of: active, historical, family history, or empty",
					},
					"a1c_values":     stringList("Exact value and unit as in note (e.g. '7.2%')"),
					"glucose_values": stringList("Exact value and unit as in note (e.g. '142 mg/dL')"),
					"medications":    stringList("Name and exact dosage as in the note (e.g. 'metformin 500 mg PO BID')"),
				},
				Required: []string{"type", "status", "a1c_values", "glucose_values", "medications"},
			},
			"blood_pressure": {
				Type: "object",
				Properties: map[string]*genai.Schema{
					"hypertension_status": {
						Type:        "string",
						Description: "Hypertension diagnosis status, or empty if not mentioned",
					},
					"bp_readings": stringList("Exact value as in note (e.g. '150/95 mmHg')"),
					"medications": stringList("Antihypertensive name and exact dosage as in the note"),
				},
				Required: []string{"hypertension_status", "bp_readings", "medications"},
			},
			"abnormal_markers": stringList("Any abnormal markers mentioned in the note"),
		},
		Required: []string{"patient_id", "diabetes", "blood_pressure", "abnormal_markers"},
	}
}
