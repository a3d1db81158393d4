/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package extract

import "github.com/clinsift/clinsift/prompt"

// systemPrompt frames the model as a clinical data extractor. The wording
// deliberately insists on verbatim terminology: validation scores exact
// string matches against the gold standard, so any paraphrasing by the model
// shows up as a miss.
var systemPrompt = prompt.MustNew(`You are a clinical data extractor for attending physicians.
You extract structured diabetes and blood pressure data from discharge notes.
Output ONLY valid JSON matching the exact schema provided. No markdown, no code fences, no explanation, no text outside the JSON.
Preserve all medical terminology exactly as written in the note (diagnoses, medications, lab names, units).

You extract only:
(1) Diabetes Mellitus: type (one of: Type 1 diabetes mellitus, Type 2 diabetes mellitus, Gestational diabetes, Unspecified diabetes, or empty);
status (active, historical, family history, or empty); A1C values in exact format from the note; glucose levels;
insulin medications with exact dosages; oral hypoglycemics with exact dosages.
(2) Blood pressure: exact BP readings (e.g. 150/95 mmHg); hypertension diagnosis;
hypertensive urgency/emergency if mentioned; antihypertensive medications with exact dosages.
(3) Any abnormal markers mentioned.

Use empty strings or empty arrays when not found. Preserve exact wording and units from the note.`)

// notePrompt carries the per-note data. The schema placeholder is bound once
// at extractor construction from the reflected Extraction schema.
var notePrompt = prompt.MustNew(`Extract diabetes and blood pressure data from this discharge note.
Preserve all medical terminology exactly as written.
Use empty string or empty array when a value is not found.

patient_id to use: {{patient_id}}

Discharge note:
---
{{note}}
---

Your response must be STRICT RAW JSON only. No explanations. No markdown. No text outside JSON.
Use exactly this schema:
{{schema}}`)
