/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package llmjson pulls JSON out of model responses that may be wrapped in
// markdown fences or surrounded by prose, despite instructions to return raw
// JSON only.
package llmjson

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Clean extracts the JSON content from a model response. It prefers a fenced
// ```json block, then a fenced ``` block wrapping the whole response, then
// the outermost {...} span, and finally returns the trimmed input unchanged.
func Clean(responseText string) string {
	// Look for a ```json fence on its own line and collect until the
	// closing fence.
	lines := strings.Split(responseText, "\n")
	var jsonBuffer bytes.Buffer
	inBlock := false
	foundBlock := false

	for _, line := range lines {
		if !inBlock && strings.TrimSpace(line) == "```json" {
			inBlock = true
			foundBlock = true
			continue
		}
		if inBlock && strings.TrimSpace(line) == "```" {
			break
		}
		if inBlock {
			if jsonBuffer.Len() > 0 {
				jsonBuffer.WriteString("\n")
			}
			jsonBuffer.WriteString(line)
		}
	}
	if foundBlock {
		// An empty fenced block yields "" and the caller reports the
		// unmarshal failure.
		return strings.TrimSpace(jsonBuffer.String())
	}

	text := strings.TrimSpace(responseText)

	// Whole response wrapped in a fence.
	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Already a bare object.
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text
	}

	// Prose around a JSON object: take the outermost brace span.
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			return text[start : end+1]
		}
	}

	return text
}

// Extract cleans a model response and unmarshals it into T.
func Extract[T any](responseText string) (T, error) {
	var result T
	if err := json.Unmarshal([]byte(Clean(responseText)), &result); err != nil {
		return result, err
	}
	return result, nil
}
