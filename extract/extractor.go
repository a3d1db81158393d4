/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"github.com/clinsift/clinsift/llmjson"
	"github.com/clinsift/clinsift/prompt"
	"github.com/clinsift/clinsift/retry"
)

// Interface is the contract for the note extractor.
type Interface interface {
	// Execute extracts structured findings from one discharge note.
	Execute(ctx context.Context, patientID, noteText string) (*Extraction, error)
}

// extractor is the private Gemini-backed implementation of Interface.
type extractor struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	notePrompt      *prompt.Template // schema placeholder already bound
	retryConfig     retry.Config
	tokens          *tokenMetrics
}

// Option is a functional option for configuring an extractor.
type Option func(*extractor) error

// WithModel sets the Gemini model used for extraction.
func WithModel(model string) Option {
	return func(e *extractor) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature. Extraction wants
// determinism, so anything above zero trades reproducibility for nothing.
func WithTemperature(temperature float32) Option {
	return func(e *extractor) error {
		if temperature < 0.0 || temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens sets the output token limit.
func WithMaxOutputTokens(tokens int32) Option {
	return func(e *extractor) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		e.maxOutputTokens = tokens
		return nil
	}
}

// WithRetryConfig overrides the quota-retry behavior.
func WithRetryConfig(cfg retry.Config) Option {
	return func(e *extractor) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}

// New creates a Gemini-backed extractor.
func New(client *genai.Client, options ...Option) (Interface, error) {
	if client == nil {
		return nil, errors.New("genai client is required")
	}

	schemaJSON, err := PromptSchema()
	if err != nil {
		return nil, err
	}
	boundNote, err := notePrompt.BindText("schema", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("binding schema into note prompt: %w", err)
	}

	e := &extractor{
		client:          client,
		model:           "gemini-2.0-flash",
		temperature:     0.0,
		maxOutputTokens: 8192,
		notePrompt:      boundNote,
		retryConfig:     retry.Default(),
		tokens:          newTokenMetrics("clinsift.extract"),
	}
	for _, opt := range options {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// isRetryableGeminiError classifies quota and transient server errors. The
// genai SDK surfaces these as formatted strings, so classification is by
// substring the same way the API's own guidance phrases them.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "Resource exhausted") ||
		strings.Contains(strings.ToLower(errStr), "quota") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "server error")
}

// Execute implements Interface.
func (e *extractor) Execute(ctx context.Context, patientID, noteText string) (*Extraction, error) {
	log := clog.FromContext(ctx).With("patient_id", patientID)

	bound, err := e.notePrompt.BindText("patient_id", patientID)
	if err != nil {
		return nil, err
	}
	bound, err = bound.BindText("note", noteText)
	if err != nil {
		return nil, err
	}
	userPrompt, err := bound.Build()
	if err != nil {
		return nil, fmt.Errorf("building extraction prompt: %w", err)
	}
	systemText, err := systemPrompt.Build()
	if err != nil {
		return nil, fmt.Errorf("building system prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemText}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}

	log.With("model", e.model).Info("Requesting extraction")
	response, err := retry.Do(ctx, e.retryConfig, "generate_extraction", isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
		return e.client.Models.GenerateContent(ctx, e.model, genai.Text(userPrompt), config)
	})
	if err != nil {
		return nil, fmt.Errorf("generating extraction: %w", err)
	}

	if response.UsageMetadata != nil {
		e.tokens.record(ctx, e.model,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}

	responseText := response.Text()
	if responseText == "" {
		return nil, errors.New("no text content found in response")
	}

	return Parse(responseText)
}

// Parse decodes and validates a model response. Structural validation runs
// on the untyped form first so the error names the malformed part instead
// of a decoder type mismatch.
func Parse(responseText string) (*Extraction, error) {
	raw, err := llmjson.Extract[map[string]any](responseText)
	if err != nil {
		return nil, fmt.Errorf("agent output is not valid JSON: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, fmt.Errorf("agent output failed schema validation: %w", err)
	}
	result, err := llmjson.Extract[Extraction](responseText)
	if err != nil {
		return nil, fmt.Errorf("agent output is not valid JSON: %w", err)
	}
	return &result, nil
}
