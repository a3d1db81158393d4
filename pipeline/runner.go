/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline orchestrates the extraction run: filtered notes in,
// structured extraction results out. A failed note produces a stub record
// instead of aborting, so one bad model response never costs a whole run.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/clinsift/clinsift/extract"
	"github.com/clinsift/clinsift/notes"
)

var (
	extractionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinsift_extractions_total",
		Help: "Total number of notes sent for extraction",
	})

	extractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinsift_extraction_failures_total",
		Help: "Total number of notes whose extraction produced a stub record",
	})
)

// Runner drives the extractor over a batch of notes.
type Runner struct {
	extractor extract.Interface
	workers   int
}

// NewRunner creates a runner. workers bounds concurrent model calls; the
// default of 1 matches free-tier Gemini quotas, where parallelism only
// turns into 429s.
func NewRunner(extractor extract.Interface, workers int) (*Runner, error) {
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if workers <= 0 {
		workers = 1
	}
	return &Runner{extractor: extractor, workers: workers}, nil
}

// Run extracts every note, returning one result per note in input order.
// Notes that fail extraction yield stub records carrying the error. Only
// context cancellation aborts the batch.
func (r *Runner) Run(ctx context.Context, batch []notes.Note) ([]*extract.Extraction, error) {
	log := clog.FromContext(ctx)
	results := make([]*extract.Extraction, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, note := range batch {
		g.Go(func() error {
			extractionsTotal.Inc()
			out, err := r.extractor.Execute(gctx, note.PatientID, note.Text)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.With("patient_id", note.PatientID).With("error", err.Error()).
					Error("Extraction failed, recording stub")
				extractionFailures.Inc()
				results[i] = extract.Stub(note.PatientID, err)
				return nil
			}
			log.With("patient_id", note.PatientID).Info("Extraction OK")
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteResults writes extraction results as an indented JSON array, the
// format consumed by the validation step.
func WriteResults(path string, results []*extract.Extraction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
