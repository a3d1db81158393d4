/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/clinsift/clinsift/extract"
	"github.com/clinsift/clinsift/notes"
	"github.com/clinsift/clinsift/pipeline"
)

var extractFlags struct {
	input      string
	output     string
	textColumn string
	limit      int
	workers    int
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured findings from filtered notes with Gemini",
	Long: `Read notes from the filtered CSV and run each through Gemini, producing
one structured record per note with diabetes findings, blood-pressure
findings and abnormal markers. Results are written as a JSON array in
input order; a note that fails extraction yields a stub record carrying
the error instead of aborting the run.

Requires GEMINI_API_KEY. The model defaults to gemini-2.0-flash and can
be overridden with GEMINI_MODEL.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.input, "input", "i", "", "Filtered CSV path (default: <data-dir>/filtered_notes.csv)")
	f.StringVarP(&extractFlags.output, "output", "o", "", "Results JSON path (default: <data-dir>/extraction_results.json)")
	f.StringVar(&extractFlags.textColumn, "text-column", "text", "Name of the note text column")
	f.IntVarP(&extractFlags.limit, "limit", "n", 5, "Maximum number of notes to extract")
	f.IntVar(&extractFlags.workers, "workers", 1, "Concurrent model calls (keep at 1 on free-tier quota)")
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required\n\nGet a key at https://aistudio.google.com/apikey and export it:\n  export GEMINI_API_KEY=...")
	}

	input := extractFlags.input
	if input == "" {
		input = cfg.path("filtered_notes.csv")
	}
	output := extractFlags.output
	if output == "" {
		output = cfg.path("extraction_results.json")
	}

	batch, err := notes.Read(ctx, input, extractFlags.textColumn, extractFlags.limit)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return fmt.Errorf("no notes found in %s", input)
	}
	log.With("notes", len(batch)).With("model", cfg.GeminiModel).Info("Starting extraction")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}

	extractor, err := extract.New(client,
		extract.WithModel(cfg.GeminiModel),
		extract.WithTemperature(cfg.Temperature),
	)
	if err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(extractor, extractFlags.workers)
	if err != nil {
		return err
	}
	results, err := runner.Run(ctx, batch)
	if err != nil {
		return err
	}
	if err := pipeline.WriteResults(output, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d notes (%d failed)\n", len(results), failed)
	fmt.Fprintf(cmd.OutOrStdout(), "Results written to: %s\n", output)
	return nil
}
