/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/clinsift/clinsift/notes"
)

var filterFlags struct {
	input      string
	output     string
	configPath string
	keywords   []string
	textColumn string
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter discharge notes by diabetes and hypertension keywords",
	Long: `Scan a discharge-note CSV (plain or gzip) and keep the rows whose text
column contains any of the configured keywords, case-insensitively.

Keywords come from --keywords, or from a YAML config file via --config,
falling back to the built-in defaults (diabetes, hypertension, a1c).`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	f := filterCmd.Flags()
	f.StringVarP(&filterFlags.input, "input", "i", "", "Input CSV path, .gz supported (default: <data-dir>/discharge.csv.gz)")
	f.StringVarP(&filterFlags.output, "output", "o", "", "Output CSV path (default: <data-dir>/filtered_notes.csv)")
	f.StringVar(&filterFlags.configPath, "config", "", "YAML filter config path")
	f.StringSliceVar(&filterFlags.keywords, "keywords", nil, "Keywords to match (overrides config)")
	f.StringVar(&filterFlags.textColumn, "text-column", "", "Name of the note text column (overrides config)")
}

func runFilter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	fcfg := notes.DefaultConfig()
	if filterFlags.configPath != "" {
		fcfg, err = notes.LoadConfig(filterFlags.configPath)
		if err != nil {
			return fmt.Errorf("loading filter config: %w", err)
		}
	}
	if len(filterFlags.keywords) > 0 {
		fcfg.Keywords = filterFlags.keywords
	}
	if filterFlags.textColumn != "" {
		fcfg.TextColumn = filterFlags.textColumn
	}

	input := filterFlags.input
	if input == "" {
		input = cfg.path("discharge.csv.gz")
	}
	output := filterFlags.output
	if output == "" {
		output = cfg.path("filtered_notes.csv")
	}

	log.With("input", input).With("keywords", strings.Join(fcfg.Keywords, ",")).
		Info("Filtering notes")
	stats, err := notes.Filter(ctx, fcfg, input, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d rows, matched %d\n", stats.RowsScanned, stats.RowsMatched)
	fmt.Fprintf(cmd.OutOrStdout(), "Filtered notes written to: %s\n", output)
	return nil
}
