/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newMetricTable creates a table writer with the standard formatting used by
// validation reports.
func newMetricTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 80,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// Report renders a human-readable validation report. When the summary holds
// zero samples only the no-samples notice is printed and no metric lines are
// rendered.
func Report(w io.Writer, s Summary) error {
	fmt.Fprintln(w, "Extraction validation report (gold vs agent output)")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Samples evaluated: %d\n", s.NSamples)

	if s.NSamples == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No samples to evaluate.")
		return nil
	}

	fmt.Fprintln(w)
	table := newMetricTable([]string{"Field", "Metric", "Score"}, w)
	rows := [][]string{
		{"diabetes.type", "exact-match accuracy", fmt.Sprintf("%.4f", s.DiabetesTypeAccuracy)},
		{"diabetes.status", "exact-match accuracy", fmt.Sprintf("%.4f", s.DiabetesStatusAccuracy)},
		{"diabetes.a1c_values", "recall", fmt.Sprintf("%.4f", s.DiabetesA1CRecall)},
		{"diabetes.glucose_values", "recall", fmt.Sprintf("%.4f", s.DiabetesGlucoseRecall)},
		{"blood_pressure.hypertension_status", "exact-match accuracy", fmt.Sprintf("%.4f", s.BPHypertensionStatusAccuracy)},
		{"blood_pressure.bp_readings", "recall", fmt.Sprintf("%.4f", s.BPReadingsRecall)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metric definitions:")
	fmt.Fprintln(w, "  - Exact-match accuracy: fraction of samples where the predicted value equals the gold value.")
	fmt.Fprintln(w, "  - Recall (list fields): TP/(TP+FN); gold items that appear in the prediction.")
	fmt.Fprintln(w, "    A gold item missing from the prediction counts as a false negative.")
	return nil
}
