/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package notes

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
)

// Stats summarizes one filter run.
type Stats struct {
	RowsScanned int
	RowsMatched int
}

// Filter streams the discharge-note CSV at inputPath, writing rows whose
// text column contains any configured keyword to outputPath. Input ending in
// .gz is transparently decompressed. All original columns are preserved.
func Filter(ctx context.Context, cfg Config, inputPath, outputPath string) (Stats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, fmt.Errorf("input file not found: %s", inputPath)
		}
		return Stats{}, fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	var reader io.Reader = in
	if strings.HasSuffix(inputPath, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return Stats{}, fmt.Errorf("opening gzip stream %s: %w", inputPath, err)
		}
		defer gz.Close()
		reader = gz
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Stats{}, fmt.Errorf("creating output directory: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	stats, err := filterCSV(ctx, cfg, reader, out)
	if err != nil {
		return stats, err
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("flushing %s: %w", outputPath, err)
	}

	clog.FromContext(ctx).
		With("scanned", stats.RowsScanned).
		With("matched", stats.RowsMatched).
		With("output", outputPath).
		Info("Note filter finished")
	return stats, nil
}

// filterCSV does the streaming work on already-opened streams.
func filterCSV(ctx context.Context, cfg Config, r io.Reader, w io.Writer) (Stats, error) {
	log := clog.FromContext(ctx)

	cr := csv.NewReader(r)
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header, err := cr.Read()
	if err != nil {
		return Stats{}, fmt.Errorf("reading CSV header: %w", err)
	}
	textIdx := -1
	for i, col := range header {
		if col == cfg.TextColumn {
			textIdx = i
			break
		}
	}
	if textIdx == -1 {
		return Stats{}, fmt.Errorf("column %q does not exist, available columns: %v", cfg.TextColumn, header)
	}
	if err := cw.Write(header); err != nil {
		return Stats{}, fmt.Errorf("writing header: %w", err)
	}

	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		keywords = append(keywords, strings.ToLower(kw))
	}

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading CSV row %d: %w", stats.RowsScanned+1, err)
		}

		stats.RowsScanned++
		rowsScanned.Inc()

		if textIdx < len(row) && matches(row[textIdx], keywords) {
			stats.RowsMatched++
			rowsMatched.Inc()
			if err := cw.Write(row); err != nil {
				return stats, fmt.Errorf("writing matched row: %w", err)
			}
		}

		if cfg.LogEvery > 0 && stats.RowsScanned%cfg.LogEvery == 0 {
			log.With("scanned", stats.RowsScanned).
				With("matched", stats.RowsMatched).
				Info("Filtering notes")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("flushing CSV output: %w", err)
	}
	return stats, nil
}

// matches reports whether the note text contains any keyword,
// case-insensitively.
func matches(text string, lowerKeywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range lowerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
