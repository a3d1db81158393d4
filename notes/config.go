/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package notes filters discharge-note CSV exports down to notes that
// mention the clinical keywords under study, and reads the filtered notes
// back for extraction. Inputs are streamed row by row so multi-gigabyte
// exports never need to fit in memory.
package notes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the keyword filter.
type Config struct {
	// Keywords are matched case-insensitively as substrings of the note
	// text. A row matches when any keyword appears.
	Keywords []string `yaml:"keywords"`
	// TextColumn names the CSV column containing the note body.
	TextColumn string `yaml:"text_column"`
	// LogEvery is the row interval for progress logging.
	LogEvery int `yaml:"log_every"`
}

// DefaultConfig returns the filter settings for the diabetes/hypertension
// study.
func DefaultConfig() Config {
	return Config{
		Keywords:   []string{"diabetes", "hypertension", "a1c"},
		TextColumn: "text",
		LogEvery:   10000,
	}
}

// LoadConfig reads filter settings from a YAML file, filling unset fields
// from the defaults. An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading filter config %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing filter config %s: %w", path, err)
	}
	if len(file.Keywords) > 0 {
		cfg.Keywords = file.Keywords
	}
	if file.TextColumn != "" {
		cfg.TextColumn = file.TextColumn
	}
	if file.LogEvery > 0 {
		cfg.LogEvery = file.LogEvery
	}
	return cfg, nil
}
