/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

type config struct {
	// DataDir anchors the default input and output paths.
	DataDir string `env:"CLINSIFT_DATA_DIR,default=data"`

	GeminiAPIKey string  `env:"GEMINI_API_KEY"`
	GeminiModel  string  `env:"GEMINI_MODEL,default=gemini-2.0-flash"`
	Temperature  float32 `env:"GEMINI_TEMPERATURE,default=0.0"`
}

func loadConfig(ctx context.Context) (config, error) {
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return config{}, fmt.Errorf("processing config: %w", err)
	}
	return cfg, nil
}

func (c config) path(name string) string {
	return filepath.Join(c.DataDir, name)
}
