/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// clinsift processes hospital discharge notes: filter candidate notes by
// keyword, extract structured diabetes and blood-pressure findings with
// Gemini, and validate the extractions against a gold standard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "clinsift",
	Short: "Keyword filtering, LLM extraction and validation for discharge notes",
	Long: "Clinsift filters hospital discharge notes for diabetes and hypertension\n" +
		"keywords, extracts structured findings with Gemini, and scores the\n" +
		"extractions against a gold standard.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
