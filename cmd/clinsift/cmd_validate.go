/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/clinsift/clinsift/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [gold predictions]",
	Short: "Score extraction results against a gold standard",
	Long: `Compare extraction results with gold-standard annotations and print a
validation report: exact-match accuracy for the scalar fields and
micro-averaged recall for the list fields.

With no arguments the default paths <data-dir>/gold_standard.json and
<data-dir>/extraction_results.json are used. To override, pass both
paths explicitly.`,
	Args: func(_ *cobra.Command, args []string) error {
		switch len(args) {
		case 0, 2:
			return nil
		default:
			return errors.New("provide both the gold and predictions paths, or neither\n\nUsage: clinsift validate\n       clinsift validate gold.json predictions.json")
		}
	},
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	goldPath := cfg.path("gold_standard.json")
	predPath := cfg.path("extraction_results.json")
	if len(args) == 2 {
		goldPath, predPath = args[0], args[1]
	}

	summary, err := validate.Run(ctx, goldPath, predPath)
	if err != nil {
		return err
	}
	return validate.Report(cmd.OutOrStdout(), summary)
}
