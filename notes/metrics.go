/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package notes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinsift_filter_rows_scanned_total",
		Help: "Total number of CSV rows read by the note filter",
	})

	rowsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinsift_filter_rows_matched_total",
		Help: "Total number of rows matching the clinical keywords",
	})
)
