// Package metrics provides metrics collection and reporting.
//
// This package implements a simple in-memory metrics collector for counters,
// gauges, and histograms, with snapshot capabilities for external reporting.
package metrics
