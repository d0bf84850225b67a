// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics are the OTel instruments recorded by the command line.
//
// Thread Safety: Safe for concurrent use after creation.
type RunMetrics struct {
	// SolvesTotal counts solved parts by day, part, and status.
	SolvesTotal metric.Int64Counter

	// SolveDuration records how long each part took, input loading included.
	SolveDuration metric.Float64Histogram
}

// NewRunMetrics creates the instruments on meter.
//
// Example:
//
//	rm, err := telemetry.NewRunMetrics(otel.Meter("aoc.cli"))
//	if err != nil {
//	    return fmt.Errorf("create metrics: %w", err)
//	}
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	var m RunMetrics
	var err error

	m.SolvesTotal, err = meter.Int64Counter(
		"aoc_solves_total",
		metric.WithDescription("Puzzle parts solved by day, part and status"),
		metric.WithUnit("{solve}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create aoc_solves_total: %w", err)
	}

	m.SolveDuration, err = meter.Float64Histogram(
		"aoc_solve_duration_seconds",
		metric.WithDescription("Wall time spent solving one part"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create aoc_solve_duration_seconds: %w", err)
	}

	return &m, nil
}

// RecordSolve records one finished part. A nil receiver records nothing.
func (m *RunMetrics) RecordSolve(ctx context.Context, day int, part string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.Int("day", day),
		attribute.String("part", part),
		attribute.String("status", status),
	)
	m.SolvesTotal.Add(ctx, 1, attrs)
	m.SolveDuration.Record(ctx, elapsed.Seconds(), attrs)
}
