// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nospace

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "aoc"
	metricsSubsystem = "nospace"
)

// Metrics holds the Prometheus collectors for replays and queries.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ReplaysTotal   *prometheus.CounterVec
	ReplayDuration prometheus.Histogram
	CommandsTotal  *prometheus.CounterVec
	NodesCreated   *prometheus.CounterVec
	QueriesTotal   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to stay isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReplaysTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "replays_total",
			Help:      "Transcript replays by outcome",
		}, []string{"status"}),

		ReplayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "replay_duration_seconds",
			Help:      "Time to replay a transcript into a tree",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),

		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commands_total",
			Help:      "Replayed commands by kind",
		}, []string{"command"}),

		NodesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_created_total",
			Help:      "Nodes attached to reconstructed trees by kind",
		}, []string{"kind"}),

		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "queries_total",
			Help:      "Puzzle queries by part and outcome",
		}, []string{"part", "status"}),
	}
}

func (m *Metrics) recordReplay(stats ReplayStats, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.ReplaysTotal.WithLabelValues(statusLabel(err)).Inc()
	m.ReplayDuration.Observe(elapsed.Seconds())
	m.CommandsTotal.WithLabelValues("cd").Add(float64(stats.ChangeDirectories))
	m.CommandsTotal.WithLabelValues("ls").Add(float64(stats.Listings))
	m.NodesCreated.WithLabelValues("file").Add(float64(stats.Files))
	m.NodesCreated.WithLabelValues("dir").Add(float64(stats.Directories))
}

func (m *Metrics) recordQuery(part string, err error) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(part, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
