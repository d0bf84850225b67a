// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires OpenTelemetry and Prometheus for the aoc binary.
//
// Tracing uses the OTel SDK with a stdout or OTLP/gRPC exporter. Metrics
// live in a Prometheus registry: solver packages register client_golang
// collectors directly, and OTel instruments are bridged into the same
// registry by the OTel Prometheus exporter. Since aoc is a short-lived
// process nothing is scraped; at exit the registry is written to a
// node_exporter textfile, pushed to a Pushgateway, or both.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	cfg := telemetry.DefaultConfig()
//	cfg.Registerer = reg
//	shutdown, err := telemetry.Init(ctx, cfg)
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
//
//	// ... run solvers ...
//
//	_ = telemetry.WriteTextfile(reg, "/var/lib/node_exporter/aoc.prom")
//
// # Environment Variables
//
//   - OTEL_TRACES_EXPORTER: otlp, stdout, or none (default: none)
//   - OTEL_METRICS_EXPORTER: prometheus, stdout, or none (default: prometheus)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint (default: localhost:4317)
//
// # Thread Safety
//
// All exported functions are safe for concurrent use after Init returns.
package telemetry
