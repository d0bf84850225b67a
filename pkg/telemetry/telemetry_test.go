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
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// resetGlobals restores no-op providers after a test installs real ones.
func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
	})
}

// =============================================================================
// Config Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "")
	t.Setenv("OTEL_METRICS_EXPORTER", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := DefaultConfig()

	assert.Equal(t, "aoc", cfg.ServiceName)
	assert.Equal(t, ExporterNone, cfg.TraceExporter)
	assert.Equal(t, ExporterPrometheus, cfg.MetricExporter)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, os.Stderr, cfg.Output)
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg := DefaultConfig()

	assert.Equal(t, ExporterStdout, cfg.TraceExporter)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
}

// =============================================================================
// Init Tests
// =============================================================================

func TestInit_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	_, err := Init(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestInit_NoopExporters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = ExporterNone

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutTraceExporter(t *testing.T) {
	resetGlobals(t)

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterStdout
	cfg.MetricExporter = ExporterNone
	cfg.Output = &buf

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "aoc.test", "telemetry.TestSpan")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "telemetry.TestSpan")
}

func TestInit_UnknownExporter(t *testing.T) {
	tests := []struct {
		name   string
		trace  string
		metric string
	}{
		{"trace", "jaeger-thrift", ExporterNone},
		{"metric", ExporterNone, "graphite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TraceExporter = tt.trace
			cfg.MetricExporter = tt.metric

			_, err := Init(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrUnknownExporter)
			assert.Contains(t, err.Error(), "unknown exporter type")
		})
	}
}

func TestInit_PrometheusBridge(t *testing.T) {
	resetGlobals(t)

	reg := prometheus.NewRegistry()
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = ExporterPrometheus
	cfg.Registerer = reg

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	defer shutdown(context.Background())

	rm, err := NewRunMetrics(otel.Meter("aoc.test"))
	require.NoError(t, err)
	rm.RecordSolve(context.Background(), 7, "one", 15*time.Millisecond, nil)
	rm.RecordSolve(context.Background(), 7, "two", 20*time.Millisecond, errors.New("boom"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "aoc_solves")
	assert.Contains(t, joined, "aoc_solve_duration")
}

// =============================================================================
// RunMetrics Tests
// =============================================================================

func TestRunMetrics_NilReceiver(t *testing.T) {
	var rm *RunMetrics
	assert.NotPanics(t, func() {
		rm.RecordSolve(context.Background(), 7, "one", time.Second, nil)
	})
}

func TestNewRunMetrics_NoopMeter(t *testing.T) {
	rm, err := NewRunMetrics(metricnoop.NewMeterProvider().Meter("aoc.test"))
	require.NoError(t, err)
	assert.NotNil(t, rm.SolvesTotal)
	assert.NotNil(t, rm.SolveDuration)
}

// =============================================================================
// Tracing Tests
// =============================================================================

func TestStartSpan_RecordErrorAndOK(t *testing.T) {
	resetGlobals(t)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)

	_, failed := StartSpan(context.Background(), "aoc.test", "failing")
	RecordError(failed, errors.New("no such directory"))
	failed.End()

	_, ok := StartSpan(context.Background(), "aoc.test", "passing")
	SetSpanOK(ok)
	ok.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "no such directory", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)

	assert.Equal(t, codes.Ok, spans[1].Status().Code)
}

func TestRecordError_NilArguments(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("x"))
		SetSpanOK(nil)
	})

	_, span := StartSpan(context.Background(), "aoc.test", "noop")
	RecordError(span, nil)
	span.End()
}

// =============================================================================
// Sink Tests
// =============================================================================

func newGatherer(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aoc_test_events_total",
		Help: "Test counter",
	})
	reg.MustRegister(c)
	c.Add(3)
	return reg
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoc.prom")

	require.NoError(t, WriteTextfile(newGatherer(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "aoc_test_events_total 3")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(newGatherer(t), filepath.Join(t.TempDir(), "missing", "aoc.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}

func TestPush(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path = r.Method, r.URL.Path
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		body = buf.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, Push(context.Background(), newGatherer(t), srv.URL, "run-1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/aoc/run_id/run-1", path)
	assert.NotEmpty(t, body)
}

func TestPush_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := Push(context.Background(), newGatherer(t), srv.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push metrics to")
}
