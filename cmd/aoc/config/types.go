// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the aoc.yaml configuration file.
package config

import (
	"fmt"
	"math/big"

	"github.com/AleutianAI/aoc/services/nospace"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "aoc.yaml"

type Config struct {
	// DataDir holds the puzzle inputs, named input_dayNN and exampleN_dayNN.
	DataDir string `yaml:"data_dir" validate:"required"`

	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Disk describes the day 7 device.
	Disk DiskConfig `yaml:"disk"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON   bool   `yaml:"json"`
	LogDir string `yaml:"log_dir,omitempty"`
}

type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`

	// MetricsTextfile, when set, receives the metrics registry at exit in
	// the node_exporter textfile format.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	// PushgatewayURL, when set, receives the metrics registry at exit.
	PushgatewayURL string `yaml:"pushgateway_url,omitempty" validate:"omitempty,url"`
}

// DiskConfig keeps sizes as decimal strings so they are not limited to
// 64 bits.
type DiskConfig struct {
	TotalSpace    string `yaml:"total_space" validate:"required,bigint"`
	UpdateSpace   string `yaml:"update_space" validate:"required,bigint"`
	SmallDirLimit string `yaml:"small_dir_limit" validate:"required,bigint"`
}

// Disk converts the configured sizes for the day 7 solver.
func (d DiskConfig) Disk() (nospace.Disk, error) {
	var out nospace.Disk
	fields := []struct {
		name string
		in   string
		dst  **big.Int
	}{
		{"total_space", d.TotalSpace, &out.TotalSpace},
		{"update_space", d.UpdateSpace, &out.UpdateSpace},
		{"small_dir_limit", d.SmallDirLimit, &out.SmallDirLimit},
	}
	for _, f := range fields {
		v, ok := parseBigInt(f.in)
		if !ok {
			return nospace.Disk{}, fmt.Errorf("%w: disk.%s must be a non-negative integer (got %q)",
				ErrInvalidConfig, f.name, f.in)
		}
		*f.dst = v
	}
	return out, nil
}

func DefaultConfig() Config {
	disk := nospace.DefaultDisk()
	return Config{
		DataDir: "data",
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			OTLPEndpoint:   "localhost:4317",
		},
		Disk: DiskConfig{
			TotalSpace:    disk.TotalSpace.String(),
			UpdateSpace:   disk.UpdateSpace.String(),
			SmallDirLimit: disk.SmallDirLimit.String(),
		},
	}
}

// parseBigInt accepts unsigned decimal digits only.
func parseBigInt(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, 10)
}
