// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "angler.dev/angler/config"

// Instrument names recorded by a Loader.
const (
	MetricSourceLoads  = "angler_config_source_loads_total"
	MetricLoadDuration = "angler_config_load_duration_seconds"
)

// instruments holds the tracer and metric instruments of a Loader.
type instruments struct {
	tracer       trace.Tracer
	sourceLoads  metric.Int64Counter
	loadDuration metric.Float64Histogram
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*instruments, error) {
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}
	if mp == nil {
		mp = metricnoop.NewMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	inst := &instruments{tracer: tp.Tracer(instrumentationName)}

	var err error
	inst.sourceLoads, err = meter.Int64Counter(
		MetricSourceLoads,
		metric.WithDescription("Configuration sources read, by origin and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create source loads counter: %w", err)
	}

	inst.loadDuration, err = meter.Float64Histogram(
		MetricLoadDuration,
		metric.WithDescription("Duration of configuration resolution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create load duration histogram: %w", err)
	}

	return inst, nil
}

// WithTracerProvider records a span for every Load and a child span for
// every source it reads. The default provider records nothing.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(l *Loader) error {
		if tp == nil {
			return errors.New("tracer provider cannot be nil")
		}
		l.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider records the [MetricSourceLoads] counter and the
// [MetricLoadDuration] histogram. The default provider records nothing.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(l *Loader) error {
		if mp == nil {
			return errors.New("meter provider cannot be nil")
		}
		l.meterProvider = mp
		return nil
	}
}
