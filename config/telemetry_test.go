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

//go:build !integration

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTelemetry(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader, []Option) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		_ = mp.Shutdown(t.Context())
	})

	return recorder, reader, []Option{WithTracerProvider(tp), WithMeterProvider(mp)}
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	found := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = m
		}
	}
	return found
}

func TestLoader_Telemetry(t *testing.T) {
	t.Parallel()

	recorder, reader, opts := newTestTelemetry(t)
	opts = append(opts,
		WithSource(TestSource(map[string]string{KeyMessageProcessorWorkers: "500"})),
		WithSource(TestSource(map[string]string{KeyRESTfulPort: "80"})),
	)

	_, err := TestLoader(t, opts...).Load(t.Context())
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "config.source", spans[0].Name())
	assert.Equal(t, "config.source", spans[1].Name())
	assert.Equal(t, "config.Load", spans[2].Name())
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("config.source.index", 1))
	assert.Contains(t, spans[1].Attributes(), attribute.Int("config.source.properties", 1))
	assert.Equal(t, codes.Unset, spans[2].Status().Code)

	metrics := collect(t, reader)

	loads, ok := metrics[MetricSourceLoads].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range loads.DataPoints {
		result, _ := dp.Attributes.Value("result")
		assert.Equal(t, "ok", result.AsString())
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	duration, ok := metrics[MetricLoadDuration].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(1), duration.DataPoints[0].Count)
}

func TestLoader_TelemetryOnError(t *testing.T) {
	t.Parallel()

	recorder, reader, opts := newTestTelemetry(t)
	opts = append(opts,
		WithSource(TestSource(map[string]string{KeyMessageProcessorWorkers: "500"})),
		WithSource(TestSourceWithError(errors.New("unreachable"))),
	)

	_, err := TestLoader(t, opts...).Load(t.Context())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.NotEmpty(t, spans[2].Events(), "error recorded as span event")

	loads, ok := collect(t, reader)[MetricSourceLoads].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	results := make(map[string]int64)
	for _, dp := range loads.DataPoints {
		result, _ := dp.Attributes.Value("result")
		results[result.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"ok": 1, "error": 1}, results)
}

func TestTelemetryOptions_RejectNil(t *testing.T) {
	t.Parallel()

	_, err := New(WithTracerProvider(nil))
	require.Error(t, err)

	_, err = New(WithMeterProvider(nil))
	require.Error(t, err)
}
