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

package telemetry

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

func TestNew_RejectsEmptyServiceName(t *testing.T) {
	t.Parallel()

	_, err := New(WithServiceName(""))
	require.Error(t, err)
}

func TestProvider_WriteTextfile(t *testing.T) {
	t.Parallel()

	p, err := New(WithServiceVersion("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(t.Context()) })

	counter, err := p.MeterProvider().Meter("test").Int64Counter("angler_test_events_total")
	require.NoError(t, err)
	counter.Add(t.Context(), 3, metric.WithAttributes())

	families, err := p.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	path := filepath.Join(t.TempDir(), "angler.prom")
	require.NoError(t, p.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "angler_test_events_total")
	assert.Contains(t, string(data), `service_name="angler"`)
}

func TestProvider_WriteTextfile_BadPath(t *testing.T) {
	t.Parallel()

	p, err := New()
	require.NoError(t, err)

	err = p.WriteTextfile(filepath.Join(t.TempDir(), "missing", "angler.prom"))
	require.Error(t, err)
}

func TestProvider_TraceOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := New(WithTraceOutput(&buf))
	require.NoError(t, err)

	_, span := p.TracerProvider().Tracer("test").Start(t.Context(), "config.Load")
	span.End()

	require.NoError(t, p.Shutdown(t.Context()))
	assert.Contains(t, buf.String(), `"Name":"config.Load"`)
}

func TestProvider_NoTraceOutput(t *testing.T) {
	t.Parallel()

	p, err := New()
	require.NoError(t, err)

	_, span := p.TracerProvider().Tracer("test").Start(t.Context(), "config.Load")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(t.Context()))
}

func TestProvider_OTLPEndpoint(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(collector.Close)

	p, err := New(WithOTLPEndpoint(collector.URL))
	require.NoError(t, err)

	_, span := p.TracerProvider().Tracer("test").Start(t.Context(), "config.Load")
	span.End()
	counter, err := p.MeterProvider().Meter("test").Int64Counter("angler_test_events_total")
	require.NoError(t, err)
	counter.Add(t.Context(), 1)

	require.NoError(t, p.Shutdown(t.Context()))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, paths, "/v1/traces")
	assert.Contains(t, paths, "/v1/metrics")
}

func TestNew_InvalidOTLPEndpoint(t *testing.T) {
	t.Parallel()

	for _, endpoint := range []string{"collector:4318", "grpc://collector:4317", "http://"} {
		_, err := New(WithOTLPEndpoint(endpoint))
		assert.Error(t, err, endpoint)
	}
}
