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

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is the service.name resource attribute.
const DefaultServiceName = "angler"

type options struct {
	serviceName    string
	serviceVersion string
	traceOutput    io.Writer
	otlpEndpoint   string
}

// Option configures a Provider.
type Option func(*options)

// WithServiceName overrides [DefaultServiceName].
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(o *options) { o.serviceVersion = version }
}

// WithTraceOutput writes every ended span to w.
func WithTraceOutput(w io.Writer) Option {
	return func(o *options) { o.traceOutput = w }
}

// WithOTLPEndpoint pushes spans and metrics over OTLP/HTTP to the collector
// at endpoint, a URL such as http://collector:4318. Plain http disables TLS.
// Metrics are pushed once more on Shutdown.
func WithOTLPEndpoint(endpoint string) Option {
	return func(o *options) { o.otlpEndpoint = endpoint }
}

// Provider owns the meter and tracer providers of a process.
type Provider struct {
	registry       *promclient.Registry
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// New creates the providers.
func New(opts ...Option) (*Provider, error) {
	o := &options{serviceName: DefaultServiceName}
	for _, opt := range opts {
		opt(o)
	}
	if o.serviceName == "" {
		return nil, errors.New("service name cannot be empty")
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(o.serviceName),
		semconv.ServiceVersion(o.serviceVersion),
	)

	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	meterOpts := []sdkmetric.Option{
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	}
	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if o.otlpEndpoint != "" {
		host, insecure, err := otlpTarget(o.otlpEndpoint)
		if err != nil {
			return nil, err
		}

		metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		spanOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if insecure {
			metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
			spanOpts = append(spanOpts, otlptracehttp.WithInsecure())
		}

		metricExporter, err := otlpmetrichttp.New(context.Background(), metricOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
		spanExporter, err := otlptracehttp.New(context.Background(), spanOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}

		meterOpts = append(meterOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
		traceOpts = append(traceOpts, sdktrace.WithBatcher(spanExporter))
	}

	p := &Provider{
		registry:      registry,
		meterProvider: sdkmetric.NewMeterProvider(meterOpts...),
	}

	if o.traceOutput != nil {
		spanExporter, err := stdouttrace.New(stdouttrace.WithWriter(o.traceOutput))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		traceOpts = append(traceOpts, sdktrace.WithSyncer(spanExporter))
	}
	p.tracerProvider = sdktrace.NewTracerProvider(traceOpts...)

	return p, nil
}

// MeterProvider returns the provider whose instruments feed the registry.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// TracerProvider returns the tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// Gatherer returns the registry holding the collected metrics.
func (p *Provider) Gatherer() promclient.Gatherer {
	return p.registry
}

// WriteTextfile writes the collected metrics to path in the Prometheus text
// format. The file is replaced atomically.
func (p *Provider) WriteTextfile(path string) error {
	if err := promclient.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Shutdown flushes and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.tracerProvider.Shutdown(ctx),
		p.meterProvider.Shutdown(ctx),
	)
}

func otlpTarget(endpoint string) (host string, insecure bool, err error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: want a URL such as http://collector:4318", endpoint)
	}
	switch u.Scheme {
	case "http":
		return u.Host, true, nil
	case "https":
		return u.Host, false, nil
	default:
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
}
