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

// Package telemetry sets up the OpenTelemetry providers of an angler process.
//
// Metrics are collected into a private Prometheus registry. A short-lived
// command such as "angler check" writes the registry to a file for the node
// exporter textfile collector with [Provider.WriteTextfile]. Traces are
// discarded unless a trace output is configured, in which case spans are
// written as JSON as soon as they end. [WithOTLPEndpoint] additionally
// pushes spans and metrics to an OpenTelemetry collector over OTLP/HTTP.
//
// Nothing is registered globally; pass [Provider.MeterProvider] and
// [Provider.TracerProvider] to the components that record telemetry.
package telemetry
