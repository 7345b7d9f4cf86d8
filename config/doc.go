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

// Package config resolves the settings of an angler node.
//
// A node is configured through flat properties: dotted keys mapped to text
// values. Sources (a properties file, the ANGLER_CFG environment variable,
// a Consul key, or YAML/JSON/TOML documents flattened to dotted keys) each
// yield a property map. [Build] decodes a map into a typed [Settings] and
// reports every malformed value as a [ParseError]. [Settings.Merge] overlays
// two Settings so that fields already set are kept.
//
// # Quick Start
//
//	loader := config.MustNew(
//	    config.WithFile("conf/config.properties"),
//	    config.WithEnv(source.DefaultEnvVar),
//	    config.WithLogger(slog.Default()),
//	)
//
//	settings, err := loader.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	workers := *settings.MessagesProcessor.Workers
//
// # Precedence
//
// Sources are merged in registration order and the first source that sets a
// field wins. With the file registered before the environment variable, a key
// present in both keeps the file's value; the variable only fills keys the
// file leaves out.
//
// # Recognized Keys
//
//	cluster.authKey                   string
//	cluster.controller.host           string
//	cluster.requestTimeout            integer milliseconds
//	db.deadMessages.retention         duration
//	db.deliveredMessages.retention    duration
//	msgproc.message_delivery_timeout  integer milliseconds
//	msgproc.workers                   positive integer
//	net.client.protocols              comma-separated set
//	net.client.restful.port           port (1-65535)
//	retryPolicy.defaults.interval     duration or [duration, ...]
//	retryPolicy.defaults.maxAttempts  non-negative integer
//	retryPolicy.limit.maxInterval     duration
//	retryPolicy.limit.maxAttempts     positive integer
//
// Durations use the grammar of package duration: "30s", "5m", "1h", "1d", "1w".
// Unrecognized keys are ignored.
//
// # Errors
//
// Loader failures are reported as [*Error] with the failing source and
// operation. A file that cannot be read wraps [*source.ReadError]; malformed
// values wrap one [*ParseError] per key, joined with errors.Join.
package config
