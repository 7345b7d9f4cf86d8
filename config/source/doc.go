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

// Package source provides configuration source implementations.
//
// The source package implements the Source interface defined in the parent
// config package. Every source yields a flat map of dotted property keys to
// raw text values; structured documents are flattened with [Flatten].
//
// # Available Sources
//
//   - File: properties, YAML, JSON or TOML from a path or from bytes
//   - EnvVar: inline properties held in one environment variable (ANGLER_CFG)
//   - Consul: a document stored under one key of Consul's key-value store
//
// # Example
//
//	decoder, _ := codec.GetDecoder(codec.TypeProperties)
//	props, err := source.NewFile("conf/config.properties", decoder).Load(ctx)
//
//	overrides, err := source.NewEnvVar(source.DefaultEnvVar).Load(ctx)
package source
