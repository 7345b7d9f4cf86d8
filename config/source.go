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

import "context"

// Source defines the interface for configuration sources.
// Implementations read raw properties from files, environment variables,
// or remote services.
type Source interface {
	// Load returns the raw property map of the source: dotted keys to
	// untyped text values. An empty map means the source configures nothing.
	Load(ctx context.Context) (map[string]string, error)
}

// Dumper defines the interface for writing resolved properties.
type Dumper interface {
	// Dump writes the property map to the dumper's destination.
	Dump(ctx context.Context, props map[string]string) error
}
