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

package source

import (
	"context"
	"os"

	"angler.dev/angler/config/codec"
)

// DefaultEnvVar is the variable a node reads its override properties from.
const DefaultEnvVar = "ANGLER_CFG"

// EnvVar represents a configuration source held in a single environment
// variable. The value is inline properties text, records separated by ';':
//
//	ANGLER_CFG="msgproc.workers=8;net.client.restful.port=8080"
type EnvVar struct {
	name string
}

// NewEnvVar creates an EnvVar source reading the named variable.
// An empty name selects DefaultEnvVar.
func NewEnvVar(name string) *EnvVar {
	if name == "" {
		name = DefaultEnvVar
	}
	return &EnvVar{name: name}
}

// Name returns the variable name.
func (e *EnvVar) Name() string {
	return e.name
}

// Load reads the variable and decodes its records.
// An unset or empty variable yields an empty map.
func (e *EnvVar) Load(context.Context) (map[string]string, error) {
	value, ok := os.LookupEnv(e.name)
	if !ok {
		return map[string]string{}, nil
	}
	return codec.DecodeInlineProperties(value), nil
}
