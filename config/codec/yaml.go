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

package codec

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// TypeYAML identifies YAML settings documents.
const TypeYAML Type = "yaml"

func init() {
	RegisterEncoder(TypeYAML, YAMLCodec{})
	RegisterDecoder(TypeYAML, YAMLCodec{})
}

// YAMLCodec reads and writes YAML settings documents. Mappings are flattened
// into dotted keys by the configuration sources, so
//
//	cluster:
//	  requestTimeout: 10000
//
// is equivalent to the property cluster.requestTimeout=10000.
type YAMLCodec struct{}

// Encode renders v as YAML. A flat property map is nested first, so a dump
// reads like a hand-written settings document.
func (YAMLCodec) Encode(v any) ([]byte, error) {
	doc, err := nested(v)
	if err != nil {
		return nil, fmt.Errorf("YAMLCodec.Encode: %w", err)
	}
	return yaml.Marshal(doc)
}

// Decode parses a YAML document into v.
func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
