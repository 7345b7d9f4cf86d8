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
	"bytes"
	"encoding/json"
	"fmt"
)

// TypeJSON identifies JSON settings documents.
const TypeJSON Type = "json"

func init() {
	RegisterEncoder(TypeJSON, JSONCodec{})
	RegisterDecoder(TypeJSON, JSONCodec{})
}

// JSONCodec reads and writes JSON settings documents. Nested objects are
// flattened into dotted keys by the configuration sources.
type JSONCodec struct{}

// Encode renders v as indented JSON. A flat property map is nested first.
func (JSONCodec) Encode(v any) ([]byte, error) {
	doc, err := nested(v)
	if err != nil {
		return nil, fmt.Errorf("JSONCodec.Encode: %w", err)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a JSON document into v. Numbers are kept as json.Number so
// integers such as timeouts in milliseconds keep their exact digits.
func (JSONCodec) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
