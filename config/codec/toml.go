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

	"github.com/BurntSushi/toml"
)

// TypeTOML identifies TOML settings documents.
const TypeTOML Type = "toml"

func init() {
	RegisterEncoder(TypeTOML, TOMLCodec{})
	RegisterDecoder(TypeTOML, TOMLCodec{})
}

// TOMLCodec reads and writes TOML settings documents. Tables are flattened
// into dotted keys by the configuration sources, and quoted dotted keys such
// as "retryPolicy.defaults.interval" are kept verbatim.
type TOMLCodec struct{}

// Encode renders v as TOML. A flat property map is nested into tables first.
func (TOMLCodec) Encode(v any) ([]byte, error) {
	doc, err := nested(v)
	if err != nil {
		return nil, fmt.Errorf("TOMLCodec.Encode: %w", err)
	}
	return toml.Marshal(doc)
}

// Decode parses a TOML document into v.
func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}
