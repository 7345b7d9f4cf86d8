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
	"slices"
	"strings"

	"github.com/spf13/cast"
)

const (
	// TypeProperties is the codec for properties files: one key=value record per line.
	TypeProperties Type = "properties"

	// TypeInlineProperties is the codec for properties packed in a single string,
	// with records separated by ';'. It is the format of the ANGLER_CFG variable.
	TypeInlineProperties Type = "inline-properties"
)

func init() {
	RegisterEncoder(TypeProperties, PropertiesCodec{Separator: '\n'})
	RegisterDecoder(TypeProperties, PropertiesCodec{Separator: '\n'})
	RegisterEncoder(TypeInlineProperties, PropertiesCodec{Separator: ';'})
	RegisterDecoder(TypeInlineProperties, PropertiesCodec{Separator: ';'})
}

// PropertiesCodec reads and writes flat key=value records.
//
// Decoding is purely lexical. Records are split on Separator and trimmed.
// Empty records, records starting with '#' and records without '=' are
// skipped. The key is the text before the first '=', kept verbatim: key
// names are not checked here, so "a =b" yields the key "a " and "=b" the
// empty key. The value is everything after the first '=', trimmed, so values
// may contain '='. A later record overwrites an earlier one with the same key.
type PropertiesCodec struct {
	Separator byte
}

// DecodeProperties decodes newline separated properties text into a flat map.
func DecodeProperties(text string) map[string]string {
	return PropertiesCodec{Separator: '\n'}.decode(text)
}

// DecodeInlineProperties decodes ';' separated properties text into a flat map.
func DecodeInlineProperties(text string) map[string]string {
	return PropertiesCodec{Separator: ';'}.decode(text)
}

func (c PropertiesCodec) decode(text string) map[string]string {
	props := make(map[string]string)

	for record := range strings.SplitSeq(text, string(c.Separator)) {
		record = strings.TrimSpace(record)
		if record == "" || strings.HasPrefix(record, "#") {
			continue
		}

		key, value, found := strings.Cut(record, "=")
		if !found {
			continue
		}

		props[key] = strings.TrimSpace(value)
	}

	return props
}

// Decode decodes properties text into v, which must be *map[string]string or *map[string]any.
func (c PropertiesCodec) Decode(data []byte, v any) error {
	props := c.decode(string(data))

	switch target := v.(type) {
	case *map[string]string:
		*target = props
	case *map[string]any:
		m := make(map[string]any, len(props))
		for k, val := range props {
			m[k] = val
		}
		*target = m
	default:
		return fmt.Errorf("PropertiesCodec.Decode: expected *map[string]string or *map[string]any, got %T", v)
	}

	return nil
}

// Encode renders a flat map as properties text with keys in sorted order.
// v may be a map[string]string or map[string]any (or a pointer to either);
// values are converted to strings with cast.
//
// Errors:
//   - Returns error if v is not a supported map type
//   - Returns error if a value cannot be converted to a string
//   - Returns error if a key or value would not survive decoding unchanged
func (c PropertiesCodec) Encode(v any) ([]byte, error) {
	var props map[string]string
	var err error

	switch m := v.(type) {
	case map[string]string:
		props = m
	case *map[string]string:
		props = *m
	case map[string]any:
		props, err = stringify(m)
	case *map[string]any:
		props, err = stringify(*m)
	default:
		return nil, fmt.Errorf("PropertiesCodec.Encode: expected a flat map, got %T", v)
	}
	if err != nil {
		return nil, fmt.Errorf("PropertiesCodec.Encode: %w", err)
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	sep := string(c.Separator)
	var b strings.Builder
	for _, k := range keys {
		value := props[k]
		if err := c.checkRecord(k, value); err != nil {
			return nil, err
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteString(sep)
	}

	return []byte(b.String()), nil
}

func (c PropertiesCodec) checkRecord(key, value string) error {
	sep := string(c.Separator)
	switch {
	case strings.TrimSpace(key) != key || key == "":
		return fmt.Errorf("PropertiesCodec.Encode: invalid key %q", key)
	case strings.HasPrefix(key, "#"), strings.Contains(key, "="), strings.Contains(key, sep):
		return fmt.Errorf("PropertiesCodec.Encode: key %q cannot be encoded", key)
	case strings.Contains(value, sep), strings.Contains(value, "\n"), strings.TrimSpace(value) != value:
		return fmt.Errorf("PropertiesCodec.Encode: value of %q cannot be encoded", key)
	}
	return nil
}

func stringify(m map[string]any) (map[string]string, error) {
	props := make(map[string]string, len(m))
	for k, v := range m {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", k, err)
		}
		props[k] = s
	}
	return props, nil
}
