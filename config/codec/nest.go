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
)

// Nest turns flat dotted keys into nested maps, the inverse of the
// flattening applied by the configuration sources:
//
//	{"net.client.restful.port": "80"} -> {"net": {"client": {"restful": {"port": "80"}}}}
//
// Keys are processed in sorted order, so a key that prefixes another one is
// placed first and the longer key fails on it.
func Nest(props map[string]string) (map[string]any, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		if slices.Contains(parts, "") {
			return nil, fmt.Errorf("cannot nest key %q: empty segment", key)
		}

		node := root
		for i, part := range parts[:len(parts)-1] {
			switch child := node[part].(type) {
			case nil:
				next := make(map[string]any)
				node[part] = next
				node = next
			case map[string]any:
				node = child
			default:
				return nil, fmt.Errorf("cannot nest key %q: %q is a value", key, strings.Join(parts[:i+1], "."))
			}
		}

		node[parts[len(parts)-1]] = props[key]
	}

	return root, nil
}

// nested replaces a flat property map by its nested form and passes any
// other value through.
func nested(v any) (any, error) {
	switch m := v.(type) {
	case map[string]string:
		return Nest(m)
	case *map[string]string:
		return Nest(*m)
	default:
		return v, nil
	}
}
