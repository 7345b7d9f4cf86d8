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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Flatten turns a decoded document into flat dotted keys.
//
// Nested maps contribute their keys joined with '.', so
// {"cluster": {"authKey": "x"}} becomes {"cluster.authKey": "x"}. Lists are
// rendered in bracketed form ("[5m, 1h]") and scalars are converted with cast.
// A flat map produced by the properties codec passes through unchanged.
//
// Errors:
//   - Returns error if a value cannot be rendered as a string
//   - Returns error if two paths produce the same dotted key
func Flatten(m map[string]any) (map[string]string, error) {
	props := make(map[string]string, len(m))
	if err := flatten(props, "", m); err != nil {
		return nil, err
	}
	return props, nil
}

func flatten(dst map[string]string, prefix string, m map[string]any) error {
	// Sorted so that a collision is always reported against the same key.
	for _, k := range slices.Sorted(maps.Keys(m)) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch v := m[k].(type) {
		case map[string]any:
			if err := flatten(dst, key, v); err != nil {
				return err
			}
			continue
		case map[any]any:
			nested, err := cast.ToStringMapE(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			if err := flatten(dst, key, nested); err != nil {
				return err
			}
			continue
		}

		value, err := render(m[k])
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if _, dup := dst[key]; dup {
			return fmt.Errorf("key %q: defined more than once", key)
		}
		dst[key] = value
	}

	return nil
}

func render(v any) (string, error) {
	list, ok := v.([]any)
	if !ok {
		return cast.ToStringE(v)
	}

	items := make([]string, 0, len(list))
	for _, item := range list {
		s, err := cast.ToStringE(item)
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}
