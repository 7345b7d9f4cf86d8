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

import "dario.cat/mergo"

// Merge fills the unset fields of s from src and leaves every field of s that
// is already set untouched, even when it holds a zero value. Merging several
// sources in turn therefore keeps the first value seen for each field.
// A nil src is a no-op. Values adopted from src are copies.
func (s *Settings) Merge(src *Settings) {
	if s == nil || src == nil {
		return
	}

	// Without dereferencing, mergo treats a pointer field as set or unset as a
	// whole instead of descending into the value it points to.
	if err := mergo.Merge(s, src.Clone(), mergo.WithoutDereference); err != nil {
		// Both sides are *Settings, so mergo has no type mismatch to report.
		panic("config: merge settings: " + err.Error())
	}
}
