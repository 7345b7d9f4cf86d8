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

//go:build !integration

package config

import (
	"errors"
	"testing"

	"angler.dev/angler/config/codec"
)

// FuzzBuild checks that malformed properties never panic and that every
// failure is reported as a ParseError.
func FuzzBuild(f *testing.F) {
	f.Add(sampleFile)
	f.Add(sampleEnv)
	f.Add("msgproc.workers=-1\nnet.client.restful.port=99999")
	f.Add("retryPolicy.defaults.interval=[5m,,1h]")
	f.Add("retryPolicy.defaults.interval=[")
	f.Add("net.client.protocols=,,,")
	f.Add("=\n#\n;")

	f.Fuzz(func(t *testing.T, text string) {
		props := codec.DecodeProperties(text)

		s, err := Build(props)
		if err != nil {
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
			return
		}

		// Whatever was accepted must survive a round trip.
		rebuilt, err := Build(s.Properties())
		if err != nil {
			t.Fatalf("rebuild %v: %v", s.Properties(), err)
		}
		if rebuilt.String() != s.String() {
			t.Fatalf("round trip changed settings: %q != %q", rebuilt.String(), s.String())
		}
	})
}

// FuzzMerge checks the fill-gaps-only law for arbitrary inputs.
func FuzzMerge(f *testing.F) {
	f.Add("msgproc.workers=1", "msgproc.workers=2;net.client.restful.port=80")
	f.Add(sampleFile, sampleEnv)
	f.Add("", sampleEnv)

	f.Fuzz(func(t *testing.T, first, second string) {
		target, err := Build(codec.DecodeProperties(first))
		if err != nil {
			return
		}
		src, err := Build(codec.DecodeInlineProperties(second))
		if err != nil {
			return
		}

		before := target.Properties()
		target.Merge(src)
		after := target.Properties()

		for key, value := range before {
			if after[key] != value {
				t.Fatalf("%s changed from %q to %q", key, value, after[key])
			}
		}
		for key, value := range src.Properties() {
			if _, kept := before[key]; !kept && after[key] != value {
				t.Fatalf("%s not filled: got %q, want %q", key, after[key], value)
			}
		}
	})
}
