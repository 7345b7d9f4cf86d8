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

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockSource is a test implementation of the Source interface.
type mockSource struct {
	props map[string]string
	err   error
}

// Load implements the Source interface for testing.
func (m *mockSource) Load(_ context.Context) (map[string]string, error) {
	return m.props, m.err
}

// MockDumper is a test implementation of the Dumper interface.
type MockDumper struct {
	called bool
	props  map[string]string
	err    error
}

// Dump implements the Dumper interface for testing.
func (m *MockDumper) Dump(_ context.Context, props map[string]string) error {
	m.called = true
	m.props = props
	return m.err
}

// Called reports whether Dump was called.
func (m *MockDumper) Called() bool {
	return m.called
}

// Props returns the properties passed to the last Dump call.
func (m *MockDumper) Props() map[string]string {
	return m.props
}

// TestSource creates a mock source returning the given property map.
func TestSource(props map[string]string) Source {
	return &mockSource{props: props}
}

// TestSourceWithError creates a mock source that returns an error on Load.
func TestSourceWithError(err error) Source {
	return &mockSource{err: err}
}

// TestDumper creates a mock dumper for testing.
func TestDumper() *MockDumper {
	return &MockDumper{}
}

// TestDumperWithError creates a mock dumper that returns an error on Dump.
func TestDumperWithError(err error) *MockDumper {
	return &MockDumper{err: err}
}

// TestLoader creates a new Loader with the given options for testing.
// It fails the test if creation fails.
func TestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()

	l, err := New(opts...)
	require.NoError(t, err, "failed to create test loader")

	return l
}

// TestSettings builds Settings from a property map, failing the test on error.
func TestSettings(t *testing.T, props map[string]string) *Settings {
	t.Helper()

	s, err := Build(props)
	require.NoError(t, err, "failed to build test settings")

	return s
}

// TestLoaded loads the given property maps as sources, in order, and returns
// the resolved Settings.
func TestLoaded(t *testing.T, props ...map[string]string) *Settings {
	t.Helper()

	opts := make([]Option, 0, len(props))
	for _, p := range props {
		opts = append(opts, WithSource(TestSource(p)))
	}

	s, err := TestLoader(t, opts...).Load(t.Context())
	require.NoError(t, err, "failed to load test settings")

	return s
}

// TestPropertiesFile creates a temporary properties file with the given content.
// The file is automatically cleaned up when the test completes.
func TestPropertiesFile(t *testing.T, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "config.properties")
	err := os.WriteFile(filePath, []byte(content), 0o600)
	require.NoError(t, err, "failed to create test properties file")

	return filePath
}
