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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSource(t *testing.T) {
	t.Parallel()

	props := map[string]string{KeyClusterAuthKey: "k"}
	got, err := TestSource(props).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, props, got)

	boom := errors.New("boom")
	_, err = TestSourceWithError(boom).Load(t.Context())
	assert.ErrorIs(t, err, boom)
}

func TestTestDumper(t *testing.T) {
	t.Parallel()

	d := TestDumper()
	assert.False(t, d.Called())
	require.NoError(t, d.Dump(t.Context(), map[string]string{"a": "1"}))
	assert.True(t, d.Called())
	assert.Equal(t, map[string]string{"a": "1"}, d.Props())

	boom := errors.New("boom")
	assert.ErrorIs(t, TestDumperWithError(boom).Dump(t.Context(), nil), boom)
}

func TestTestLoaded(t *testing.T) {
	t.Parallel()

	s := TestLoaded(t,
		map[string]string{KeyMessageProcessorWorkers: "1"},
		map[string]string{KeyMessageProcessorWorkers: "2", KeyRESTfulPort: "80"},
	)
	assert.Equal(t, 1, *s.MessagesProcessor.Workers)
	assert.Equal(t, uint16(80), *s.Networking.RESTfulPort)
}

func TestTestPropertiesFile(t *testing.T) {
	t.Parallel()

	path := TestPropertiesFile(t, "a=b\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a=b\n", string(data))
	assert.Equal(t, sampleSettings(), TestSettings(t, sampleSettings().Properties()))
}
