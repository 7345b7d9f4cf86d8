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
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angler.dev/angler/config/codec"
	"angler.dev/angler/config/source"
	"angler.dev/angler/duration"
)

func TestLoad_SampleFile(t *testing.T) {
	t.Parallel()

	path := TestPropertiesFile(t, sampleFile)
	loader := TestLoader(t, WithFile(path))

	s, err := loader.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sampleSettings(), s)
	assert.Same(t, s, loader.Settings())
}

func TestLoad_FileBeatsEnvironment(t *testing.T) {
	path := TestPropertiesFile(t, sampleFile)
	t.Setenv(source.DefaultEnvVar, sampleEnv)

	s, err := TestLoader(t, WithFile(path), WithEnv("")).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sampleSettings(), s)
}

func TestLoad_EnvironmentFillsGaps(t *testing.T) {
	path := TestPropertiesFile(t, "msgproc.workers=500\nnet.client.protocols=restful\n")
	t.Setenv(source.DefaultEnvVar, "msgproc.workers=8;net.client.restful.port=8080;retryPolicy.defaults.interval=[5m, 1h]")

	s, err := TestLoader(t, WithFile(path), WithEnv(source.DefaultEnvVar)).Load(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 500, *s.MessagesProcessor.Workers)
	assert.Equal(t, uint16(8080), *s.Networking.RESTfulPort)
	assert.Equal(t, 65*time.Minute, s.RetryPolicy.DefaultInterval.Total())
	assert.Nil(t, s.Cluster.AuthKey)
}

func TestLoad_EnvironmentUnset(t *testing.T) {
	t.Setenv("ANGLER_TEST_LOADER_CFG", "")
	require.NoError(t, os.Unsetenv("ANGLER_TEST_LOADER_CFG"))

	path := TestPropertiesFile(t, sampleFile)
	s, err := TestLoader(t, WithFile(path), WithEnv("ANGLER_TEST_LOADER_CFG")).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sampleSettings(), s)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.properties")
	loader := TestLoader(t, WithFile(path))

	s, err := loader.Load(t.Context())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Nil(t, loader.Settings())

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "source[0]", cfgErr.Source)
	assert.Equal(t, "load", cfgErr.Operation)

	var readErr *source.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_ParseFailure(t *testing.T) {
	t.Parallel()

	loader := TestLoader(t,
		WithSource(TestSource(map[string]string{KeyMessageProcessorWorkers: "8"})),
		WithSource(TestSource(map[string]string{KeyRetryDefaultInterval: "[5m 5m, 1h]"})),
	)

	_, err := loader.Load(t.Context())
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "source[1]", cfgErr.Source)
	assert.Equal(t, "build", cfgErr.Operation)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, KeyRetryDefaultInterval, parseErr.Key)
	assert.Equal(t, "[5m 5m, 1h]", parseErr.Value)
	assert.ErrorIs(t, err, duration.ErrInvalidSyntax)
}

func TestLoad_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := TestLoader(t, WithSource(TestSourceWithError(boom))).Load(t.Context())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "config error in source[0] during load: boom")
}

func TestLoad_NoSources(t *testing.T) {
	t.Parallel()

	s, err := TestLoader(t).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoad_NilSourceMap(t *testing.T) {
	t.Parallel()

	s, err := TestLoader(t, WithSource(TestSource(nil))).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoad_Context(t *testing.T) {
	t.Parallel()

	loader := TestLoader(t, WithSource(TestSource(map[string]string{})))

	//nolint:staticcheck // exercising the nil context guard
	_, err := loader.Load(nil)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = loader.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_RetryPolicyAboveLimits(t *testing.T) {
	t.Parallel()

	content := []byte("retryPolicy.defaults.maxAttempts=30\n" +
		"retryPolicy.limit.maxAttempts=20\n" +
		"retryPolicy.defaults.interval=[1h, 2d]\n" +
		"retryPolicy.limit.maxInterval=1d")

	loader := TestLoader(t, WithContent(content, codec.TypeProperties))
	s, err := loader.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint16(30), *s.RetryPolicy.DefaultMaxAttempts)

	strict := TestLoader(t,
		WithContent(content, codec.TypeProperties),
		WithValidator(RetryPolicyWithinLimits),
	)
	_, err = strict.Load(t.Context())
	require.ErrorIs(t, err, ErrAttemptsAboveLimit)
	require.ErrorIs(t, err, ErrIntervalAboveLimit)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "custom-validator[0]", cfgErr.Source)
}

func TestLoad_CustomValidators(t *testing.T) {
	t.Parallel()

	requireWorkers := func(s *Settings) error {
		if s.MessagesProcessor.Workers == nil {
			return errors.New("msgproc.workers is required")
		}
		return nil
	}

	s, err := TestLoader(t,
		WithSource(TestSource(map[string]string{KeyMessageProcessorWorkers: "2"})),
		WithValidator(requireWorkers),
	).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, *s.MessagesProcessor.Workers)

	_, err = TestLoader(t, WithValidator(requireWorkers)).Load(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom-validator[0]")

	_, err = TestLoader(t, WithValidator(func(*Settings) error { panic("bad validator") })).Load(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator panic: bad validator")
}

func TestLoad_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := []byte(`{
		"type": "object",
		"required": ["cluster.authKey"],
		"properties": {
			"cluster.authKey": {"type": "string", "minLength": 8}
		}
	}`)

	s, err := TestLoader(t,
		WithJSONSchema(schema),
		WithSource(TestSource(map[string]string{KeyClusterAuthKey: "abcd1234"})),
	).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", *s.Cluster.AuthKey)

	_, err = TestLoader(t,
		WithJSONSchema(schema),
		WithSource(TestSource(map[string]string{KeyClusterAuthKey: "short"})),
	).Load(t.Context())
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "json-schema", cfgErr.Operation)
}

func TestLoad_StructuredFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
msgproc:
  workers: 500
net:
  client:
    protocols: restful
retryPolicy:
  defaults:
    interval: [5m, 1h]
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"msgproc": {"workers": 500}, "net.client.protocols": "restful", "retryPolicy": {"defaults": {"interval": ["5m", "1h"]}}}`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
"net.client.protocols" = "restful"

[msgproc]
workers = 500

[retryPolicy.defaults]
interval = "[5m, 1h]"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			s, err := TestLoader(t, WithFile(path)).Load(t.Context())
			require.NoError(t, err)
			assert.Equal(t, 500, *s.MessagesProcessor.Workers)
			assert.Equal(t, []string{"restful"}, s.Networking.ClientProtocols)
			assert.Equal(t, "[5m, 1h]", s.RetryPolicy.DefaultInterval.String())
		})
	}
}

func TestLoad_Content(t *testing.T) {
	t.Parallel()

	s, err := TestLoader(t,
		WithContent([]byte("msgproc.workers=3;net.client.restful.port=81"), codec.TypeInlineProperties),
	).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, *s.MessagesProcessor.Workers)
	assert.Equal(t, uint16(81), *s.Networking.RESTfulPort)
}

func TestLoad_Logs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := TestLoader(t,
		WithLogger(logger),
		WithContent([]byte(sampleFile), codec.TypeProperties),
	).Load(t.Context())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "configuration source loaded")
	assert.Contains(t, out, "origin=content")
	assert.Contains(t, out, "configuration resolved")
	assert.NotContains(t, out, "abcd1234")
}

func TestNew_OptionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil source", opt: WithSource(nil)},
		{name: "nil dumper", opt: WithDumper(nil)},
		{name: "nil validator", opt: WithValidator(nil)},
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "unknown extension", opt: WithFile("config.ini")},
		{name: "unknown codec", opt: WithFileAs("config", codec.Type("ini"))},
		{name: "unknown content codec", opt: WithContent(nil, codec.Type("ini"))},
		{name: "unknown dumper extension", opt: WithFileDumper("out.ini")},
		{name: "unknown dumper codec", opt: WithFileDumperAs("out", codec.Type("ini"))},
		{name: "invalid schema", opt: WithJSONSchema([]byte(`{"type": 12}`))},
		{name: "unparsable schema", opt: WithJSONSchema([]byte(`{`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.opt)
			require.Error(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_JoinsErrorsAndSkipsNil(t *testing.T) {
	t.Parallel()

	_, err := New(nil, WithSource(nil), WithFile("config.ini"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source cannot be nil")
	assert.Contains(t, err.Error(), "cannot detect format")
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(WithSource(nil)) })
	assert.NotPanics(t, func() { MustNew() })
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	s := MustNew(WithSource(TestSource(map[string]string{KeyClusterAuthKey: "k"}))).MustLoad(t.Context())
	assert.Equal(t, "k", *s.Cluster.AuthKey)

	assert.Panics(t, func() {
		MustNew(WithSource(TestSourceWithError(errors.New("boom")))).MustLoad(t.Context())
	})
}

func TestWithConsul_SkippedWithoutAddress(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "")

	l, err := New(WithConsul("angler/config.properties"), WithConsulAs("angler/config", codec.TypeProperties))
	require.NoError(t, err)
	assert.Empty(t, l.sources)
}

func TestWithConsul_Configured(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "127.0.0.1:8500")

	l, err := New(WithConsul("angler/config.properties"), WithConsulAs("angler/config", codec.TypeProperties))
	require.NoError(t, err)
	require.Len(t, l.sources, 2)
	assert.Equal(t, "consul:angler/config.properties", describe(l.sources[0]))

	_, err = New(WithConsul("angler/config"))
	require.Error(t, err)
}

func TestWithFile_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANGLER_TEST_CONF_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.properties"), []byte("msgproc.workers=9"), 0o600))

	s, err := TestLoader(t, WithFile("${ANGLER_TEST_CONF_DIR}/config.properties")).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 9, *s.MessagesProcessor.Workers)
}

func TestDump(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "resolved.properties")
	mock := TestDumper()

	loader := TestLoader(t,
		WithContent([]byte(sampleFile), codec.TypeProperties),
		WithFileDumper(out),
		WithDumper(mock),
	)

	require.NoError(t, loader.Dump(t.Context()))
	assert.True(t, mock.Called())
	assert.Empty(t, mock.Props())

	_, err := loader.Load(t.Context())
	require.NoError(t, err)
	require.NoError(t, loader.Dump(t.Context()))
	assert.Equal(t, sampleSettings().Properties(), mock.Props())

	// The dump reloads to the same settings.
	s, err := TestLoader(t, WithFile(out)).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sampleSettings(), s)
}

func TestDump_StructuredRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"resolved.yaml", "resolved.json", "resolved.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), name)
			loader := TestLoader(t,
				WithContent([]byte(sampleFile), codec.TypeProperties),
				WithFileDumper(out),
			)
			loader.MustLoad(t.Context())
			loader.MustDump(t.Context())

			s, err := TestLoader(t, WithFile(out)).Load(t.Context())
			require.NoError(t, err)
			assert.Equal(t, sampleSettings(), s)
		})
	}
}

func TestDump_Errors(t *testing.T) {
	t.Parallel()

	loader := TestLoader(t, WithDumper(TestDumperWithError(errors.New("disk full"))))
	err := loader.Dump(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dumper[0]")

	//nolint:staticcheck // exercising the nil context guard
	require.Error(t, loader.Dump(nil))

	assert.Panics(t, func() { loader.MustDump(t.Context()) })
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]codec.Type{
		"conf/config.properties": codec.TypeProperties,
		"CONFIG.PROPERTIES":      codec.TypeProperties,
		"config.yaml":            codec.TypeYAML,
		"config.yml":             codec.TypeYAML,
		"config.json":            codec.TypeJSON,
		"config.toml":            codec.TypeTOML,
	}

	for path, want := range tests {
		got, err := detectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := detectFormat("config")
	require.Error(t, err)
}
