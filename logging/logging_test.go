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

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "default config"},
		{name: "json handler", opts: []Option{WithHandlerType(JSONHandler)}},
		{name: "console handler", opts: []Option{WithHandlerType(ConsoleHandler)}},
		{name: "unknown handler", opts: []Option{WithHandlerType("xml")}, wantErr: ErrInvalidHandler},
		{name: "nil output", opts: []Option{WithOutput(nil)}, wantErr: ErrNilOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, err := New(tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(WithHandlerType("xml")) })
}

func TestParseHandlerType(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"json", "TEXT", " console "} {
		_, err := ParseHandlerType(name)
		require.NoError(t, err, name)
	}

	_, err := ParseHandlerType("logfmt")
	require.ErrorIs(t, err, ErrInvalidHandler)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(
		WithHandlerType(JSONHandler),
		WithOutput(&buf),
		WithNode("production", "broker"),
	)

	logger.Info("configuration resolved", "msgproc.workers", 500)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "configuration resolved", entry["msg"])
	assert.Equal(t, "production", entry["mode"])
	assert.Equal(t, "broker", entry["node_type"])
	assert.InDelta(t, 500, entry["msgproc.workers"], 0)
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := MustNew(WithOutput(&buf), WithLevel(level))

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Redaction(t *testing.T) {
	t.Parallel()

	for _, handler := range []HandlerType{JSONHandler, TextHandler, ConsoleHandler} {
		t.Run(string(handler), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := MustNew(WithHandlerType(handler), WithOutput(&buf))

			logger.With("cluster.authKey", "abcd1234").Info("joined", "secret", "s3cr3t")

			assert.NotContains(t, buf.String(), "abcd1234")
			assert.NotContains(t, buf.String(), "s3cr3t")
			assert.Contains(t, buf.String(), Redacted)
		})
	}
}

func TestNew_RedactionInGroups(t *testing.T) {
	t.Parallel()

	for _, handler := range []HandlerType{JSONHandler, TextHandler, ConsoleHandler} {
		t.Run(string(handler), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := MustNew(WithHandlerType(handler), WithOutput(&buf))

			logger.WithGroup("node").With("authKey", "s3cr3t").
				Info("joined", slog.Group("peer", "token", "t0ken"))

			assert.NotContains(t, buf.String(), "s3cr3t")
			assert.NotContains(t, buf.String(), "t0ken")
			assert.Contains(t, buf.String(), Redacted)
		})
	}
}

func TestNew_ReplaceAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(
		WithOutput(&buf),
		WithReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "origin" {
				return slog.String("origin", "masked")
			}
			return a
		}),
	)

	logger.Info("loaded", "origin", "file:/etc/angler/config.properties", "token", "t")

	assert.Contains(t, buf.String(), "origin=masked")
	assert.Contains(t, buf.String(), "token="+Redacted)
}

func TestNew_ErrorAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithHandlerType(ConsoleHandler), WithOutput(&buf))
	logger.Error("configuration failed", "error", errors.New("read config file x: missing"))

	assert.Contains(t, buf.String(), "error=read config file x: missing")
}
