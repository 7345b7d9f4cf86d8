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

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "***REDACTED***"

// sensitiveKeys are attribute keys whose values never reach the output.
var sensitiveKeys = []string{"auth_key", "authKey", "cluster.authKey", "password", "secret", "token"}

// ParseHandlerType returns the handler type named by s.
func ParseHandlerType(s string) (HandlerType, error) {
	t := HandlerType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}

// ParseLevel returns the level named by s (debug, info, warn or error,
// optionally with an offset such as "info+2").
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

type options struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.Leveler
	addSource   bool
	attrs       []any
	replaceAttr func(groups []string, a slog.Attr) slog.Attr
}

// Option is a functional option for configuring the logger.
type Option func(*options)

// WithHandlerType sets the output format. The default is [TextHandler].
func WithHandlerType(t HandlerType) Option {
	return func(o *options) { o.handlerType = t }
}

// WithOutput sets the destination of log records. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithLevel sets the minimum level. Passing a [*slog.LevelVar] allows the
// level to change after the logger is built.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) { o.level = level }
}

// WithSource adds the source file and line to each record.
func WithSource(enabled bool) Option {
	return func(o *options) { o.addSource = enabled }
}

// WithNode tags every record with the run mode and node type.
// Empty values are omitted.
func WithNode(mode, nodeType string) Option {
	return func(o *options) {
		if mode != "" {
			o.attrs = append(o.attrs, "mode", mode)
		}
		if nodeType != "" {
			o.attrs = append(o.attrs, "node_type", nodeType)
		}
	}
}

// WithReplaceAttr installs a replacer that runs after redaction.
func WithReplaceAttr(fn func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(o *options) { o.replaceAttr = fn }
}

// New builds a logger from the given options.
//
// Errors:
//   - [ErrNilOutput] if the output writer is nil
//   - [ErrInvalidHandler] if the handler type is unknown
func New(opts ...Option) (*slog.Logger, error) {
	o := &options{
		handlerType: TextHandler,
		output:      os.Stderr,
		level:       slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.output == nil {
		return nil, ErrNilOutput
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       o.level,
		AddSource:   o.addSource,
		ReplaceAttr: o.buildReplaceAttr(),
	}

	var handler slog.Handler
	switch o.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	case TextHandler:
		handler = slog.NewTextHandler(o.output, handlerOpts)
	case ConsoleHandler:
		handler = newConsoleHandler(o.output, handlerOpts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandler, o.handlerType)
	}

	logger := slog.New(handler)
	if len(o.attrs) > 0 {
		logger = logger.With(o.attrs...)
	}
	return logger, nil
}

// MustNew builds a logger or panics on error.
func MustNew(opts ...Option) *slog.Logger {
	logger, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return logger
}

func (o *options) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if slices.Contains(sensitiveKeys, a.Key) {
			return slog.String(a.Key, Redacted)
		}
		if o.replaceAttr != nil {
			return o.replaceAttr(groups, a)
		}
		return a
	}
}
