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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"angler.dev/angler/config/codec"
	"angler.dev/angler/config/dumper"
	"angler.dev/angler/config/source"
)

// Option is a functional option that can be used to configure a Loader instance.
type Option func(l *Loader) error

// Loader resolves Settings from an ordered list of sources.
//
// Sources are consulted in registration order and the first source that sets
// a field wins: later sources only fill fields left unset by earlier ones.
// A node registers its properties file before the ANGLER_CFG variable, so the
// file takes precedence and the variable supplies missing keys.
//
// Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	sources            []Source
	dumpers            []Dumper
	jsonSchemaCompiled *jsonschema.Schema
	customValidators   []func(*Settings) error
	logger             *slog.Logger
	tracerProvider     trace.TracerProvider
	meterProvider      metric.MeterProvider
	inst               *instruments

	mu       sync.RWMutex
	settings *Settings
}

// WithSource adds a source to the loader.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile returns an Option that adds a file source.
// The format is detected from the file extension (.properties, .yaml, .yml, .json, .toml).
// For files without extensions or custom formats, use WithFileAs instead.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
//
// Example:
//
//	loader := config.MustNew(
//	    config.WithFile("conf/config.properties"),
//	    config.WithEnv(source.DefaultEnvVar),
//	)
func WithFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		l.sources = append(l.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithFileAs returns an Option that adds a file source with an explicit format.
// Use this when the file doesn't have an extension or when you need to override the format detection.
//
// Example:
//
//	loader := config.MustNew(
//	    config.WithFileAs("conf/node.cfg", codec.TypeProperties),
//	)
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		l.sources = append(l.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithContent returns an Option that adds a source reading the given bytes.
//
// Example:
//
//	loader := config.MustNew(
//	    config.WithContent([]byte("msgproc.workers=8"), codec.TypeProperties),
//	)
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}

		l.sources = append(l.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithEnv returns an Option that adds a source reading inline properties from
// the named environment variable. An empty name selects ANGLER_CFG.
// An unset variable configures nothing.
func WithEnv(name string) Option {
	return func(l *Loader) error {
		l.sources = append(l.sources, source.NewEnvVar(name))
		return nil
	}
}

// WithConsul returns an Option that adds a source reading a document from a
// Consul key. The format is detected from the key extension.
// For custom formats, use WithConsulAs instead.
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped, so a
// single node runs without Consul while a cluster shares one document.
//
// Required environment variables (when Consul is used):
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication with Consul (optional)
func WithConsul(path string) Option {
	return func(l *Loader) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}

		return withConsul(l, path, format)
	}
}

// WithConsulAs returns an Option that adds a Consul source with an explicit format.
// Like WithConsul, it is skipped when CONSUL_HTTP_ADDR is not set.
//
// Example:
//
//	loader := config.MustNew(
//	    config.WithFile("conf/config.properties"),
//	    config.WithConsulAs("angler/cluster", codec.TypeProperties),
//	)
func WithConsulAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		return withConsul(l, os.ExpandEnv(path), codecType)
	}
}

func withConsul(l *Loader, path string, codecType codec.Type) error {
	decoder, err := codec.GetDecoder(codecType)
	if err != nil {
		return NewError("consul-source", "get-decoder", err)
	}

	src, err := source.NewConsul(path, decoder, nil)
	if err != nil {
		return NewError("consul-source", "create-client", err)
	}

	l.sources = append(l.sources, src)
	return nil
}

// WithDumper adds a dumper to the loader.
func WithDumper(d Dumper) Option {
	return func(l *Loader) error {
		if d == nil {
			return errors.New("dumper cannot be nil")
		}
		l.dumpers = append(l.dumpers, d)
		return nil
	}
}

// WithFileDumper returns an Option that writes the resolved properties to a file.
// The format is detected from the file extension.
// For files without extensions or custom formats, use WithFileDumperAs instead.
func WithFileDumper(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-dumper", "detect-format", err)
		}

		encoder, err := codec.GetEncoder(format)
		if err != nil {
			return NewError("file-dumper", "get-encoder", err)
		}

		l.dumpers = append(l.dumpers, dumper.NewFile(path, encoder))
		return nil
	}
}

// WithFileDumperAs returns an Option that writes the resolved properties to a
// file with an explicit format.
func WithFileDumperAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		encoder, err := codec.GetEncoder(codecType)
		if err != nil {
			return NewError("file-dumper", "get-encoder", err)
		}

		l.dumpers = append(l.dumpers, dumper.NewFile(path, encoder))
		return nil
	}
}

// WithJSONSchema validates the raw property map of every source against a
// JSON Schema before it is decoded. Property values are strings, so the
// schema constrains keys and text patterns.
func WithJSONSchema(schema []byte) Option {
	return func(l *Loader) error {
		// Use a unique schema name to avoid caching issues
		//nolint:gosec // rand.Int() is used for a unique schema name, not security sensitive
		schemaName := fmt.Sprintf("inline_%d.json", rand.Int())
		compiler := jsonschema.NewCompiler()

		jsonSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}

		if err = compiler.AddResource(schemaName, jsonSchema); err != nil {
			return NewError("json-schema", "compile", err)
		}
		s, err := compiler.Compile(schemaName)
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		l.jsonSchemaCompiled = s
		return nil
	}
}

// WithValidator adds a validation function run on the merged Settings.
func WithValidator(fn func(*Settings) error) Option {
	return func(l *Loader) error {
		if fn == nil {
			return errors.New("validator cannot be nil")
		}
		l.customValidators = append(l.customValidators, fn)
		return nil
	}
}

// WithLogger sets the logger used to report resolution. The default logger
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		l.logger = logger
		return nil
	}
}

// New creates a new Loader with the provided options.
// If any of the options return an error, the errors are collected and returned
// along with the partially initialized Loader.
func New(options ...Option) (*Loader, error) {
	var errs error
	l := &Loader{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(l); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	inst, err := newInstruments(l.tracerProvider, l.meterProvider)
	if err != nil {
		errs = errors.Join(errs, NewError("telemetry", "init", err))
		inst, _ = newInstruments(nil, nil)
	}
	l.inst = inst

	return l, errs //nolint:nilnil // Returning partial loader with error is intentional
}

// MustNew creates a new Loader with the provided options.
// It panics if any option returns an error.
func MustNew(options ...Option) *Loader {
	l, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create loader: %v", err))
	}
	return l
}

// Load reads every source, builds its Settings and merges them so that the
// first source to set a field wins. The merged Settings is then validated
// with Validate and with the custom validators. On success it becomes the
// value returned by Settings.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns [Error] wrapping *source.ReadError if a file cannot be read
//   - Returns [Error] if a source fails to load or fails JSON schema validation
//   - Returns [Error] wrapping one *ParseError per malformed property
//   - Returns [Error] if Validate or a custom validator fails
func (l *Loader) Load(ctx context.Context) (*Settings, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	start := time.Now()
	ctx, span := l.inst.tracer.Start(ctx, "config.Load",
		trace.WithAttributes(attribute.Int("config.sources", len(l.sources))))
	defer span.End()

	merged, err := l.resolve(ctx)

	result := "ok"
	if err != nil {
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	l.inst.loadDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("result", result)))

	return merged, err
}

func (l *Loader) resolve(ctx context.Context) (*Settings, error) {
	merged := &Settings{}
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		built, err := l.loadSource(ctx, i, src)
		if err != nil {
			return nil, err
		}
		merged.Merge(built)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	for i, fn := range l.customValidators {
		var validatorErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					validatorErr = fmt.Errorf("validator panic: %v", r)
				}
			}()
			validatorErr = fn(merged)
		}()
		if validatorErr != nil {
			return nil, NewError(fmt.Sprintf("custom-validator[%d]", i), "validate", validatorErr)
		}
	}

	l.mu.Lock()
	l.settings = merged
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "configuration resolved",
		"sources", len(l.sources),
		"properties", len(merged.Properties()),
	)

	return merged, nil
}

// loadSource reads, checks and builds the Settings of one source.
func (l *Loader) loadSource(ctx context.Context, i int, src Source) (built *Settings, err error) {
	name := fmt.Sprintf("source[%d]", i)
	origin := describe(src)

	ctx, span := l.inst.tracer.Start(ctx, "config.source", trace.WithAttributes(
		attribute.Int("config.source.index", i),
		attribute.String("config.source.origin", origin),
	))
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		l.inst.sourceLoads.Add(ctx, 1, metric.WithAttributes(
			attribute.String("origin", origin),
			attribute.String("result", result),
		))
		span.End()
	}()

	props, err := src.Load(ctx)
	if err != nil {
		return nil, NewError(name, "load", err)
	}

	if l.jsonSchemaCompiled != nil {
		if err = l.jsonSchemaCompiled.Validate(schemaInstance(props)); err != nil {
			return nil, NewError(name, "json-schema", err)
		}
	}

	built, err = Build(props)
	if err != nil {
		return nil, NewError(name, "build", err)
	}

	span.SetAttributes(attribute.Int("config.source.properties", len(props)))
	l.logger.DebugContext(ctx, "configuration source loaded",
		"source", name,
		"origin", origin,
		"properties", len(props),
	)

	return built, nil
}

// MustLoad loads the configuration or panics on error.
func (l *Loader) MustLoad(ctx context.Context) *Settings {
	s, err := l.Load(ctx)
	if err != nil {
		panic(err)
	}
	return s
}

// Settings returns the Settings of the last successful Load, or nil.
func (l *Loader) Settings() *Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// Dump writes the properties of the last successful Load to every dumper.
// Before any Load an empty property map is written.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns [Error] if any dumper fails
func (l *Loader) Dump(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	props := l.Settings().Properties()
	for i, d := range l.dumpers {
		if err := d.Dump(ctx, props); err != nil {
			return NewError(fmt.Sprintf("dumper[%d]", i), "dump", err)
		}
	}

	return nil
}

// MustDump writes the properties to the dumpers or panics on error.
func (l *Loader) MustDump(ctx context.Context) {
	if err := l.Dump(ctx); err != nil {
		panic(err)
	}
}

func schemaInstance(props map[string]string) map[string]any {
	instance := make(map[string]any, len(props))
	for k, v := range props {
		instance[k] = v
	}
	return instance
}

func describe(src Source) string {
	switch s := src.(type) {
	case *source.File:
		if s.Path() == "" {
			return "content"
		}
		return "file:" + s.Path()
	case *source.EnvVar:
		return "env:" + s.Name()
	case *source.Consul:
		return "consul:" + s.Path()
	default:
		return fmt.Sprintf("%T", src)
	}
}
