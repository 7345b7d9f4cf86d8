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
	"context"
	"fmt"
	"os"

	"angler.dev/angler/config/codec"
)

// ReadError reports a configuration file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying file system error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// File represents a configuration source that loads data from a file or byte content.
// It supports loading from file paths or directly from byte slices.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a new File source that loads configuration from the specified file path.
// The decoder parameter determines how the file content is parsed.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		decoder: decoder,
	}
}

// NewFileContent creates a new File source that loads configuration from the provided byte slice.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{
		data:    data,
		decoder: decoder,
	}
}

// Path returns the file path, or an empty string for content sources.
func (f *File) Path() string {
	return f.path
}

// Load reads the file, decodes it and flattens the result to dotted keys.
// The file is read on every call.
//
// Errors:
//   - Returns *ReadError if the file cannot be read (NewFile only)
//   - Returns error if decoding or flattening fails
func (f *File) Load(context.Context) (map[string]string, error) {
	data := f.data

	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			return nil, &ReadError{Path: f.path, Err: err}
		}
	}

	var doc map[string]any
	if err := f.decoder.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}

	props, err := Flatten(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten file: %w", err)
	}

	return props, nil
}
