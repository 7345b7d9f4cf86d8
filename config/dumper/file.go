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

package dumper

import (
	"context"
	"fmt"
	"io"
	"os"

	"angler.dev/angler/config/codec"
)

// File represents a configuration dumper that writes properties to a file.
// It supports customizable file permissions and uses encoders to
// convert the properties to the appropriate format.
type File struct {
	path        string
	encoder     codec.Encoder
	permissions os.FileMode
}

const (
	// DefaultFilePermissions represents the default file permissions for dumped configuration files.
	// Dumps carry cluster.authKey, so only the owner may read them (0600).
	DefaultFilePermissions = 0o600
)

// NewFile creates a new File dumper that writes properties to the specified file path.
// It uses DefaultFilePermissions.
func NewFile(path string, encoder codec.Encoder) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: DefaultFilePermissions,
	}
}

// NewFileWithPermissions creates a new File dumper with custom file permissions.
func NewFileWithPermissions(path string, encoder codec.Encoder, permissions os.FileMode) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: permissions,
	}
}

// Dump encodes props and writes them to the file, replacing its content.
//
// Errors:
//   - Returns error if encoding fails
//   - Returns error if writing to the file fails
func (f *File) Dump(_ context.Context, props map[string]string) error {
	data, err := f.encoder.Encode(props)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	if err = os.WriteFile(f.path, data, f.permissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Writer represents a configuration dumper that writes properties to an io.Writer,
// such as os.Stdout.
type Writer struct {
	w       io.Writer
	encoder codec.Encoder
}

// NewWriter creates a new Writer dumper.
func NewWriter(w io.Writer, encoder codec.Encoder) *Writer {
	return &Writer{w: w, encoder: encoder}
}

// Dump encodes props and writes them to the underlying writer.
//
// Errors:
//   - Returns error if encoding fails
//   - Returns error if the write fails
func (d *Writer) Dump(_ context.Context, props map[string]string) error {
	data, err := d.encoder.Encode(props)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	if _, err = d.w.Write(data); err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}

	return nil
}
