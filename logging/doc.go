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

// Package logging builds the [slog.Logger] used by an angler node.
//
// A logger is created with functional options:
//
//	logger, err := logging.New(
//	    logging.WithHandlerType(logging.ConsoleHandler),
//	    logging.WithLevel(slog.LevelDebug),
//	    logging.WithNode("development", "controller"),
//	)
//
// JSON and text output use the standard library handlers. The console
// handler writes compact colored lines meant for a terminal.
//
// Attributes carrying secrets, such as the cluster authentication key, are
// replaced with a redaction marker by every handler.
package logging
