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

// Package appenv resolves the runtime environment of a node: the mode it
// runs in, its role in the cluster and its Settings.
//
// The environment is established once per process. [Resolve] does the work
// and returns an owned value; [Once] wraps it in a lazy, thread-safe handle
// for the composition root:
//
//	env := appenv.Once(appenv.Options{Mode: appenv.Production})
//
//	e, err := env() // every caller gets the same Environment or error
//
// Settings are read from the mode's properties file first and from the
// ANGLER_CFG variable second. Keys set in the file win; the variable only
// fills keys the file leaves out.
package appenv
