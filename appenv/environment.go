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

package appenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"angler.dev/angler/config"
	"angler.dev/angler/config/codec"
	"angler.dev/angler/config/source"
)

// Options select how the environment is resolved.
type Options struct {
	Mode     Mode
	NodeType NodeType
	Roles    []Role

	// ConfigPath overrides Mode.ConfigPath.
	ConfigPath string
	// WorkDir is the base of the development config path. Defaults to the
	// current directory.
	WorkDir string
	// EnvVar names the override variable. Defaults to ANGLER_CFG.
	EnvVar string
	// ConsulKey, when set, adds a properties document shared through Consul.
	// It is read after ANGLER_CFG and only when CONSUL_HTTP_ADDR is set.
	ConsulKey string

	Logger *slog.Logger
	// Loader holds extra loader options, such as telemetry providers.
	// They are applied after the built-in sources.
	Loader []config.Option
}

// Environment is the resolved runtime environment. It is read-only.
type Environment struct {
	mode       Mode
	nodeType   NodeType
	roles      []Role
	configPath string
	settings   *config.Settings
}

// Resolve reads the configuration of a node and returns its environment.
//
// Errors:
//   - Returns error if the working directory cannot be determined
//   - Returns *config.Error if the configuration cannot be loaded, built or validated
func Resolve(ctx context.Context, opts Options) (*Environment, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path := opts.ConfigPath
	if path == "" {
		workdir := opts.WorkDir
		if workdir == "" && opts.Mode == Development {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("appenv: resolve working directory: %w", err)
			}
			workdir = wd
		}
		path = opts.Mode.ConfigPath(workdir)
	}

	envVar := opts.EnvVar
	if envVar == "" {
		envVar = source.DefaultEnvVar
	}

	fileOption := config.WithFile(path)
	if filepath.Ext(path) == "" {
		fileOption = config.WithFileAs(path, codec.TypeProperties)
	}

	options := []config.Option{
		fileOption,
		config.WithEnv(envVar),
		config.WithLogger(logger),
	}
	if opts.ConsulKey != "" {
		options = append(options, config.WithConsulAs(opts.ConsulKey, codec.TypeProperties))
	}
	options = append(options, opts.Loader...)

	loader, err := config.New(options...)
	if err != nil {
		return nil, err
	}

	_, envSet := os.LookupEnv(envVar)
	logger.InfoContext(ctx, "loading configuration",
		"mode", opts.Mode,
		"node_type", opts.NodeType,
		"file", path,
		"env_var", envVar,
		"env_var_set", envSet,
	)

	settings, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	roles := slices.Clone(opts.Roles)
	if len(roles) == 0 {
		roles = slices.Clone(DefaultRoles)
	}
	slices.Sort(roles)
	roles = slices.Compact(roles)

	return &Environment{
		mode:       opts.Mode,
		nodeType:   opts.NodeType,
		roles:      roles,
		configPath: path,
		settings:   settings,
	}, nil
}

// Once returns a function that resolves the environment on its first call
// and returns the same result to every later or concurrent caller. A failed
// resolution is not retried.
func Once(opts Options) func() (*Environment, error) {
	return sync.OnceValues(func() (*Environment, error) {
		return Resolve(context.Background(), opts)
	})
}

// Mode returns the mode the node runs in.
func (e *Environment) Mode() Mode {
	return e.mode
}

// NodeType returns the part the node plays in the cluster.
func (e *Environment) NodeType() NodeType {
	return e.nodeType
}

// Roles returns the node roles in sorted order.
func (e *Environment) Roles() []Role {
	return slices.Clone(e.roles)
}

// HasRole reports whether the node takes on role.
func (e *Environment) HasRole(role Role) bool {
	_, found := slices.BinarySearch(e.roles, role)
	return found
}

// ConfigPath returns the properties file the settings were read from.
func (e *Environment) ConfigPath() string {
	return e.configPath
}

// Settings returns the resolved settings. Callers must not modify them.
func (e *Environment) Settings() *config.Settings {
	return e.settings
}
