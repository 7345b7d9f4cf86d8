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
	"fmt"
	"path/filepath"
)

// Mode is the context a node runs in.
type Mode int

const (
	// Production is the default mode.
	Production Mode = iota
	// Development is selected with the --dev flag.
	Development
)

// ProductionConfigPath is the properties file of a production node,
// relative to its working directory.
const ProductionConfigPath = "./conf/config.properties"

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Production:
		return "production"
	case Development:
		return "development"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ConfigPath returns the properties file of the mode. Development reads a
// fixture below workdir.
func (m Mode) ConfigPath(workdir string) string {
	if m == Development {
		return filepath.Join(workdir, "dev", "resources", "config.properties")
	}
	return ProductionConfigPath
}

// NodeType is the part a node plays in the cluster.
type NodeType int

const (
	// Broker nodes never expose the client API directly; they handshake
	// with the controller, which balances load across them.
	Broker NodeType = iota
	// Controller is selected with the --controller flag.
	Controller
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case Broker:
		return "broker"
	case Controller:
		return "controller"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Role is a functionality a node takes on.
type Role string

const (
	RoleMessageProcessor Role = "message-processor"
	RoleStorage          Role = "storage"
)

// DefaultRoles are used when Options.Roles is empty.
var DefaultRoles = []Role{RoleMessageProcessor, RoleStorage}
