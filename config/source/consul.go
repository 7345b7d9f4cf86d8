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

	"github.com/hashicorp/consul/api"

	"angler.dev/angler/config/codec"
)

// ConsulKV defines the interface for Consul key-value operations.
// This interface enables testing by allowing mock implementations.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul represents a configuration source that loads data from Consul's key-value store.
// A single key holds a whole document, typically properties text shared by every
// node of a cluster.
//
// The Consul client is configured using environment variables:
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
type Consul struct {
	kv      ConsulKV
	path    string
	decoder codec.Decoder
}

// NewConsul creates a new Consul configuration source with the given path and decoder.
// The path parameter specifies the key path in Consul's key-value store.
// If kv is nil, it uses the default Consul client KV implementation.
//
// Errors:
//   - Returns error if the Consul client cannot be created
func NewConsul(path string, decoder codec.Decoder, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	return &Consul{
		kv:      kv,
		path:    path,
		decoder: decoder,
	}, nil
}

// Path returns the Consul key.
func (c *Consul) Path() string {
	return c.path
}

// Load retrieves the document stored at the configured key and flattens it to dotted keys.
// If the key does not exist in Consul, it returns an empty map without error.
//
// Errors:
//   - Returns error if the Consul query fails
//   - Returns error if decoding the value fails
func (c *Consul) Load(ctx context.Context) (map[string]string, error) {
	pair, _, err := c.kv.Get(c.path, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}

	if pair == nil {
		return map[string]string{}, nil
	}

	var doc map[string]any
	if err := c.decoder.Decode(pair.Value, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode consul value: %w", err)
	}

	props, err := Flatten(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten consul value: %w", err)
	}

	return props, nil
}
