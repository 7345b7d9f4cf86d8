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

// Command mixed layers a YAML file, the ANGLER_CFG variable and an optional
// Consul key, checks every source against a JSON schema, and writes the
// resolved properties next to the binary.
//
//	CONSUL_HTTP_ADDR=localhost:8500 go run .
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"angler.dev/angler/config"
	"angler.dev/angler/config/codec"
)

//go:embed schema.json
var schema []byte

// requireRESTfulPort rejects settings that enable the restful protocol
// without a port to serve it on.
func requireRESTfulPort(s *config.Settings) error {
	if s.Networking.HasProtocol("restful") && s.Networking.RESTfulPort == nil {
		return errors.New("restful protocol enabled without net.client.restful.port")
	}
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	loader, err := config.New(
		config.WithFile("config.yaml"),
		config.WithEnv(""),
		config.WithConsulAs("angler/node.properties", codec.TypeProperties),
		config.WithJSONSchema(schema),
		config.WithValidator(requireRESTfulPort),
		config.WithValidator(config.RetryPolicyWithinLimits),
		config.WithFileDumper("resolved.properties"),
		config.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("failed to create loader: %v", err)
	}

	settings, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	fmt.Println(settings)

	if err = loader.Dump(context.Background()); err != nil {
		log.Fatalf("failed to dump config: %v", err)
	}
}
