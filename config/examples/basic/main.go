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

// Command basic resolves node settings from a properties file and ANGLER_CFG.
//
//	ANGLER_CFG="net.client.restful.port=8080;msgproc.workers=8" go run .
package main

import (
	"context"
	"fmt"
	"log"

	"angler.dev/angler/config"
)

func main() {
	loader := config.MustNew(
		config.WithFile("./config.properties"),
		config.WithEnv(""),
	)

	settings, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fmt.Println(settings)

	if workers := settings.MessagesProcessor.Workers; workers != nil {
		fmt.Printf("delivery workers: %d\n", *workers)
	}
	if interval := settings.RetryPolicy.DefaultInterval; interval != nil {
		fmt.Printf("retry steps: %s (total %s)\n", interval, interval.Total())
	}
}
