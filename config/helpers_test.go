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

//go:build !integration

package config

import (
	"time"

	"angler.dev/angler/duration"
)

// sampleFile is the properties file shipped with a node.
const sampleFile = `

# Cluster configurations
cluster.authKey=abcd1234
cluster.controller.host=webhooks.my-web.services
cluster.requestTimeout=10000

# Database properties
db.deadMessages.retention=30d
db.deliveredMessages.retention=30d

# Message Processor configurations
msgproc.message_delivery_timeout=10000
msgproc.workers=500

# Configuration about the client net communication interface
net.client.protocols=restful
net.client.restful.port=80

# The default values set on retryPolicy if not set by the client
retryPolicy.defaults.interval=1d
retryPolicy.defaults.maxAttempts=7

# The limit (max or min) of interval and resend attempts
retryPolicy.limit.maxInterval=30d
retryPolicy.limit.maxAttempts=20
`

// sampleEnv sets every key to a value different from sampleFile.
const sampleEnv = "cluster.authKey=efgh5678;" +
	"cluster.controller.host=controller.internal;" +
	"cluster.requestTimeout=2500;" +
	"db.deadMessages.retention=1w;" +
	"db.deliveredMessages.retention=2d;" +
	"msgproc.message_delivery_timeout=500;" +
	"msgproc.workers=8;" +
	"net.client.protocols=grpc;" +
	"net.client.restful.port=8080;" +
	"retryPolicy.defaults.interval=[5m, 1h];" +
	"retryPolicy.defaults.maxAttempts=3;" +
	"retryPolicy.limit.maxInterval=2d;" +
	"retryPolicy.limit.maxAttempts=5;"

func ptr[T any](v T) *T {
	return &v
}

// sampleSettings is what sampleFile builds to.
func sampleSettings() *Settings {
	return &Settings{
		Cluster: ClusterSettings{
			AuthKey:        ptr("abcd1234"),
			ControllerHost: ptr("webhooks.my-web.services"),
			RequestTimeout: ptr(10 * time.Second),
		},
		Database: DatabaseSettings{
			DeadMessagesRetention:      ptr(30 * duration.Day),
			DeliveredMessagesRetention: ptr(30 * duration.Day),
		},
		MessagesProcessor: MessagesProcessorSettings{
			MessageDeliveryTimeout: ptr(10 * time.Second),
			Workers:                ptr(500),
		},
		Networking: NetworkingSettings{
			ClientProtocols: []string{"restful"},
			RESTfulPort:     ptr(uint16(80)),
		},
		RetryPolicy: RetryPolicySettings{
			DefaultInterval:    duration.MustParseSequence("1d"),
			DefaultMaxAttempts: ptr(uint16(7)),
			MaxIntervalLimit:   ptr(30 * duration.Day),
			MaxAttemptsLimit:   ptr(uint16(20)),
		},
	}
}
