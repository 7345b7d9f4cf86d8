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

package config

import (
	"slices"
	"time"

	"angler.dev/angler/duration"
)

// Settings is the typed configuration of a node.
//
// Every leaf is optional: a nil pointer (or an empty protocol set) means the
// value was not configured by the source the Settings was built from.
// A resolved Settings is treated as read-only.
type Settings struct {
	Cluster           ClusterSettings
	Database          DatabaseSettings
	MessagesProcessor MessagesProcessorSettings
	Networking        NetworkingSettings
	RetryPolicy       RetryPolicySettings
}

// ClusterSettings is read by cluster membership.
type ClusterSettings struct {
	AuthKey        *string        `prop:"cluster.authKey"`
	ControllerHost *string        `prop:"cluster.controller.host"`
	RequestTimeout *time.Duration `prop:"cluster.requestTimeout" validate:"omitnil,gte=0"`
}

// DatabaseSettings is read by the message store.
type DatabaseSettings struct {
	DeadMessagesRetention      *time.Duration `prop:"db.deadMessages.retention" validate:"omitnil,gte=0"`
	DeliveredMessagesRetention *time.Duration `prop:"db.deliveredMessages.retention" validate:"omitnil,gte=0"`
}

// MessagesProcessorSettings is read by the delivery worker pool.
type MessagesProcessorSettings struct {
	MessageDeliveryTimeout *time.Duration `prop:"msgproc.message_delivery_timeout" validate:"omitnil,gte=0"`
	Workers                *int           `prop:"msgproc.workers" validate:"omitnil,gt=0"`
}

// NetworkingSettings is read by the client API listeners.
type NetworkingSettings struct {
	// ClientProtocols is a sorted set without duplicates.
	ClientProtocols []string `prop:"net.client.protocols" validate:"omitempty,unique,dive,required,excludesall=0x2C"`
	RESTfulPort     *uint16  `prop:"net.client.restful.port" validate:"omitnil,gt=0"`
}

// RetryPolicySettings is read by the retry scheduler.
type RetryPolicySettings struct {
	DefaultInterval    *duration.Sequence `prop:"retryPolicy.defaults.interval"`
	DefaultMaxAttempts *uint16            `prop:"retryPolicy.defaults.maxAttempts"`
	MaxIntervalLimit   *time.Duration     `prop:"retryPolicy.limit.maxInterval" validate:"omitnil,gte=0"`
	MaxAttemptsLimit   *uint16            `prop:"retryPolicy.limit.maxAttempts" validate:"omitnil,gt=0"`
}

// HasProtocol reports whether name is one of the configured client protocols.
func (n NetworkingSettings) HasProtocol(name string) bool {
	_, found := slices.BinarySearch(n.ClientProtocols, name)
	return found
}

// Clone returns a deep copy of s. Clone of nil is nil.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}

	c := &Settings{
		Cluster: ClusterSettings{
			AuthKey:        clonePtr(s.Cluster.AuthKey),
			ControllerHost: clonePtr(s.Cluster.ControllerHost),
			RequestTimeout: clonePtr(s.Cluster.RequestTimeout),
		},
		Database: DatabaseSettings{
			DeadMessagesRetention:      clonePtr(s.Database.DeadMessagesRetention),
			DeliveredMessagesRetention: clonePtr(s.Database.DeliveredMessagesRetention),
		},
		MessagesProcessor: MessagesProcessorSettings{
			MessageDeliveryTimeout: clonePtr(s.MessagesProcessor.MessageDeliveryTimeout),
			Workers:                clonePtr(s.MessagesProcessor.Workers),
		},
		Networking: NetworkingSettings{
			ClientProtocols: slices.Clone(s.Networking.ClientProtocols),
			RESTfulPort:     clonePtr(s.Networking.RESTfulPort),
		},
		RetryPolicy: RetryPolicySettings{
			DefaultMaxAttempts: clonePtr(s.RetryPolicy.DefaultMaxAttempts),
			MaxIntervalLimit:   clonePtr(s.RetryPolicy.MaxIntervalLimit),
			MaxAttemptsLimit:   clonePtr(s.RetryPolicy.MaxAttemptsLimit),
		},
	}
	if s.RetryPolicy.DefaultInterval != nil {
		c.RetryPolicy.DefaultInterval = s.RetryPolicy.DefaultInterval.Clone()
	}

	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
