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
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"angler.dev/angler/duration"
)

// Recognized property keys.
const (
	KeyClusterAuthKey             = "cluster.authKey"
	KeyClusterControllerHost      = "cluster.controller.host"
	KeyClusterRequestTimeout      = "cluster.requestTimeout"
	KeyDeadMessagesRetention      = "db.deadMessages.retention"
	KeyDeliveredMessagesRetention = "db.deliveredMessages.retention"
	KeyMessageDeliveryTimeout     = "msgproc.message_delivery_timeout"
	KeyMessageProcessorWorkers    = "msgproc.workers"
	KeyClientProtocols            = "net.client.protocols"
	KeyRESTfulPort                = "net.client.restful.port"
	KeyRetryDefaultInterval       = "retryPolicy.defaults.interval"
	KeyRetryDefaultMaxAttempts    = "retryPolicy.defaults.maxAttempts"
	KeyRetryMaxIntervalLimit      = "retryPolicy.limit.maxInterval"
	KeyRetryMaxAttemptsLimit      = "retryPolicy.limit.maxAttempts"
)

// Grammars named by ParseError.
const (
	GrammarString             = "string"
	GrammarMilliseconds       = "non-negative integer milliseconds"
	GrammarDuration           = "duration (<digits><s|m|h|d|w>)"
	GrammarSequence           = "duration or [duration, ...]"
	GrammarPositiveInteger    = "positive integer"
	GrammarNonNegativeInteger = "non-negative integer"
	GrammarProtocolSet        = "comma-separated names"
	GrammarPort               = "port (1-65535)"
)

var (
	// ErrOutOfRange is reported when a number does not fit its field.
	ErrOutOfRange = errors.New("value out of range")

	// ErrNotPositive is reported when a positive integer is zero.
	ErrNotPositive = errors.New("value must be greater than zero")

	// ErrEmptySet is reported when a protocol set names nothing.
	ErrEmptySet = errors.New("set is empty")
)

// property ties a key to its grammar and to the field it fills.
// encode reports false when the field is unset.
type property struct {
	key     string
	grammar string
	decode  func(s *Settings, value string) error
	encode  func(s *Settings) (string, bool)
}

var properties = []property{
	{
		key:     KeyClusterAuthKey,
		grammar: GrammarString,
		decode: func(s *Settings, v string) error {
			s.Cluster.AuthKey = &v
			return nil
		},
		encode: func(s *Settings) (string, bool) { return encodeString(s.Cluster.AuthKey) },
	},
	{
		key:     KeyClusterControllerHost,
		grammar: GrammarString,
		decode: func(s *Settings, v string) error {
			s.Cluster.ControllerHost = &v
			return nil
		},
		encode: func(s *Settings) (string, bool) { return encodeString(s.Cluster.ControllerHost) },
	},
	{
		key:     KeyClusterRequestTimeout,
		grammar: GrammarMilliseconds,
		decode: func(s *Settings, v string) (err error) {
			s.Cluster.RequestTimeout, err = parseMilliseconds(v)
			return err
		},
		encode: func(s *Settings) (string, bool) { return encodeMilliseconds(s.Cluster.RequestTimeout) },
	},
	{
		key:     KeyDeadMessagesRetention,
		grammar: GrammarDuration,
		decode: func(s *Settings, v string) (err error) {
			s.Database.DeadMessagesRetention, err = parseDuration(v)
			return err
		},
		encode: func(s *Settings) (string, bool) { return encodeDuration(s.Database.DeadMessagesRetention) },
	},
	{
		key:     KeyDeliveredMessagesRetention,
		grammar: GrammarDuration,
		decode: func(s *Settings, v string) (err error) {
			s.Database.DeliveredMessagesRetention, err = parseDuration(v)
			return err
		},
		encode: func(s *Settings) (string, bool) { return encodeDuration(s.Database.DeliveredMessagesRetention) },
	},
	{
		key:     KeyMessageDeliveryTimeout,
		grammar: GrammarMilliseconds,
		decode: func(s *Settings, v string) (err error) {
			s.MessagesProcessor.MessageDeliveryTimeout, err = parseMilliseconds(v)
			return err
		},
		encode: func(s *Settings) (string, bool) { return encodeMilliseconds(s.MessagesProcessor.MessageDeliveryTimeout) },
	},
	{
		key:     KeyMessageProcessorWorkers,
		grammar: GrammarPositiveInteger,
		decode: func(s *Settings, v string) error {
			n, err := parsePositive(v, strconv.IntSize-1)
			if err != nil {
				return err
			}
			workers := int(n)
			s.MessagesProcessor.Workers = &workers
			return nil
		},
		encode: func(s *Settings) (string, bool) {
			if s.MessagesProcessor.Workers == nil {
				return "", false
			}
			return strconv.Itoa(*s.MessagesProcessor.Workers), true
		},
	},
	{
		key:     KeyClientProtocols,
		grammar: GrammarProtocolSet,
		decode: func(s *Settings, v string) (err error) {
			s.Networking.ClientProtocols, err = parseSet(v)
			return err
		},
		encode: func(s *Settings) (string, bool) {
			if len(s.Networking.ClientProtocols) == 0 {
				return "", false
			}
			return strings.Join(s.Networking.ClientProtocols, ","), true
		},
	},
	{
		key:     KeyRESTfulPort,
		grammar: GrammarPort,
		decode: func(s *Settings, v string) error {
			n, err := parsePositive(v, 16)
			if err != nil {
				return err
			}
			port := uint16(n)
			s.Networking.RESTfulPort = &port
			return nil
		},
		encode: func(s *Settings) (string, bool) { return encodeUint16(s.Networking.RESTfulPort) },
	},
	{
		key:     KeyRetryDefaultInterval,
		grammar: GrammarSequence,
		decode: func(s *Settings, v string) error {
			seq, err := duration.ParseSequence(v)
			if err != nil {
				return err
			}
			s.RetryPolicy.DefaultInterval = seq
			return nil
		},
		encode: func(s *Settings) (string, bool) {
			seq := s.RetryPolicy.DefaultInterval
			switch {
			case seq == nil:
				return "", false
			case seq.Len() == 1:
				return duration.Format(seq.Total()), true
			default:
				return seq.String(), true
			}
		},
	},
	{
		key:     KeyRetryDefaultMaxAttempts,
		grammar: GrammarNonNegativeInteger,
		decode: func(s *Settings, v string) error {
			n, err := parseUint(v, 16)
			if err != nil {
				return err
			}
			attempts := uint16(n)
			s.RetryPolicy.DefaultMaxAttempts = &attempts
			return nil
		},
		encode: func(s *Settings) (string, bool) { return encodeUint16(s.RetryPolicy.DefaultMaxAttempts) },
	},
	{
		key:     KeyRetryMaxIntervalLimit,
		grammar: GrammarDuration,
		decode: func(s *Settings, v string) (err error) {
			s.RetryPolicy.MaxIntervalLimit, err = parseDuration(v)
			return err
		},
		encode: func(s *Settings) (string, bool) { return encodeDuration(s.RetryPolicy.MaxIntervalLimit) },
	},
	{
		key:     KeyRetryMaxAttemptsLimit,
		grammar: GrammarPositiveInteger,
		decode: func(s *Settings, v string) error {
			n, err := parsePositive(v, 16)
			if err != nil {
				return err
			}
			attempts := uint16(n)
			s.RetryPolicy.MaxAttemptsLimit = &attempts
			return nil
		},
		encode: func(s *Settings) (string, bool) { return encodeUint16(s.RetryPolicy.MaxAttemptsLimit) },
	},
}

// Keys returns the recognized property keys in their canonical order.
func Keys() []string {
	keys := make([]string, len(properties))
	for i, p := range properties {
		keys[i] = p.key
	}
	return keys
}

// Grammar returns the expected value form of a recognized key.
func Grammar(key string) (string, bool) {
	for _, p := range properties {
		if p.key == key {
			return p.grammar, true
		}
	}
	return "", false
}

// Build decodes a flat property map into Settings.
//
// A key missing from props leaves its field unset. Unrecognized keys are
// ignored. Every recognized key whose value does not match its grammar is
// reported as a *ParseError; all of them are joined into the returned error,
// in canonical key order, and no Settings is returned.
func Build(props map[string]string) (*Settings, error) {
	s := &Settings{}
	var errs []error

	for _, p := range properties {
		value, ok := props[p.key]
		if !ok {
			continue
		}
		if err := p.decode(s, value); err != nil {
			errs = append(errs, &ParseError{Key: p.key, Value: value, Grammar: p.grammar, Err: err})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// Properties renders the set fields of s as a flat property map that Build
// decodes back to an equal Settings.
func (s *Settings) Properties() map[string]string {
	props := make(map[string]string, len(properties))
	if s == nil {
		return props
	}

	for _, p := range properties {
		if value, ok := p.encode(s); ok {
			props[p.key] = value
		}
	}
	return props
}

// parseUint accepts decimal digits only: no sign, no base prefix, no separators.
func parseUint(v string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(v, 10, bits)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrOutOfRange
	}
	return n, err
}

func parsePositive(v string, bits int) (uint64, error) {
	n, err := parseUint(v, bits)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotPositive
	}
	return n, nil
}

func parseMilliseconds(v string) (*time.Duration, error) {
	n, err := parseUint(v, 63)
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt64/uint64(time.Millisecond) {
		return nil, ErrOutOfRange
	}
	d := time.Duration(n) * time.Millisecond
	return &d, nil
}

func parseDuration(v string) (*time.Duration, error) {
	d, err := duration.Parse(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseSet(v string) ([]string, error) {
	var set []string
	for piece := range strings.SplitSeq(v, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			set = append(set, piece)
		}
	}
	if len(set) == 0 {
		return nil, ErrEmptySet
	}

	slices.Sort(set)
	return slices.Compact(set), nil
}

func encodeString(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func encodeMilliseconds(p *time.Duration) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatInt(p.Milliseconds(), 10), true
}

func encodeDuration(p *time.Duration) (string, bool) {
	if p == nil {
		return "", false
	}
	return duration.Format(*p), true
}

func encodeUint16(p *uint16) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatUint(uint64(*p), 10), true
}

// String renders a one-line summary for logs. The auth key is never included.
func (s *Settings) String() string {
	if s == nil {
		return "<nil>"
	}
	props := s.Properties()
	delete(props, KeyClusterAuthKey)

	var b strings.Builder
	for _, key := range Keys() {
		value, ok := props[key]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", key, value)
	}
	return b.String()
}
