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

package duration

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Sequence is an ordered, non-empty list of durations with a cached total.
// It describes a schedule, for example the waits between message redeliveries:
// [5m, 5m, 1h, 12h] means retry after 5 minutes, then 5 more, then 1 hour and so on.
//
// A Sequence is built once and treated as read-only afterwards; Push is the
// only operation that changes it. The zero value is an empty Sequence, which
// no constructor returns; use [NewSequence] or [ParseSequence].
type Sequence struct {
	steps []time.Duration
	total time.Duration
}

// NewSequence creates a Sequence from the given steps.
//
// Errors:
//   - Returns [ErrEmptySequence] if no steps are given
func NewSequence(steps ...time.Duration) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, ErrEmptySequence
	}

	s := &Sequence{steps: slices.Clone(steps)}
	for _, d := range steps {
		s.total += d
	}
	return s, nil
}

// ParseSequence decodes either a single duration token ("1d") or a bracketed,
// comma-separated list of tokens ("[5m, 1h, 1d]"). Whitespace around commas is
// tolerated; whitespace inside a token is not. A comma list without brackets
// is rejected.
//
// Errors:
//   - Returns an error wrapping [ErrInvalidSyntax] if any token is malformed
func ParseSequence(s string) (*Sequence, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		d, err := Parse(s)
		if err != nil {
			return nil, err
		}
		return &Sequence{steps: []time.Duration{d}, total: d}, nil
	}

	tokens := strings.Split(s[1:len(s)-1], ",")
	steps := make([]time.Duration, 0, len(tokens))
	for _, token := range tokens {
		d, err := Parse(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		steps = append(steps, d)
	}

	return NewSequence(steps...)
}

// MustParseSequence is like ParseSequence but panics if s cannot be parsed.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// Push appends d to the sequence and adds it to the total.
// It returns the receiver so calls can be chained.
func (s *Sequence) Push(d time.Duration) *Sequence {
	s.steps = append(s.steps, d)
	s.total += d
	return s
}

// Total returns the sum of every step.
func (s *Sequence) Total() time.Duration {
	return s.total
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Steps returns a copy of the steps in order.
func (s *Sequence) Steps() []time.Duration {
	return slices.Clone(s.steps)
}

// At returns the step at index i, or false if i is out of range.
func (s *Sequence) At(i int) (time.Duration, bool) {
	if i < 0 || i >= len(s.steps) {
		return 0, false
	}
	return s.steps[i], true
}

// AtOrFirst returns the step at index i, falling back to the first step
// when i is out of range. It returns 0 for an empty (zero value) Sequence.
func (s *Sequence) AtOrFirst(i int) time.Duration {
	if d, ok := s.At(i); ok {
		return d
	}
	if len(s.steps) == 0 {
		return 0
	}
	return s.steps[0]
}

// Max returns the longest step, or 0 for an empty (zero value) Sequence.
func (s *Sequence) Max() time.Duration {
	if len(s.steps) == 0 {
		return 0
	}
	return slices.Max(s.steps)
}

// Equal reports whether both sequences hold the same steps in the same order.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.total == other.total && slices.Equal(s.steps, other.steps)
}

// Clone returns an independent copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{steps: slices.Clone(s.steps), total: s.total}
}

// String renders the sequence in its bracketed form, e.g. "[5m, 1h, 1d]".
func (s *Sequence) String() string {
	if s == nil {
		return "[]"
	}
	parts := make([]string, len(s.steps))
	for i, d := range s.steps {
		parts[i] = Format(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalText implements encoding.TextMarshaler.
func (s *Sequence) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the ParseSequence grammar.
func (s *Sequence) UnmarshalText(text []byte) error {
	parsed, err := ParseSequence(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration sequence %q: %w", text, err)
	}
	*s = *parsed
	return nil
}
