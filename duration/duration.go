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
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	// Day is 24 hours.
	Day = 24 * time.Hour
	// Week is 7 days.
	Week = 7 * Day
)

var (
	// ErrInvalidSyntax is returned when a value does not follow the duration grammar.
	ErrInvalidSyntax = errors.New("invalid duration syntax")

	// ErrEmptySequence is returned when a Sequence is built from zero steps.
	ErrEmptySequence = errors.New("duration sequence is empty")
)

var tokenPattern = regexp.MustCompile(`^(\d+)(s|m|h|d|w)$`)

// units maps each unit letter to its length.
var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": Day,
	"w": Week,
}

// formatUnits is ordered from the largest unit to the smallest; seconds are the fallback.
var formatUnits = []struct {
	suffix string
	length time.Duration
}{
	{"w", Week},
	{"d", Day},
	{"h", time.Hour},
	{"m", time.Minute},
}

// Parse decodes a single duration token such as "30s", "5m", "12h", "30d" or "1w".
// The token is one or more digits immediately followed by one unit letter;
// signs, whitespace and combined forms like "1h30m" are rejected.
//
// Errors:
//   - Returns an error wrapping [ErrInvalidSyntax] if s does not match the grammar
//   - Returns an error wrapping [ErrInvalidSyntax] if the value overflows time.Duration
func Parse(s string) (time.Duration, error) {
	m := tokenPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, s)
	}

	count, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidSyntax, s, err)
	}

	unit := units[m[2]]
	if count > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidSyntax, s)
	}

	return time.Duration(count) * unit, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
// It simplifies safe initialization of package-level defaults.
func MustParse(s string) time.Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders d in the grammar accepted by Parse, using the largest unit
// that divides d exactly. Sub-second precision is truncated and negative
// values are rendered as "0s".
func Format(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Truncate(time.Second)
	for _, u := range formatUnits {
		if d%u.length == 0 {
			return strconv.FormatInt(int64(d/u.length), 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(d/time.Second), 10) + "s"
}
