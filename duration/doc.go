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

// Package duration implements the compact duration grammar used by angler
// settings for retention windows, limits and retry schedules.
//
// A single duration is a count followed by one unit letter:
//
//	30s   seconds
//	5m    minutes
//	12h   hours
//	30d   days (24h)
//	1w    weeks (7d)
//
// A [Sequence] is either a single token or a bracketed list of tokens:
//
//	seq, err := duration.ParseSequence("[5m, 5m, 1h, 12h, 36h, 1d, 1d, 1d, 3d]")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(seq.Total()) // 193h10m0s, eight whole days
//
// Values are plain [time.Duration] so they add and compare natively.
package duration
