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

// Package codec converts between raw configuration documents and the flat
// property maps the angler configuration is built from.
//
// Every codec implements [Encoder] and [Decoder] and is registered under a
// [Type] at init time. Sources and dumpers look codecs up by type with
// [GetDecoder] and [GetEncoder].
//
// # Properties
//
// [TypeProperties] reads one key=value record per line and
// [TypeInlineProperties] reads records separated by ';', the form of the
// ANGLER_CFG variable. Decoding is lexical: records are trimmed, comments
// ('#') and records without '=' are skipped, and the value after the first
// '=' is trimmed. Encoding writes keys in sorted order.
//
//	props := codec.DecodeInlineProperties("msgproc.workers=8;net.client.protocols=restful")
//	// props["msgproc.workers"] == "8"
//
// # Structured documents
//
// JSON, YAML and TOML decode into nested maps, which the source package
// flattens to dotted keys. Their encoders do the reverse with [Nest], so a
// dump of
//
//	map[string]string{"net.client.restful.port": "8080"}
//
// is written as a "net" object holding a "client" object and so on, and
// reads back to the same flat map.
//
// # Custom Codecs
//
// Register additional formats with [RegisterEncoder] and [RegisterDecoder]:
//
//	codec.RegisterDecoder(codec.Type("ini"), iniCodec{})
package codec
