// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer encodes fingerprints and other data for output, and
// decodes JSON and YAML input files.
//
// # Canonical form
//
// FlatJSON renders a fingerprint as a single compact JSON object keyed by
// canonical metric key in catalog declaration order. Nested records keep
// their field order and unavailable metrics are written as null. Equal
// fingerprints always produce identical bytes, so the canonical form is the
// input to signing:
//
//	data, err := serializer.FlatJSON(fp)
//
// RawMapping exposes the same content as plain Go values, and ParseFlatJSON
// reads a canonical document back.
//
// # Writers
//
// Writer supports four formats:
//   - json: indented JSON
//   - yaml: YAML with two-space indentation
//   - table: FIELD/VALUE rows with flattened keys (write-only)
//   - flat: canonical compact JSON
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, fp); err != nil {
//		return err
//	}
//
// # Readers
//
// Reader decodes JSON or YAML from any io.Reader. FromFile loads a local file
// with the format detected from its extension:
//
//	cfg, err := serializer.FromFile[fileConfig]("config.yaml")
package serializer
