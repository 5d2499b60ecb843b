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

// Package measurement defines the value model of device fingerprints.
//
// # Core Types
//
//   - Value: closed sum type of metric values
//   - Scalar: string, int64, float64 or bool
//   - Record: nested value with named fields in insertion order
//   - List: ordered collection of values
//   - Unavailable: marker for a metric whose value could not be obtained
//   - Fingerprint: ordered mapping from catalog ID to Value
//
// # Building Values
//
//	loc := NewRecordBuilder().
//	    SetFloat64("latitude", 52.37).
//	    SetFloat64("longitude", 4.89).
//	    Build()
//
//	fp := NewFingerprint(scope, time.Now())
//	fp.Set(catalog.DeviceName, Str("iPhone15"))
//	fp.Set(catalog.GeoLocationInfo, loc)
//	fp.Set(catalog.BluetoothState, NotAvailable("disabled by configuration"))
//
// # Serialization
//
// A Fingerprint marshals to a flat JSON object keyed by metric ID in catalog
// declaration order. Unavailable values render as null and are never omitted.
// Records keep their field order.
//
// Free-form text such as patch values can be interpreted with ParseValue,
// which accepts JSON literals and falls back to plain strings.
//
// # Comparing
//
// Compare reports per-metric differences between two fingerprints:
//
//	for _, c := range Compare(previous, current) {
//	    fmt.Printf("%s %s: %v -> %v\n", c.Type, c.ID, c.Before, c.After)
//	}
package measurement
