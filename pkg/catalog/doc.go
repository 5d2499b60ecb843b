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

// Package catalog defines the closed, append-only catalog of fingerprint metrics.
//
// Every metric is identified by an ID whose string value is its canonical key
// (for example "DeviceName" or "RSA_ApplicationKey"). The catalog is a registry
// of Descriptors in declaration order; the ordinal of a metric is its position
// in that order and is the ordering used for canonical serialization.
//
// # Stability
//
// Cached and serialized fingerprints reference metrics by canonical key, so
// the catalog only ever grows: new metrics are appended, existing IDs are
// never renamed, removed or reordered.
//
// # Lookups
//
//	name := catalog.Name(catalog.HardwareID)     // "HardwareID"
//	id, ok := catalog.Lookup("HardwareID")        // catalog.HardwareID, true
//	ids, err := catalog.Parse([]string{"SSID"})   // INVALID_REQUEST on unknown names
//
// Composite metrics (GeoLocationInfo, AuthenticationInfo, ShareScreenInfo,
// FontInfo, LocaleInfo) expose their sub-metrics through Children. Metrics
// guarded by a sensor carry a Capability; metrics that must be enabled by
// configuration carry a Gate.
//
// # Variants
//
// Variants are predefined metric sets: legacy (minimal), extended (superset)
// and mixed (legacy plus behavioral probes). Any variant can additionally
// include geolocation.
package catalog
