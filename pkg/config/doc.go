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

// Package config holds the options that shape a fingerprint: which gated
// metrics are collected, how long results are cached, the signing keys,
// value patches and the extra parameters of the active set.
//
// A Config is built with functional options:
//
//	cfg := config.New(
//		config.WithCachingTime(cache.OneDay),
//		config.WithHMACKey(key),
//		config.WithPatch(catalog.HardwareID, measurement.Str("TEST-ID")),
//	)
//
// or loaded from a YAML or JSON file:
//
//	cachingTime: 1d
//	hmacKey: secret
//	useBluetoothMetrics: true
//	parameters: [VpnConnection, Debugger]
//	patches:
//	  HardwareID: TEST-ID
//
// Gated metrics (advertiser id, bluetooth, biometric context, RSA key) are
// off by default and caching is disabled.
package config
