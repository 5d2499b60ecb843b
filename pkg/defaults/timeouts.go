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

package defaults

import "time"

// Provider limits for metric collection.
const (
	// ProviderTimeout bounds a single metric provider call.
	// Providers should respect parent context deadlines when shorter.
	ProviderTimeout = 10 * time.Second

	// SensorProviderTimeout bounds providers that wait on sensors or
	// permission prompts (location, bluetooth, biometric context).
	SensorProviderTimeout = 30 * time.Second

	// ProviderConcurrency is the default number of providers run in parallel
	// during one collection pass.
	ProviderConcurrency = 8
)

// Capability guard throttling.
const (
	// CapabilityRate is the default number of capability acquisitions
	// allowed per second across all sensor-backed providers.
	CapabilityRate = 5

	// CapabilityBurst is the token bucket burst for capability acquisitions.
	CapabilityBurst = 3
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 2 * time.Minute

	// CommandTimeout bounds single-metric commands such as device-name.
	CommandTimeout = 3 * time.Second
)
