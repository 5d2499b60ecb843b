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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"ProviderTimeout", ProviderTimeout, 1 * time.Second, 30 * time.Second},
		{"SensorProviderTimeout", SensorProviderTimeout, 5 * time.Second, 2 * time.Minute},
		{"CLISnapshotTimeout", CLISnapshotTimeout, 30 * time.Second, 10 * time.Minute},
		{"CommandTimeout", CommandTimeout, 1 * time.Second, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestProviderTimeoutRelationships(t *testing.T) {
	// Sensor reads may wait on permission prompts and get a longer budget
	if SensorProviderTimeout < ProviderTimeout {
		t.Errorf("SensorProviderTimeout (%v) should not be shorter than ProviderTimeout (%v)",
			SensorProviderTimeout, ProviderTimeout)
	}
	// A whole snapshot must outlive any single provider
	if CLISnapshotTimeout <= SensorProviderTimeout {
		t.Errorf("CLISnapshotTimeout (%v) should exceed SensorProviderTimeout (%v)",
			CLISnapshotTimeout, SensorProviderTimeout)
	}
}

func TestConcurrencyLimits(t *testing.T) {
	if ProviderConcurrency < 1 {
		t.Errorf("ProviderConcurrency must be positive, got %d", ProviderConcurrency)
	}
	if CapabilityBurst < 1 || CapabilityRate < 1 {
		t.Errorf("capability throttling must allow progress, got rate=%d burst=%d", CapabilityRate, CapabilityBurst)
	}
}
