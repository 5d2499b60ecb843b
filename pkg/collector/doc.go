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

// Package collector maps fingerprint metrics to the providers that read them.
//
// # Core Interface
//
// A Provider reads one metric:
//
//	type Provider interface {
//	    Provide(ctx context.Context) (measurement.Value, error)
//	}
//
// ProviderFunc adapts plain functions and Static returns a fixed value.
//
// # Registry
//
// A Registry holds one provider per metric and reads many metrics in one pass:
//
//	r := collector.NewRegistry(collector.WithTimeout(5 * time.Second))
//	r.MustRegister(catalog.DeviceName, collector.Static(measurement.Str("iPhone15")))
//	results := r.ProvideAll(ctx, []catalog.ID{catalog.DeviceName, catalog.HardwareID})
//
// Providers run in parallel with a concurrency limit. A provider that fails,
// panics or exceeds its deadline never affects the others; its metric is
// reported as measurement.Unavailable with a PROVIDER_UNAVAILABLE reason.
// Metrics without a provider are reported the same way.
//
// Sub-metrics of a composite (for example Latitude under GeoLocationInfo)
// are taken from the parent's record when they have no provider of their
// own, so the parent provider runs once per pass.
//
// # Capability Guard
//
// Location, bluetooth and biometric metrics read shared sensors. Registries
// created with WithGuard wrap their providers with Guarded, which acquires
// the capability before the read and always releases it afterwards.
// DefaultGuard serializes each capability and throttles acquisitions with a
// token bucket.
//
// # Factory
//
// DefaultFactory creates a registry populated with the reference host probes
// from the host subpackage:
//
//	r := collector.NewDefaultFactory(collector.WithVersion(version)).CreateRegistry()
//
// # Subpackages
//
//   - collector/host - reference host probes
//   - collector/file - line-oriented system file parser
//   - collector/mocks - generated Provider mock
package collector
