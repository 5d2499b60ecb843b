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

// Package snapshotter assembles fingerprints.
//
// An Aggregator runs one collection pass per request:
//
//  1. Resolve the requested metrics. A full snapshot covers every catalog
//     metric except those gated off by configuration, unless the metric is
//     listed in the configured parameters. Variant and active requests are
//     filtered the same way. Subset requests keep gated metrics as
//     unavailable values and reject unknown metrics.
//  2. Derive the cache scope from the sorted metric names and the
//     configuration digest.
//  3. Return the cached record on a hit.
//  4. On a miss, invoke the providers, then overwrite patched metrics.
//     Patched metrics are never sent to a provider.
//  5. Store the record and return it.
//
// A pass in which every invoked provider failed and no patch applied returns
// CACHE_COMPUTE_FAILURE and is not cached.
//
// Usage:
//
//	agg, err := snapshotter.New(cfg, registry)
//	if err != nil {
//		return err
//	}
//	fp, err := agg.Collect(ctx, snapshotter.Subset(catalog.DeviceName, catalog.HardwareID))
//
// Each pass is traced with OpenTelemetry and measured with Prometheus.
package snapshotter
