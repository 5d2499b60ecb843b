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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot collection metrics
	snapshotCollectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fp_snapshot_collection_duration_seconds",
			Help:    "Time taken to return a fingerprint, including cache hits",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"request"}, // full, subset, variant, active
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fp_snapshot_collection_total",
			Help: "Total number of fingerprint collection requests",
		},
		[]string{"status"}, // hit, computed or error
	)

	snapshotMetricCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fp_snapshot_metrics",
			Help: "Number of metrics in the last computed fingerprint",
		},
	)

	snapshotUnavailableCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fp_snapshot_unavailable_metrics",
			Help: "Number of unavailable metrics in the last computed fingerprint",
		},
	)
)
