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

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fp_provider_duration_seconds",
			Help:    "Time taken by individual metric providers",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"metric"},
	)

	providerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fp_provider_failures_total",
			Help: "Total number of failed metric provider calls",
		},
		[]string{"metric", "code"},
	)

	capabilityWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fp_capability_wait_duration_seconds",
			Help:    "Time spent waiting to acquire a guarded capability",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"capability"},
	)
)
