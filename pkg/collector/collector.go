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
	"context"

	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

//go:generate mockgen -source=collector.go -destination=mocks/mocks.go -package=mocks

// Provider reads the value of a single metric.
// Implementations should honor context cancellation and deadlines.
type Provider interface {
	Provide(ctx context.Context) (measurement.Value, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context) (measurement.Value, error)

// Provide calls f(ctx).
func (f ProviderFunc) Provide(ctx context.Context) (measurement.Value, error) {
	return f(ctx)
}

// Static returns a provider that always yields v.
func Static(v measurement.Value) Provider {
	return ProviderFunc(func(context.Context) (measurement.Value, error) {
		return v, nil
	})
}

// Result is the outcome of reading one metric.
type Result struct {
	// Value is always set; failed reads carry measurement.Unavailable.
	Value measurement.Value
	// Err is the failure cause, nil on success.
	Err error
	// Invoked is false when no provider was registered for the metric.
	Invoked bool
}

// Failed reports whether the read failed.
func (r Result) Failed() bool {
	return r.Err != nil
}
