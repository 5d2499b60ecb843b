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
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/collector/host"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
)

// Factory creates provider registries.
type Factory interface {
	CreateRegistry() *Registry
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithVersion sets the version reported by the host probes.
func WithVersion(v string) FactoryOption {
	return func(f *DefaultFactory) {
		f.Version = v
	}
}

// WithProviderTimeout sets the per-provider timeout of created registries.
func WithProviderTimeout(d time.Duration) FactoryOption {
	return func(f *DefaultFactory) {
		f.Timeout = d
	}
}

// WithMaxConcurrency sets the provider parallelism of created registries.
func WithMaxConcurrency(n int) FactoryOption {
	return func(f *DefaultFactory) {
		f.Concurrency = n
	}
}

// WithCapabilityGuard sets the guard wrapped around sensor-backed providers.
func WithCapabilityGuard(g Guard) FactoryOption {
	return func(f *DefaultFactory) {
		f.Guard = g
	}
}

// WithHostOptions passes options to the host prober.
func WithHostOptions(opts ...host.Option) FactoryOption {
	return func(f *DefaultFactory) {
		f.HostOptions = append(f.HostOptions, opts...)
	}
}

// DefaultFactory creates registries backed by the host probes.
type DefaultFactory struct {
	Version     string
	Timeout     time.Duration
	Concurrency int
	Guard       Guard
	HostOptions []host.Option
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		Version:     "dev",
		Timeout:     defaults.ProviderTimeout,
		Concurrency: defaults.ProviderConcurrency,
		Guard:       NewDefaultGuard(defaults.CapabilityRate, defaults.CapabilityBurst),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRegistry creates a registry with every host probe registered.
// Metrics without a probe are reported as unavailable until the caller
// registers a provider for them.
func (f *DefaultFactory) CreateRegistry() *Registry {
	r := NewRegistry(
		WithTimeout(f.Timeout),
		WithConcurrency(f.Concurrency),
		WithGuard(f.Guard),
	)

	opts := append([]host.Option{host.WithVersion(f.Version)}, f.HostOptions...)
	for id, probe := range host.New(opts...).Probes() {
		r.MustRegister(id, ProviderFunc(probe))
	}
	return r
}
