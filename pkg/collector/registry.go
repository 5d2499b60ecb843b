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
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"golang.org/x/sync/errgroup"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithTimeout bounds each provider call. Sensor-backed metrics use
// defaults.SensorProviderTimeout unless the timeout is set larger.
func WithTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithConcurrency limits how many providers run in parallel in one pass.
func WithConcurrency(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithGuard wraps every provider registered for a capability-bearing metric
// with Guarded.
func WithGuard(g Guard) RegistryOption {
	return func(r *Registry) {
		r.guard = g
	}
}

// Registry maps metric IDs to providers. It is safe for concurrent use;
// registration is expected to complete before the first collection.
type Registry struct {
	timeout     time.Duration
	concurrency int
	guard       Guard

	mu        sync.RWMutex
	providers map[catalog.ID]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		timeout:     defaults.ProviderTimeout,
		concurrency: defaults.ProviderConcurrency,
		providers:   make(map[catalog.ID]Provider),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs p as the provider of id, replacing any previous one.
// Registering a composite parent also serves its children unless they have
// providers of their own.
func (r *Registry) Register(id catalog.ID, p Provider) error {
	d, ok := catalog.Describe(id)
	if !ok {
		return fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot register provider for unknown metric %q", id),
			map[string]any{"metric": string(id)})
	}
	if p == nil {
		return fperrors.New(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("nil provider for metric %s", id))
	}
	if d.Capability != "" && r.guard != nil {
		p = Guarded(d.Capability, r.guard, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = p
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id catalog.ID, p Provider) {
	if err := r.Register(id, p); err != nil {
		panic(err)
	}
}

// Has reports whether a provider is registered for id itself.
func (r *Registry) Has(id catalog.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[id]
	return ok
}

// IDs returns the metrics with a registered provider in catalog order.
func (r *Registry) IDs() []catalog.ID {
	r.mu.RLock()
	ids := make([]catalog.ID, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	catalog.Sort(ids)
	return ids
}

// Provide reads a single metric.
func (r *Registry) Provide(ctx context.Context, id catalog.ID) Result {
	return r.ProvideAll(ctx, []catalog.ID{id})[id]
}

// invocation is one provider call serving one or more metrics.
type invocation struct {
	source   catalog.ID
	provider Provider
	self     bool
	children []catalog.ID
}

// ProvideAll reads every metric in ids. Providers run independently with
// bounded parallelism and one failing never affects the others: errors,
// panics, timeouts and missing providers all yield an Unavailable value.
// Children of a composite metric without their own provider are derived
// from a single call of the parent provider.
func (r *Registry) ProvideAll(ctx context.Context, ids []catalog.ID) map[catalog.ID]Result {
	results := make(map[catalog.ID]Result, len(ids))
	plan := r.plan(ids, results)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for _, inv := range plan {
		g.Go(func() error {
			v, err := r.invoke(ctx, inv.source, inv.provider)

			mu.Lock()
			defer mu.Unlock()
			if inv.self {
				results[inv.source] = newResult(v, err)
			}
			for _, child := range inv.children {
				results[child] = deriveChild(inv.source, child, v, err)
			}
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	return results
}

// plan groups ids into provider invocations and records missing providers
// directly into results.
func (r *Registry) plan(ids []catalog.ID, results map[catalog.ID]Result) []*invocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byProvider := make(map[catalog.ID]*invocation)
	var plan []*invocation
	get := func(source catalog.ID, p Provider) *invocation {
		inv, ok := byProvider[source]
		if !ok {
			inv = &invocation{source: source, provider: p}
			byProvider[source] = inv
			plan = append(plan, inv)
		}
		return inv
	}

	for _, id := range ids {
		if id == catalog.Empty {
			continue
		}
		if p, ok := r.providers[id]; ok {
			get(id, p).self = true
			continue
		}
		d, _ := catalog.Describe(id)
		if d.Parent != "" {
			if p, ok := r.providers[d.Parent]; ok {
				inv := get(d.Parent, p)
				inv.children = append(inv.children, id)
				continue
			}
		}
		err := fperrors.NewWithContext(fperrors.ErrCodeProviderUnavailable,
			fmt.Sprintf("no provider registered for %s", id),
			map[string]any{"metric": string(id)})
		results[id] = Result{
			Value: measurement.NotAvailable(err.Error()),
			Err:   err,
		}
	}
	return plan
}

// invoke runs a provider with a deadline and converts panics into errors.
// A provider still running at the deadline is abandoned; its result is dropped.
func (r *Registry) invoke(ctx context.Context, id catalog.ID, p Provider) (v measurement.Value, err error) {
	timeout := r.timeout
	if d, ok := catalog.Describe(id); ok && d.Capability != "" && timeout < defaults.SensorProviderTimeout {
		timeout = defaults.SensorProviderTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	defer func() {
		providerDuration.WithLabelValues(string(id)).Observe(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(pctx.Err(), context.DeadlineExceeded) && !fperrors.IsCode(err, fperrors.ErrCodeTimeout) {
				err = fperrors.Wrap(fperrors.ErrCodeTimeout, fmt.Sprintf("provider exceeded %s", timeout), err)
			}
			err = fperrors.WrapWithContext(fperrors.ErrCodeProviderUnavailable, fmt.Sprintf("metric %s unavailable", id), err, map[string]any{"metric": string(id)})
			providerFailures.WithLabelValues(string(id), string(causeCode(err))).Inc()
			slog.Debug("provider failed", slog.String("metric", string(id)), slog.String("error", err.Error()))
		}
	}()

	// Buffered: a provider that returns after its deadline must not block.
	done := make(chan providerOutcome, 1)
	go func() {
		var out providerOutcome
		defer func() {
			if rec := recover(); rec != nil {
				out = providerOutcome{err: fperrors.NewWithContext(fperrors.ErrCodeInternal, fmt.Sprintf("provider panicked: %v", rec), map[string]any{"metric": string(id)})}
			}
			done <- out
		}()
		out.v, out.err = p.Provide(pctx)
	}()

	select {
	case out := <-done:
		return out.v, out.err
	case <-pctx.Done():
		select {
		case out := <-done:
			return out.v, out.err
		default:
		}
		return nil, pctx.Err()
	}
}

type providerOutcome struct {
	v   measurement.Value
	err error
}

// causeCode returns the innermost structured error code in err's chain.
func causeCode(err error) fperrors.ErrorCode {
	code := fperrors.ErrCodeProviderUnavailable
	for e := err; e != nil; e = errors.Unwrap(e) {
		if se, ok := e.(*fperrors.StructuredError); ok {
			code = se.Code
		}
	}
	return code
}

func newResult(v measurement.Value, err error) Result {
	if err != nil {
		return Result{Value: measurement.NotAvailable(err.Error()), Err: err, Invoked: true}
	}
	if v == nil {
		v = measurement.NotAvailable("provider returned no value")
	}
	return Result{Value: measurement.Finite(v), Invoked: true}
}

// deriveChild extracts the field named after child from the parent's record.
func deriveChild(parent, child catalog.ID, v measurement.Value, err error) Result {
	if err != nil {
		return newResult(nil, err)
	}
	rec, ok := v.(*measurement.Record)
	if !ok || !rec.Has(string(child)) {
		return Result{
			Value:   measurement.NotAvailable(fmt.Sprintf("%s does not report %s", parent, child)),
			Invoked: true,
		}
	}
	return Result{Value: measurement.Finite(rec.Get(string(child))), Invoked: true}
}
