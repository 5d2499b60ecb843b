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

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"golang.org/x/sync/singleflight"
	"k8s.io/utils/clock"
)

// Entry is a computed fingerprint with its validity window.
// Entries are replaced wholesale and never mutated.
type Entry struct {
	Fingerprint *measurement.Fingerprint
	// ComputedAt is the fingerprint's CreatedAt, or the store time if unset.
	ComputedAt time.Time
	TTL        time.Duration
}

// Valid reports whether the entry may still be served at now.
// An entry with a zero TTL is never valid.
func (e *Entry) Valid(now time.Time) bool {
	return e != nil && e.TTL > 0 && now.Sub(e.ComputedAt) < e.TTL
}

// ExpiresAt returns the first instant at which the entry is no longer valid.
func (e *Entry) ExpiresAt() time.Time {
	return e.ComputedAt.Add(e.TTL)
}

// ComputeFunc produces a fingerprint on cache miss.
type ComputeFunc func(ctx context.Context) (*measurement.Fingerprint, error)

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used to timestamp and expire entries.
func WithClock(c clock.PassiveClock) Option {
	return func(cache *Cache) {
		cache.clock = c
	}
}

// Cache stores fingerprints per scope key with a fixed TTL. Expired entries
// are dropped lazily on access. Concurrent misses for the same scope share a
// single computation.
type Cache struct {
	ttl   CachingTime
	clock clock.PassiveClock

	mu      sync.Mutex
	entries map[string]*Entry
	group   singleflight.Group
}

// New creates a cache with the given caching time.
func New(ttl CachingTime, opts ...Option) *Cache {
	c := &Cache{
		ttl:     ttl,
		clock:   clock.RealClock{},
		entries: make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured caching time.
func (c *Cache) TTL() CachingTime {
	return c.ttl
}

type flightResult struct {
	fp  *measurement.Fingerprint
	hit bool
}

// Get returns the valid fingerprint stored for scope or computes a new one.
// The returned bool reports whether the value came from the cache.
//
// The computation runs detached from ctx cancellation: a caller that gives
// up returns ctx.Err() while the computation continues for the others and
// its result is still stored. Failed computations are never stored.
// Returned fingerprints are shared and must not be modified.
func (c *Cache) Get(ctx context.Context, scope string, compute ComputeFunc) (*measurement.Fingerprint, bool, error) {
	if fp := c.lookup(scope); fp != nil {
		cacheRequests.WithLabelValues("hit").Inc()
		return fp, true, nil
	}
	cacheRequests.WithLabelValues("miss").Inc()

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(scope, func() (any, error) {
		// A flight for this scope may have finished since the lookup above.
		if fp := c.lookup(scope); fp != nil {
			return flightResult{fp: fp, hit: true}, nil
		}

		start := c.clock.Now()
		fp, err := compute(detached)
		cacheComputeDuration.Observe(c.clock.Since(start).Seconds())
		if err != nil {
			cacheComputeTotal.WithLabelValues("error").Inc()
			slog.Debug("fingerprint computation failed",
				slog.String("scope", scope),
				slog.String("error", err.Error()))
			return nil, err
		}
		cacheComputeTotal.WithLabelValues("success").Inc()

		c.store(scope, fp)
		return flightResult{fp: fp}, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		fr := res.Val.(flightResult)
		return fr.fp, fr.hit, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Peek returns the entry stored for scope without computing or expiring it.
func (c *Cache) Peek(scope string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[scope]
	return e, ok
}

// Invalidate drops the entry stored for scope.
func (c *Cache) Invalidate(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, scope)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// Len returns the number of entries that are currently valid.
func (c *Cache) Len() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Valid(now) {
			n++
		}
	}
	return n
}

func (c *Cache) lookup(scope string) *measurement.Fingerprint {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[scope]
	if !ok {
		return nil
	}
	if !e.Valid(now) {
		delete(c.entries, scope)
		return nil
	}
	return e.Fingerprint
}

func (c *Cache) store(scope string, fp *measurement.Fingerprint) {
	if c.ttl <= Disabled {
		return
	}
	// The lifetime starts when the values were collected.
	computedAt := c.clock.Now()
	if fp != nil && !fp.CreatedAt.IsZero() {
		computedAt = fp.CreatedAt
	}
	e := &Entry{
		Fingerprint: fp,
		ComputedAt:  computedAt,
		TTL:         c.ttl.Duration(),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[scope] = e
}
