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
	"fmt"
	"sync"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Guard grants exclusive, throttled access to a guarded system capability.
// The returned release function must be called exactly once when the caller
// is done with the capability; calling it again is a no-op.
type Guard interface {
	Acquire(ctx context.Context, c catalog.Capability) (func(), error)
}

// DefaultGuard serializes access per capability and throttles acquisitions
// across all capabilities with a token bucket.
type DefaultGuard struct {
	limiter *rate.Limiter

	mu   sync.Mutex
	sems map[catalog.Capability]*semaphore.Weighted
}

// NewDefaultGuard creates a guard allowing limit acquisitions per second with
// the given burst. A non-positive limit disables throttling.
func NewDefaultGuard(limit float64, burst int) *DefaultGuard {
	l := rate.Inf
	if limit > 0 {
		l = rate.Limit(limit)
	}
	if burst < 1 {
		burst = 1
	}
	return &DefaultGuard{
		limiter: rate.NewLimiter(l, burst),
		sems:    make(map[catalog.Capability]*semaphore.Weighted),
	}
}

// Acquire waits for a throttling token and then for exclusive access to c.
func (g *DefaultGuard) Acquire(ctx context.Context, c catalog.Capability) (func(), error) {
	start := time.Now()
	defer func() {
		capabilityWaitDuration.WithLabelValues(string(c)).Observe(time.Since(start).Seconds())
	}()

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeTimeout,
			fmt.Sprintf("capability %s throttled", c), err)
	}

	sem := g.semaphore(c)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeTimeout,
			fmt.Sprintf("capability %s busy", c), err)
	}

	var once sync.Once
	return func() {
		once.Do(func() { sem.Release(1) })
	}, nil
}

func (g *DefaultGuard) semaphore(c catalog.Capability) *semaphore.Weighted {
	g.mu.Lock()
	defer g.mu.Unlock()
	sem, ok := g.sems[c]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.sems[c] = sem
	}
	return sem
}

// Guarded wraps p so that it only runs while holding capability c.
// The capability is released when p returns, including when it panics.
func Guarded(c catalog.Capability, guard Guard, p Provider) Provider {
	return ProviderFunc(func(ctx context.Context) (measurement.Value, error) {
		release, err := guard.Acquire(ctx, c)
		if err != nil {
			return nil, err
		}
		defer release()
		return p.Provide(ctx)
	})
}
