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
	"sync"
	"testing"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGuard records acquisitions and releases.
type countingGuard struct {
	mu       sync.Mutex
	acquired map[catalog.Capability]int
	released map[catalog.Capability]int
	err      error
}

func newCountingGuard() *countingGuard {
	return &countingGuard{
		acquired: make(map[catalog.Capability]int),
		released: make(map[catalog.Capability]int),
	}
}

func (g *countingGuard) Acquire(_ context.Context, c catalog.Capability) (func(), error) {
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	g.acquired[c]++
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		g.released[c]++
		g.mu.Unlock()
	}, nil
}

func TestGuardedReleasesOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		p       Provider
		wantErr bool
		panics  bool
	}{
		{
			name: "success",
			p:    Static(measurement.Bool(true)),
		},
		{
			name: "error",
			p: ProviderFunc(func(context.Context) (measurement.Value, error) {
				return nil, errors.New("sensor off")
			}),
			wantErr: true,
		},
		{
			name: "panic",
			p: ProviderFunc(func(context.Context) (measurement.Value, error) {
				panic("driver crash")
			}),
			panics: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newCountingGuard()
			wrapped := Guarded(catalog.CapabilityBluetooth, g, tt.p)

			if tt.panics {
				assert.Panics(t, func() { _, _ = wrapped.Provide(context.Background()) })
			} else {
				_, err := wrapped.Provide(context.Background())
				assert.Equal(t, tt.wantErr, err != nil)
			}

			assert.Equal(t, 1, g.acquired[catalog.CapabilityBluetooth])
			assert.Equal(t, 1, g.released[catalog.CapabilityBluetooth])
		})
	}
}

func TestGuardedAcquireFailure(t *testing.T) {
	g := newCountingGuard()
	g.err = fperrors.New(fperrors.ErrCodeTimeout, "busy")

	called := false
	wrapped := Guarded(catalog.CapabilityLocation, g, ProviderFunc(func(context.Context) (measurement.Value, error) {
		called = true
		return measurement.Bool(true), nil
	}))

	_, err := wrapped.Provide(context.Background())
	require.Error(t, err)
	assert.False(t, called)
	assert.Zero(t, g.released[catalog.CapabilityLocation])
}

func TestDefaultGuardSerializesCapability(t *testing.T) {
	g := NewDefaultGuard(0, 1)

	var (
		mu      sync.Mutex
		current int
		peak    int
		wg      sync.WaitGroup
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := g.Acquire(context.Background(), catalog.CapabilityLocation)
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			mu.Lock()
			current++
			peak = max(peak, current)
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			current--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, peak)
}

func TestDefaultGuardIndependentCapabilities(t *testing.T) {
	g := NewDefaultGuard(0, 1)

	releaseLoc, err := g.Acquire(context.Background(), catalog.CapabilityLocation)
	require.NoError(t, err)
	defer releaseLoc()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseBt, err := g.Acquire(ctx, catalog.CapabilityBluetooth)
	require.NoError(t, err)
	releaseBt()
}

func TestDefaultGuardBusy(t *testing.T) {
	g := NewDefaultGuard(0, 1)

	release, err := g.Acquire(context.Background(), catalog.CapabilityBiometric)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Acquire(ctx, catalog.CapabilityBiometric)
	require.Error(t, err)
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeTimeout))

	release()
	release()

	again, err := g.Acquire(context.Background(), catalog.CapabilityBiometric)
	require.NoError(t, err)
	again()
}

func TestDefaultGuardThrottles(t *testing.T) {
	g := NewDefaultGuard(1, 1)

	release, err := g.Acquire(context.Background(), catalog.CapabilityLocation)
	require.NoError(t, err)
	release()

	// The bucket is empty and refills once per second.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = g.Acquire(ctx, catalog.CapabilityLocation)
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeTimeout))
}

func TestRegistryWithGuardWrapsCapabilityMetrics(t *testing.T) {
	g := newCountingGuard()
	reg := NewRegistry(WithGuard(g))
	reg.MustRegister(catalog.GeoLocationInfo, Static(measurement.NewRecord()))
	reg.MustRegister(catalog.DeviceName, Static(measurement.Str("x")))

	reg.ProvideAll(context.Background(), []catalog.ID{catalog.GeoLocationInfo, catalog.DeviceName})

	assert.Equal(t, 1, g.acquired[catalog.CapabilityLocation])
	assert.Equal(t, 1, g.released[catalog.CapabilityLocation])
	assert.Len(t, g.acquired, 1)
}
