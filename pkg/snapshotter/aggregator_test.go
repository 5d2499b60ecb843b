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
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector"
	"github.com/NVIDIA/device-fingerprint/pkg/config"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// counted registers a provider returning v and counts its invocations.
func counted(reg *collector.Registry, id catalog.ID, v measurement.Value, err error) *atomic.Int32 {
	var n atomic.Int32
	reg.MustRegister(id, collector.ProviderFunc(func(context.Context) (measurement.Value, error) {
		n.Add(1)
		return v, err
	}))
	return &n
}

func newAggregator(t *testing.T, cfg *config.Config, reg *collector.Registry, clk *clocktesting.FakeClock) *Aggregator {
	t.Helper()
	a, err := New(cfg, reg, WithClock(clk), WithTracerProvider(noop.NewTracerProvider()))
	require.NoError(t, err)
	return a
}

func TestCollect_PatchMasksFailedProvider(t *testing.T) {
	reg := collector.NewRegistry()
	names := counted(reg, catalog.DeviceName, measurement.Str("iPhone15"), nil)
	hw := counted(reg, catalog.HardwareID, nil, errors.New("probe failed"))

	cfg := config.New(config.WithPatch(catalog.HardwareID, measurement.Str("TEST-ID")))
	a := newAggregator(t, cfg, reg, clocktesting.NewFakeClock(epoch))

	fp, err := a.Collect(context.Background(), Subset(catalog.HardwareID, catalog.DeviceName))
	require.NoError(t, err)

	data, err := serializer.FlatJSON(fp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"HardwareID":"TEST-ID","DeviceName":"iPhone15"}`, string(data))
	assert.Equal(t, int32(1), names.Load())
	assert.Zero(t, hw.Load(), "patched metrics are not sent to providers")
}

func TestCollect_CacheHitWithinTTL(t *testing.T) {
	reg := collector.NewRegistry()
	calls := counted(reg, catalog.DeviceName, measurement.Str("iPhone15"), nil)
	clk := clocktesting.NewFakeClock(epoch)
	a := newAggregator(t, config.New(config.WithCachingTime(cache.OneDay)), reg, clk)

	first, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
	require.NoError(t, err)

	clk.Step(5 * time.Second)
	second, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, int32(1), calls.Load())

	b1, err := serializer.FlatJSON(first)
	require.NoError(t, err)
	b2, err := serializer.FlatJSON(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	clk.Step(24 * time.Hour)
	third, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
	require.NoError(t, err)
	assert.True(t, third.CreatedAt.After(first.CreatedAt))
	assert.Equal(t, int32(2), calls.Load())
}

func TestCollect_DisabledAlwaysRecomputes(t *testing.T) {
	reg := collector.NewRegistry()
	calls := counted(reg, catalog.DeviceName, measurement.Str("iPhone15"), nil)
	clk := clocktesting.NewFakeClock(epoch)
	a := newAggregator(t, config.New(), reg, clk)

	var last time.Time
	for i := range 3 {
		fp, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
		require.NoError(t, err)
		assert.True(t, fp.CreatedAt.After(last), "call %d", i)
		last = fp.CreatedAt
		clk.Step(time.Millisecond)
	}
	assert.Equal(t, int32(3), calls.Load())
	assert.Zero(t, a.Cache().Len())
}

func TestCollect_ReturnedRecordIsPrivate(t *testing.T) {
	reg := collector.NewRegistry()
	counted(reg, catalog.DeviceName, measurement.Str("iPhone15"), nil)
	a := newAggregator(t, config.New(config.WithCachingTime(cache.OneDay)), reg, clocktesting.NewFakeClock(epoch))

	fp, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
	require.NoError(t, err)
	fp.Set(catalog.DeviceName, measurement.Str("changed"))

	again, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
	require.NoError(t, err)
	v, _ := again.Get(catalog.DeviceName)
	assert.Equal(t, "iPhone15", v.String())
}

func TestCollect_SingleFlight(t *testing.T) {
	reg := collector.NewRegistry()
	release := make(chan struct{})
	var calls atomic.Int32
	reg.MustRegister(catalog.DeviceName, collector.ProviderFunc(func(context.Context) (measurement.Value, error) {
		calls.Add(1)
		<-release
		return measurement.Str("iPhone15"), nil
	}))
	a := newAggregator(t, config.New(config.WithCachingTime(cache.OneDay)), reg, clocktesting.NewFakeClock(epoch))

	const callers = 10
	var wg sync.WaitGroup
	created := make([]time.Time, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fp, err := a.Collect(context.Background(), Subset(catalog.DeviceName))
			if assert.NoError(t, err) {
				created[i] = fp.CreatedAt
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, c := range created {
		assert.Equal(t, created[0], c)
	}
}

func TestCollect_GatedSubsetIsUnavailable(t *testing.T) {
	reg := collector.NewRegistry()
	adv := counted(reg, catalog.AdvertiserId, measurement.Str("ad-1"), nil)
	counted(reg, catalog.DeviceName, measurement.Str("iPhone15"), nil)
	a := newAggregator(t, config.New(), reg, clocktesting.NewFakeClock(epoch))

	fp, err := a.Collect(context.Background(), Subset(catalog.AdvertiserId, catalog.DeviceName, catalog.Empty))
	require.NoError(t, err)
	require.Equal(t, 2, fp.Len())

	v, ok := fp.Get(catalog.AdvertiserId)
	require.True(t, ok)
	assert.Equal(t, measurement.NotAvailable(ReasonDisabled), v)
	assert.Zero(t, adv.Load())
}

func TestCollect_UnknownMetric(t *testing.T) {
	a := newAggregator(t, config.New(), collector.NewRegistry(), clocktesting.NewFakeClock(epoch))
	_, err := a.Collect(context.Background(), Subset(catalog.DeviceName, catalog.ID("NoSuchMetric")))
	require.Error(t, err)
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))
}

func TestCollect_MissingProviderIsUnavailable(t *testing.T) {
	a := newAggregator(t, config.New(), collector.NewRegistry(), clocktesting.NewFakeClock(epoch))
	fp, err := a.Collect(context.Background(), Subset(catalog.SSID))
	require.NoError(t, err)
	v, ok := fp.Get(catalog.SSID)
	require.True(t, ok)
	assert.False(t, measurement.IsAvailable(v))
}

func TestCollect_EveryProviderFailed(t *testing.T) {
	reg := collector.NewRegistry()
	calls := counted(reg, catalog.DeviceName, nil, errors.New("boom"))
	counted(reg, catalog.HardwareID, nil, errors.New("boom"))
	a := newAggregator(t, config.New(config.WithCachingTime(cache.OneDay)), reg, clocktesting.NewFakeClock(epoch))

	for range 2 {
		_, err := a.Collect(context.Background(), Subset(catalog.DeviceName, catalog.HardwareID))
		require.Error(t, err)
		assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeCacheComputeFailure))
	}
	assert.Equal(t, int32(2), calls.Load(), "failures are not cached")
	assert.Zero(t, a.Cache().Len())
}

func TestCollect_PartialFailureSucceeds(t *testing.T) {
	reg := collector.NewRegistry()
	counted(reg, catalog.DeviceName, nil, errors.New("boom"))
	counted(reg, catalog.HardwareID, measurement.Str("HW"), nil)
	a := newAggregator(t, config.New(), reg, clocktesting.NewFakeClock(epoch))

	fp, err := a.Collect(context.Background(), Subset(catalog.DeviceName, catalog.HardwareID))
	require.NoError(t, err)
	assert.Equal(t, 1, fp.Available())
	v, _ := fp.Get(catalog.DeviceName)
	assert.Contains(t, v.String(), string(fperrors.ErrCodeProviderUnavailable))
}

func TestResolve(t *testing.T) {
	a := newAggregator(t, config.New(), collector.NewRegistry(), clocktesting.NewFakeClock(epoch))

	full, err := a.Resolve(FullSnapshot())
	require.NoError(t, err)
	for _, id := range []catalog.ID{
		catalog.AdvertiserId, catalog.BluetoothState, catalog.BluetoothDevices,
		catalog.AuthenticationInfo, catalog.DeviceUnlocked, catalog.RSAApplicationKey,
	} {
		assert.NotContains(t, full, id)
	}
	assert.Contains(t, full, catalog.DeviceName)
	assert.Contains(t, full, catalog.Latitude)

	legacy, err := a.Resolve(Variant(catalog.VariantLegacy, false))
	require.NoError(t, err)
	assert.NotContains(t, legacy, catalog.AdvertiserId)
	assert.NotContains(t, legacy, catalog.GeoLocationInfo)

	withCoords, err := a.Resolve(Variant(catalog.VariantLegacy, true))
	require.NoError(t, err)
	assert.Contains(t, withCoords, catalog.GeoLocationInfo)

	_, err = a.Resolve(Variant(catalog.Variant("bogus"), false))
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))

	_, err = a.Resolve(Request{Kind: "bogus"})
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))
}

func TestResolve_ParametersLiftGates(t *testing.T) {
	cfg := config.New(config.WithParameters(catalog.AdvertiserId, catalog.VpnConnection))
	a := newAggregator(t, cfg, collector.NewRegistry(), clocktesting.NewFakeClock(epoch))

	full, err := a.Resolve(FullSnapshot())
	require.NoError(t, err)
	assert.Contains(t, full, catalog.AdvertiserId)
	assert.NotContains(t, full, catalog.BluetoothState)

	active, err := a.Resolve(Active())
	require.NoError(t, err)
	assert.Contains(t, active, catalog.VpnConnection)
	assert.Contains(t, active, catalog.AdvertiserId)
	for _, id := range catalog.Defaults() {
		assert.Contains(t, active, id)
	}
}

func TestScope(t *testing.T) {
	reg := collector.NewRegistry()
	clk := clocktesting.NewFakeClock(epoch)
	a := newAggregator(t, config.New(), reg, clk)

	ids := []catalog.ID{catalog.DeviceName, catalog.HardwareID}
	assert.Equal(t, a.Scope(ids), a.Scope([]catalog.ID{catalog.HardwareID, catalog.DeviceName}))
	assert.NotEqual(t, a.Scope(ids), a.Scope(ids[:1]))

	other := newAggregator(t, config.New(config.WithBluetoothMetrics(true)), reg, clk)
	assert.NotEqual(t, a.Scope(ids), other.Scope(ids))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.New(), nil)
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))

	_, err = New(config.New(config.WithParameters(catalog.ID("Bogus"))), collector.NewRegistry())
	assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))

	a, err := New(nil, collector.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, cache.Disabled, a.Cache().TTL())
}

func TestRequestString(t *testing.T) {
	assert.Equal(t, "full", FullSnapshot().String())
	assert.Equal(t, "active", Active().String())
	assert.Equal(t, "subset(2)", Subset(catalog.DeviceName, catalog.HardwareID).String())
	assert.Equal(t, "variant(mixed+coordinates)", Variant(catalog.VariantMixed, true).String())
}
