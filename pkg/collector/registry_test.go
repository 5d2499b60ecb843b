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
	"encoding/json"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector/mocks"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RegistrySuite struct {
	suite.Suite
	ctrl *gomock.Controller
	reg  *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reg = NewRegistry(WithTimeout(50 * time.Millisecond))
}

func (s *RegistrySuite) TestRegisterUnknownMetric() {
	err := s.reg.Register(catalog.ID("Bogus"), Static(measurement.Str("x")))
	s.Require().Error(err)
	s.True(fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))

	err = s.reg.Register(catalog.Empty, Static(measurement.Str("x")))
	s.True(fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))
}

func (s *RegistrySuite) TestRegisterNilProvider() {
	err := s.reg.Register(catalog.DeviceName, nil)
	s.True(fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))
}

func (s *RegistrySuite) TestMustRegisterPanics() {
	s.Panics(func() { s.reg.MustRegister(catalog.ID("Bogus"), Static(nil)) })
}

func (s *RegistrySuite) TestProvideAllCallsEachProviderOnce() {
	name := mocks.NewMockProvider(s.ctrl)
	name.EXPECT().Provide(gomock.Any()).Return(measurement.Str("iPhone15"), nil).Times(1)
	hw := mocks.NewMockProvider(s.ctrl)
	hw.EXPECT().Provide(gomock.Any()).Return(measurement.Str("HW-1"), nil).Times(1)

	s.reg.MustRegister(catalog.DeviceName, name)
	s.reg.MustRegister(catalog.HardwareID, hw)

	results := s.reg.ProvideAll(context.Background(),
		[]catalog.ID{catalog.DeviceName, catalog.HardwareID, catalog.DeviceName})

	s.Len(results, 2)
	s.Equal(measurement.Str("iPhone15"), results[catalog.DeviceName].Value)
	s.Equal(measurement.Str("HW-1"), results[catalog.HardwareID].Value)
	s.False(results[catalog.DeviceName].Failed())
	s.True(results[catalog.DeviceName].Invoked)
}

func (s *RegistrySuite) TestFailureIsIsolated() {
	bad := mocks.NewMockProvider(s.ctrl)
	bad.EXPECT().Provide(gomock.Any()).Return(nil, errors.New("permission denied"))
	s.reg.MustRegister(catalog.WiFiNetworksData, bad)
	s.reg.MustRegister(catalog.DeviceName, Static(measurement.Str("ok")))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.WiFiNetworksData, catalog.DeviceName})

	failed := results[catalog.WiFiNetworksData]
	s.True(failed.Failed())
	s.True(failed.Invoked)
	s.Equal(measurement.KindUnavailable, failed.Value.Kind())
	s.True(fperrors.IsCode(failed.Err, fperrors.ErrCodeProviderUnavailable))
	s.Contains(failed.Value.String(), "permission denied")
	s.Contains(failed.Value.String(), string(fperrors.ErrCodeProviderUnavailable))

	s.Equal(measurement.Str("ok"), results[catalog.DeviceName].Value)
}

func (s *RegistrySuite) TestPanicBecomesUnavailable() {
	s.reg.MustRegister(catalog.Compromised, ProviderFunc(func(context.Context) (measurement.Value, error) {
		panic("probe exploded")
	}))
	s.reg.MustRegister(catalog.DeviceName, Static(measurement.Str("ok")))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.Compromised, catalog.DeviceName})

	r := results[catalog.Compromised]
	s.True(r.Failed())
	s.True(fperrors.IsCode(r.Err, fperrors.ErrCodeInternal))
	s.Contains(r.Value.String(), "probe exploded")
	s.Equal(measurement.Str("ok"), results[catalog.DeviceName].Value)
}

func (s *RegistrySuite) TestTimeout() {
	s.reg.MustRegister(catalog.SSID, ProviderFunc(func(ctx context.Context) (measurement.Value, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	start := time.Now()
	r := s.reg.Provide(context.Background(), catalog.SSID)

	s.Less(time.Since(start), 5*time.Second)
	s.True(r.Failed())
	s.True(fperrors.IsCode(r.Err, fperrors.ErrCodeTimeout))
	s.True(fperrors.IsCode(r.Err, fperrors.ErrCodeProviderUnavailable))
}

func (s *RegistrySuite) TestTimeoutWhenProviderIgnoresContext() {
	release := make(chan struct{})
	s.T().Cleanup(func() { close(release) })
	s.reg.MustRegister(catalog.HardwareID, ProviderFunc(func(context.Context) (measurement.Value, error) {
		<-release
		return measurement.Str("late"), nil
	}))
	s.reg.MustRegister(catalog.DeviceName, Static(measurement.Str("ok")))

	start := time.Now()
	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.HardwareID, catalog.DeviceName})

	s.Less(time.Since(start), time.Second)
	r := results[catalog.HardwareID]
	s.True(r.Failed())
	s.True(fperrors.IsCode(r.Err, fperrors.ErrCodeTimeout))
	s.True(fperrors.IsCode(r.Err, fperrors.ErrCodeProviderUnavailable))
	s.Equal(measurement.KindUnavailable, r.Value.Kind())
	s.Equal(measurement.Str("ok"), results[catalog.DeviceName].Value)
}

func (s *RegistrySuite) TestNonFiniteFloatsBecomeUnavailable() {
	s.reg.MustRegister(catalog.ScreenSize, Static(measurement.Float64(math.Inf(1))))
	s.reg.MustRegister(catalog.GeoLocationInfo, Static(measurement.NewRecordBuilder().
		SetFloat64(string(catalog.Latitude), math.NaN()).
		SetFloat64(string(catalog.Longitude), 4.89).
		Build()))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{
		catalog.ScreenSize, catalog.Latitude, catalog.Longitude, catalog.GeoLocationInfo,
	})

	s.False(results[catalog.ScreenSize].Failed())
	s.Equal(measurement.KindUnavailable, results[catalog.ScreenSize].Value.Kind())
	s.Equal(measurement.KindUnavailable, results[catalog.Latitude].Value.Kind())
	s.Equal(measurement.Float64(4.89), results[catalog.Longitude].Value)

	out, err := json.Marshal(results[catalog.GeoLocationInfo].Value)
	s.Require().NoError(err)
	s.JSONEq(`{"Latitude":null,"Longitude":4.89}`, string(out))
}

func (s *RegistrySuite) TestMissingProvider() {
	r := s.reg.Provide(context.Background(), catalog.MNC)

	s.False(r.Invoked)
	s.True(r.Failed())
	s.Equal(measurement.KindUnavailable, r.Value.Kind())
	s.Contains(r.Value.String(), "no provider registered for MNC")
}

func (s *RegistrySuite) TestNilValueIsUnavailableNotFailure() {
	s.reg.MustRegister(catalog.ScreenSize, Static(nil))

	r := s.reg.Provide(context.Background(), catalog.ScreenSize)
	s.False(r.Failed())
	s.Equal(measurement.KindUnavailable, r.Value.Kind())
}

func (s *RegistrySuite) TestEmptyIsIgnored() {
	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.Empty})
	s.Empty(results)
}

func (s *RegistrySuite) TestCompositeChildrenShareOneCall() {
	var calls atomic.Int32
	s.reg.MustRegister(catalog.GeoLocationInfo, ProviderFunc(func(context.Context) (measurement.Value, error) {
		calls.Add(1)
		return measurement.NewRecordBuilder().
			SetFloat64(string(catalog.Latitude), 52.37).
			SetFloat64(string(catalog.Longitude), 4.89).
			Build(), nil
	}))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{
		catalog.Latitude, catalog.Longitude, catalog.Altitude, catalog.GeoLocationInfo,
	})

	s.Equal(int32(1), calls.Load())
	s.Equal(measurement.Float64(52.37), results[catalog.Latitude].Value)
	s.Equal(measurement.Float64(4.89), results[catalog.Longitude].Value)
	s.Equal(measurement.KindUnavailable, results[catalog.Altitude].Value.Kind())
	s.False(results[catalog.Altitude].Failed())
	s.Equal(measurement.KindRecord, results[catalog.GeoLocationInfo].Value.Kind())
}

func (s *RegistrySuite) TestCompositeChildrenWithoutParentRequested() {
	var calls atomic.Int32
	s.reg.MustRegister(catalog.FontInfo, ProviderFunc(func(context.Context) (measurement.Value, error) {
		calls.Add(1)
		return measurement.NewRecordBuilder().SetString(string(catalog.SystemFont), "Inter").Build(), nil
	}))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.SystemFont, catalog.SystemFontSize})

	s.Equal(int32(1), calls.Load())
	s.NotContains(results, catalog.FontInfo)
	s.Equal(measurement.Str("Inter"), results[catalog.SystemFont].Value)
}

func (s *RegistrySuite) TestCompositeParentFailurePropagates() {
	s.reg.MustRegister(catalog.ShareScreenInfo, ProviderFunc(func(context.Context) (measurement.Value, error) {
		return nil, errors.New("no display")
	}))

	results := s.reg.ProvideAll(context.Background(), []catalog.ID{catalog.ConnectedDeviceName})

	s.True(results[catalog.ConnectedDeviceName].Failed())
	s.Contains(results[catalog.ConnectedDeviceName].Value.String(), "no display")
}

func (s *RegistrySuite) TestChildOwnProviderWins() {
	s.reg.MustRegister(catalog.FontInfo, Static(measurement.NewRecordBuilder().SetString(string(catalog.SystemFont), "Inter").Build()))
	s.reg.MustRegister(catalog.SystemFont, Static(measurement.Str("Roboto")))

	r := s.reg.Provide(context.Background(), catalog.SystemFont)
	s.Equal(measurement.Str("Roboto"), r.Value)
}

func (s *RegistrySuite) TestIDsAndHas() {
	s.reg.MustRegister(catalog.Languages, Static(measurement.Strings("en")))
	s.reg.MustRegister(catalog.DeviceName, Static(measurement.Str("x")))

	s.Equal([]catalog.ID{catalog.DeviceName, catalog.Languages}, s.reg.IDs())
	s.True(s.reg.Has(catalog.Languages))
	s.False(s.reg.Has(catalog.HardwareID))
}

func TestProvideAllRespectsConcurrency(t *testing.T) {
	reg := NewRegistry(WithConcurrency(2))

	var (
		mu      sync.Mutex
		current int
		peak    int
	)
	slow := ProviderFunc(func(context.Context) (measurement.Value, error) {
		mu.Lock()
		current++
		peak = max(peak, current)
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		current--
		mu.Unlock()
		return measurement.Bool(true), nil
	})

	ids := []catalog.ID{catalog.DeviceName, catalog.HardwareID, catalog.DeviceModel, catalog.MNC, catalog.MCC, catalog.SSID}
	for _, id := range ids {
		reg.MustRegister(id, slow)
	}

	results := reg.ProvideAll(context.Background(), ids)
	require.Len(t, results, len(ids))
	assert.LessOrEqual(t, peak, 2)
}

func TestRegistryOptionsIgnoreInvalidValues(t *testing.T) {
	reg := NewRegistry(WithTimeout(0), WithConcurrency(-1))
	assert.Positive(t, reg.timeout)
	assert.Positive(t, reg.concurrency)
}
