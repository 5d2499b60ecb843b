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
	"testing"
	"time"

	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCachingTimeValues(t *testing.T) {
	assert.Equal(t, time.Duration(0), Disabled.Duration())
	assert.Equal(t, 20*time.Second, TestPeriod20s.Duration())
	assert.Equal(t, 24*time.Hour, OneDay.Duration())
	assert.Equal(t, 48*time.Hour, TwoDays.Duration())
	assert.Equal(t, 72*time.Hour, ThreeDays.Duration())
	assert.Equal(t, 96*time.Hour, FourDays.Duration())
	assert.Equal(t, int64(86400000), int64(OneDay))
}

func TestParseCachingTime(t *testing.T) {
	tests := []struct {
		in      string
		want    CachingTime
		wantErr bool
	}{
		{in: "", want: Disabled},
		{in: "disabled", want: Disabled},
		{in: "OFF", want: Disabled},
		{in: "0", want: Disabled},
		{in: "20s", want: TestPeriod20s},
		{in: "20000", want: TestPeriod20s},
		{in: "1d", want: OneDay},
		{in: "24h", want: OneDay},
		{in: "2d", want: TwoDays},
		{in: "72h", want: ThreeDays},
		{in: "345600000", want: FourDays},
		{in: "5d", wantErr: true},
		{in: "1h", wantErr: true},
		{in: "12345", wantErr: true},
		{in: "forever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCachingTime(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fperrors.IsCode(err, fperrors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCachingTimeString(t *testing.T) {
	for _, c := range CachingTimes {
		parsed, err := ParseCachingTime(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.True(t, c.Valid())
	}
	assert.Equal(t, "5ms", CachingTime(5).String())
	assert.False(t, CachingTime(5).Valid())
}

func TestCachingTimeYAML(t *testing.T) {
	var cfg struct {
		TTL CachingTime `yaml:"ttl"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("ttl: 2d\n"), &cfg))
	assert.Equal(t, TwoDays, cfg.TTL)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ttl: 2d\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("ttl: 9d\n"), &cfg))
}
