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

package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

// Config holds the fingerprint options. It is read-only once handed to a
// service; build a new one to change settings.
type Config struct {
	// Metric gates
	UseAdvertiserID     bool
	UseBluetoothMetrics bool
	UseLAContext        bool
	UseRSAAppKey        bool

	// Signing
	HMACKey    string
	RSAKeyFile string

	// Caching
	CachingTime cache.CachingTime

	// Patches override collected values; Parameters add metrics to the
	// active set and lift gates for the metrics they name.
	Patches    map[catalog.ID]measurement.Value
	Parameters []catalog.ID

	// Collection limits
	ProviderTimeout time.Duration
	MaxConcurrency  int
	ProbeRate       float64
	ProbeBurst      int
}

// Option configures a Config.
type Option func(*Config)

// WithAdvertiserID enables the advertiser identifier metric.
func WithAdvertiserID(enabled bool) Option {
	return func(c *Config) {
		c.UseAdvertiserID = enabled
	}
}

// WithBluetoothMetrics enables the bluetooth metrics.
func WithBluetoothMetrics(enabled bool) Option {
	return func(c *Config) {
		c.UseBluetoothMetrics = enabled
	}
}

// WithLAContext enables the biometric authentication metrics.
func WithLAContext(enabled bool) Option {
	return func(c *Config) {
		c.UseLAContext = enabled
	}
}

// WithRSAAppKey enables the RSA application key metric and RSA signing.
func WithRSAAppKey(enabled bool) Option {
	return func(c *Config) {
		c.UseRSAAppKey = enabled
	}
}

// WithHMACKey sets the HMAC signing key.
func WithHMACKey(key string) Option {
	return func(c *Config) {
		c.HMACKey = key
	}
}

// WithRSAKeyFile sets the path of the PEM encoded RSA private key.
func WithRSAKeyFile(path string) Option {
	return func(c *Config) {
		c.RSAKeyFile = path
	}
}

// WithCachingTime sets the fingerprint cache lifetime.
func WithCachingTime(t cache.CachingTime) Option {
	return func(c *Config) {
		c.CachingTime = t
	}
}

// WithPatch overrides the value of a metric.
func WithPatch(id catalog.ID, v measurement.Value) Option {
	return func(c *Config) {
		if c.Patches == nil {
			c.Patches = make(map[catalog.ID]measurement.Value)
		}
		if v == nil {
			v = measurement.NotAvailable("")
		}
		c.Patches[id] = measurement.Finite(v)
	}
}

// WithParameters adds metrics to the active set.
func WithParameters(ids ...catalog.ID) Option {
	return func(c *Config) {
		c.Parameters = append(c.Parameters, ids...)
	}
}

// WithProviderTimeout bounds a single provider call. Values <= 0 are ignored.
func WithProviderTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ProviderTimeout = d
		}
	}
}

// WithMaxConcurrency limits the number of providers run in parallel.
// Values <= 0 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxConcurrency = n
		}
	}
}

// WithProbeRate sets the capability acquisition rate and burst.
// A rate of 0 disables throttling.
func WithProbeRate(perSecond float64, burst int) Option {
	return func(c *Config) {
		c.ProbeRate = perSecond
		if burst > 0 {
			c.ProbeBurst = burst
		}
	}
}

// New returns a Config with defaults and the given options applied.
// Every gate is off and caching is disabled by default.
func New(opts ...Option) *Config {
	c := &Config{
		CachingTime:     cache.Disabled,
		Patches:         map[catalog.ID]measurement.Value{},
		ProviderTimeout: defaults.ProviderTimeout,
		MaxConcurrency:  defaults.ProviderConcurrency,
		ProbeRate:       defaults.CapabilityRate,
		ProbeBurst:      defaults.CapabilityBurst,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the configuration for unknown metrics and invalid limits.
func (c *Config) Validate() error {
	if c == nil {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "config is nil")
	}
	if !c.CachingTime.Valid() {
		return fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported caching time %s", c.CachingTime),
			map[string]any{"cachingTime": int64(c.CachingTime)})
	}
	if c.ProviderTimeout <= 0 {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "provider timeout must be positive")
	}
	if c.MaxConcurrency <= 0 {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "max concurrency must be positive")
	}
	if c.ProbeRate < 0 {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "probe rate must not be negative")
	}

	ids := slices.Concat(slices.Collect(maps.Keys(c.Patches)), c.Parameters)
	if _, err := catalog.Normalize(ids); err != nil {
		return err
	}
	if _, ok := c.Patches[catalog.Empty]; ok {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "cannot patch the Empty sentinel")
	}
	return nil
}

// Enabled reports whether the gate is switched on.
func (c *Config) Enabled(g catalog.Gate) bool {
	switch g {
	case "":
		return true
	case catalog.GateAdvertiserID:
		return c.UseAdvertiserID
	case catalog.GateBluetooth:
		return c.UseBluetoothMetrics
	case catalog.GateBiometric:
		return c.UseLAContext
	case catalog.GateRSAAppKey:
		return c.UseRSAAppKey
	default:
		return false
	}
}

// Gated reports whether collection of id is disabled by configuration.
// A metric listed in Parameters is never gated.
func (c *Config) Gated(id catalog.ID) bool {
	d, ok := catalog.Describe(id)
	if !ok || c.Enabled(d.Gate) {
		return false
	}
	return !slices.Contains(c.Parameters, id)
}

// Patch returns the override configured for id.
func (c *Config) Patch(id catalog.ID) (measurement.Value, bool) {
	v, ok := c.Patches[id]
	return v, ok
}

// Digest returns a stable hash of every setting that changes the content of
// a fingerprint: the gates, the parameters and the patches.
func (c *Config) Digest() string {
	h := sha256.New()
	for _, b := range []bool{c.UseAdvertiserID, c.UseBluetoothMetrics, c.UseLAContext, c.UseRSAAppKey} {
		h.Write([]byte(strconv.FormatBool(b)))
		h.Write([]byte{0})
	}

	params := slices.Clone(c.Parameters)
	catalog.Sort(params)
	for _, id := range slices.Compact(params) {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})

	patched := slices.Collect(maps.Keys(c.Patches))
	catalog.Sort(patched)
	for _, id := range patched {
		h.Write([]byte(id))
		h.Write([]byte{'='})
		data := []byte("null")
		if v := c.Patches[id]; v != nil {
			if b, err := v.MarshalJSON(); err == nil {
				data = b
			} else {
				data = []byte(v.String())
			}
		}
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Parameters = slices.Clone(c.Parameters)
	out.Patches = make(map[catalog.ID]measurement.Value, len(c.Patches))
	for id, v := range c.Patches {
		if r, ok := v.(*measurement.Record); ok {
			v = r.Clone()
		}
		out.Patches[id] = v
	}
	return &out
}
