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
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
)

// fileConfig is the on-disk form of Config.
type fileConfig struct {
	UseAdvertiserID     bool              `json:"useAdvertiserId,omitempty" yaml:"useAdvertiserId,omitempty"`
	UseBluetoothMetrics bool              `json:"useBluetoothMetrics,omitempty" yaml:"useBluetoothMetrics,omitempty"`
	UseLAContext        bool              `json:"useLAContext,omitempty" yaml:"useLAContext,omitempty"`
	UseRSAAppKey        bool              `json:"useRSAAppKey,omitempty" yaml:"useRSAAppKey,omitempty"`
	HMACKey             string            `json:"hmacKey,omitempty" yaml:"hmacKey,omitempty"`
	RSAKeyFile          string            `json:"rsaKeyFile,omitempty" yaml:"rsaKeyFile,omitempty"`
	CachingTime         cache.CachingTime `json:"cachingTime" yaml:"cachingTime"`
	Patches             map[string]any    `json:"patches,omitempty" yaml:"patches,omitempty"`
	Parameters          []string          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ProviderTimeout     string            `json:"providerTimeout,omitempty" yaml:"providerTimeout,omitempty"`
	MaxConcurrency      int               `json:"maxConcurrency,omitempty" yaml:"maxConcurrency,omitempty"`
	ProbeRate           *float64          `json:"probeRate,omitempty" yaml:"probeRate,omitempty"`
	ProbeBurst          int               `json:"probeBurst,omitempty" yaml:"probeBurst,omitempty"`
}

// Load reads a JSON or YAML configuration file, applies it over the
// defaults and then applies opts. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	fc, err := serializer.FromFile[fileConfig](path)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "failed to load config", err)
	}

	fileOpts, err := fc.options()
	if err != nil {
		return nil, err
	}

	c := New(append(fileOpts, opts...)...)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("config loaded",
		slog.String("path", path),
		slog.String("cachingTime", c.CachingTime.String()),
		slog.Int("patches", len(c.Patches)),
		slog.Int("parameters", len(c.Parameters)),
	)
	return c, nil
}

func (fc *fileConfig) options() ([]Option, error) {
	opts := []Option{
		WithAdvertiserID(fc.UseAdvertiserID),
		WithBluetoothMetrics(fc.UseBluetoothMetrics),
		WithLAContext(fc.UseLAContext),
		WithRSAAppKey(fc.UseRSAAppKey),
		WithHMACKey(fc.HMACKey),
		WithRSAKeyFile(fc.RSAKeyFile),
		WithCachingTime(fc.CachingTime),
		WithMaxConcurrency(fc.MaxConcurrency),
	}

	if fc.ProviderTimeout != "" {
		d, err := time.ParseDuration(fc.ProviderTimeout)
		if err != nil {
			return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid provider timeout %q", fc.ProviderTimeout), err)
		}
		opts = append(opts, WithProviderTimeout(d))
	}

	if fc.ProbeRate != nil {
		opts = append(opts, WithProbeRate(*fc.ProbeRate, fc.ProbeBurst))
	}

	if len(fc.Parameters) > 0 {
		ids, err := catalog.Parse(fc.Parameters)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithParameters(ids...))
	}

	var unknown []string
	for name, raw := range fc.Patches {
		id, ok := catalog.Lookup(name)
		if !ok || id == catalog.Empty {
			unknown = append(unknown, name)
			continue
		}
		opts = append(opts, WithPatch(id, measurement.FromAny(raw)))
	}
	if len(unknown) > 0 {
		return nil, fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
			"unknown patched metric(s)", map[string]any{"metrics": unknown})
	}
	return opts, nil
}

func toFile(c *Config) *fileConfig {
	rate := c.ProbeRate
	fc := &fileConfig{
		UseAdvertiserID:     c.UseAdvertiserID,
		UseBluetoothMetrics: c.UseBluetoothMetrics,
		UseLAContext:        c.UseLAContext,
		UseRSAAppKey:        c.UseRSAAppKey,
		HMACKey:             c.HMACKey,
		RSAKeyFile:          c.RSAKeyFile,
		CachingTime:         c.CachingTime,
		ProviderTimeout:     c.ProviderTimeout.String(),
		MaxConcurrency:      c.MaxConcurrency,
		ProbeRate:           &rate,
		ProbeBurst:          c.ProbeBurst,
	}
	for _, id := range c.Parameters {
		fc.Parameters = append(fc.Parameters, catalog.Name(id))
	}
	if len(c.Patches) > 0 {
		fc.Patches = make(map[string]any, len(c.Patches))
		for id, v := range c.Patches {
			fc.Patches[catalog.Name(id)] = v
		}
	}
	return fc
}

// Save writes the configuration to path in the format implied by its
// extension. Anything other than .json is written as YAML.
func (c *Config) Save(ctx context.Context, path string) (err error) {
	format := serializer.FormatFromPath(path)
	if format != serializer.FormatJSON {
		format = serializer.FormatYAML
	}

	f, err := os.Create(path)
	if err != nil {
		return fperrors.Wrap(fperrors.ErrCodeInternal, "failed to create config file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fperrors.Wrap(fperrors.ErrCodeInternal, "failed to close config file", cerr)
		}
	}()

	if err := serializer.NewWriter(format, f).Serialize(ctx, toFile(c)); err != nil {
		return fperrors.Wrap(fperrors.ErrCodeInternal, "failed to write config", err)
	}
	return nil
}
