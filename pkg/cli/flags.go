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

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/config"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/fingerprint"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatFlat),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML or JSON)",
			Sources: cli.EnvVars("FP_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "hmac-key",
			Usage:   "Secret used to sign fingerprints with HMAC-SHA256",
			Sources: cli.EnvVars("FP_HMAC_KEY"),
		},
		&cli.StringFlag{
			Name:    "rsa-key",
			Usage:   "PEM encoded RSA private key; enables the RSA application key",
			Sources: cli.EnvVars("FP_RSA_KEY"),
		},
		&cli.StringFlag{
			Name:  "caching-time",
			Usage: "How long results are reused (disabled, 20s, 1d, 2d, 3d, 4d)",
		},
		&cli.StringSliceFlag{
			Name:  "patch",
			Usage: "Override a metric value (format: Metric=value, can be repeated)",
		},
		&cli.StringSliceFlag{
			Name:  "parameter",
			Usage: "Add a metric to active snapshots and enable it (can be repeated)",
		},
		&cli.BoolFlag{
			Name:  "advertiser-id",
			Usage: "Enable the advertiser identifier",
		},
		&cli.BoolFlag{
			Name:  "bluetooth",
			Usage: "Enable bluetooth metrics",
		},
		&cli.BoolFlag{
			Name:  "biometric",
			Usage: "Enable biometric context metrics",
		},
		&cli.DurationFlag{
			Name:  "provider-timeout",
			Value: defaults.ProviderTimeout,
			Usage: "Timeout of a single metric provider",
		},
		&cli.IntFlag{
			Name:  "max-concurrency",
			Value: defaults.ProviderConcurrency,
			Usage: "Number of providers run in parallel",
		},
	}
}

// parseOutputFormat reads and validates the format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(cmd.String("format")))
	if f.IsUnknown() {
		return "", fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown output format: %q", cmd.String("format")))
	}
	return f, nil
}

// parsePatches turns Metric=value pairs into config options. Values are
// read as JSON literals when they parse as one, otherwise as strings.
func parsePatches(values []string) ([]config.Option, error) {
	opts := make([]config.Option, 0, len(values))
	for _, v := range values {
		key, raw, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid patch %q, expected Metric=value", v))
		}
		id, ok := catalog.Lookup(strings.TrimSpace(key))
		if !ok {
			return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown metric in patch: %q", key))
		}
		opts = append(opts, config.WithPatch(id, measurement.ParseValue(raw)))
	}
	return opts, nil
}

// loadConfig builds the configuration from the config file, when given,
// and the flags that were set.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var opts []config.Option

	if cmd.IsSet("hmac-key") {
		opts = append(opts, config.WithHMACKey(cmd.String("hmac-key")))
	}
	if path := cmd.String("rsa-key"); path != "" {
		opts = append(opts, config.WithRSAAppKey(true), config.WithRSAKeyFile(path))
	}
	if cmd.IsSet("caching-time") {
		ct, err := cache.ParseCachingTime(cmd.String("caching-time"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithCachingTime(ct))
	}
	if cmd.Bool("advertiser-id") {
		opts = append(opts, config.WithAdvertiserID(true))
	}
	if cmd.Bool("bluetooth") {
		opts = append(opts, config.WithBluetoothMetrics(true))
	}
	if cmd.Bool("biometric") {
		opts = append(opts, config.WithLAContext(true))
	}
	if cmd.IsSet("provider-timeout") {
		opts = append(opts, config.WithProviderTimeout(cmd.Duration("provider-timeout")))
	}
	if cmd.IsSet("max-concurrency") {
		opts = append(opts, config.WithMaxConcurrency(int(cmd.Int("max-concurrency"))))
	}

	patches, err := parsePatches(cmd.StringSlice("patch"))
	if err != nil {
		return nil, err
	}
	opts = append(opts, patches...)

	if params := cmd.StringSlice("parameter"); len(params) > 0 {
		ids, err := catalog.Parse(params)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithParameters(ids...))
	}

	if path := cmd.String("config"); path != "" {
		return config.Load(path, opts...)
	}

	cfg := config.New(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService creates the fingerprint service for one command invocation.
func (a *app) newService(cmd *cli.Command, opts ...fingerprint.Option) (*fingerprint.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	opts = append([]fingerprint.Option{fingerprint.WithVersion(version)}, opts...)
	return fingerprint.New(cfg, a.registry, opts...)
}

// withTimeout returns d unless the provider timeout flag asks for longer.
func withTimeout(cmd *cli.Command, d time.Duration) time.Duration {
	if pt := cmd.Duration("provider-timeout"); pt > d {
		return pt
	}
	return d
}
