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

package fingerprint

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector"
	"github.com/NVIDIA/device-fingerprint/pkg/config"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/header"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
	"github.com/NVIDIA/device-fingerprint/pkg/signer"
	"github.com/NVIDIA/device-fingerprint/pkg/snapshotter"
)

// Format selects the rendering of an Output.
type Format string

const (
	// FormatFlatJSON renders the canonical flat JSON bytes.
	FormatFlatJSON Format = "flat-json"
	// FormatRawMapping renders an in-memory map keyed by metric name.
	FormatRawMapping Format = "raw-mapping"
)

// ParseFormat parses a format name. "flat" and "json" select flat JSON,
// "raw" selects the raw mapping.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat", "json", string(FormatFlatJSON):
		return FormatFlatJSON, nil
	case "raw", string(FormatRawMapping):
		return FormatRawMapping, nil
	default:
		return "", fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown output format %q", s))
	}
}

// Output is a rendered fingerprint.
type Output struct {
	Format      Format
	Fingerprint *measurement.Fingerprint
	// JSON holds the canonical flat JSON for FormatFlatJSON.
	JSON []byte
	// Raw holds the metric values for FormatRawMapping.
	Raw       map[string]any
	Signature *signer.Signature
}

// String returns the flat JSON, rendering it on demand for raw outputs.
func (o *Output) String() string {
	if o == nil {
		return ""
	}
	if o.JSON != nil {
		return string(o.JSON)
	}
	data, err := serializer.FlatJSON(o.Fingerprint)
	if err != nil {
		return ""
	}
	return string(data)
}

// Document is the envelope written by the command line tool.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Fingerprint *measurement.Fingerprint `json:"fingerprint" yaml:"fingerprint"`
	Signature   *signer.Signature        `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

// WithVersion sets the version reported by the SDKVersion metric and
// document headers.
func WithVersion(v string) Option {
	return func(s *Service) {
		s.version = v
	}
}

// WithSigner replaces the signer built from the configuration.
func WithSigner(sg *signer.Signer) Option {
	return func(s *Service) {
		s.signer = sg
	}
}

// WithAutoSign attaches a signature to every output.
func WithAutoSign(enabled bool) Option {
	return func(s *Service) {
		s.autoSign = enabled
	}
}

// WithClock sets the clock of fingerprint timestamps and cache expiry.
func WithClock(c clock.PassiveClock) Option {
	return func(s *Service) {
		s.aggOpts = append(s.aggOpts, snapshotter.WithClock(c))
	}
}

// WithCache shares a fingerprint cache between services.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.aggOpts = append(s.aggOpts, snapshotter.WithCache(c))
	}
}

// WithTracerProvider sets the tracer provider of collection passes.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.aggOpts = append(s.aggOpts, snapshotter.WithTracerProvider(tp))
	}
}

// Service is the fingerprint facade. Construct it once with its
// configuration and share it; it is safe for concurrent use.
type Service struct {
	cfg        *config.Config
	registry   *collector.Registry
	aggregator *snapshotter.Aggregator
	signer     *signer.Signer
	version    string
	autoSign   bool
	aggOpts    []snapshotter.Option
}

// New creates a Service. When registry is nil a registry backed by the host
// probes is created with the collection limits of cfg.
func New(cfg *config.Config, registry *collector.Registry, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:     cfg.Clone(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.signer == nil {
		sg, err := signer.FromConfig(s.cfg)
		if err != nil {
			return nil, err
		}
		s.signer = sg
	}

	if registry == nil {
		registry = collector.NewDefaultFactory(
			collector.WithVersion(s.version),
			collector.WithProviderTimeout(s.cfg.ProviderTimeout),
			collector.WithMaxConcurrency(s.cfg.MaxConcurrency),
			collector.WithCapabilityGuard(collector.NewDefaultGuard(s.cfg.ProbeRate, s.cfg.ProbeBurst)),
		).CreateRegistry()
	}
	if keyID := s.signer.KeyID(); keyID != "" && !registry.Has(catalog.RSAApplicationKey) {
		if err := registry.Register(catalog.RSAApplicationKey, collector.Static(measurement.Str(keyID))); err != nil {
			return nil, err
		}
	}
	s.registry = registry

	agg, err := snapshotter.New(s.cfg, registry, s.aggOpts...)
	if err != nil {
		return nil, err
	}
	s.aggregator = agg

	slog.Debug("fingerprint service created",
		slog.String("version", s.version),
		slog.String("cachingTime", s.cfg.CachingTime.String()),
		slog.String("signing", string(s.signer.Mode())),
		slog.Int("providers", len(registry.IDs())),
	)
	return s, nil
}

// Version returns the version the service reports.
func (s *Service) Version() string {
	return s.version
}

// Config returns a copy of the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg.Clone()
}

// Snapshot returns one of the predefined variants, optionally with the
// geolocation metrics.
func (s *Service) Snapshot(ctx context.Context, format Format, variant catalog.Variant, includeCoordinates bool) (*Output, error) {
	return s.collect(ctx, snapshotter.Variant(variant, includeCoordinates), format)
}

// ActiveSnapshot returns the default metrics plus the configured parameters.
func (s *Service) ActiveSnapshot(ctx context.Context, format Format) (*Output, error) {
	return s.collect(ctx, snapshotter.Active(), format)
}

// CustomSnapshot returns exactly the given metrics.
func (s *Service) CustomSnapshot(ctx context.Context, ids []catalog.ID, format Format) (*Output, error) {
	return s.collect(ctx, snapshotter.Subset(ids...), format)
}

// FullSnapshot returns every catalog metric that is not disabled.
func (s *Service) FullSnapshot(ctx context.Context, format Format) (*Output, error) {
	return s.collect(ctx, snapshotter.FullSnapshot(), format)
}

// Collect runs an arbitrary request.
func (s *Service) Collect(ctx context.Context, req snapshotter.Request, format Format) (*Output, error) {
	return s.collect(ctx, req, format)
}

func (s *Service) collect(ctx context.Context, req snapshotter.Request, format Format) (*Output, error) {
	if format == "" {
		format = FormatFlatJSON
	}
	if format != FormatFlatJSON && format != FormatRawMapping {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown output format %q", format))
	}

	fp, err := s.aggregator.Collect(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := Render(fp, format)
	if err != nil {
		return nil, err
	}
	if s.autoSign {
		if _, err := s.Sign(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Render encodes fp in the given format.
func Render(fp *measurement.Fingerprint, format Format) (*Output, error) {
	out := &Output{Format: format, Fingerprint: fp}
	switch format {
	case FormatFlatJSON:
		data, err := serializer.FlatJSON(fp)
		if err != nil {
			return nil, err
		}
		out.JSON = data
	case FormatRawMapping:
		out.Raw = serializer.RawMapping(fp)
	default:
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown output format %q", format))
	}
	return out, nil
}

// DeviceName returns the device name without running a collection pass.
// A configured patch wins; an unavailable name is returned as "".
func (s *Service) DeviceName(ctx context.Context) string {
	if v, ok := s.cfg.Patch(catalog.DeviceName); ok {
		if !measurement.IsAvailable(v) {
			return ""
		}
		return v.String()
	}
	res := s.registry.Provide(ctx, catalog.DeviceName)
	if !measurement.IsAvailable(res.Value) {
		if res.Err != nil {
			slog.Debug("device name unavailable", slog.String("error", res.Err.Error()))
		}
		return ""
	}
	return res.Value.String()
}

// Sign signs the fingerprint of out and attaches the signature.
func (s *Service) Sign(_ context.Context, out *Output) (*signer.Signature, error) {
	if out == nil || out.Fingerprint == nil {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "output has no fingerprint")
	}
	sig, err := s.signer.Sign(out.Fingerprint)
	if err != nil {
		return nil, err
	}
	out.Signature = sig
	return sig, nil
}

// Verify checks the signature attached to out.
func (s *Service) Verify(out *Output) error {
	if out == nil || out.Fingerprint == nil {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "output has no fingerprint")
	}
	return s.signer.Verify(out.Fingerprint, out.Signature)
}

// Signer returns the signer of the service.
func (s *Service) Signer() *signer.Signer {
	return s.signer
}

// Document wraps out in a versioned envelope.
func (s *Service) Document(out *Output) *Document {
	return &Document{
		Header:      *header.New(header.KindFingerprint, s.version, out.Fingerprint.CreatedAt),
		Fingerprint: out.Fingerprint,
		Signature:   out.Signature,
	}
}
