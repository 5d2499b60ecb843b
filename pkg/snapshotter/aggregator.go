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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/device-fingerprint/pkg/cache"
	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector"
	"github.com/NVIDIA/device-fingerprint/pkg/config"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

const (
	tracerName = "github.com/NVIDIA/device-fingerprint/pkg/snapshotter"

	// ReasonDisabled is the unavailable reason of metrics switched off by configuration.
	ReasonDisabled = "disabled by configuration"
)

// ProviderSet produces metric values in batches. *collector.Registry implements it.
type ProviderSet interface {
	ProvideAll(ctx context.Context, ids []catalog.ID) map[catalog.ID]collector.Result
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithCache sets the fingerprint cache. By default a cache using the
// configured caching time is created.
func WithCache(c *cache.Cache) Option {
	return func(a *Aggregator) {
		a.cache = c
	}
}

// WithClock sets the clock used for fingerprint timestamps and, unless
// WithCache is given, for cache expiry.
func WithClock(c clock.PassiveClock) Option {
	return func(a *Aggregator) {
		a.clock = c
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Aggregator) {
		a.tracer = tp.Tracer(tracerName)
	}
}

// Aggregator runs collection passes: it resolves the requested metrics,
// consults the cache, invokes providers on a miss and applies patches.
type Aggregator struct {
	cfg       *config.Config
	providers ProviderSet
	cache     *cache.Cache
	clock     clock.PassiveClock
	tracer    trace.Tracer
}

// New creates an Aggregator. The configuration is validated and copied.
func New(cfg *config.Config, providers ProviderSet, opts ...Option) (*Aggregator, error) {
	if providers == nil {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "provider set is required")
	}
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Aggregator{
		cfg:       cfg.Clone(),
		providers: providers,
		clock:     clock.RealClock{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = cache.New(a.cfg.CachingTime, cache.WithClock(a.clock))
	}
	return a, nil
}

// Cache returns the fingerprint cache.
func (a *Aggregator) Cache() *cache.Cache {
	return a.cache
}

// Config returns the configuration the aggregator was built with.
// Callers must not modify it.
func (a *Aggregator) Config() *config.Config {
	return a.cfg
}

// Resolve returns the metrics a request selects, in catalog order.
func (a *Aggregator) Resolve(req Request) ([]catalog.ID, error) {
	switch req.Kind {
	case RequestFull:
		return a.withoutGated(catalog.All()), nil

	case RequestVariant:
		ids := req.Variant.IDs(req.Coordinates)
		if ids == nil {
			return nil, fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown variant %q", req.Variant),
				map[string]any{"variant": string(req.Variant)})
		}
		return a.withoutGated(ids), nil

	case RequestActive:
		ids, err := catalog.Normalize(slices.Concat(catalog.Defaults(), a.cfg.Parameters))
		if err != nil {
			return nil, err
		}
		return a.withoutGated(ids), nil

	case RequestSubset:
		return catalog.Normalize(req.IDs)

	default:
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown request kind %q", req.Kind))
	}
}

func (a *Aggregator) withoutGated(ids []catalog.ID) []catalog.ID {
	return slices.DeleteFunc(ids, a.cfg.Gated)
}

// Scope returns the cache scope of a resolved metric set. It covers the
// sorted metric names and every configuration setting that changes the
// fingerprint content, so different configurations never share an entry.
func (a *Aggregator) Scope(ids []catalog.ID) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	h := sha256.New()
	for _, id := range sorted {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	h.Write([]byte(a.cfg.Digest()))
	return hex.EncodeToString(h.Sum(nil))
}

// Collect returns the fingerprint for req. Within the caching time repeated
// calls for the same metrics return the same record, including its
// timestamp. The returned fingerprint is owned by the caller.
func (a *Aggregator) Collect(ctx context.Context, req Request) (*measurement.Fingerprint, error) {
	start := time.Now()
	defer func() {
		snapshotCollectionDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	}()

	ctx, span := a.tracer.Start(ctx, "snapshotter.Collect",
		trace.WithAttributes(attribute.String("fingerprint.request", req.String())))
	defer span.End()

	ids, err := a.Resolve(req)
	if err != nil {
		return nil, a.fail(span, err)
	}

	scope := a.Scope(ids)
	span.SetAttributes(
		attribute.String("fingerprint.scope", scope),
		attribute.Int("fingerprint.metrics", len(ids)),
	)

	fp, hit, err := a.cache.Get(ctx, scope, func(ctx context.Context) (*measurement.Fingerprint, error) {
		return a.compute(ctx, scope, ids)
	})
	if err != nil {
		return nil, a.fail(span, err)
	}

	span.SetAttributes(attribute.Bool("fingerprint.cache_hit", hit))
	if hit {
		snapshotCollectionTotal.WithLabelValues("hit").Inc()
	} else {
		snapshotCollectionTotal.WithLabelValues("computed").Inc()
	}
	slog.Debug("fingerprint collected",
		slog.String("request", req.String()),
		slog.Int("metrics", len(ids)),
		slog.Bool("cacheHit", hit),
		slog.Time("createdAt", fp.CreatedAt),
	)

	return fp.Subset(ids).Clone(), nil
}

func (a *Aggregator) fail(span trace.Span, err error) error {
	snapshotCollectionTotal.WithLabelValues("error").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// compute runs one collection pass. The record is private until returned.
func (a *Aggregator) compute(ctx context.Context, scope string, ids []catalog.ID) (*measurement.Fingerprint, error) {
	ctx, span := a.tracer.Start(ctx, "snapshotter.compute")
	defer span.End()

	fp := measurement.NewFingerprint(scope, a.clock.Now())

	invoke := make([]catalog.ID, 0, len(ids))
	for _, id := range ids {
		if _, patched := a.cfg.Patch(id); patched {
			continue
		}
		if a.cfg.Gated(id) {
			fp.Set(id, measurement.NotAvailable(ReasonDisabled))
			continue
		}
		invoke = append(invoke, id)
	}

	results := a.providers.ProvideAll(ctx, invoke)

	var invoked, failed int
	for _, id := range invoke {
		res, ok := results[id]
		if !ok {
			fp.Set(id, measurement.NotAvailable("no result"))
			continue
		}
		fp.Set(id, res.Value)
		if res.Invoked {
			invoked++
			if res.Failed() {
				failed++
			}
		}
	}

	patched := 0
	for _, id := range ids {
		if v, ok := a.cfg.Patch(id); ok {
			fp.Set(id, v)
			patched++
		}
	}

	span.SetAttributes(
		attribute.Int("fingerprint.invoked", invoked),
		attribute.Int("fingerprint.failed", failed),
		attribute.Int("fingerprint.patched", patched),
	)

	if invoked > 0 && failed == invoked && patched == 0 {
		err := fperrors.NewWithContext(fperrors.ErrCodeCacheComputeFailure,
			"every metric provider failed",
			map[string]any{"scope": scope, "invoked": invoked})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("fingerprint computation failed", slog.Int("invoked", invoked))
		return nil, err
	}

	snapshotMetricCount.Set(float64(fp.Len()))
	snapshotUnavailableCount.Set(float64(fp.Len() - fp.Available()))
	slog.Info("fingerprint computed",
		slog.Int("metrics", fp.Len()),
		slog.Int("available", fp.Available()),
		slog.Int("failed", failed),
		slog.Int("patched", patched),
	)
	return fp, nil
}
