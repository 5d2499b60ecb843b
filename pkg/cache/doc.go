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

// Package cache stores computed fingerprints per scope key.
//
// Each entry lives for the configured CachingTime, one of Disabled,
// TestPeriod20s, OneDay, TwoDays, ThreeDays or FourDays. Expiry is lazy: an
// entry is dropped when it is found expired on access. A Disabled cache never
// stores anything.
//
// Get de-duplicates concurrent misses for the same scope with
// golang.org/x/sync/singleflight:
//
//	c := cache.New(cache.OneDay)
//	fp, hit, err := c.Get(ctx, scope, func(ctx context.Context) (*measurement.Fingerprint, error) {
//	    return collect(ctx)
//	})
//
// Time is read from an injectable k8s.io/utils/clock so tests can drive
// expiry with a fake clock.
package cache
