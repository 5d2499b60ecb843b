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
	"fmt"
	"strconv"
	"strings"
	"time"

	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
)

// CachingTime is the lifetime of a cached fingerprint in milliseconds.
// Only the enumerated values are valid.
type CachingTime int64

const (
	// Disabled recomputes the fingerprint on every request.
	Disabled CachingTime = 0
	// TestPeriod20s keeps fingerprints for 20 seconds.
	TestPeriod20s CachingTime = 20_000
	OneDay        CachingTime = 86_400_000
	TwoDays       CachingTime = 2 * OneDay
	ThreeDays     CachingTime = 3 * OneDay
	FourDays      CachingTime = 4 * OneDay
)

// CachingTimes lists every valid caching time in ascending order.
var CachingTimes = []CachingTime{Disabled, TestPeriod20s, OneDay, TwoDays, ThreeDays, FourDays}

var cachingTimeNames = map[CachingTime]string{
	Disabled:      "disabled",
	TestPeriod20s: "20s",
	OneDay:        "1d",
	TwoDays:       "2d",
	ThreeDays:     "3d",
	FourDays:      "4d",
}

// Duration returns the caching time as a time.Duration.
func (c CachingTime) Duration() time.Duration {
	return time.Duration(c) * time.Millisecond
}

// String returns the short name of the caching time, e.g. "1d".
func (c CachingTime) String() string {
	if name, ok := cachingTimeNames[c]; ok {
		return name
	}
	return strconv.FormatInt(int64(c), 10) + "ms"
}

// Valid reports whether c is one of the enumerated caching times.
func (c CachingTime) Valid() bool {
	_, ok := cachingTimeNames[c]
	return ok
}

// ParseCachingTime parses a caching time from its short name ("disabled",
// "20s", "1d" .. "4d"), a Go duration ("48h") or a millisecond count
// ("86400000"). The result must be one of the enumerated values.
func ParseCachingTime(s string) (CachingTime, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "off", "none", "disabled":
		return Disabled, nil
	}

	for c, name := range cachingTimeNames {
		if s == name {
			return c, nil
		}
	}

	var c CachingTime
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		c = CachingTime(ms)
	} else if d, err := time.ParseDuration(s); err == nil {
		c = CachingTime(d.Milliseconds())
	} else {
		return Disabled, invalidCachingTime(s)
	}
	if !c.Valid() {
		return Disabled, invalidCachingTime(s)
	}
	return c, nil
}

func invalidCachingTime(s string) error {
	names := make([]string, len(CachingTimes))
	for i, c := range CachingTimes {
		names[i] = c.String()
	}
	return fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid caching time %q, must be one of: %s", s, strings.Join(names, ", ")),
		map[string]any{"value": s})
}

// MarshalText renders the short name.
func (c CachingTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses any form accepted by ParseCachingTime.
func (c *CachingTime) UnmarshalText(text []byte) error {
	parsed, err := ParseCachingTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
