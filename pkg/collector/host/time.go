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

package host

import (
	"context"
	"fmt"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

const pathTimezone = "/etc/timezone"

func (p *Prober) timestamp(context.Context) (measurement.Value, error) {
	return measurement.Int64(p.clock.Now().UnixMilli()), nil
}

// timeZone reports the IANA zone name when one is configured and the zone
// abbreviation otherwise.
func (p *Prober) timeZone(context.Context) (measurement.Value, error) {
	if tz := p.env("TZ"); tz != "" {
		return measurement.Str(tz), nil
	}
	if lines, err := p.files.GetLines(pathTimezone); err == nil && len(lines) > 0 {
		return measurement.Str(lines[0]), nil
	}
	now := p.clock.Now()
	if name := now.Location().String(); name != "Local" && name != "" {
		return measurement.Str(name), nil
	}
	abbr, _ := now.Zone()
	return measurement.Str(abbr), nil
}

// dstOffset reports the daylight saving shift in seconds currently in effect.
func (p *Prober) dstOffset(context.Context) (measurement.Value, error) {
	now := p.clock.Now()
	_, current := now.Zone()
	_, jan := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).Zone()
	_, jul := time.Date(now.Year(), time.July, 1, 0, 0, 0, 0, now.Location()).Zone()
	standard := min(jan, jul)
	return measurement.Int(current - standard), nil
}

// bootTime reports the boot time in milliseconds since the epoch.
func (p *Prober) bootTime(ctx context.Context) (measurement.Value, error) {
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.BootTime == 0 {
		return nil, fmt.Errorf("boot time not reported")
	}
	return measurement.Int64(int64(info.BootTime) * 1000), nil
}

// procStartTime reports when this process started, in milliseconds since the epoch.
func (p *Prober) procStartTime(ctx context.Context) (measurement.Value, error) {
	created, err := p.procCreated(ctx, p.pid)
	if err != nil {
		return nil, fmt.Errorf("failed to read process start time: %w", err)
	}
	return measurement.Int64(created), nil
}

// startDuration reports the milliseconds between process start and prober creation.
func (p *Prober) startDuration(ctx context.Context) (measurement.Value, error) {
	created, err := p.procCreated(ctx, p.pid)
	if err != nil {
		return nil, fmt.Errorf("failed to read process start time: %w", err)
	}
	return measurement.Int64(max(p.started.UnixMilli()-created, 0)), nil
}
