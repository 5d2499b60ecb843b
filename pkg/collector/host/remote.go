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
	"github.com/coreos/go-systemd/v22/dbus"
)

// unitReader is the subset of the systemd D-Bus connection used by the
// remote desktop probes.
type unitReader interface {
	GetAllPropertiesContext(ctx context.Context, unit string) (map[string]any, error)
	Close()
}

func dialSystemd(ctx context.Context) (unitReader, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return conn, nil
}

// remoteSession returns whether any remote desktop unit is active and, if so,
// when the earliest one entered the active state.
func (p *Prober) remoteSession(ctx context.Context) (bool, time.Time, error) {
	conn, err := p.dialSystemd(ctx)
	if err != nil {
		return false, time.Time{}, err
	}
	defer conn.Close()

	var (
		active bool
		since  time.Time
	)
	for _, unit := range p.remoteDesktopUnits {
		props, err := conn.GetAllPropertiesContext(ctx, unit)
		if err != nil {
			return false, time.Time{}, fmt.Errorf("failed to get unit properties for %s: %w", unit, err)
		}
		if state, _ := props["ActiveState"].(string); state != "active" {
			continue
		}
		active = true
		if usec, ok := props["ActiveEnterTimestamp"].(uint64); ok && usec > 0 {
			entered := time.UnixMicro(int64(usec))
			if since.IsZero() || entered.Before(since) {
				since = entered
			}
		}
	}
	return active, since, nil
}

func (p *Prober) rdpConnection(ctx context.Context) (measurement.Value, error) {
	active, _, err := p.remoteSession(ctx)
	if err != nil {
		return nil, err
	}
	return measurement.Bool(active), nil
}

// rdpDuration reports how long the remote session has been active in
// seconds, 0 when there is none.
func (p *Prober) rdpDuration(ctx context.Context) (measurement.Value, error) {
	active, since, err := p.remoteSession(ctx)
	if err != nil {
		return nil, err
	}
	if !active || since.IsZero() {
		return measurement.Int(0), nil
	}
	return measurement.Int64(int64(p.clock.Since(since) / time.Second)), nil
}
