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
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector/file"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"k8s.io/utils/clock"
)

// ProbeFunc reads one metric from the host.
type ProbeFunc func(ctx context.Context) (measurement.Value, error)

// Option configures a Prober.
type Option func(*Prober)

// WithFS reads system files (/etc, /proc, /sys, application paths) from fsys
// instead of the host root.
func WithFS(fsys fs.FS) Option {
	return func(p *Prober) {
		p.fsys = fsys
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(c clock.PassiveClock) Option {
	return func(p *Prober) {
		p.clock = c
	}
}

// WithEnv sets the environment lookup used for locale and home directory.
func WithEnv(env func(string) string) Option {
	return func(p *Prober) {
		p.env = env
	}
}

// WithVersion sets the version reported by SDKVersion and AgentAppInfo.
func WithVersion(v string) Option {
	return func(p *Prober) {
		p.version = v
	}
}

// WithRemoteDesktopUnits sets the systemd units whose state signals an
// active remote desktop session.
func WithRemoteDesktopUnits(units ...string) Option {
	return func(p *Prober) {
		p.remoteDesktopUnits = units
	}
}

// Prober reads a reference set of metrics from a Linux or desktop host.
type Prober struct {
	fsys               fs.FS
	files              *file.Parser
	clock              clock.PassiveClock
	env                func(string) string
	version            string
	remoteDesktopUnits []string
	started            time.Time
	pid                int32

	hostInfo    func(ctx context.Context) (*host.InfoStat, error)
	interfaces  func(ctx context.Context) (psnet.InterfaceStatList, error)
	cpuCount    func(ctx context.Context, logical bool) (int, error)
	procCreated func(ctx context.Context, pid int32) (int64, error)
	dialSystemd func(ctx context.Context) (unitReader, error)
}

// New creates a Prober for the current process.
func New(opts ...Option) *Prober {
	p := &Prober{
		clock:              clock.RealClock{},
		env:                os.Getenv,
		version:            "dev",
		remoteDesktopUnits: []string{"xrdp.service", "gnome-remote-desktop.service"},
		pid:                int32(os.Getpid()),

		hostInfo:    host.InfoWithContext,
		interfaces:  psnet.InterfacesWithContext,
		cpuCount:    cpu.CountsWithContext,
		procCreated: processCreateTime,
		dialSystemd: dialSystemd,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.started = p.clock.Now()
	p.files = file.NewParser(file.WithFS(p.fsys))
	return p
}

// Probes returns the metrics this host can report, keyed by metric ID.
// Composite metrics are reported as a single record holding their children.
func (p *Prober) Probes() map[catalog.ID]ProbeFunc {
	return map[catalog.ID]ProbeFunc{
		catalog.DeviceName:                             p.deviceName,
		catalog.HardwareID:                             p.hardwareID,
		catalog.DeviceModel:                            p.deviceModel,
		catalog.AgentBrand:                             p.agentBrand,
		catalog.DeviceSystemName:                       p.systemName,
		catalog.DeviceSystemVersion:                    p.systemVersion,
		catalog.OSID:                                   p.osID,
		catalog.Emulator:                               p.emulator,
		catalog.Debugger:                               p.debugger,
		catalog.MultitaskingSupported:                  p.multitasking,
		catalog.Timestamp:                              p.timestamp,
		catalog.TimeZone:                               p.timeZone,
		catalog.TimeZoneDSTOffset:                      p.dstOffset,
		catalog.AgentBootTime:                          p.bootTime,
		catalog.AppProcStartTime:                       p.procStartTime,
		catalog.AppDurationStartTime:                   p.startDuration,
		catalog.LocalIP4:                               p.localIP4,
		catalog.LocalIP6:                               p.localIP6,
		catalog.DnsIP:                                  p.dnsIP,
		catalog.VpnConnection:                          p.vpnConnection,
		catalog.AgentConnectionType:                    p.connectionType,
		catalog.Languages:                              p.languages,
		catalog.LocaleInfo:                             p.localeInfo,
		catalog.RDPConnection:                          p.rdpConnection,
		catalog.RDPConnectionDuration:                  p.rdpDuration,
		catalog.SDKVersion:                             p.sdkVersion,
		catalog.AgentAppInfo:                           p.appInfo,
		catalog.HoursSinceAirdroidInstall:              p.installAge(catalog.HoursSinceAirdroidInstall),
		catalog.HoursSinceAnyDeskInstall:               p.installAge(catalog.HoursSinceAnyDeskInstall),
		catalog.HoursSinceDiscordInstall:               p.installAge(catalog.HoursSinceDiscordInstall),
		catalog.HoursSinceISLLightInstall:              p.installAge(catalog.HoursSinceISLLightInstall),
		catalog.HoursSinceLogMeinInstall:               p.installAge(catalog.HoursSinceLogMeinInstall),
		catalog.HoursSinceAirdroidRemoteSupportInstall: p.installAge(catalog.HoursSinceAirdroidRemoteSupportInstall),
		catalog.HoursSinceZoomInstall:                  p.installAge(catalog.HoursSinceZoomInstall),
		catalog.HoursSinceSkypeInstall:                 p.installAge(catalog.HoursSinceSkypeInstall),
	}
}

// stat reports file info for path, honoring the configured filesystem.
func (p *Prober) stat(path string) (fs.FileInfo, error) {
	if p.fsys == nil {
		return os.Stat(path)
	}
	return fs.Stat(p.fsys, strings.TrimPrefix(path, "/"))
}

func processCreateTime(ctx context.Context, pid int32) (int64, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, err
	}
	return proc.CreateTimeWithContext(ctx)
}
