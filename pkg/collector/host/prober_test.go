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
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeUnits struct {
	props  map[string]map[string]any
	err    error
	closed bool
}

func (f *fakeUnits) GetAllPropertiesContext(_ context.Context, unit string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.props[unit], nil
}

func (f *fakeUnits) Close() { f.closed = true }

func newTestProber(t *testing.T, fsys fstest.MapFS, env map[string]string) (*Prober, *testingclock.FakeClock) {
	t.Helper()
	clk := testingclock.NewFakeClock(testNow)
	p := New(
		WithFS(fsys),
		WithClock(clk),
		WithEnv(func(k string) string { return env[k] }),
		WithVersion("1.2.3"),
	)
	p.pid = 42
	p.hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{
			Hostname:           "workstation",
			HostID:             "8f2c1c3e-0000-4000-8000-000000000001",
			BootTime:           1700000000,
			OS:                 "linux",
			Platform:           "ubuntu",
			PlatformVersion:    "22.04",
			VirtualizationRole: "guest",
		}, nil
	}
	p.interfaces = func(context.Context) (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{
			{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}}},
			{Name: "wlp2s0", Flags: []string{"up", "broadcast"}, Addrs: psnet.InterfaceAddrList{
				{Addr: "192.168.1.20/24"}, {Addr: "fe80::1/64"}, {Addr: "2001:db8::20/64"},
			}},
			{Name: "wg0", Flags: []string{"up"}, Addrs: psnet.InterfaceAddrList{{Addr: "10.8.0.2/32"}}},
			{Name: "eth1", Flags: []string{"broadcast"}, Addrs: psnet.InterfaceAddrList{{Addr: "10.0.0.5/24"}}},
		}, nil
	}
	p.cpuCount = func(context.Context, bool) (int, error) { return 8, nil }
	p.procCreated = func(context.Context, int32) (int64, error) {
		return testNow.Add(-1500 * time.Millisecond).UnixMilli(), nil
	}
	return p, clk
}

func probe(t *testing.T, p *Prober, id catalog.ID) measurement.Value {
	t.Helper()
	fn, ok := p.Probes()[id]
	require.True(t, ok, "no probe for %s", id)
	v, err := fn(context.Background())
	require.NoError(t, err)
	return v
}

func TestProbesAreCatalogMetrics(t *testing.T) {
	p := New()
	for id := range p.Probes() {
		assert.True(t, catalog.Known(id), "%s is not a catalog metric", id)
	}
}

func TestIdentityProbes(t *testing.T) {
	fsys := fstest.MapFS{
		"etc/os-release":                {Data: []byte("NAME=\"Ubuntu\"\nVERSION_ID=\"24.04\"\n")},
		"sys/class/dmi/id/product_name": {Data: []byte("ThinkPad X1\n")},
		"sys/class/dmi/id/sys_vendor":   {Data: []byte("LENOVO\n")},
		"proc/self/status":              {Data: []byte("Name:\ttest\nTracerPid:\t311\n")},
	}
	p, _ := newTestProber(t, fsys, nil)

	assert.Equal(t, "workstation", probe(t, p, catalog.DeviceName).String())
	assert.Equal(t, "8f2c1c3e-0000-4000-8000-000000000001", probe(t, p, catalog.HardwareID).String())
	assert.Equal(t, "ThinkPad X1", probe(t, p, catalog.DeviceModel).String())
	assert.Equal(t, "LENOVO", probe(t, p, catalog.AgentBrand).String())
	assert.Equal(t, "Ubuntu", probe(t, p, catalog.DeviceSystemName).String())
	assert.Equal(t, "24.04", probe(t, p, catalog.DeviceSystemVersion).String())
	assert.Equal(t, measurement.Bool(true), probe(t, p, catalog.Emulator))
	assert.Equal(t, measurement.Bool(true), probe(t, p, catalog.Debugger))
	assert.Equal(t, measurement.Bool(true), probe(t, p, catalog.MultitaskingSupported))
	assert.Equal(t, "1.2.3", probe(t, p, catalog.SDKVersion).String())

	osid := probe(t, p, catalog.OSID).String()
	assert.Len(t, osid, 36)
	assert.Equal(t, osid, probe(t, p, catalog.OSID).String(), "OSID must be stable")
	assert.NotContains(t, osid, "8f2c1c3e")

	info, ok := probe(t, p, catalog.AgentAppInfo).(*measurement.Record)
	require.True(t, ok)
	pid, err := info.GetInt64("pid")
	require.NoError(t, err)
	assert.Equal(t, int64(42), pid)
}

func TestSystemNameFallback(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{}, nil)

	assert.Equal(t, "ubuntu", probe(t, p, catalog.DeviceSystemName).String())
	assert.Equal(t, "22.04", probe(t, p, catalog.DeviceSystemVersion).String())

	_, err := p.Probes()[catalog.DeviceModel](context.Background())
	assert.Error(t, err)
}

func TestHostInfoFailure(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{}, nil)
	p.hostInfo = func(context.Context) (*host.InfoStat, error) {
		return nil, errors.New("boom")
	}

	for _, id := range []catalog.ID{catalog.DeviceName, catalog.HardwareID, catalog.OSID, catalog.Emulator, catalog.AgentBootTime} {
		_, err := p.Probes()[id](context.Background())
		assert.Error(t, err, id)
	}
}

func TestTimeProbes(t *testing.T) {
	p, clk := newTestProber(t, fstest.MapFS{}, map[string]string{"TZ": "Europe/Amsterdam"})

	assert.Equal(t, measurement.Int64(testNow.UnixMilli()), probe(t, p, catalog.Timestamp))
	assert.Equal(t, "Europe/Amsterdam", probe(t, p, catalog.TimeZone).String())
	assert.Equal(t, measurement.Int(0), probe(t, p, catalog.TimeZoneDSTOffset))
	assert.Equal(t, measurement.Int64(1700000000000), probe(t, p, catalog.AgentBootTime))
	assert.Equal(t, measurement.Int64(testNow.Add(-1500*time.Millisecond).UnixMilli()), probe(t, p, catalog.AppProcStartTime))
	assert.Equal(t, measurement.Int64(1500), probe(t, p, catalog.AppDurationStartTime))

	clk.Step(time.Second)
	assert.Equal(t, measurement.Int64(testNow.Add(time.Second).UnixMilli()), probe(t, p, catalog.Timestamp))
	assert.Equal(t, measurement.Int64(1500), probe(t, p, catalog.AppDurationStartTime), "start duration is fixed at creation")
}

func TestTimeZoneFromFile(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{"etc/timezone": {Data: []byte("Asia/Tokyo\n")}}, nil)
	assert.Equal(t, "Asia/Tokyo", probe(t, p, catalog.TimeZone).String())
}

func TestNetworkProbes(t *testing.T) {
	fsys := fstest.MapFS{
		"etc/resolv.conf": {Data: []byte("nameserver 127.0.0.53\nnameserver 1.1.1.1\n")},
	}
	p, _ := newTestProber(t, fsys, nil)

	assert.Equal(t, measurement.Strings("192.168.1.20", "10.8.0.2"), probe(t, p, catalog.LocalIP4))
	assert.Equal(t, measurement.Strings("2001:db8::20"), probe(t, p, catalog.LocalIP6))
	assert.Equal(t, measurement.Strings("127.0.0.53", "1.1.1.1"), probe(t, p, catalog.DnsIP))
	assert.Equal(t, measurement.Bool(true), probe(t, p, catalog.VpnConnection))
	assert.Equal(t, measurement.Str("wifi"), probe(t, p, catalog.AgentConnectionType))
}

func TestNetworkProbesWithoutInterfaces(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{}, nil)
	p.interfaces = func(context.Context) (psnet.InterfaceStatList, error) { return nil, nil }

	assert.Equal(t, measurement.Bool(false), probe(t, p, catalog.VpnConnection))
	assert.Equal(t, measurement.Str("none"), probe(t, p, catalog.AgentConnectionType))
	assert.Equal(t, 0, len(probe(t, p, catalog.LocalIP4).(measurement.List)))

	_, err := p.Probes()[catalog.DnsIP](context.Background())
	assert.Error(t, err, "missing resolv.conf")
}

func TestLocaleProbes(t *testing.T) {
	fsys := fstest.MapFS{
		"etc/locale.gen": {Data: []byte("# comment\nen_US.UTF-8 UTF-8\nde_DE.UTF-8 UTF-8\nen_US.UTF-8 UTF-8\n")},
	}
	env := map[string]string{
		"LANGUAGE": "en_GB:en:fr",
		"LANG":     "en_US.UTF-8",
	}
	p, _ := newTestProber(t, fsys, env)

	assert.Equal(t, measurement.Strings("en", "fr"), probe(t, p, catalog.Languages))

	rec, ok := probe(t, p, catalog.LocaleInfo).(*measurement.Record)
	require.True(t, ok)
	assert.Equal(t, []string{"AvailableLocaleIdentifiers", "PreferredLanguages", "SystemLocale"}, rec.Keys())
	assert.Equal(t, measurement.Strings("en-US", "de-DE"), rec.Get("AvailableLocaleIdentifiers"))
	assert.Equal(t, measurement.Strings("en-GB", "en", "fr", "en-US"), rec.Get("PreferredLanguages"))
	assert.Equal(t, measurement.Str("en-US"), rec.Get("SystemLocale"))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"en_US.UTF-8", "en-US", true},
		{"de_DE@euro", "de-DE", true},
		{"pt_BR.UTF-8 UTF-8", "pt-BR", true},
		{"fr", "fr", true},
		{"C", "", false},
		{"POSIX", "", false},
		{"C.UTF-8", "", false},
		{"", "", false},
		{"!!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tag, ok := parseLocale(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, tag.String())
			}
		})
	}
}

func TestRemoteDesktopProbes(t *testing.T) {
	p, clk := newTestProber(t, fstest.MapFS{}, nil)
	units := &fakeUnits{props: map[string]map[string]any{
		"xrdp.service": {
			"ActiveState":          "active",
			"ActiveEnterTimestamp": uint64(testNow.Add(-90 * time.Second).UnixMicro()),
		},
		"gnome-remote-desktop.service": {"ActiveState": "inactive"},
	}}
	p.dialSystemd = func(context.Context) (unitReader, error) { return units, nil }

	assert.Equal(t, measurement.Bool(true), probe(t, p, catalog.RDPConnection))
	assert.Equal(t, measurement.Int64(90), probe(t, p, catalog.RDPConnectionDuration))
	assert.True(t, units.closed)

	clk.Step(10 * time.Second)
	assert.Equal(t, measurement.Int64(100), probe(t, p, catalog.RDPConnectionDuration))
}

func TestRemoteDesktopInactive(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{}, nil)
	units := &fakeUnits{props: map[string]map[string]any{}}
	p.dialSystemd = func(context.Context) (unitReader, error) { return units, nil }

	assert.Equal(t, measurement.Bool(false), probe(t, p, catalog.RDPConnection))
	assert.Equal(t, measurement.Int(0), probe(t, p, catalog.RDPConnectionDuration))
}

func TestRemoteDesktopErrors(t *testing.T) {
	p, _ := newTestProber(t, fstest.MapFS{}, nil)
	p.dialSystemd = func(context.Context) (unitReader, error) { return nil, errors.New("no bus") }
	_, err := p.Probes()[catalog.RDPConnection](context.Background())
	assert.Error(t, err)

	units := &fakeUnits{err: errors.New("denied")}
	p.dialSystemd = func(context.Context) (unitReader, error) { return units, nil }
	_, err = p.Probes()[catalog.RDPConnectionDuration](context.Background())
	assert.Error(t, err)
	assert.True(t, units.closed)
}

func TestInstallAge(t *testing.T) {
	fsys := fstest.MapFS{
		"opt/zoom":                 {Mode: 0o755, ModTime: testNow.Add(-50 * time.Hour)},
		"usr/bin/zoom":             {Data: []byte("#!"), ModTime: testNow.Add(-5 * time.Hour)},
		"home/dev/.config/discord": {Data: []byte("x"), ModTime: testNow.Add(-3 * time.Hour)},
	}
	p, _ := newTestProber(t, fsys, map[string]string{"HOME": "/home/dev"})

	assert.Equal(t, measurement.Int64(50), probe(t, p, catalog.HoursSinceZoomInstall))
	assert.Equal(t, measurement.Int64(3), probe(t, p, catalog.HoursSinceDiscordInstall))
	assert.Equal(t, measurement.Int(notInstalled), probe(t, p, catalog.HoursSinceSkypeInstall))
}
