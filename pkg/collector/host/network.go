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
	"net/netip"
	"slices"
	"strings"

	"github.com/NVIDIA/device-fingerprint/pkg/collector/file"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	psnet "github.com/shirou/gopsutil/v3/net"
)

const pathResolvConf = "/etc/resolv.conf"

// Interface name prefixes of tunnel devices created by VPN clients.
var vpnPrefixes = []string{"tun", "tap", "wg", "ppp", "utun", "ipsec", "nordlynx", "tailscale", "zt"}

// Connection types keyed by interface name prefix, checked in order.
var connectionPrefixes = []struct {
	prefix string
	kind   string
}{
	{"wl", "wifi"},
	{"ww", "cellular"},
	{"en", "ethernet"},
	{"eth", "ethernet"},
}

func (p *Prober) upInterfaces(ctx context.Context) ([]psnet.InterfaceStat, error) {
	all, err := p.interfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}
	up := make([]psnet.InterfaceStat, 0, len(all))
	for _, iface := range all {
		if slices.Contains(iface.Flags, "up") && !slices.Contains(iface.Flags, "loopback") {
			up = append(up, iface)
		}
	}
	return up, nil
}

func (p *Prober) addresses(ctx context.Context, want func(netip.Addr) bool) (measurement.Value, error) {
	ifaces, err := p.upInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, iface := range ifaces {
		for _, a := range iface.Addrs {
			prefix, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			addr := prefix.Addr()
			if addr.IsLoopback() || addr.IsLinkLocalUnicast() || !want(addr) {
				continue
			}
			out = append(out, addr.String())
		}
	}
	return measurement.Strings(out...), nil
}

func (p *Prober) localIP4(ctx context.Context) (measurement.Value, error) {
	return p.addresses(ctx, netip.Addr.Is4)
}

func (p *Prober) localIP6(ctx context.Context) (measurement.Value, error) {
	return p.addresses(ctx, func(a netip.Addr) bool { return a.Is6() && !a.Is4In6() })
}

func (p *Prober) dnsIP(context.Context) (measurement.Value, error) {
	parser := file.NewParser(file.WithFS(p.fsys), file.WithKVDelimiter(" "))
	servers, err := parser.GetValues(pathResolvConf, "nameserver")
	if err != nil {
		return nil, err
	}
	return measurement.Strings(servers...), nil
}

func (p *Prober) vpnConnection(ctx context.Context) (measurement.Value, error) {
	ifaces, err := p.upInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		for _, prefix := range vpnPrefixes {
			if strings.HasPrefix(iface.Name, prefix) {
				return measurement.Bool(true), nil
			}
		}
	}
	return measurement.Bool(false), nil
}

func (p *Prober) connectionType(ctx context.Context) (measurement.Value, error) {
	ifaces, err := p.upInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range connectionPrefixes {
		for _, iface := range ifaces {
			if strings.HasPrefix(iface.Name, c.prefix) {
				return measurement.Str(c.kind), nil
			}
		}
	}
	return measurement.Str("none"), nil
}
