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

// Package host provides reference metric probes for Linux and desktop hosts.
//
// A Prober exposes its probes keyed by catalog ID:
//
//	p := host.New(host.WithVersion(version))
//	for id, probe := range p.Probes() {
//	    registry.MustRegister(id, collector.ProviderFunc(probe))
//	}
//
// Data sources:
//   - gopsutil: host name and id, boot time, virtualization role, CPU count,
//     process start time and network interfaces
//   - /etc/os-release, /etc/resolv.conf, /proc/self/status and DMI files
//   - locale environment variables, parsed with golang.org/x/text/language
//   - systemd over D-Bus for remote desktop unit state
//
// Metrics that have no meaningful host equivalent (telephony, geolocation,
// biometrics, fonts and similar) are not probed and are reported as
// unavailable by the registry.
package host
