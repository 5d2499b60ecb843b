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
	"path"
	"strings"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

// notInstalled is reported by install-age probes when no install path exists.
const notInstalled = -1

// Install locations of remote-access and screen-sharing tools. Paths starting
// with "~/" are resolved against $HOME.
var installPaths = map[catalog.ID][]string{
	catalog.HoursSinceAirdroidInstall:              {"/opt/AirDroid", "~/.local/share/AirDroid"},
	catalog.HoursSinceAnyDeskInstall:               {"/usr/bin/anydesk", "/opt/anydesk"},
	catalog.HoursSinceDiscordInstall:               {"/usr/bin/discord", "/opt/discord", "/usr/share/discord", "~/.config/discord"},
	catalog.HoursSinceISLLightInstall:              {"/opt/isl-light", "/usr/bin/isllight"},
	catalog.HoursSinceLogMeinInstall:               {"/opt/logmein", "/opt/logmein-hamachi"},
	catalog.HoursSinceAirdroidRemoteSupportInstall: {"/opt/AirDroidRemoteSupport"},
	catalog.HoursSinceZoomInstall:                  {"/usr/bin/zoom", "/opt/zoom"},
	catalog.HoursSinceSkypeInstall:                 {"/usr/bin/skypeforlinux", "/usr/share/skypeforlinux"},
}

// installAge returns a probe reporting the whole hours since the oldest
// install path of the tool was modified, or -1 when the tool is absent.
func (p *Prober) installAge(id catalog.ID) ProbeFunc {
	return func(context.Context) (measurement.Value, error) {
		var oldest time.Time
		for _, candidate := range installPaths[id] {
			info, err := p.stat(p.expandHome(candidate))
			if err != nil {
				continue
			}
			if oldest.IsZero() || info.ModTime().Before(oldest) {
				oldest = info.ModTime()
			}
		}
		if oldest.IsZero() {
			return measurement.Int(notInstalled), nil
		}
		return measurement.Int64(int64(p.clock.Since(oldest) / time.Hour)), nil
	}
}

func (p *Prober) expandHome(s string) string {
	rest, ok := strings.CutPrefix(s, "~/")
	if !ok {
		return s
	}
	home := p.env("HOME")
	if home == "" {
		return s
	}
	return path.Join(home, rest)
}
