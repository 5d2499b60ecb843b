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
	"os"
	"path/filepath"

	"github.com/NVIDIA/device-fingerprint/pkg/collector/file"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/google/uuid"
)

const (
	pathOSReleasePrimary  = "/etc/os-release"
	pathOSReleaseFallback = "/usr/lib/os-release"
	pathProductName       = "/sys/class/dmi/id/product_name"
	pathSysVendor         = "/sys/class/dmi/id/sys_vendor"
	pathProcStatus        = "/proc/self/status"
)

func (p *Prober) deviceName(ctx context.Context) (measurement.Value, error) {
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.Hostname == "" {
		return nil, fmt.Errorf("host name is empty")
	}
	return measurement.Str(info.Hostname), nil
}

func (p *Prober) hardwareID(ctx context.Context) (measurement.Value, error) {
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.HostID == "" {
		return nil, fmt.Errorf("host id is empty")
	}
	return measurement.Str(info.HostID), nil
}

// osID derives a stable name-based UUID from the host id so the raw machine
// id is not exposed twice.
func (p *Prober) osID(ctx context.Context) (measurement.Value, error) {
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.HostID == "" {
		return nil, fmt.Errorf("host id is empty")
	}
	return measurement.Str(uuid.NewSHA1(uuid.NameSpaceOID, []byte(info.HostID)).String()), nil
}

func (p *Prober) deviceModel(context.Context) (measurement.Value, error) {
	return p.firstLine(pathProductName)
}

func (p *Prober) agentBrand(context.Context) (measurement.Value, error) {
	return p.firstLine(pathSysVendor)
}

func (p *Prober) firstLine(path string) (measurement.Value, error) {
	lines, err := p.files.GetLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("file %q is empty", path)
	}
	return measurement.Str(lines[0]), nil
}

// release reads os-release, falling back to /usr/lib/os-release per freedesktop.org.
func (p *Prober) release() (map[string]string, error) {
	path := pathOSReleasePrimary
	if _, err := p.stat(path); err != nil {
		path = pathOSReleaseFallback
	}
	parser := file.NewParser(
		file.WithFS(p.fsys),
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)
	return parser.GetMap(path)
}

func (p *Prober) statusParser() *file.Parser {
	return file.NewParser(file.WithFS(p.fsys), file.WithKVDelimiter(":"))
}

func (p *Prober) systemName(ctx context.Context) (measurement.Value, error) {
	if rel, err := p.release(); err == nil && rel["NAME"] != "" {
		return measurement.Str(rel["NAME"]), nil
	}
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.Platform != "" {
		return measurement.Str(info.Platform), nil
	}
	return measurement.Str(info.OS), nil
}

func (p *Prober) systemVersion(ctx context.Context) (measurement.Value, error) {
	if rel, err := p.release(); err == nil && rel["VERSION_ID"] != "" {
		return measurement.Str(rel["VERSION_ID"]), nil
	}
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	if info.PlatformVersion != "" {
		return measurement.Str(info.PlatformVersion), nil
	}
	return measurement.Str(info.KernelVersion), nil
}

func (p *Prober) emulator(ctx context.Context) (measurement.Value, error) {
	info, err := p.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	return measurement.Bool(info.VirtualizationRole == "guest"), nil
}

func (p *Prober) debugger(context.Context) (measurement.Value, error) {
	parser := p.statusParser()
	pid, ok, err := parser.GetValue(pathProcStatus, "TracerPid")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("TracerPid not reported in %s", pathProcStatus)
	}
	return measurement.Bool(pid != "0"), nil
}

func (p *Prober) multitasking(ctx context.Context) (measurement.Value, error) {
	n, err := p.cpuCount(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count cpus: %w", err)
	}
	return measurement.Bool(n > 1), nil
}

func (p *Prober) sdkVersion(context.Context) (measurement.Value, error) {
	return measurement.Str(p.version), nil
}

func (p *Prober) appInfo(context.Context) (measurement.Value, error) {
	name := "fingerprint"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	return measurement.NewRecordBuilder().
		SetString("name", name).
		SetString("version", p.version).
		SetInt64("pid", int64(p.pid)).
		Build(), nil
}
