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

package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
)

// ID is the stable identifier of a fingerprint metric. Its string value is
// the canonical key used in serialized fingerprints.
type ID string

// String returns the canonical key of the metric.
func (id ID) String() string {
	return string(id)
}

// Family groups related metrics.
type Family string

const (
	FamilyIdentity       Family = "identity"
	FamilyNetwork        Family = "network"
	FamilyTime           Family = "time"
	FamilyLocale         Family = "locale"
	FamilyScreen         Family = "screen"
	FamilySecurity       Family = "security"
	FamilyKeys           Family = "keys"
	FamilyGeolocation    Family = "geolocation"
	FamilyTelephony      Family = "telephony"
	FamilyAuthentication Family = "authentication"
	FamilyBluetooth      Family = "bluetooth"
	FamilyMedia          Family = "media"
	FamilyInstalledApps  Family = "installed-apps"
	FamilyFonts          Family = "fonts"
	FamilyAccessibility  Family = "accessibility"
)

// Kind describes the shape of a metric value.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindRecord Kind = "record"
	KindList   Kind = "list"
)

// Capability names a guarded system resource a provider must acquire before
// reading its metric.
type Capability string

const (
	CapabilityLocation  Capability = "location"
	CapabilityBluetooth Capability = "bluetooth"
	CapabilityBiometric Capability = "biometric"
)

// Gate names the configuration switch that enables collection of a metric.
// Metrics without a gate are always collectable.
type Gate string

const (
	GateAdvertiserID Gate = "advertiser-id"
	GateBluetooth    Gate = "bluetooth"
	GateBiometric    Gate = "biometric"
	GateRSAAppKey    Gate = "rsa-app-key"
)

// Descriptor holds the static description of one metric.
type Descriptor struct {
	ID          ID         `json:"id" yaml:"id"`
	Ordinal     int        `json:"ordinal" yaml:"ordinal"`
	Family      Family     `json:"family" yaml:"family"`
	Kind        Kind       `json:"kind" yaml:"kind"`
	Parent      ID         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Capability  Capability `json:"capability,omitempty" yaml:"capability,omitempty"`
	Gate        Gate       `json:"gate,omitempty" yaml:"gate,omitempty"`
	Description string     `json:"description" yaml:"description"`
}

var (
	byID     map[ID]Descriptor
	byName   map[string]ID
	children map[ID][]ID
	all      []ID
)

func init() {
	byID = make(map[ID]Descriptor, len(declared))
	byName = make(map[string]ID, len(declared)+1)
	children = make(map[ID][]ID)
	all = make([]ID, 0, len(declared))

	for i := range declared {
		d := &declared[i]
		d.Ordinal = i
		if _, dup := byID[d.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate metric %q", d.ID))
		}
		byID[d.ID] = *d
		byName[string(d.ID)] = d.ID
		all = append(all, d.ID)
		if d.Parent != "" {
			children[d.Parent] = append(children[d.Parent], d.ID)
		}
	}
	byName[string(Empty)] = Empty
}

// Name returns the canonical key of id. The mapping is total and pure.
func Name(id ID) string {
	return string(id)
}

// Lookup resolves a canonical key back to its ID.
// It returns false for names that are not in the catalog.
func Lookup(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Known reports whether id is a collectable catalog metric (Empty is not).
func Known(id ID) bool {
	_, ok := byID[id]
	return ok
}

// Describe returns the descriptor of id.
func Describe(id ID) (Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// Ordinal returns the declaration position of id, or -1 when unknown.
func Ordinal(id ID) int {
	if d, ok := byID[id]; ok {
		return d.Ordinal
	}
	return -1
}

// All returns every collectable metric in declaration order.
func All() []ID {
	return slices.Clone(all)
}

// Descriptors returns the descriptors of every collectable metric in declaration order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(all))
	for _, id := range all {
		out = append(out, byID[id])
	}
	return out
}

// Children returns the sub-metrics of a composite metric.
func Children(parent ID) []ID {
	return slices.Clone(children[parent])
}

// Sort orders ids by declaration order in place. Unknown ids sort last by name.
func Sort(ids []ID) {
	sort.SliceStable(ids, func(i, j int) bool {
		oi, oj := Ordinal(ids[i]), Ordinal(ids[j])
		switch {
		case oi < 0 && oj < 0:
			return ids[i] < ids[j]
		case oi < 0:
			return false
		case oj < 0:
			return true
		default:
			return oi < oj
		}
	})
}

// Normalize validates ids, drops Empty and duplicates, and returns the
// remaining ids in declaration order.
func Normalize(ids []ID) ([]ID, error) {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		if id == Empty {
			continue
		}
		if !Known(id) {
			unknown = append(unknown, string(id))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(unknown) > 0 {
		return nil, fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown metric(s): %s", strings.Join(unknown, ", ")),
			map[string]any{"metrics": unknown})
	}
	Sort(out)
	return out, nil
}

// Parse resolves canonical keys into ids. Unknown names are reported together
// in a single INVALID_REQUEST error.
func Parse(names []string) ([]ID, error) {
	ids := make([]ID, 0, len(names))
	for _, n := range names {
		ids = append(ids, ID(strings.TrimSpace(n)))
	}
	return Normalize(ids)
}
