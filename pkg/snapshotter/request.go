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

package snapshotter

import (
	"fmt"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
)

// RequestKind identifies how the metric set of a Request is chosen.
type RequestKind string

const (
	// RequestFull selects every catalog metric that is not gated off.
	RequestFull RequestKind = "full"
	// RequestSubset selects exactly the metrics named by the caller.
	RequestSubset RequestKind = "subset"
	// RequestVariant selects a predefined variant set.
	RequestVariant RequestKind = "variant"
	// RequestActive selects the default set plus the configured parameters.
	RequestActive RequestKind = "active"
)

// Request describes the metrics a collection pass must return.
type Request struct {
	Kind        RequestKind
	IDs         []catalog.ID
	Variant     catalog.Variant
	Coordinates bool
}

// FullSnapshot requests every catalog metric.
func FullSnapshot() Request {
	return Request{Kind: RequestFull}
}

// Subset requests the given metrics. Gated metrics stay in the result as
// unavailable and Empty is ignored.
func Subset(ids ...catalog.ID) Request {
	return Request{Kind: RequestSubset, IDs: ids}
}

// Variant requests a predefined metric set, optionally with coordinates.
func Variant(v catalog.Variant, withCoordinates bool) Request {
	return Request{Kind: RequestVariant, Variant: v, Coordinates: withCoordinates}
}

// Active requests the default set extended with the configured parameters.
func Active() Request {
	return Request{Kind: RequestActive}
}

// String returns a short description used in logs.
func (r Request) String() string {
	switch r.Kind {
	case RequestSubset:
		return fmt.Sprintf("subset(%d)", len(r.IDs))
	case RequestVariant:
		if r.Coordinates {
			return fmt.Sprintf("variant(%s+coordinates)", r.Variant)
		}
		return fmt.Sprintf("variant(%s)", r.Variant)
	default:
		return string(r.Kind)
	}
}
