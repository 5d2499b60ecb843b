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

package measurement

import (
	"reflect"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
)

// ChangeType describes how a metric differs between two fingerprints.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeUpdated ChangeType = "updated"
)

// Change is one metric-level difference between two fingerprints.
type Change struct {
	ID     catalog.ID `json:"id" yaml:"id"`
	Type   ChangeType `json:"type" yaml:"type"`
	Before Value      `json:"before" yaml:"before"`
	After  Value      `json:"after" yaml:"after"`
}

// Compare compares two fingerprints and returns the metrics that differ,
// in catalog order. Metrics present in only one side are reported as added
// or removed. Unavailable values compare equal to each other regardless of reason.
func Compare(f1, f2 *Fingerprint) []Change {
	seen := make(map[catalog.ID]struct{})
	var ids []catalog.ID
	for _, id := range append(f1.IDs(), f2.IDs()...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	catalog.Sort(ids)

	var changes []Change
	for _, id := range ids {
		v1, ok1 := f1.Get(id)
		v2, ok2 := f2.Get(id)
		switch {
		case !ok1:
			changes = append(changes, Change{ID: id, Type: ChangeAdded, Before: NotAvailable(""), After: v2})
		case !ok2:
			changes = append(changes, Change{ID: id, Type: ChangeRemoved, Before: v1, After: NotAvailable("")})
		case !reflect.DeepEqual(v1.Any(), v2.Any()):
			changes = append(changes, Change{ID: id, Type: ChangeUpdated, Before: v1, After: v2})
		}
	}
	return changes
}
