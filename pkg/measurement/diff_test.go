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
	"testing"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
)

func TestCompare(t *testing.T) {
	base := func() *Fingerprint {
		fp := NewFingerprint("s", testTime)
		fp.Set(catalog.DeviceName, Str("a"))
		fp.Set(catalog.HardwareID, Str("hw"))
		fp.Set(catalog.Emulator, NotAvailable("x"))
		return fp
	}

	tests := []struct {
		name   string
		mutate func(fp *Fingerprint)
		want   map[catalog.ID]ChangeType
	}{
		{
			name:   "identical",
			mutate: func(*Fingerprint) {},
			want:   map[catalog.ID]ChangeType{},
		},
		{
			name:   "updated value",
			mutate: func(fp *Fingerprint) { fp.Set(catalog.DeviceName, Str("b")) },
			want:   map[catalog.ID]ChangeType{catalog.DeviceName: ChangeUpdated},
		},
		{
			name:   "unavailable reason ignored",
			mutate: func(fp *Fingerprint) { fp.Set(catalog.Emulator, NotAvailable("y")) },
			want:   map[catalog.ID]ChangeType{},
		},
		{
			name:   "added",
			mutate: func(fp *Fingerprint) { fp.Set(catalog.OSID, Str("id")) },
			want:   map[catalog.ID]ChangeType{catalog.OSID: ChangeAdded},
		},
		{
			name: "removed",
			mutate: func(fp *Fingerprint) {
				*fp = *fp.Subset([]catalog.ID{catalog.DeviceName, catalog.Emulator})
			},
			want: map[catalog.ID]ChangeType{catalog.HardwareID: ChangeRemoved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f2 := base()
			tt.mutate(f2)
			changes := Compare(base(), f2)
			if len(changes) != len(tt.want) {
				t.Fatalf("Compare() = %v, want %v", changes, tt.want)
			}
			for _, c := range changes {
				if tt.want[c.ID] != c.Type {
					t.Errorf("change %s = %s, want %s", c.ID, c.Type, tt.want[c.ID])
				}
			}
		})
	}
}

func TestCompareOrder(t *testing.T) {
	f1 := NewFingerprint("s", testTime)
	f2 := NewFingerprint("s", testTime)
	f2.Set(catalog.Languages, Str("en"))
	f2.Set(catalog.DeviceName, Str("a"))

	changes := Compare(f1, f2)
	if len(changes) != 2 || changes[0].ID != catalog.DeviceName || changes[1].ID != catalog.Languages {
		t.Errorf("Compare() order = %v", changes)
	}
}
