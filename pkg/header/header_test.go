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

package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	produced := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	h := New(KindFingerprint, "v1.2.3", produced, WithMetadata("scope", "abc"))

	if h.Kind != KindFingerprint {
		t.Errorf("Kind = %s", h.Kind)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %s", h.APIVersion)
	}
	if got := h.Metadata[MetadataTimestamp]; got != "2025-06-01T11:00:00Z" {
		t.Errorf("timestamp = %s", got)
	}
	if got := h.Metadata[MetadataVersion]; got != "v1.2.3" {
		t.Errorf("version = %s", got)
	}
	if got := h.Metadata["scope"]; got != "abc" {
		t.Errorf("scope = %s", got)
	}
	if !h.Compatible() {
		t.Error("expected compatible header")
	}
}

func TestNew_NoVersion(t *testing.T) {
	h := New(KindCatalog, "", time.Unix(0, 0))
	if _, ok := h.Metadata[MetadataVersion]; ok {
		t.Error("empty version should not be recorded")
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		h    *Header
		want bool
	}{
		{name: "nil", h: nil, want: false},
		{name: "unknown kind", h: &Header{Kind: "Recipe", APIVersion: APIVersion}, want: false},
		{name: "other version", h: New(KindFingerprint, "", time.Now(), WithAPIVersion("fingerprint.nvidia.com/v2")), want: false},
		{name: "current", h: New(KindFingerprint, "", time.Now()), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Compatible(); got != tt.want {
				t.Errorf("Compatible() = %v, want %v", got, tt.want)
			}
		})
	}
}
