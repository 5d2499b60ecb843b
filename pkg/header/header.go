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
	"time"
)

// APIVersion is the schema version of fingerprint documents.
const APIVersion = "fingerprint.nvidia.com/v1"

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Kind represents the type of a fingerprint document.
type Kind string

const (
	KindFingerprint Kind = "Fingerprint"
	KindCatalog     Kind = "MetricCatalog"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindFingerprint, KindCatalog:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the Kind of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion overrides the APIVersion of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header for the given kind, stamped with the tool version
// and the time the document content was produced.
func New(kind Kind, version string, produced time.Time, opts ...Option) *Header {
	h := &Header{}
	h.Init(kind, version, produced)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header identifies a fingerprint document.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init resets the Header to kind at the current APIVersion. The timestamp
// is the production time of the content, not of the document, so cached
// fingerprints keep their original time.
func (h *Header) Init(kind Kind, version string, produced time.Time) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: produced.UTC().Format(time.RFC3339Nano),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Compatible reports whether a document with this header can be read by
// this version of the module.
func (h *Header) Compatible() bool {
	return h != nil && h.Kind.IsValid() && h.APIVersion == APIVersion
}
