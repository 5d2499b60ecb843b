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

package serializer

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
)

// FlatJSON renders fp in its canonical form: a single JSON object whose keys
// are the canonical metric keys in catalog declaration order, nested records
// in field order, unavailable metrics as null and no insignificant whitespace.
// The output is byte-stable for equal fingerprints and is what signatures
// are computed over.
func FlatJSON(fp *measurement.Fingerprint) ([]byte, error) {
	if fp == nil {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "fingerprint is nil")
	}
	data, err := fp.MarshalJSON()
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInternal, "failed to encode fingerprint", err)
	}
	return data, nil
}

// RawMapping returns the content of fp as plain Go values keyed by canonical
// metric key. Unavailable metrics map to nil, records to map[string]any and
// lists to []any.
func RawMapping(fp *measurement.Fingerprint) map[string]any {
	if fp == nil {
		return map[string]any{}
	}
	return fp.Any()
}

// ParseFlatJSON decodes a canonical flat JSON document back into a
// fingerprint. Unknown metric keys are rejected.
func ParseFlatJSON(data []byte) (*measurement.Fingerprint, error) {
	fp := measurement.NewFingerprint("", time.Time{})
	if err := fp.UnmarshalJSON(data); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "failed to parse fingerprint", err)
	}
	return fp, nil
}

// Canonicalize rewrites a flat JSON fingerprint, such as an indented
// document written by the json Writer or one edited by hand, so it matches
// the output of FlatJSON: top-level keys in catalog order and no
// insignificant whitespace. Each metric value is kept as written apart from
// whitespace, so nested record fields retain their order.
func Canonicalize(data []byte) ([]byte, error) {
	if _, err := ParseFlatJSON(data); err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "input is not valid JSON", err)
	}

	ids := make([]catalog.ID, 0, len(members))
	for k := range members {
		ids = append(ids, catalog.ID(k))
	}
	catalog.Sort(ids)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(id))
		if err != nil {
			return nil, fperrors.Wrap(fperrors.ErrCodeInternal, "failed to encode metric key", err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, members[string(id)]); err != nil {
			return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "input is not valid JSON", err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
