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
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// Fingerprint is an ordered mapping from metric ID to Value produced by one
// aggregation. Iteration and serialization follow catalog declaration order.
type Fingerprint struct {
	// Scope is the cache scope key the fingerprint was computed for.
	Scope string
	// CreatedAt is when the values were collected.
	CreatedAt time.Time

	values map[catalog.ID]Value
}

// NewFingerprint creates an empty fingerprint.
func NewFingerprint(scope string, createdAt time.Time) *Fingerprint {
	return &Fingerprint{
		Scope:     scope,
		CreatedAt: createdAt,
		values:    make(map[catalog.ID]Value),
	}
}

// Set stores the value for id. A nil value is stored as Unavailable.
func (f *Fingerprint) Set(id catalog.ID, v Value) {
	if v == nil {
		v = NotAvailable("")
	}
	if f.values == nil {
		f.values = make(map[catalog.ID]Value)
	}
	f.values[id] = v
}

// Get returns the value for id and whether it is present.
func (f *Fingerprint) Get(id catalog.ID) (Value, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[id]
	return v, ok
}

// Has reports whether id is present.
func (f *Fingerprint) Has(id catalog.ID) bool {
	_, ok := f.Get(id)
	return ok
}

// Len returns the number of metrics present.
func (f *Fingerprint) Len() int {
	if f == nil {
		return 0
	}
	return len(f.values)
}

// IDs returns the present metric IDs in catalog order.
func (f *Fingerprint) IDs() []catalog.ID {
	if f == nil {
		return nil
	}
	ids := make([]catalog.ID, 0, len(f.values))
	for id := range f.values {
		ids = append(ids, id)
	}
	catalog.Sort(ids)
	return ids
}

// Available returns the number of metrics holding data.
func (f *Fingerprint) Available() int {
	n := 0
	for _, id := range f.IDs() {
		if IsAvailable(f.values[id]) {
			n++
		}
	}
	return n
}

// Subset returns a fingerprint restricted to ids. IDs absent from f are skipped.
// Values are shared, not copied.
func (f *Fingerprint) Subset(ids []catalog.ID) *Fingerprint {
	out := NewFingerprint(f.Scope, f.CreatedAt)
	for _, id := range ids {
		if v, ok := f.values[id]; ok {
			out.values[id] = v
		}
	}
	return out
}

// Clone returns a deep copy of the fingerprint.
func (f *Fingerprint) Clone() *Fingerprint {
	out := NewFingerprint(f.Scope, f.CreatedAt)
	for id, v := range f.values {
		out.values[id] = cloneValue(v)
	}
	return out
}

// Any returns the values as map[string]any keyed by metric ID.
func (f *Fingerprint) Any() map[string]any {
	out := make(map[string]any, f.Len())
	for _, id := range f.IDs() {
		out[id.String()] = f.values[id].Any()
	}
	return out
}

// MarshalJSON renders the fingerprint as a flat, compact JSON object keyed by
// metric ID in catalog order. Unavailable metrics render as null.
func (f *Fingerprint) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range f.IDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id.String())
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := marshalValue(f.values[id])
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", id, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object keyed by metric ID.
// Unknown keys are rejected.
func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode fingerprint: %w", err)
	}
	return f.fromMap(raw)
}

// MarshalYAML renders the fingerprint as a YAML mapping in catalog order.
func (f *Fingerprint) MarshalYAML() (any, error) {
	rec := NewRecord()
	for _, id := range f.IDs() {
		rec.Set(id.String(), f.values[id])
	}
	return rec.MarshalYAML()
}

// UnmarshalYAML decodes a YAML mapping keyed by metric ID.
func (f *Fingerprint) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode fingerprint: %w", err)
	}
	return f.fromMap(raw)
}

func (f *Fingerprint) fromMap(raw map[string]any) error {
	if f.values == nil {
		f.values = make(map[catalog.ID]Value, len(raw))
	}
	for k, v := range raw {
		id, ok := catalog.Lookup(k)
		if !ok {
			return fmt.Errorf("unknown metric %q", k)
		}
		f.values[id] = FromAny(v)
	}
	return nil
}
