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
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is a single named entry of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is a nested value with named fields kept in insertion order.
// Serialized form follows that order exactly.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

func (*Record) isValue() {}

// Kind returns KindRecord.
func (*Record) Kind() Kind { return KindRecord }

// Set adds a field or replaces the value of an existing one in place.
func (r *Record) Set(key string, v Value) *Record {
	if v == nil {
		v = NotAvailable("")
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = v
		return r
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: v})
	return r
}

// Has reports whether the record contains key.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[key]
	return ok
}

// Get returns the value for key or nil if it is absent.
func (r *Record) Get(key string) Value {
	if r == nil {
		return nil
	}
	if i, ok := r.index[key]; ok {
		return r.fields[i].Value
	}
	return nil
}

// Fields returns a copy of the fields in order.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// GetString returns the string value stored under key.
func (r *Record) GetString(key string) (string, error) {
	v := r.Get(key)
	if v == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	s, ok := v.(Scalar[string])
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return s.V, nil
}

// GetInt64 returns the integer value stored under key.
func (r *Record) GetInt64(key string) (int64, error) {
	v := r.Get(key)
	if v == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	s, ok := v.(Scalar[int64])
	if !ok {
		return 0, fmt.Errorf("key %q is not an integer", key)
	}
	return s.V, nil
}

// GetFloat64 returns the float value stored under key. Integers are widened.
func (r *Record) GetFloat64(key string) (float64, error) {
	v := r.Get(key)
	if v == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	switch s := v.(type) {
	case Scalar[float64]:
		return s.V, nil
	case Scalar[int64]:
		return float64(s.V), nil
	default:
		return 0, fmt.Errorf("key %q is not a float64", key)
	}
}

// GetBool returns the bool value stored under key.
func (r *Record) GetBool(key string) (bool, error) {
	v := r.Get(key)
	if v == nil {
		return false, fmt.Errorf("key %q not found", key)
	}
	s, ok := v.(Scalar[bool])
	if !ok {
		return false, fmt.Errorf("key %q is not a bool", key)
	}
	return s.V, nil
}

// Clone returns a copy of the record. Nested records are copied too.
func (r *Record) Clone() *Record {
	out := NewRecord()
	if r == nil {
		return out
	}
	for _, f := range r.fields {
		out.Set(f.Key, cloneValue(f.Value))
	}
	return out
}

// Any returns the fields as map[string]any.
func (r *Record) Any() any {
	out := make(map[string]any, r.Len())
	if r == nil {
		return out
	}
	for _, f := range r.fields {
		out[f.Key] = f.Value.Any()
	}
	return out
}

// String returns a brace-delimited rendering in field order.
func (r *Record) String() string {
	if r == nil {
		return "{}"
	}
	parts := make([]string, len(r.fields))
	for i, f := range r.fields {
		parts[i] = f.Key + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON renders the fields as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, f := range r.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			b, err := marshalValue(f.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Key, err)
			}
			buf.Write(b)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the fields as a YAML mapping in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if r == nil {
		return node, nil
	}
	for _, f := range r.fields {
		var val yaml.Node
		m, err := f.Value.MarshalYAML()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		if err := val.Encode(m); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&val,
		)
	}
	return node, nil
}

func cloneValue(v Value) Value {
	switch val := v.(type) {
	case *Record:
		return val.Clone()
	case List:
		out := make(List, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
