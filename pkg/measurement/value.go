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
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the variant of a Value.
type Kind string

const (
	KindString      Kind = "string"
	KindInt         Kind = "int"
	KindFloat       Kind = "float"
	KindBool        Kind = "bool"
	KindRecord      Kind = "record"
	KindList        Kind = "list"
	KindUnavailable Kind = "unavailable"
)

// Value is the closed sum type of metric values: a scalar (string, integer,
// float or bool), a nested Record, a List, or Unavailable. The unexported
// marker method keeps the set of implementations inside this package.
type Value interface {
	isValue()

	// Kind returns the variant of the value.
	Kind() Kind

	// Any returns the plain Go representation: string, int64, float64, bool,
	// map[string]any, []any or nil.
	Any() any

	// String returns a human-readable rendering.
	String() string

	json.Marshaler
	yaml.Marshaler
}

// AllowedScalar is a constraint (compile-time) for what we allow as scalar values.
type AllowedScalar interface {
	string | int64 | float64 | bool
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isValue() {}

// Kind returns the scalar kind of the underlying value.
func (s Scalar[T]) Kind() Kind {
	switch any(s.V).(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	default:
		return KindString
	}
}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// Convenience constructors for each allowed scalar type.
func Str(v string) Value      { return Scalar[string]{V: v} }
func Int(v int) Value         { return Scalar[int64]{V: int64(v)} }
func Int64(v int64) Value     { return Scalar[int64]{V: v} }
func Float64(v float64) Value { return Scalar[float64]{V: v} }
func Bool(v bool) Value       { return Scalar[bool]{V: v} }

// Unavailable marks a metric whose value could not be obtained.
// It renders as null in JSON and YAML and is never omitted.
type Unavailable struct {
	Reason string
}

func (Unavailable) isValue() {}

// Kind returns KindUnavailable.
func (Unavailable) Kind() Kind { return KindUnavailable }

// Any returns nil.
func (Unavailable) Any() any { return nil }

// String returns the reason, prefixed to make it distinguishable from data.
func (u Unavailable) String() string {
	if u.Reason == "" {
		return "<unavailable>"
	}
	return "<unavailable: " + u.Reason + ">"
}

// MarshalJSON renders an explicit null.
func (Unavailable) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalYAML renders an explicit null.
func (Unavailable) MarshalYAML() (any, error) {
	return nil, nil
}

// NotAvailable returns an Unavailable value with the given reason.
func NotAvailable(reason string) Value {
	return Unavailable{Reason: reason}
}

// IsAvailable reports whether v holds data.
func IsAvailable(v Value) bool {
	return v != nil && v.Kind() != KindUnavailable
}

// List is an ordered collection of values.
type List []Value

func (List) isValue() {}

// Kind returns KindList.
func (List) Kind() Kind { return KindList }

// Any returns the elements as []any.
func (l List) Any() any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = v.Any()
	}
	return out
}

// String returns a bracketed rendering of the elements.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON renders the elements in order. A nil list renders as [].
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalYAML renders the elements in order.
func (l List) MarshalYAML() (any, error) {
	out := make([]any, len(l))
	for i, v := range l {
		if v == nil {
			continue
		}
		m, err := v.MarshalYAML()
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// Strings builds a List of string values.
func Strings(values ...string) List {
	l := make(List, len(values))
	for i, s := range values {
		l[i] = Str(s)
	}
	return l
}

// marshalValue renders v, treating a nil Value as unavailable.
func marshalValue(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return v.MarshalJSON()
}

// FromAny converts a decoded JSON/YAML value into a Value.
// Maps become Records with keys in sorted order, slices become Lists and nil
// becomes Unavailable. Unsupported types are rendered with fmt.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return NotAvailable("")
	case Value:
		return val
	case string:
		return Str(val)
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case int32:
		return Int64(int64(val))
	case uint64:
		if val > math.MaxInt64 {
			return Float64(float64(val))
		}
		return Int64(int64(val))
	case float32:
		return Float64(float64(val))
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return Int64(int64(val))
		}
		return Float64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int64(i)
		}
		f, err := val.Float64()
		if err != nil {
			return Str(val.String())
		}
		return Float64(f)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		r := NewRecord()
		for _, k := range keys {
			r.Set(k, FromAny(val[k]))
		}
		return r
	case []any:
		l := make(List, len(val))
		for i, e := range val {
			l[i] = FromAny(e)
		}
		return l
	case []string:
		return Strings(val...)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// ParseValue interprets text as a JSON literal when it is one (numbers,
// booleans, null, quoted strings, objects, arrays) and as a plain string otherwise.
func ParseValue(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Str(text)
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil || dec.More() {
		return Str(text)
	}
	return FromAny(decoded)
}

// Finite replaces floats that JSON cannot represent (NaN, +Inf, -Inf) with
// Unavailable, including inside lists and records. Values without such
// floats are returned as is.
func Finite(v Value) Value {
	if !hasNonFinite(v) {
		return v
	}
	switch val := v.(type) {
	case Scalar[float64]:
		return NotAvailable(fmt.Sprintf("non-finite value %v", val.V))
	case List:
		out := make(List, len(val))
		for i, e := range val {
			out[i] = Finite(e)
		}
		return out
	case *Record:
		out := NewRecord()
		for _, f := range val.fields {
			out.Set(f.Key, Finite(f.Value))
		}
		return out
	default:
		return v
	}
}

func hasNonFinite(v Value) bool {
	switch val := v.(type) {
	case Scalar[float64]:
		return math.IsNaN(val.V) || math.IsInf(val.V, 0)
	case List:
		for _, e := range val {
			if hasNonFinite(e) {
				return true
			}
		}
	case *Record:
		if val == nil {
			return false
		}
		for _, f := range val.fields {
			if hasNonFinite(f.Value) {
				return true
			}
		}
	}
	return false
}
