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

// RecordBuilder provides a fluent API for building Record values.
type RecordBuilder struct {
	rec *Record
}

// NewRecordBuilder creates a new, empty RecordBuilder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{rec: NewRecord()}
}

// Set adds or updates a field.
func (b *RecordBuilder) Set(key string, value Value) *RecordBuilder {
	b.rec.Set(key, value)
	return b
}

// SetString is a convenience method for adding string values.
func (b *RecordBuilder) SetString(key, value string) *RecordBuilder {
	return b.Set(key, Str(value))
}

// SetInt is a convenience method for adding int values.
func (b *RecordBuilder) SetInt(key string, value int) *RecordBuilder {
	return b.Set(key, Int(value))
}

// SetInt64 is a convenience method for adding int64 values.
func (b *RecordBuilder) SetInt64(key string, value int64) *RecordBuilder {
	return b.Set(key, Int64(value))
}

// SetFloat64 is a convenience method for adding float64 values.
func (b *RecordBuilder) SetFloat64(key string, value float64) *RecordBuilder {
	return b.Set(key, Float64(value))
}

// SetBool is a convenience method for adding bool values.
func (b *RecordBuilder) SetBool(key string, value bool) *RecordBuilder {
	return b.Set(key, Bool(value))
}

// SetStrings is a convenience method for adding a list of strings.
func (b *RecordBuilder) SetStrings(key string, values ...string) *RecordBuilder {
	return b.Set(key, Strings(values...))
}

// SetRecord adds a nested record built by another builder.
func (b *RecordBuilder) SetRecord(key string, nested *RecordBuilder) *RecordBuilder {
	return b.Set(key, nested.Build())
}

// Unavailable marks a field as unavailable with the given reason.
func (b *RecordBuilder) Unavailable(key, reason string) *RecordBuilder {
	return b.Set(key, NotAvailable(reason))
}

// Build returns the constructed Record. The builder must not be reused.
func (b *RecordBuilder) Build() *Record {
	return b.rec
}
