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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in indented JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
	// FormatFlat outputs fingerprints in canonical compact JSON
	FormatFlat Format = "flat"
)

const defaultValueKey = "value"

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, FormatFlat:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
		string(FormatFlat),
	}
}

// Writer handles serialization of data to various formats.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to JSON format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: knownOrJSON(format),
		output: output,
	}
}

// NewFileWriterOrStdout creates a new Writer that outputs to the specified file path in the given format.
// If the file cannot be created or path is empty, it falls back to stdout.
// Remember to call Close() on the returned Writer to ensure the file is properly closed.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewStdoutWriter(format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	return &Writer{
		format: knownOrJSON(format),
		output: file,
		closer: file,
	}
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

func knownOrJSON(format Format) Format {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		return FormatJSON
	}
	return format
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer != nil {
		err := w.closer.Close()
		w.closer = nil
		return err
	}
	return nil
}

// Serialize writes v in the configured format.
// Context is provided for consistency with the Serializer interface,
// but is not actively used for file/stdout writes (which are fast and blocking).
func (w *Writer) Serialize(ctx context.Context, v any) error {
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(v)
	case FormatYAML:
		return w.serializeYAML(v)
	case FormatTable:
		return w.serializeTable(v)
	case FormatFlat:
		return w.serializeFlat(v)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(v any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(v any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

// serializeFlat writes fingerprints in canonical form and any other value as
// compact JSON, followed by a newline.
func (w *Writer) serializeFlat(v any) error {
	var (
		data []byte
		err  error
	)
	if fp, ok := v.(*measurement.Fingerprint); ok {
		data, err = FlatJSON(fp)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize to flat JSON: %w", err)
	}
	if _, err := w.output.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (w *Writer) serializeTable(v any) error {
	var rows []row
	flatten(&rows, v, "")
	if len(rows) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%v\n", r.key, r.value)
	}
	return tw.Flush()
}

// row is one flattened table line.
type row struct {
	key   string
	value any
}

// flatten appends the leaves of v to rows. Fingerprints keep catalog order,
// records keep field order, and plain maps are listed by sorted key.
func flatten(rows *[]row, v any, prefix string) {
	switch t := v.(type) {
	case *measurement.Fingerprint:
		for _, id := range t.IDs() {
			val, _ := t.Get(id)
			flattenMeasurement(rows, val, joinKey(prefix, catalog.Name(id)))
		}
	case measurement.Value:
		flattenMeasurement(rows, t, prefix)
	default:
		flattenValue(rows, reflect.ValueOf(v), prefix)
	}
}

func flattenMeasurement(rows *[]row, v measurement.Value, prefix string) {
	if prefix == "" {
		prefix = defaultValueKey
	}
	switch t := v.(type) {
	case nil:
		*rows = append(*rows, row{key: prefix, value: measurement.Unavailable{}})
	case *measurement.Record:
		if t.Len() == 0 {
			*rows = append(*rows, row{key: prefix, value: "{}"})
			return
		}
		for _, f := range t.Fields() {
			flattenMeasurement(rows, f.Value, joinKey(prefix, f.Key))
		}
	case measurement.List:
		if len(t) == 0 {
			*rows = append(*rows, row{key: prefix, value: "[]"})
			return
		}
		for i, e := range t {
			flattenMeasurement(rows, e, joinKey(prefix, fmt.Sprintf("[%d]", i)))
		}
	default:
		*rows = append(*rows, row{key: prefix, value: t})
	}
}

func flattenValue(rows *[]row, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	if val.CanInterface() {
		switch val.Interface().(type) {
		case *measurement.Fingerprint, measurement.Value:
			flatten(rows, val.Interface(), prefix)
			return
		}
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				*rows = append(*rows, row{key: prefix})
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			flattenValue(rows, val.Field(i), joinKey(prefix, field.Name))
		}
	case reflect.Map:
		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, mapKey := range keys {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(rows, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.Type().Elem().Kind() == reflect.Uint8 {
			*rows = append(*rows, row{key: orDefault(prefix), value: string(val.Bytes())})
			return
		}
		for i := 0; i < val.Len(); i++ {
			flattenValue(rows, val.Index(i), joinKey(prefix, fmt.Sprintf("[%d]", i)))
		}
	default:
		*rows = append(*rows, row{key: orDefault(prefix), value: val.Interface()})
	}
}

func orDefault(prefix string) string {
	if prefix == "" {
		return defaultValueKey
	}
	return prefix
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}

// WriteToFile writes data to a file at the specified path.
// The file is created with 0644 permissions.
func WriteToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // output files are not secrets
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
