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
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{{Name: "test1", Value: 123}, {Name: "test2", Value: 456}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0].Name != "test1" || result[1].Value != 456 {
		t.Errorf("unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), testConfig{Name: "y", Value: 1}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testConfig
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result.Name != "y" || result.Value != 1 {
		t.Errorf("unexpected data: %+v", result)
	}
}

func TestWriter_Fingerprint(t *testing.T) {
	fp := sampleFingerprint()

	t.Run("json keeps catalog order", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatJSON, &buf).Serialize(context.Background(), fp); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if strings.Index(out, "DeviceName") > strings.Index(out, "FontInfo") {
			t.Errorf("expected DeviceName before FontInfo:\n%s", out)
		}
		canonical, err := Canonicalize(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if string(canonical) != sampleFlat {
			t.Errorf("compacted output = %s, want %s", canonical, sampleFlat)
		}
	})

	t.Run("flat", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatFlat, &buf).Serialize(context.Background(), fp); err != nil {
			t.Fatal(err)
		}
		if buf.String() != sampleFlat+"\n" {
			t.Errorf("flat output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatYAML, &buf).Serialize(context.Background(), fp); err != nil {
			t.Fatal(err)
		}
		var decoded map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatal(err)
		}
		if decoded["DeviceName"] != "iPhone15" {
			t.Errorf("DeviceName = %v", decoded["DeviceName"])
		}
		if v, ok := decoded["Emulator"]; !ok || v != nil {
			t.Errorf("Emulator = %v (present %v), want explicit null", v, ok)
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), fp); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{
			"DeviceName", "iPhone15",
			"BluetoothDevices.[1]", "watch",
			"FontInfo.SystemFont", "Inter",
			"<unavailable: probe failed>",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "DeviceName") > strings.Index(out, "Emulator") {
			t.Errorf("rows out of catalog order:\n%s", out)
		}
	})
}

func TestWriter_SerializeTable_Plain(t *testing.T) {
	type nested struct {
		Inner string
		Tags  map[string]string
		Ptr   *string
	}
	var buf bytes.Buffer
	data := nested{Inner: "x", Tags: map[string]string{"b": "2", "a": "1"}}
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), data); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "FIELD") || !strings.Contains(out, "Inner") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if strings.Index(out, "Tags.a") > strings.Index(out, "Tags.b") {
		t.Errorf("map keys not sorted:\n%s", out)
	}
	if !strings.Contains(out, "Ptr") {
		t.Errorf("nil pointer row missing:\n%s", out)
	}
}

func TestWriter_SerializeTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]string{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		if Format(f).IsUnknown() {
			t.Errorf("%s reported unknown", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	w := NewWriter(Format("xml"), &bytes.Buffer{})
	if w.format != FormatJSON {
		t.Errorf("format = %s, want json", w.format)
	}
	if NewWriter(FormatYAML, nil).output != os.Stdout {
		t.Error("nil output should default to stdout")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	if w := NewFileWriterOrStdout(FormatJSON, "  "); w.output != os.Stdout {
		t.Error("empty path should write to stdout")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	w := NewFileWriterOrStdout(FormatJSON, path)
	if err := w.Serialize(context.Background(), testConfig{Name: "f"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}

	cfg, err := FromFile[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "f" {
		t.Errorf("Name = %q", cfg.Name)
	}

	bad := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
	if bad.output != os.Stdout {
		t.Error("unwritable path should fall back to stdout")
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fp.json")
	if err := WriteToFile(path, []byte(sampleFlat)); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != sampleFlat {
		t.Errorf("got %s", got)
	}
}
