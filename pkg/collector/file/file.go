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

package file

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser reads small line-oriented system files such as /etc/os-release,
// /etc/resolv.conf or /proc/self/status.
type Parser struct {
	fsys            fs.FS
	delimiter       string
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	vDefault        string
	vTrimChars      string
	skipEmptyValues bool
}

// WithFS reads files from fsys instead of the host filesystem.
// Absolute paths are resolved relative to the root of fsys.
func WithFS(fsys fs.FS) Option {
	return func(p *Parser) {
		p.fsys = fsys
	}
}

// WithDelimiter sets the delimiter used to split entries in the file.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip lines starting with '#' or ';'.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used by GetMap and GetValues.
// A single space splits on any run of whitespace. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVDefault sets the value used when a line has a key but no value.
func WithVDefault(vDefault string) Option {
	return func(p *Parser) {
		p.vDefault = vDefault
	}
}

// WithVTrimChars sets characters trimmed from both ends of values.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops entries whose value is empty.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap parses the file at path into key-value pairs. When a key appears
// more than once the last value wins.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	entries, err := p.entries(path)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		result[e.key] = e.value
	}
	return result, nil
}

// GetValues returns every value recorded for key in file order, for files
// that repeat keys such as the nameserver lines of resolv.conf.
func (p *Parser) GetValues(path, key string) ([]string, error) {
	entries, err := p.entries(path)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, e := range entries {
		if e.key == key {
			values = append(values, e.value)
		}
	}
	return values, nil
}

// GetValue returns the last value recorded for key and whether it was found.
func (p *Parser) GetValue(path, key string) (string, bool, error) {
	values, err := p.GetValues(path, key)
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[len(values)-1], true, nil
}

type entry struct {
	key   string
	value string
}

func (p *Parser) entries(path string) ([]entry, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make([]entry, 0, len(lines))
	for _, line := range lines {
		key, value, found := p.split(line)
		key = strings.TrimSpace(key)
		if !found {
			if p.skipEmptyValues && p.vDefault == "" {
				slog.Debug("skipping entry with key-only and empty default", slog.String("key", key))
				continue
			}
			result = append(result, entry{key: key, value: p.vDefault})
			continue
		}

		value = strings.TrimSpace(value)
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping entry with empty value", slog.String("key", key))
			continue
		}
		result = append(result, entry{key: key, value: value})
	}
	return result, nil
}

func (p *Parser) split(line string) (string, string, bool) {
	if p.kvDelimiter == " " {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return line, "", false
		}
		return fields[0], strings.Join(fields[1:], " "), true
	}
	return strings.Cut(line, p.kvDelimiter)
}

// GetLines reads the file at path and splits its content by the configured
// delimiter, returning the non-empty, trimmed entries.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := p.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), p.delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && (strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, ";")) {
			continue
		}
		result = append(result, clean)
	}

	return result, nil
}

func (p *Parser) read(path string) ([]byte, error) {
	if p.fsys == nil {
		return os.ReadFile(path)
	}
	return fs.ReadFile(p.fsys, strings.TrimPrefix(path, "/"))
}
