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

package host

import (
	"context"
	"strings"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/collector/file"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"golang.org/x/text/language"
)

var localeListPaths = []string{"/etc/locale.gen", "/usr/share/i18n/SUPPORTED"}

// parseLocale converts a POSIX locale such as "en_US.UTF-8@euro" into a
// language tag. The C and POSIX locales have no tag.
func parseLocale(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@ "); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// preferred returns the user's language tags in priority order:
// LANGUAGE (colon separated), then LC_ALL, LC_MESSAGES and LANG.
func (p *Prober) preferred() []language.Tag {
	var raw []string
	if list := p.env("LANGUAGE"); list != "" {
		raw = append(raw, strings.Split(list, ":")...)
	}
	raw = append(raw, p.env("LC_ALL"), p.env("LC_MESSAGES"), p.env("LANG"))

	seen := make(map[string]struct{})
	var tags []language.Tag
	for _, r := range raw {
		tag, ok := parseLocale(r)
		if !ok {
			continue
		}
		if _, dup := seen[tag.String()]; dup {
			continue
		}
		seen[tag.String()] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func (p *Prober) systemLocale() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if tag, ok := parseLocale(p.env(key)); ok {
			return tag.String()
		}
	}
	return language.Und.String()
}

// languages reports the distinct base languages of the preferred list.
func (p *Prober) languages(context.Context) (measurement.Value, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, tag := range p.preferred() {
		base, _ := tag.Base()
		if _, dup := seen[base.String()]; dup {
			continue
		}
		seen[base.String()] = struct{}{}
		out = append(out, base.String())
	}
	return measurement.Strings(out...), nil
}

func (p *Prober) available() []string {
	parser := file.NewParser(file.WithFS(p.fsys))
	seen := make(map[string]struct{})
	var out []string
	for _, path := range localeListPaths {
		lines, err := parser.GetLines(path)
		if err != nil {
			continue
		}
		for _, line := range lines {
			tag, ok := parseLocale(line)
			if !ok {
				continue
			}
			if _, dup := seen[tag.String()]; dup {
				continue
			}
			seen[tag.String()] = struct{}{}
			out = append(out, tag.String())
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}

// localeInfo reports the locale composite. Its fields are named after the
// child metrics they serve.
func (p *Prober) localeInfo(context.Context) (measurement.Value, error) {
	preferred := p.preferred()
	names := make([]string, len(preferred))
	for i, tag := range preferred {
		names[i] = tag.String()
	}
	return measurement.NewRecordBuilder().
		SetStrings(string(catalog.AvailableLocaleIdentifiers), p.available()...).
		SetStrings(string(catalog.PreferredLanguages), names...).
		SetString(string(catalog.SystemLocale), p.systemLocale()).
		Build(), nil
}
