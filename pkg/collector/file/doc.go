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

// Package file parses small line-oriented system files for host probes.
//
// A Parser splits a file into entries and, optionally, into key-value pairs:
//
//	p := file.NewParser(file.WithVTrimChars(`"'`))
//	release, err := p.GetMap("/etc/os-release")
//
// Files that repeat keys are read with GetValues:
//
//	p := file.NewParser(file.WithKVDelimiter(" "))
//	servers, err := p.GetValues("/etc/resolv.conf", "nameserver")
//
// Tests and sandboxed callers can point the parser at any fs.FS:
//
//	p := file.NewParser(file.WithFS(fstest.MapFS{...}))
//
// Files larger than the configured maximum or containing invalid UTF-8 are
// rejected.
package file
