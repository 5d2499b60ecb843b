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

// Package logging provides structured logging utilities for the fingerprint
// facade and its command-line tool.
//
// It wraps log/slog with JSON output on stderr, module/version attributes on
// every record, and level selection from the LOG_LEVEL environment variable.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: cache hits, per-provider timings, source locations
//   - INFO: collection passes and configuration (default)
//   - WARN/WARNING: degraded metrics and fallbacks
//   - ERROR: whole-request failures
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("fingerprint", "v1.0.0")
//	    slog.Info("collecting fingerprint", "variant", "mixed")
//	}
//
// Setting an explicit level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("fingerprint", version, "debug")
//
// The library packages never configure logging themselves; they log through
// slog's default logger so host programs stay in control of the handler.
package logging
