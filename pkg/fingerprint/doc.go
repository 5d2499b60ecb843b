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

// Package fingerprint is the entry point of the library.
//
// A Service is created once from a config.Config and a collector.Registry
// and serves every snapshot request of the process:
//
//	svc, err := fingerprint.New(cfg, nil, fingerprint.WithVersion(version))
//	if err != nil {
//		return err
//	}
//	out, err := svc.Snapshot(ctx, fingerprint.FormatFlatJSON, catalog.VariantMixed, false)
//
// Results are cached per requested metric set for the configured caching
// time. Outputs carry the collected fingerprint and its rendering, and can
// be signed with the configured HMAC or RSA key.
package fingerprint
