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

// Package signer produces detached fingerprint signatures.
//
// In HMAC mode the signature is an HMAC-SHA256 over the canonical flat JSON
// of the fingerprint (see serializer.FlatJSON), so any party holding the key
// can recompute it from the transmitted bytes.
//
// In RSA application-key mode the signature covers a 32-byte application key
// derived with HKDF-SHA256 from the AppKey metric, salted with HardwareID,
// instead of the whole record. The digest of the derived key is signed with
// RSA PKCS#1 v1.5.
//
// Both modes are deterministic. Signing without a configured key fails with
// SIGNING_KEY_MISSING.
package signer
