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

// Package header provides the envelope header of fingerprint documents.
//
// A Header carries the document kind, the schema version and string
// metadata:
//
//	kind: Fingerprint
//	apiVersion: fingerprint.nvidia.com/v1
//	metadata:
//	  timestamp: "2025-06-01T12:00:00Z"
//	  version: v0.3.0
//
// The timestamp is the production time of the content, so two documents
// rendered from the same cached fingerprint carry the same header.
package header
