// Copyright 2025 Policy Query System Authors
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


// Package index builds and publishes the in-memory rule index.
//
// A Builder parses source documents (concurrently, on a worker pool) into an
// immutable Snapshot mapping rule ids to records. A Handle holds the current
// snapshot behind an atomic pointer so searches run lock-free against a
// consistent view while rebuilds prepare their replacement.
package index
