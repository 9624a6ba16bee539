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


// Package parser turns raw tagged policy text into structured rule blocks.
//
// Policy documents embed a lightweight markup language in plain text: rule
// blocks open with [RULE:<id>] markers, carry [NAME:value] metadata tags,
// and optionally close with [/RULE]. The scanner supports both framings,
// closing-tag-terminated and next-marker-terminated, and prefers the closing
// tag when one is present before the next opening marker.
//
// The parser is permissive rather than validating: malformed markup is
// skipped, never reported as an error.
package parser
