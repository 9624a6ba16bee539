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


// Package search scores indexed policy rules against free-text queries.
//
// The Searcher implements additive keyword scoring over an immutable index
// snapshot, combining:
//   - verbatim phrase matching
//   - distinct word overlap
//   - category synonym boosts from a fixed keyword table
//   - rule-id topic component matching
//
// The rule-id component match uses a crude four-character prefix stem so
// partial queries like "algo" reach "algorithm" rules. It is a heuristic
// that favors recall; short unrelated words can collide.
package search
