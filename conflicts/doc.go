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


// Package conflicts loads and queries the registry of known rule conflicts.
//
// The registry is a JSON file with a "conflicts" collection, each entry
// naming two or more rule ids in tension plus free-form precedence guidance,
// and an optional "precedence_framework" object carried opaquely for
// callers. Membership tests are case-insensitive and tolerate the RULE:
// qualifier.
package conflicts
