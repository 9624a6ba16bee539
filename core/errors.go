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


package core

import "errors"

// Domain errors
var (
	// ErrRuleNotFound indicates that no rule matches the requested id.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrInvalidRuleRecord indicates a RuleRecord failed validation.
	ErrInvalidRuleRecord = errors.New("invalid rule record")

	// ErrEmptyRuleID indicates the ID field is empty.
	ErrEmptyRuleID = errors.New("rule id cannot be empty")

	// ErrEmptyDocumentName indicates the Document field is empty.
	ErrEmptyDocumentName = errors.New("document name cannot be empty")
)
