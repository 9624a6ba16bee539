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

import "fmt"

// ValidateRuleRecord validates a RuleRecord according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Document must not be empty
//
// NOT validated:
//   - Content (a rule block may legitimately consist only of tags)
//   - Tags (absent metadata is permitted)
func ValidateRuleRecord(record *RuleRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRuleRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRuleRecord, ErrEmptyRuleID)
	}

	if record.Document == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRuleRecord, ErrEmptyDocumentName)
	}

	return nil
}
