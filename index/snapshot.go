package index

import (
	"strings"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
)

// Snapshot is an immutable view of the rule index. It is built once and
// never mutated; Handle swaps whole snapshots so readers observe either the
// fully-old or fully-new index, never a mix.
type Snapshot struct {
	rules      map[string]*core.RuleRecord
	order      []string // index keys in encounter order, for stable scans
	documents  []core.Document
	duplicates int
}

// NewSnapshot assembles a snapshot from documents and their rules, given in
// encounter order. When the same id appears twice the later record replaces
// the earlier one in place; the duplicate is counted and observable through
// Duplicates.
func NewSnapshot(documents []core.Document, rules []*core.RuleRecord) *Snapshot {
	s := &Snapshot{
		rules:     make(map[string]*core.RuleRecord, len(rules)),
		documents: documents,
	}
	for _, r := range rules {
		if _, seen := s.rules[r.ID]; seen {
			s.duplicates++
		} else {
			s.order = append(s.order, r.ID)
		}
		s.rules[r.ID] = r
	}
	return s
}

// Len returns the number of indexed rules.
func (s *Snapshot) Len() int {
	return len(s.rules)
}

// Duplicates returns how many rule ids were silently overwritten during the
// build. Overwrites keep the record from the later-processed document.
func (s *Snapshot) Duplicates() int {
	return s.duplicates
}

// Documents returns the source documents in processing order, with header
// metadata and fingerprints populated.
func (s *Snapshot) Documents() []core.Document {
	return s.documents
}

// All returns every indexed rule in encounter order. The returned slice is
// freshly allocated; the records themselves are shared and must not be
// mutated.
func (s *Snapshot) All() []*core.RuleRecord {
	records := make([]*core.RuleRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.rules[id])
	}
	return records
}

// Get retrieves a rule by its exact index key.
func (s *Snapshot) Get(id string) (*core.RuleRecord, bool) {
	r, ok := s.rules[id]
	return r, ok
}

// Lookup retrieves a rule by id, tolerating caller-supplied case and an
// optional RULE: qualifier. Attempts, in order: exact key match; the form
// with the qualifier toggled (added when absent, stripped when present); a
// case-insensitive scan with the id as given; a case-insensitive scan with
// the toggled form. The first success wins.
func (s *Snapshot) Lookup(id string) (*core.RuleRecord, bool) {
	if r, ok := s.rules[id]; ok {
		return r, true
	}

	var toggled string
	if hasRuleQualifier(id) {
		toggled = id[5:]
	} else {
		toggled = "RULE:" + id
	}
	if r, ok := s.rules[toggled]; ok {
		return r, true
	}

	if r, ok := s.scanFold(id); ok {
		return r, true
	}
	return s.scanFold(toggled)
}

// scanFold walks the index in encounter order comparing keys
// case-insensitively.
func (s *Snapshot) scanFold(id string) (*core.RuleRecord, bool) {
	for _, key := range s.order {
		if strings.EqualFold(key, id) {
			return s.rules[key], true
		}
	}
	return nil, false
}

func hasRuleQualifier(id string) bool {
	return len(id) >= 5 && strings.EqualFold(id[:5], "RULE:")
}
