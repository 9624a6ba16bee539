package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a 64-bit digest of a document's text.
// It is used to detect drift between a compiled snapshot and the source files.
type Fingerprint uint64

// FingerprintOf computes a deterministic fingerprint from text using BLAKE2b.
// Identical text always produces the same fingerprint.
func FingerprintOf(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// Document is one loaded policy source document.
// Jurisdiction and precedence come from the document header tags and default
// to "UNKNOWN" / 0 / "Unknown" when the header is absent.
type Document struct {
	Name           string      // document name, e.g. GSAS, ISSO, PHD_SEAS
	Text           string      // full raw text
	Jurisdiction   string      // [JURISDICTION:<code>] header value
	Precedence     int         // numeric part of the [PRECEDENCE:<n>-<name>] header
	PrecedenceName string      // name part of the [PRECEDENCE:<n>-<name>] header
	Fingerprint    Fingerprint // digest of Text
}

// RuleRecord is one indexed policy rule extracted from a document.
type RuleRecord struct {
	ID       string              // literal id as written in the source, e.g. GSAS:DEFENSE-REG-001
	Content  string              // rule text with all bracketed tags stripped
	Document string              // name of the source document
	RawBlock string              // original unparsed span including tags, kept for audit
	Tags     map[string][]string // metadata tags, every occurrence in document order
}

// ConflictRule names one participant in a recorded conflict.
type ConflictRule struct {
	RuleID       string `json:"rule_id"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// ConflictEntry is a registered group of rules known to be in tension.
// Description, Severity, and Resolution carry the precedence guidance
// opaquely; this package never interprets them.
type ConflictEntry struct {
	ID          string         `json:"id,omitempty"`
	Description string         `json:"description,omitempty"`
	Severity    string         `json:"severity,omitempty"`
	Rules       []ConflictRule `json:"rules"`
	Resolution  map[string]any `json:"resolution,omitempty"`
}

// RuleIDs returns the ids of all rules participating in the conflict.
func (c *ConflictEntry) RuleIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		ids = append(ids, r.RuleID)
	}
	return ids
}

// Involves reports whether the conflict references the given rule id.
// Comparison is case-insensitive and tolerates a leading RULE: qualifier
// and surrounding whitespace on either side.
func (c *ConflictEntry) Involves(ruleID string) bool {
	want := NormalizeRuleID(ruleID)
	for _, r := range c.Rules {
		if NormalizeRuleID(r.RuleID) == want {
			return true
		}
	}
	return false
}

// NormalizeRuleID lowercases a rule id, trims surrounding whitespace, and
// strips an optional leading RULE: qualifier. Used for membership tests,
// never for index keys (index keys preserve source case).
func NormalizeRuleID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "rule:")
	return strings.TrimSpace(id)
}

// SearchResult is one scored hit from a policy search.
type SearchResult struct {
	RuleID         string // id of the matching rule
	Document       string // source document name
	Score          int    // non-negative relevance score
	ContentPreview string // first 300 characters of content, with ellipsis when truncated
	FullContent    string // untruncated rule content
}
