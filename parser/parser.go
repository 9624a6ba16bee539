package parser

import "strings"

const (
	openMarker  = "[RULE:"
	closeMarker = "[/RULE]"

	// Header defaults when a document carries no header tags.
	DefaultJurisdiction   = "UNKNOWN"
	DefaultPrecedenceName = "Unknown"
)

// Rule is one rule block extracted from a document.
type Rule struct {
	ID       string              // id between [RULE: and ], exactly as written
	Content  string              // block text with all bracketed tags stripped and trimmed
	RawBlock string              // original span including the opening (and closing) markers
	Tags     map[string][]string // every [NAME:value] / [NAME] occurrence, in order; nil when none
}

// Document is the parse result for one source document.
type Document struct {
	Jurisdiction   string // [JURISDICTION:<code>] header, DefaultJurisdiction when absent
	Precedence     int    // numeric part of [PRECEDENCE:<n>-<name>], 0 when absent
	PrecedenceName string // name part of [PRECEDENCE:<n>-<name>], DefaultPrecedenceName when absent
	Rules          []Rule // rule blocks in document order
}

// Parse scans raw document text into an ordered sequence of rule blocks.
//
// A block opens at a [RULE:<id>] marker and runs to the next opening marker
// or end of input. When a [/RULE] closing marker occurs before the next
// opening marker the block ends there instead; the closing marker is the
// more precise boundary and keeps trailing unrelated text out of the block.
// Both framings may appear in the same document.
//
// The parser is permissive: text with no rule blocks parses to an empty
// rule list, and unbalanced brackets simply never match.
func Parse(text string) *Document {
	doc := &Document{
		Jurisdiction:   DefaultJurisdiction,
		PrecedenceName: DefaultPrecedenceName,
	}
	parseHeader(text, doc)

	openings := findOpenings(text)
	for i, op := range openings {
		idStart := op.offset + len(openMarker)
		id := text[idStart : idStart+op.idLen]
		bodyStart := idStart + op.idLen + 1 // past the closing bracket

		end := len(text)
		if i+1 < len(openings) {
			end = openings[i+1].offset
		}

		raw := text[op.offset:end]
		body := text[bodyStart:end]
		if ci := strings.Index(body, closeMarker); ci >= 0 {
			raw = text[op.offset : bodyStart+ci+len(closeMarker)]
			body = body[:ci]
		}

		doc.Rules = append(doc.Rules, Rule{
			ID:       id,
			Content:  StripTags(body),
			RawBlock: raw,
			Tags:     ExtractTags(body),
		})
	}
	return doc
}

// opening is a matched [RULE:<id>] marker.
type opening struct {
	offset int // index of the '[' in the source text
	idLen  int // length of the id between the colon and the closing bracket
}

// findOpenings locates every well-formed opening marker. A marker needs a
// non-empty id followed by a closing bracket; anything else is skipped.
func findOpenings(text string) []opening {
	var openings []opening
	pos := 0
	for {
		rel := strings.Index(text[pos:], openMarker)
		if rel < 0 {
			return openings
		}
		start := pos + rel
		idStart := start + len(openMarker)
		idEnd := strings.IndexByte(text[idStart:], ']')
		if idEnd < 0 {
			// No closing bracket anywhere after; nothing further can match.
			return openings
		}
		if idEnd == 0 {
			// Empty id, not a rule marker.
			pos = idStart
			continue
		}
		openings = append(openings, opening{offset: start, idLen: idEnd})
		pos = idStart + idEnd + 1
	}
}

// isTagNameByte reports whether b may appear in a tag name.
// Tag names consist of letters, underscores, and hyphens.
func isTagNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// scanTag examines text at an opening bracket and, when it delimits a tag,
// returns the tag name, its value (empty for bare [NAME] tags), whether a
// value was present, and the index just past the closing bracket. A closing
// tag such as [/RULE] scans successfully with closing=true. ok is false when
// the bracket does not delimit a tag at all.
func scanTag(text string, start int) (name, value string, hasValue, closing bool, end int, ok bool) {
	i := start + 1
	if i < len(text) && text[i] == '/' {
		closing = true
		i++
	}
	nameStart := i
	for i < len(text) && isTagNameByte(text[i]) {
		i++
	}
	if i == nameStart {
		return "", "", false, false, 0, false
	}
	name = text[nameStart:i]
	if i < len(text) && text[i] == ':' {
		hasValue = true
		i++
	}
	valueStart := i
	for i < len(text) && text[i] != ']' && text[i] != '[' {
		i++
	}
	if i >= len(text) || text[i] != ']' {
		return "", "", false, false, 0, false
	}
	value = text[valueStart:i]
	return name, value, hasValue, closing, i + 1, true
}

// ExtractTags collects every metadata tag in the text into a mapping from
// tag name to its values in order of appearance. Bare [NAME] tags record an
// empty value. Closing tags and unbalanced brackets are excluded.
func ExtractTags(text string) map[string][]string {
	var tags map[string][]string
	pos := 0
	for pos < len(text) {
		rel := strings.IndexByte(text[pos:], '[')
		if rel < 0 {
			break
		}
		start := pos + rel
		name, value, hasValue, closing, end, ok := scanTag(text, start)
		if !ok {
			pos = start + 1
			continue
		}
		pos = end
		if closing {
			continue
		}
		if !hasValue && value != "" {
			// Bracketed span with trailing junk after the name, e.g.
			// [NAME junk]: stripped from content but not metadata.
			continue
		}
		if tags == nil {
			tags = make(map[string][]string)
		}
		tags[name] = append(tags[name], value)
	}
	return tags
}

// StripTags returns text with every bracketed tag removed and surrounding
// whitespace trimmed. Stripping is idempotent: a second pass over already
// stripped text changes nothing.
func StripTags(text string) string {
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		rel := strings.IndexByte(text[pos:], '[')
		if rel < 0 {
			b.WriteString(text[pos:])
			break
		}
		start := pos + rel
		b.WriteString(text[pos:start])
		if _, _, _, _, end, ok := scanTag(text, start); ok {
			pos = end
			continue
		}
		b.WriteByte('[')
		pos = start + 1
	}
	return strings.TrimSpace(b.String())
}

// parseHeader extracts the document-level [JURISDICTION:<code>] and
// [PRECEDENCE:<number>-<name>] tags. Only the first occurrence of each
// counts; malformed values leave the defaults in place.
func parseHeader(text string, doc *Document) {
	if v, ok := firstTagValue(text, "JURISDICTION"); ok && isWord(v) {
		doc.Jurisdiction = v
	}
	if v, ok := firstTagValue(text, "PRECEDENCE"); ok {
		num, name, found := strings.Cut(v, "-")
		if found && isDigits(num) && isWord(name) {
			doc.Precedence = atoi(num)
			doc.PrecedenceName = name
		}
	}
}

// firstTagValue finds the first [name:value] occurrence of the given tag.
func firstTagValue(text, tagName string) (string, bool) {
	marker := "[" + tagName + ":"
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	valueStart := start + len(marker)
	end := strings.IndexByte(text[valueStart:], ']')
	if end < 0 {
		return "", false
	}
	return text[valueStart : valueStart+end], true
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '_' && !(b >= 'A' && b <= 'Z') && !(b >= 'a' && b <= 'z') && !(b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
