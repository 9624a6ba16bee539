package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleClosedBlock(t *testing.T) {
	text := "[RULE:GSAS:DEADLINE-001][TIMING:30 days]Students must register within 30 days of defense.[/RULE]"

	doc := Parse(text)
	require.Len(t, doc.Rules, 1)

	rule := doc.Rules[0]
	assert.Equal(t, "GSAS:DEADLINE-001", rule.ID)
	assert.Equal(t, "Students must register within 30 days of defense.", rule.Content)
	assert.Equal(t, map[string][]string{"TIMING": {"30 days"}}, rule.Tags)
	assert.Equal(t, text, rule.RawBlock)
}

func TestParse_NextMarkerTerminated(t *testing.T) {
	text := "[RULE:GSAS:A-0001]First rule text.\n[RULE:GSAS:B-0002]Second rule text."

	doc := Parse(text)
	require.Len(t, doc.Rules, 2)
	assert.Equal(t, "GSAS:A-0001", doc.Rules[0].ID)
	assert.Equal(t, "First rule text.", doc.Rules[0].Content)
	assert.Equal(t, "GSAS:B-0002", doc.Rules[1].ID)
	assert.Equal(t, "Second rule text.", doc.Rules[1].Content)
}

func TestParse_ClosingMarkerPreferred(t *testing.T) {
	// Trailing commentary after [/RULE] must not be swallowed into the block.
	text := "[RULE:GSAS:A-0001]Rule text.[/RULE]\nUnrelated trailing text.\n[RULE:GSAS:B-0002]Second."

	doc := Parse(text)
	require.Len(t, doc.Rules, 2)
	assert.Equal(t, "Rule text.", doc.Rules[0].Content)
	assert.Equal(t, "[RULE:GSAS:A-0001]Rule text.[/RULE]", doc.Rules[0].RawBlock)
	assert.NotContains(t, doc.Rules[0].Content, "Unrelated")
}

func TestParse_MixedFramings(t *testing.T) {
	text := "[RULE:GSAS:A-0001]Closed block.[/RULE]\n[RULE:GSAS:B-0002]Open block.\n[RULE:GSAS:C-0003]Last block."

	doc := Parse(text)
	require.Len(t, doc.Rules, 3)
	assert.Equal(t, "Closed block.", doc.Rules[0].Content)
	assert.Equal(t, "Open block.", doc.Rules[1].Content)
	assert.Equal(t, "Last block.", doc.Rules[2].Content)
}

func TestParse_RuleCountMatchesOpeningMarkers(t *testing.T) {
	text := `[JURISDICTION:GSAS]
[PRECEDENCE:2-School]

[RULE:GSAS:DEFENSE-REG-001]
[CATEGORY:defense]
Students must be registered in the semester of their defense.
[/RULE]

[RULE:GSAS:DEADLINE-001]
Dissertation deposit is due within 30 days.

[RULE:GSAS:PROSPECTUS-001]
[SEE-ALSO:GSAS:DEADLINE-001]
The prospectus must be approved before year three.
[/RULE]
`
	doc := Parse(text)
	assert.Equal(t, strings.Count(text, "[RULE:"), len(doc.Rules))
}

func TestParse_Header(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		doc := Parse("[JURISDICTION:ISSO]\n[PRECEDENCE:1-Federal]\n[RULE:ISSO:OPT-001]text")
		assert.Equal(t, "ISSO", doc.Jurisdiction)
		assert.Equal(t, 1, doc.Precedence)
		assert.Equal(t, "Federal", doc.PrecedenceName)
	})

	t.Run("absent defaults", func(t *testing.T) {
		doc := Parse("[RULE:GSAS:X-0001]text")
		assert.Equal(t, "UNKNOWN", doc.Jurisdiction)
		assert.Equal(t, 0, doc.Precedence)
		assert.Equal(t, "Unknown", doc.PrecedenceName)
	})

	t.Run("malformed precedence keeps defaults", func(t *testing.T) {
		doc := Parse("[PRECEDENCE:abc]\n[RULE:GSAS:X-0001]text")
		assert.Equal(t, 0, doc.Precedence)
		assert.Equal(t, "Unknown", doc.PrecedenceName)
	})
}

func TestParse_NoRuleBlocks(t *testing.T) {
	doc := Parse("Plain prose without any markers.")
	assert.Empty(t, doc.Rules)
}

func TestParse_EmptyInput(t *testing.T) {
	doc := Parse("")
	assert.Empty(t, doc.Rules)
}

func TestParse_RepeatedTags(t *testing.T) {
	text := "[RULE:GSAS:X-0001][SEE-ALSO:A:B-1][SEE-ALSO:C:D-2]Rule body.[/RULE]"

	doc := Parse(text)
	require.Len(t, doc.Rules, 1)
	assert.Equal(t, []string{"A:B-1", "C:D-2"}, doc.Rules[0].Tags["SEE-ALSO"])
}

func TestParse_BareTag(t *testing.T) {
	text := "[RULE:GSAS:X-0001][SUPERSEDED]Old rule body.[/RULE]"

	doc := Parse(text)
	require.Len(t, doc.Rules, 1)
	assert.Equal(t, []string{""}, doc.Rules[0].Tags["SUPERSEDED"])
	assert.Equal(t, "Old rule body.", doc.Rules[0].Content)
}

func TestParse_UnbalancedBrackets(t *testing.T) {
	text := "[RULE:GSAS:X-0001]Body with a [broken tag and 5 [kg of text.[/RULE]"

	doc := Parse(text)
	require.Len(t, doc.Rules, 1)
	// Unbalanced brackets are not tags: left in the content, absent from metadata.
	assert.Equal(t, "Body with a [broken tag and 5 [kg of text.", doc.Rules[0].Content)
	assert.NotContains(t, doc.Rules[0].Tags, "broken")
}

func TestParse_UnterminatedOpeningMarker(t *testing.T) {
	doc := Parse("[RULE:GSAS:X-0001")
	assert.Empty(t, doc.Rules)
}

func TestParse_EmptyRuleID(t *testing.T) {
	doc := Parse("[RULE:]no id here")
	assert.Empty(t, doc.Rules)
}

func TestStripTags_Idempotent(t *testing.T) {
	bodies := []string{
		"[CATEGORY:defense]Students must defend in person. [TIMING:semester 6]",
		"Plain text, no tags at all.",
		"[A-TAG:x][B_TAG]Mixed [C:y] tags everywhere.",
	}
	for _, body := range bodies {
		once := StripTags(body)
		twice := StripTags(once)
		assert.Equal(t, once, twice, "stripping %q twice diverged", body)
	}
}

func TestStripTags_TagNameCharacters(t *testing.T) {
	got := StripTags("[CONFLICT-NOTE:overlaps][MY_TAG:x][lower:ok]text")
	assert.Equal(t, "text", got)
}

func TestExtractTags_None(t *testing.T) {
	assert.Nil(t, ExtractTags("no tags in sight"))
}

func TestExtractTags_IgnoresClosingTags(t *testing.T) {
	tags := ExtractTags("[NOTE:keep]body[/RULE]")
	assert.Equal(t, map[string][]string{"NOTE": {"keep"}}, tags)
}
