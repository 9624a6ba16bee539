package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
	"github.com/AnushkaBhatnagar/Policy-Query-System/index"
)

// fixedSource pins a single snapshot for tests.
type fixedSource struct {
	snapshot *index.Snapshot
}

func (f *fixedSource) Current() *index.Snapshot { return f.snapshot }

func newTestSearcher(t *testing.T, docs ...core.Document) *Searcher {
	t.Helper()
	builder, err := index.NewBuilder()
	require.NoError(t, err)
	defer builder.Release()

	searcher, err := NewSearcher(&fixedSource{snapshot: builder.Build(docs)})
	require.NoError(t, err)
	return searcher
}

func TestNewSearcher(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrSourceRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		searcher := newTestSearcher(t)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		builder, err := index.NewBuilder()
		require.NoError(t, err)
		defer builder.Release()

		searcher, err := NewSearcher(&fixedSource{snapshot: builder.Build(nil)}, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})
}

func TestSearch_ExactPhraseRanksFirst(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:DEPOSIT-001]Students must deposit the dissertation electronically.[/RULE]" +
		"[RULE:GSAS:COMMITTEE-001]The committee has five members.[/RULE]" +
		"[RULE:GSAS:ENROLL-001]Continuous enrollment is mandatory.[/RULE]"})

	results := searcher.Search("must deposit the dissertation", "", 0)
	require.NotEmpty(t, results)
	assert.Equal(t, "GSAS:DEPOSIT-001", results[0].RuleID)
	assert.GreaterOrEqual(t, results[0].Score, 10)
}

func TestSearch_WordOverlapAndCategoryBoost(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:DEADLINE-001][TIMING:30 days]Students must register within 30 days of defense.[/RULE]" +
		"[RULE:GSAS:HOUSING-001]Housing applications open in March.[/RULE]"})

	results := searcher.Search("register deadline", "", 0)
	require.NotEmpty(t, results)
	assert.Equal(t, "GSAS:DEADLINE-001", results[0].RuleID)
	assert.GreaterOrEqual(t, results[0].Score, 5)
}

func TestSearch_CategorySynonymsEachCount(t *testing.T) {
	// Query names the "deadline" category; content carries both synonyms,
	// so the boost is +3 twice, not capped per category.
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:FEE-0001]Payment is due by the posted deadline.[/RULE]" +
		"[RULE:GSAS:FEE-0002]Payment is expected promptly.[/RULE]"})

	results := searcher.Search("deadline", "", 0)
	require.Len(t, results, 1)
	// +10 phrase, +3 "deadline", +3 "due". No word overlap: the content
	// token is "deadline." with punctuation attached.
	assert.Equal(t, 16, results[0].Score)
}

func TestSearch_WordOverlapIsSetNotMultiset(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:COMMITTEE-001]committee committee committee approval[/RULE]"})

	results := searcher.Search("committee", "", 0)
	require.Len(t, results, 1)
	// +10 phrase, +20 COMMITTEE id component, and +2 exactly once for the
	// repeated shared word.
	assert.Equal(t, 32, results[0].Score)
}

func TestSearch_RuleIDComponentBoost(t *testing.T) {
	t.Run("containment", func(t *testing.T) {
		searcher := newTestSearcher(t, core.Document{Name: "PHD_SEAS", Text: "" +
			"[RULE:PhD_SEAS:ALGO-PREREQ-001]Doctoral students take the qualifying sequence first.[/RULE]"})

		// "algorithm" contains the ALGO component as a substring: +20.
		results := searcher.Search("algorithm", "", 0)
		require.Len(t, results, 1)
		assert.Equal(t, 20, results[0].Score)
	})

	t.Run("four character stem", func(t *testing.T) {
		searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
			"[RULE:GSAS:REGISTRATION-001]Continuous study is expected each term.[/RULE]"})

		// "registrar" vs the REGISTRATION component: no containment either
		// way, but the first four characters agree: +15.
		results := searcher.Search("registrar", "", 0)
		require.Len(t, results, 1)
		assert.Equal(t, 15, results[0].Score)
	})

	t.Run("short components are noise", func(t *testing.T) {
		searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
			"[RULE:GSAS:OPT-001]Unrelated content entirely.[/RULE]"})

		// OPT and 001 are length <= 3 and discarded; no other signal.
		results := searcher.Search("option", "", 0)
		assert.Empty(t, results)
	})

	t.Run("short query words are skipped", func(t *testing.T) {
		searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
			"[RULE:GSAS:DEFENSE-001]Unrelated content entirely.[/RULE]"})

		results := searcher.Search("def", "", 0)
		assert.Empty(t, results)
	})
}

func TestSearch_ZeroScoreExcluded(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:DEPOSIT-001]Students must deposit the dissertation.[/RULE]"})

	results := searcher.Search("zebra quagga", "", 0)
	assert.Empty(t, results)
}

func TestSearch_EmptyIndex(t *testing.T) {
	searcher := newTestSearcher(t)
	assert.Empty(t, searcher.Search("anything", "", 0))
}

func TestSearch_DepartmentFilter(t *testing.T) {
	docs := []core.Document{
		{Name: "GSAS", Text: "[RULE:GSAS:DEFENSE-001]The defense is scheduled by the department.[/RULE]"},
		{Name: "PHD_SEAS", Text: "[RULE:PHD_SEAS:DEFENSE-002]The defense follows the SEAS calendar.[/RULE]"},
	}

	t.Run("case-insensitive prefix", func(t *testing.T) {
		searcher := newTestSearcher(t, docs...)
		results := searcher.Search("defense", "PhD_Seas", 0)
		require.Len(t, results, 1)
		assert.Equal(t, "PHD_SEAS:DEFENSE-002", results[0].RuleID)
	})

	t.Run("unknown department matches nothing", func(t *testing.T) {
		searcher := newTestSearcher(t, docs...)
		assert.Empty(t, searcher.Search("defense", "LAW", 0))
	})

	t.Run("empty department matches everything", func(t *testing.T) {
		searcher := newTestSearcher(t, docs...)
		assert.Len(t, searcher.Search("defense", "", 0), 2)
	})
}

func TestSearch_OrderingAndLimit(t *testing.T) {
	var sb strings.Builder
	// W000..W007 all share the word "tied" and nothing else.
	for _, suffix := range []string{"W000", "W001", "W002", "W003", "W004", "W005", "W006", "W007"} {
		sb.WriteString("[RULE:GSAS:" + suffix + "-X]tied content[/RULE]")
	}
	sb.WriteString("[RULE:GSAS:TOP-X]tied content tied content plus extra tied[/RULE]")
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: sb.String()})

	t.Run("descending with stable ties", func(t *testing.T) {
		results := searcher.Search("tied plus", "", 100)
		require.Len(t, results, 9)
		assert.Equal(t, "GSAS:TOP-X", results[0].RuleID)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
		}
		// Tied rules keep encounter order.
		for i, suffix := range []string{"W000", "W001", "W002", "W003", "W004", "W005", "W006", "W007"} {
			assert.Equal(t, "GSAS:"+suffix+"-X", results[i+1].RuleID)
		}
	})

	t.Run("default limit", func(t *testing.T) {
		results := searcher.Search("tied", "", 0)
		assert.Len(t, results, DefaultLimit)
	})

	t.Run("explicit limit", func(t *testing.T) {
		results := searcher.Search("tied", "", 3)
		assert.Len(t, results, 3)
	})
}

func TestSearch_ContentPreview(t *testing.T) {
	long := strings.Repeat("All work and no play makes a dull policy. ", 12) // > 300 chars
	searcher := newTestSearcher(t, core.Document{Name: "GSAS",
		Text: "[RULE:GSAS:LONG-001]" + long + "[/RULE]"})

	results := searcher.Search("policy", "", 0)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, strings.HasSuffix(r.ContentPreview, "..."))
	assert.Len(t, []rune(r.ContentPreview), 303)
	assert.Equal(t, strings.TrimSpace(long), r.FullContent)
	assert.Greater(t, len(r.FullContent), len(r.ContentPreview))
}

func TestSearch_ShortContentPreviewUntruncated(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS",
		Text: "[RULE:GSAS:SHORT-001]Short policy text.[/RULE]"})

	results := searcher.Search("policy", "", 0)
	require.Len(t, results, 1)
	assert.Equal(t, "Short policy text.", results[0].ContentPreview)
	assert.Equal(t, results[0].FullContent, results[0].ContentPreview)
}

// recordingMonitor captures monitor callbacks.
type recordingMonitor struct {
	started    bool
	scored     int
	candidates int
	hits       int
	finished   bool
}

func (m *recordingMonitor) Start(_, _ string)            { m.started = true }
func (m *recordingMonitor) RuleScored(_ string, _ int)   { m.scored++ }
func (m *recordingMonitor) AfterScan(c, h int)           { m.candidates, m.hits = c, h }
func (m *recordingMonitor) Finish(_ []core.SearchResult) { m.finished = true }

func TestSearchWithMonitor(t *testing.T) {
	searcher := newTestSearcher(t, core.Document{Name: "GSAS", Text: "" +
		"[RULE:GSAS:DEFENSE-001]The defense is public.[/RULE]" +
		"[RULE:GSAS:HOUSING-001]Housing is limited.[/RULE]"})

	monitor := &recordingMonitor{}
	results := searcher.SearchWithMonitor("defense", "", 0, monitor)

	require.Len(t, results, 1)
	assert.True(t, monitor.started)
	assert.Equal(t, 2, monitor.scored)
	assert.Equal(t, 2, monitor.candidates)
	assert.Equal(t, 1, monitor.hits)
	assert.True(t, monitor.finished)
}
