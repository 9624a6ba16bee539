package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
	"github.com/AnushkaBhatnagar/Policy-Query-System/index"
)

// DefaultLimit is the number of results returned when the caller does not
// specify one.
const DefaultLimit = 5

// previewLength is the maximum content preview size in characters.
const previewLength = 300

// Source supplies the snapshot a search runs against. *index.Handle
// satisfies it; tests may pin a fixed snapshot.
type Source interface {
	Current() *index.Snapshot
}

// Searcher scores indexed rules against free-text queries.
type Searcher struct {
	source Source
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher reading snapshots from source.
func NewSearcher(source Source, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	s := &Searcher{
		source: source,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search scores every indexed rule against the query and returns up to limit
// results in non-increasing score order; equal scores keep index encounter
// order. Rules scoring zero never surface. A non-empty department filters
// candidates by case-insensitive prefix match on the rule id; an unknown
// department simply matches nothing. A limit <= 0 means DefaultLimit.
func (s *Searcher) Search(query, department string, limit int) []core.SearchResult {
	return s.SearchWithMonitor(query, department, limit, nil)
}

// SearchWithMonitor is Search with stage callbacks for observing candidate
// filtering, per-rule scores, and the final ranking.
func (s *Searcher) SearchWithMonitor(query, department string, limit int, monitor SearchMonitor) []core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	monitor.Start(query, department)

	q := compileQuery(query)
	deptLower := strings.ToLower(department)

	snapshot := s.source.Current()
	candidates := 0
	results := make([]core.SearchResult, 0, limit)

	for _, rule := range snapshot.All() {
		if deptLower != "" && !strings.HasPrefix(strings.ToLower(rule.ID), deptLower) {
			continue
		}
		candidates++

		score := q.score(rule)
		monitor.RuleScored(rule.ID, score)
		if score == 0 {
			continue
		}

		results = append(results, core.SearchResult{
			RuleID:         rule.ID,
			Document:       rule.Document,
			Score:          score,
			ContentPreview: preview(rule.Content),
			FullContent:    rule.Content,
		})
	}
	monitor.AfterScan(candidates, len(results))

	// Stable: ties keep index encounter order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	monitor.Finish(results)
	s.logger.Debug("search complete",
		"query", query, "department", department,
		"candidates", candidates, "results", len(results))

	return results
}

// compiledQuery holds the per-search precomputed view of the query text.
type compiledQuery struct {
	lower      string
	words      map[string]struct{} // distinct whitespace tokens
	longWords  []string            // distinct tokens longer than 3 characters
	categories []string            // category names appearing in the query
}

func compileQuery(query string) *compiledQuery {
	q := &compiledQuery{
		lower: strings.ToLower(query),
		words: make(map[string]struct{}),
	}
	for _, w := range strings.Fields(q.lower) {
		if _, dup := q.words[w]; dup {
			continue
		}
		q.words[w] = struct{}{}
		if len(w) > 3 {
			q.longWords = append(q.longWords, w)
		}
	}
	for _, category := range categoryNames {
		if strings.Contains(q.lower, category) {
			q.categories = append(q.categories, category)
		}
	}
	return q
}

// score computes the additive relevance score of one rule:
//
//	+10 when the query is a verbatim substring of the content
//	 +2 per distinct word shared by query and content
//	 +3 per category synonym present in the content, for each category
//	    named in the query
//	+20 / +15 per rule-id topic component matching a query word by
//	    containment / four-character prefix
func (q *compiledQuery) score(rule *core.RuleRecord) int {
	contentLower := strings.ToLower(rule.Content)
	score := 0

	// Exact phrase match.
	if q.lower != "" && strings.Contains(contentLower, q.lower) {
		score += 10
	}

	// Word overlap, distinct words only (set intersection, not multiset).
	matched := make(map[string]struct{}, len(q.words))
	for _, w := range strings.Fields(contentLower) {
		if _, ok := q.words[w]; !ok {
			continue
		}
		if _, dup := matched[w]; dup {
			continue
		}
		matched[w] = struct{}{}
		score += 2
	}

	// Category keyword boosts.
	for _, category := range q.categories {
		for _, term := range categoryKeywords[category] {
			if strings.Contains(contentLower, term) {
				score += 3
			}
		}
	}

	// Rule-id component boost.
	for _, component := range topicComponents(rule.ID) {
		for _, w := range q.longWords {
			switch {
			case strings.Contains(component, w) || strings.Contains(w, component):
				score += 20
			case component[:4] == w[:4]:
				score += 15
			}
		}
	}

	return score
}

// topicComponents splits a rule id's topic segment (after the last colon)
// on hyphens, lowercases the parts, and keeps those longer than three
// characters. Shorter parts are numeric suffixes or noise.
func topicComponents(ruleID string) []string {
	topic := ruleID
	if i := strings.LastIndexByte(ruleID, ':'); i >= 0 {
		topic = ruleID[i+1:]
	}
	var components []string
	for _, part := range strings.Split(strings.ToLower(topic), "-") {
		if len(part) > 3 {
			components = append(components, part)
		}
	}
	return components
}

// preview truncates content to the first previewLength characters, marking
// truncation with an ellipsis.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
