package search

import "github.com/AnushkaBhatnagar/Policy-Query-System/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during a search.
type SearchMonitor interface {
	Start(query, department string)
	RuleScored(ruleID string, score int)
	AfterScan(candidates, hits int)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)            {}
func (n *noopMonitor) RuleScored(_ string, _ int)   {}
func (n *noopMonitor) AfterScan(_, _ int)           {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
