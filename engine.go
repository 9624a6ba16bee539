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


package policyquery

import (
	"fmt"
	"log/slog"

	"github.com/AnushkaBhatnagar/Policy-Query-System/conflicts"
	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
	"github.com/AnushkaBhatnagar/Policy-Query-System/index"
	"github.com/AnushkaBhatnagar/Policy-Query-System/search"
	"github.com/AnushkaBhatnagar/Policy-Query-System/store"
)

// Engine wires the document loader, rule index, searcher, and conflict
// registry into the four public policy-query operations. Construction loads
// everything once; Rebuild reloads and atomically swaps the published index.
type Engine struct {
	docsDir       string
	conflictsPath string
	snapshotPath  string
	handle        *index.Handle
	registry      *conflicts.Registry
	searcher      *search.Searcher
	builder       *index.Builder
	logger        *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger       *slog.Logger
	snapshotPath string
	poolSize     int
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSnapshotFile points the engine at a compiled snapshot file. When the
// file exists and its fingerprints still match the source documents the
// engine starts from it instead of reparsing; otherwise it parses the
// sources as usual.
func WithSnapshotFile(path string) EngineOption {
	return func(o *engineOptions) {
		o.snapshotPath = path
	}
}

// WithParsePoolSize sets the worker pool size used when parsing documents.
func WithParsePoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// NewEngine loads the policy documents from docsDir and the conflict
// registry from conflictsPath and builds the initial index. Missing or
// malformed inputs degrade to an empty or partial index; construction fails
// only on resource errors, never on bad document content.
func NewEngine(docsDir, conflictsPath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	var builderOpts []index.Option
	builderOpts = append(builderOpts, index.WithLogger(options.logger))
	if options.poolSize > 0 {
		builderOpts = append(builderOpts, index.WithPoolSize(options.poolSize))
	}
	builder, err := index.NewBuilder(builderOpts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		docsDir:       docsDir,
		conflictsPath: conflictsPath,
		snapshotPath:  options.snapshotPath,
		builder:       builder,
		logger:        options.logger,
	}

	snapshot := e.loadSnapshot()
	e.handle = index.NewHandle(snapshot)
	e.registry = conflicts.Load(conflictsPath, e.logger)

	searcher, err := search.NewSearcher(e.handle, search.WithLogger(e.logger))
	if err != nil {
		builder.Release()
		return nil, err
	}
	e.searcher = searcher

	e.logger.Info("policy engine ready",
		"documents", len(snapshot.Documents()),
		"rules", snapshot.Len(),
		"duplicateIds", snapshot.Duplicates(),
		"conflicts", e.registry.Len())

	return e, nil
}

// loadSnapshot builds an index snapshot from the source documents, or
// restores the compiled snapshot file when one is configured and still
// matches the sources.
func (e *Engine) loadSnapshot() *index.Snapshot {
	documents := LoadDocuments(e.docsDir, e.logger)

	if e.snapshotPath != "" {
		restored, err := store.ReadSnapshot(e.snapshotPath)
		switch {
		case err != nil:
			e.logger.Warn("compiled snapshot unavailable, parsing sources",
				"path", e.snapshotPath, "err", err)
		case store.Stale(restored, documents):
			e.logger.Warn("compiled snapshot stale, parsing sources",
				"path", e.snapshotPath)
		default:
			e.logger.Info("index restored from compiled snapshot",
				"path", e.snapshotPath, "rules", restored.Len())
			return restored
		}
	}

	return e.builder.Build(documents)
}

// SearchResponse is the result envelope of a policy search.
type SearchResponse struct {
	Results           []core.SearchResult `json:"results"`
	ConflictsDetected bool                `json:"conflicts_detected"`
	Conflicts         []core.ConflictEntry `json:"conflicts,omitempty"`
}

// Search scores all indexed rules against the query, optionally filtered by
// department, and cross-references the result set against the conflict
// registry. maxResults <= 0 means the default of 5.
func (e *Engine) Search(query, department string, maxResults int) SearchResponse {
	results := e.searcher.Search(query, department, maxResults)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.RuleID)
	}
	found := e.registry.CheckConflicts(ids)

	return SearchResponse{
		Results:           results,
		ConflictsDetected: len(found) > 0,
		Conflicts:         found,
	}
}

// GetRule retrieves one rule by id together with its registered conflicts.
// The id may be supplied in any case and with or without the RULE:
// qualifier. A miss returns core.ErrRuleNotFound; callers branch on it,
// nothing is raised.
func (e *Engine) GetRule(ruleID string) (*core.RuleRecord, []core.ConflictEntry, error) {
	rule, ok := e.handle.Current().Lookup(ruleID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrRuleNotFound, ruleID)
	}
	return rule, e.registry.CheckConflicts([]string{rule.ID}), nil
}

// ConflictReport is the result envelope of a conflict check.
type ConflictReport struct {
	ConflictsFound int                  `json:"conflicts_found"`
	Conflicts      []core.ConflictEntry `json:"conflicts"`
}

// CheckConflicts returns every registered conflict involving any of the
// given rule ids.
func (e *Engine) CheckConflicts(ruleIDs []string) ConflictReport {
	found := e.registry.CheckConflicts(ruleIDs)
	return ConflictReport{
		ConflictsFound: len(found),
		Conflicts:      found,
	}
}

// PrecedenceFramework returns the precedence hierarchy and override metadata
// from the conflict registry, carried opaquely.
func (e *Engine) PrecedenceFramework() map[string]any {
	return e.registry.PrecedenceFramework()
}

// Rebuild reloads the documents and the conflict registry and atomically
// swaps the published index. In-flight searches keep the snapshot they
// started with.
func (e *Engine) Rebuild() error {
	documents := LoadDocuments(e.docsDir, e.logger)
	snapshot := e.builder.Build(documents)
	registry := conflicts.Load(e.conflictsPath, e.logger)

	e.registry = registry
	e.handle.Swap(snapshot)

	e.logger.Info("policy engine rebuilt",
		"documents", len(snapshot.Documents()),
		"rules", snapshot.Len(),
		"duplicateIds", snapshot.Duplicates(),
		"conflicts", registry.Len())
	return nil
}

// Compile writes the current index snapshot to a compiled flat file that
// later engine instances can start from.
func (e *Engine) Compile(path string) error {
	return store.WriteSnapshot(path, e.handle.Current())
}

// Stats describes the currently published index and registry.
type Stats struct {
	Documents    int `json:"documents"`
	Rules        int `json:"rules"`
	DuplicateIDs int `json:"duplicate_ids"`
	Conflicts    int `json:"conflicts"`
}

// Stats reports index and registry sizes.
func (e *Engine) Stats() Stats {
	snapshot := e.handle.Current()
	return Stats{
		Documents:    len(snapshot.Documents()),
		Rules:        snapshot.Len(),
		DuplicateIDs: snapshot.Duplicates(),
		Conflicts:    e.registry.Len(),
	}
}

// Close releases engine resources.
func (e *Engine) Close() error {
	e.builder.Release()
	return nil
}
