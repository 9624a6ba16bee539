package conflicts

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
)

// Registry holds the precomputed list of rule conflicts and the precedence
// framework. It is built once at load time and read-only afterwards.
type Registry struct {
	entries   []core.ConflictEntry
	framework map[string]any
}

// registryFile is the on-disk JSON shape.
type registryFile struct {
	Conflicts           []core.ConflictEntry `json:"conflicts"`
	PrecedenceFramework map[string]any       `json:"precedence_framework"`
}

// NewRegistry creates a registry from already-loaded entries.
func NewRegistry(entries []core.ConflictEntry, framework map[string]any) *Registry {
	return &Registry{entries: entries, framework: framework}
}

// Load reads the conflict registry from a JSON file. A missing or malformed
// file is not an error: it yields an empty registry, so the system degrades
// to "no known conflicts" rather than failing startup.
func Load(path string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("conflict registry unavailable, assuming no known conflicts",
			"path", path, "err", err)
		return &Registry{}
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("conflict registry malformed, assuming no known conflicts",
			"path", path, "err", err)
		return &Registry{}
	}

	return &Registry{
		entries:   file.Conflicts,
		framework: file.PrecedenceFramework,
	}
}

// Len returns the number of registered conflict entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns all registered conflicts.
func (r *Registry) Entries() []core.ConflictEntry {
	return r.entries
}

// CheckConflicts returns every registered conflict whose rule-id set
// intersects the given ids. Matching is case-insensitive and tolerates a
// leading RULE: qualifier on either side, so the result is invariant under
// case permutation of the input.
func (r *Registry) CheckConflicts(ruleIDs []string) []core.ConflictEntry {
	if len(ruleIDs) == 0 || len(r.entries) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(ruleIDs))
	for _, id := range ruleIDs {
		want[core.NormalizeRuleID(id)] = struct{}{}
	}

	var found []core.ConflictEntry
	for _, entry := range r.entries {
		for _, rule := range entry.Rules {
			if _, ok := want[core.NormalizeRuleID(rule.RuleID)]; ok {
				found = append(found, entry)
				break
			}
		}
	}
	return found
}

// PrecedenceFramework returns the precedence metadata as loaded. The
// structure is opaque to this package; callers render it.
func (r *Registry) PrecedenceFramework() map[string]any {
	return r.framework
}
