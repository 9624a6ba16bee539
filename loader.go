package policyquery

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
)

// LoadDocuments reads every .txt file in dir as a policy document, in
// sorted filename order. The document name is the upper-cased file stem,
// so phd_seas.txt becomes PHD_SEAS. A missing directory or an unreadable
// file is logged and skipped; the remaining documents still load.
func LoadDocuments(dir string, logger *slog.Logger) []core.Document {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("policy document directory unavailable", "dir", dir, "err", err)
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	documents := make([]core.Document, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable policy document", "path", path, "err", err)
			continue
		}
		documents = append(documents, core.Document{
			Name: strings.ToUpper(strings.TrimSuffix(name, ".txt")),
			Text: string(data),
		})
	}
	return documents
}
