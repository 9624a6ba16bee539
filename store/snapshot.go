package store

import (
	"fmt"
	"os"

	"github.com/mus-format/mus-go/varint"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
	"github.com/AnushkaBhatnagar/Policy-Query-System/index"
)

// formatVersion identifies the snapshot file layout. Bump on any change to
// the serialized shapes in core.
const formatVersion = 1

// WriteSnapshot serializes an index snapshot to a single flat file:
// format version, the source documents with header metadata and
// fingerprints, then every rule record in encounter order.
func WriteSnapshot(path string, snapshot *index.Snapshot) error {
	docs := snapshot.Documents()
	rules := snapshot.All()

	size := varint.Int.Size(formatVersion)
	size += varint.Int.Size(len(docs))
	for _, d := range docs {
		size += core.DocumentMUS.Size(d)
	}
	size += varint.Int.Size(len(rules))
	for _, r := range rules {
		size += core.RuleRecordMUS.Size(*r)
	}

	bs := make([]byte, size)
	n := varint.Int.Marshal(formatVersion, bs)
	n += varint.Int.Marshal(len(docs), bs[n:])
	for _, d := range docs {
		n += core.DocumentMUS.Marshal(d, bs[n:])
	}
	n += varint.Int.Marshal(len(rules), bs[n:])
	for _, r := range rules {
		n += core.RuleRecordMUS.Marshal(*r, bs[n:])
	}

	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// ReadSnapshot restores an index snapshot from a compiled snapshot file.
func ReadSnapshot(path string) (*index.Snapshot, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	version, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %w", ErrCorruptSnapshot, err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: file version %d, supported version %d",
			ErrUnsupportedVersion, version, formatVersion)
	}

	docCount, n1, err := varint.Int.Unmarshal(bs[n:])
	if err != nil || docCount < 0 {
		return nil, fmt.Errorf("%w: document count", ErrCorruptSnapshot)
	}
	n += n1

	docs := make([]core.Document, 0, docCount)
	for i := 0; i < docCount; i++ {
		doc, n1, err := core.DocumentMUS.Unmarshal(bs[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrCorruptSnapshot, i, err)
		}
		n += n1
		docs = append(docs, doc)
	}

	ruleCount, n1, err := varint.Int.Unmarshal(bs[n:])
	if err != nil || ruleCount < 0 {
		return nil, fmt.Errorf("%w: rule count", ErrCorruptSnapshot)
	}
	n += n1

	rules := make([]*core.RuleRecord, 0, ruleCount)
	for i := 0; i < ruleCount; i++ {
		rule, n1, err := core.RuleRecordMUS.Unmarshal(bs[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %w", ErrCorruptSnapshot, i, err)
		}
		n += n1
		rules = append(rules, &rule)
	}

	return index.NewSnapshot(docs, rules), nil
}

// Stale reports whether a restored snapshot no longer matches the given
// source documents, comparing names and content fingerprints in order.
func Stale(snapshot *index.Snapshot, documents []core.Document) bool {
	have := snapshot.Documents()
	if len(have) != len(documents) {
		return true
	}
	for i, doc := range documents {
		if have[i].Name != doc.Name {
			return true
		}
		if have[i].Fingerprint != core.FingerprintOf(doc.Text) {
			return true
		}
	}
	return false
}
