package index

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/AnushkaBhatnagar/Policy-Query-System/core"
	"github.com/AnushkaBhatnagar/Policy-Query-System/parser"
)

// Builder parses documents into index snapshots. Documents are parsed
// concurrently on a worker pool; the merge stays in document order so the
// duplicate-id overwrite rule is deterministic.
type Builder struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}

	return b, nil
}

// Build parses every document and assembles a fresh snapshot. Rules are
// keyed by their literal id string as written in the source; when the same
// id appears in two documents the later one overwrites the earlier, which is
// logged as a warning and counted on the snapshot.
func (b *Builder) Build(documents []core.Document) *Snapshot {
	parsed := make([]*parser.Document, len(documents))

	var wg sync.WaitGroup
	for i := range documents {
		wg.Add(1)
		text := documents[i].Text
		task := func() {
			defer wg.Done()
			parsed[i] = parser.Parse(text)
		}
		if err := b.pool.Submit(task); err != nil {
			// Pool unavailable (released or overloaded): parse inline.
			task()
		}
	}
	wg.Wait()

	var rules []*core.RuleRecord
	docs := make([]core.Document, len(documents))
	seen := make(map[string]string, 64) // id -> document that first defined it

	for i, doc := range documents {
		docs[i] = doc
		docs[i].Jurisdiction = parsed[i].Jurisdiction
		docs[i].Precedence = parsed[i].Precedence
		docs[i].PrecedenceName = parsed[i].PrecedenceName
		docs[i].Fingerprint = core.FingerprintOf(doc.Text)

		for _, pr := range parsed[i].Rules {
			if first, dup := seen[pr.ID]; dup {
				b.logger.Warn("duplicate rule id, later document overwrites",
					"ruleId", pr.ID, "firstDocument", first, "document", doc.Name)
			} else {
				seen[pr.ID] = doc.Name
			}
			rules = append(rules, &core.RuleRecord{
				ID:       pr.ID,
				Content:  pr.Content,
				Document: doc.Name,
				RawBlock: pr.RawBlock,
				Tags:     pr.Tags,
			})
		}

		b.logger.Debug("parsed document",
			"document", doc.Name, "rules", len(parsed[i].Rules),
			"jurisdiction", docs[i].Jurisdiction)
	}

	return NewSnapshot(docs, rules)
}

// Release releases the worker pool. The builder should not be used after
// calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
