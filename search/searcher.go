package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage"
)

// Searcher resolves user expressions into matching dictionary documents.
type Searcher struct {
	reader  storage.IndexReader
	monitor SearchMonitor
	logger  *slog.Logger
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

// WithMonitor installs a SearchMonitor receiving callbacks for every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewSearcher creates a new searcher over reader.
func NewSearcher(reader storage.IndexReader, opts ...Option) (*Searcher, error) {
	if reader == nil {
		return nil, ErrIndexReaderRequired
	}

	s := &Searcher{
		reader:  reader,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// KeyQuery builds the typo-tolerant part of a search: every term must
// fuzzily match a term of the side's key field.
func KeyQuery(side schema.Side, terms []string, distance uint8) Query {
	if len(terms) == 0 {
		return nil
	}
	must := make([]Query, len(terms))
	for i, term := range terms {
		must[i] = &FuzzyTermQuery{Field: schema.KeyField(side), Term: term, Distance: distance}
	}
	return &BooleanQuery{Must: must}
}

// ExtraQuery builds the exact annotation part of a search.
func ExtraQuery(side schema.Side, terms []string) Query {
	return TermsQuery(schema.ExtraField(side), terms)
}

// Search returns the documents whose key field fuzzily contains every term
// of expression, or whose annotation field contains the expression as an
// exact term or phrase. Documents are ordered by ascending ID, which is
// import order. A blank expression yields no documents and runs no query.
func (s *Searcher) Search(ctx context.Context, side schema.Side, expression string, distance uint8) ([]*core.Document, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	s.monitor.Start(expression)

	terms := schema.Terms(norm.NFC.String(expression))
	if len(terms) == 0 {
		s.monitor.Finish(nil)
		return nil, nil
	}

	keyMatches, err := KeyQuery(side, terms, distance).Execute(ctx, s.reader)
	if err != nil {
		s.logger.Error("error executing key query", "expression", expression, "err", err)
		return nil, err
	}
	s.monitor.AfterKeyQuery(keyMatches.IDs())

	extraMatches, err := ExtraQuery(side, terms).Execute(ctx, s.reader)
	if err != nil {
		s.logger.Error("error executing annotation query", "expression", expression, "err", err)
		return nil, err
	}
	s.monitor.AfterExtraQuery(extraMatches.IDs())

	docs, err := s.Documents(ctx, keyMatches.Union(extraMatches))
	if err != nil {
		return nil, err
	}
	s.monitor.AfterDocumentRetrieval(docs)
	s.monitor.Finish(docs)
	return docs, nil
}

// Documents loads the members of set in ascending ID order. Documents that
// cannot be loaded are logged and left out.
func (s *Searcher) Documents(ctx context.Context, set DocSet) ([]*core.Document, error) {
	docs := make([]*core.Document, 0, len(set))
	for _, id := range set.IDs() {
		doc, err := s.reader.Document(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.logger.Warn("failed to load document", "id", id, "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
