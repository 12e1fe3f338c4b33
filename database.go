// Copyright 2025 Poiesic Systems
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


package dictcc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/dictcc/completion"
	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/ranking"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/search"
	"github.com/poiesic/dictcc/storage"
	"github.com/poiesic/dictcc/storage/badger"
)

// Database is an opened, read-only language pair index.
type Database struct {
	reader storage.IndexReader
	logger *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*Database)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(db *Database) {
		if logger == nil {
			logger = slog.Default()
		}
		db.logger = logger
	}
}

// OpenDatabase opens the committed index in dir.
func OpenDatabase(dir string, opts ...DatabaseOption) (*Database, error) {
	db := &Database{logger: slog.Default()}
	for _, opt := range opts {
		opt(db)
	}
	reader, err := badger.OpenIndex(dir, db.logger)
	if err != nil {
		return nil, err
	}
	db.reader = reader
	return db, nil
}

func (db *Database) Close() error {
	if err := db.reader.Close(); err != nil {
		db.logger.Error("error closing index", "err", err)
		return err
	}
	return nil
}

// Pair returns the canonical language pair of the index.
func (db *Database) Pair() core.LanguagePair {
	return db.reader.Schema().Pair()
}

func (db *Database) Manifest() *core.Manifest {
	return db.reader.Manifest()
}

func (db *Database) Reader() storage.IndexReader {
	return db.reader
}

// Side resolves a source language to the side of the index it is stored on.
func (db *Database) Side(from string) (schema.Side, error) {
	return db.reader.Schema().Resolve(from)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.reader, append([]search.Option{search.WithLogger(db.logger)}, opts...)...)
}

func (db *Database) NewCompleter(side schema.Side, opts ...completion.Option) (*completion.Completer, error) {
	return completion.NewCompleter(db.reader, side, append([]completion.Option{completion.WithLogger(db.logger)}, opts...)...)
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	distance      uint8
	limit         int
	minSimilarity int
	monitor       search.SearchMonitor
}

// WithDistance sets the fuzzy edit distance of lookups. Default is 0.
func WithDistance(distance uint8) SessionOption {
	return func(o *sessionOptions) { o.distance = distance }
}

// WithLimit keeps only the n best translations. Default is unlimited.
func WithLimit(n int) SessionOption {
	return func(o *sessionOptions) { o.limit = n }
}

// WithMinSimilarity drops translations scoring below min (0-1000).
func WithMinSimilarity(min int) SessionOption {
	return func(o *sessionOptions) { o.minSimilarity = min }
}

// WithSearchMonitor observes every lookup of the session.
func WithSearchMonitor(monitor search.SearchMonitor) SessionOption {
	return func(o *sessionOptions) { o.monitor = monitor }
}

// Session translates from one language of the pair into the other. The
// direction is fixed when the session is created.
type Session struct {
	db        *Database
	side      schema.Side
	distance  uint8
	searcher  *search.Searcher
	ranker    *ranking.Ranker
	completer *completion.Completer
}

// NewSession starts a session translating from the language from. It fails
// with core.ErrLanguageNotAvailable when from is not part of the pair.
func (db *Database) NewSession(from string, opts ...SessionOption) (*Session, error) {
	side, err := db.Side(from)
	if err != nil {
		return nil, err
	}
	o := &sessionOptions{}
	for _, opt := range opts {
		opt(o)
	}

	searcher, err := db.NewSearcher(search.WithMonitor(o.monitor))
	if err != nil {
		return nil, err
	}
	ranker, err := ranking.NewRanker(
		ranking.WithLimit(o.limit),
		ranking.WithMinSimilarity(o.minSimilarity),
		ranking.WithLogger(db.logger),
	)
	if err != nil {
		return nil, err
	}
	completer, err := db.NewCompleter(side)
	if err != nil {
		return nil, err
	}
	return &Session{
		db:        db,
		side:      side,
		distance:  o.distance,
		searcher:  searcher,
		ranker:    ranker,
		completer: completer,
	}, nil
}

// From returns the source language.
func (s *Session) From() string {
	return s.db.reader.Schema().Language(s.side)
}

// To returns the target language.
func (s *Session) To() string {
	return s.db.reader.Schema().Language(s.side.Opposite())
}

// Lookup searches for query and returns ranked translations.
func (s *Session) Lookup(ctx context.Context, query string) ([]core.Translation, error) {
	docs, err := s.searcher.Search(ctx, s.side, query, s.distance)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	results := s.ranker.Rank(docs, query, s.side)
	return ranking.Translations(results, s.side), nil
}

// Complete proposes source phrases extending partial.
func (s *Session) Complete(ctx context.Context, partial string) ([]string, error) {
	return s.completer.Complete(ctx, partial)
}

// CompletionSource exposes completion to line editors.
func (s *Session) CompletionSource(ctx context.Context) completion.Source {
	return s.completer.Source(ctx)
}
