package storage

import (
	"context"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
)

// Posting lists the positions of one term inside one document.
// Positions are ascending token offsets as produced by schema.Tokenize.
type Posting struct {
	ID        core.ID
	Positions []uint32
}

// TermDictionary is the set of distinct terms of one indexed field.
type TermDictionary interface {
	// Contains reports whether term occurs in the field.
	Contains(term string) bool

	// VisitPrefix calls fn for every term starting with prefix, including
	// prefix itself, in lexicographic order. A non-nil error from fn stops
	// the walk and is returned.
	VisitPrefix(prefix string, fn func(term string) error) error

	// Visit calls fn for every term in lexicographic order.
	Visit(fn func(term string) error) error

	// Len returns the number of distinct terms.
	Len() int
}

// IndexWriter builds a new index. It is not safe for concurrent use.
type IndexWriter interface {
	// Add assigns sequential IDs to docs, starting at 1, and indexes them.
	// The assigned ID is written back to each document.
	Add(ctx context.Context, docs ...*core.Document) error

	// Commit flushes all pending writes, then stores manifest as the
	// commit marker. The writer is closed afterwards.
	Commit(ctx context.Context, manifest *core.Manifest) error

	// Rollback discards the session. Calling it after Commit is a no-op.
	Rollback() error

	// Count returns the number of documents added so far.
	Count() uint64
}

// IndexReader gives read access to a committed index.
// Implementations must be safe for concurrent use.
type IndexReader interface {
	// Manifest returns the commit marker written by the importer.
	Manifest() *core.Manifest

	// Schema returns the schema the index was built with.
	Schema() *schema.Schema

	// Terms returns the term dictionary of an indexed field.
	// Returns ErrNotIndexed for stored-only fields.
	Terms(field schema.Field) (TermDictionary, error)

	// Postings returns the postings of term in field ordered by document ID.
	// An unknown term yields an empty slice.
	Postings(ctx context.Context, field schema.Field, term string) ([]Posting, error)

	// Document retrieves a stored document.
	// Returns ErrNotFound if the document doesn't exist.
	Document(ctx context.Context, id core.ID) (*core.Document, error)

	// Close releases the underlying store.
	Close() error
}
