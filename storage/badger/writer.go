package badger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage"
)

// IndexWriter implements storage.IndexWriter for BadgerDB.
//
// Documents and postings go through a single badger.WriteBatch. The
// manifest is written in its own transaction only after the batch has been
// flushed, so a crash before Commit returns leaves an index without a
// commit marker.
type IndexWriter struct {
	backend     *Backend
	ownsBackend bool
	batch       *badger.WriteBatch
	schema      *schema.Schema
	nextID      core.ID
	seen        map[schema.Field]map[string]struct{}
	flushed     bool
	closed      bool
	logger      *slog.Logger
}

var _ storage.IndexWriter = (*IndexWriter)(nil)

// NewIndexWriter opens a fresh store in dir for pair. The directory should
// be empty; the importer always builds into a new staging directory.
func NewIndexWriter(dir string, pair core.LanguagePair, logger *slog.Logger) (*IndexWriter, error) {
	backend, err := OpenBackend(dir, ModeReadWrite, logger)
	if err != nil {
		return nil, err
	}
	w := newIndexWriter(backend, pair)
	w.ownsBackend = true
	return w, nil
}

func newIndexWriter(backend *Backend, pair core.LanguagePair) *IndexWriter {
	seen := make(map[schema.Field]map[string]struct{})
	for _, f := range schema.IndexedFields() {
		seen[f] = make(map[string]struct{})
	}
	return &IndexWriter{
		backend: backend,
		batch:   backend.NewWriteBatch(),
		schema:  schema.New(pair),
		nextID:  1,
		seen:    seen,
		logger:  backend.logger,
	}
}

// Count returns the number of documents added so far.
func (w *IndexWriter) Count() uint64 {
	return uint64(w.nextID - 1)
}

// Add indexes docs in order.
func (w *IndexWriter) Add(ctx context.Context, docs ...*core.Document) error {
	if w.closed {
		return storage.ErrWriterClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := core.ValidateDocument(doc); err != nil {
			return err
		}
		doc.Id = w.nextID
		if err := w.batch.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return fmt.Errorf("failed to store document %d: %w", doc.Id, err)
		}
		for _, field := range schema.IndexedFields() {
			if err := w.index(doc.Id, field, field.Value(doc)); err != nil {
				return err
			}
		}
		w.nextID++
	}
	return nil
}

func (w *IndexWriter) index(id core.ID, field schema.Field, text string) error {
	tokens := schema.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	// Group positions by term, keeping first-occurrence order.
	var terms []string
	positions := make(map[string][]uint32, len(tokens))
	for _, tok := range tokens {
		if _, ok := positions[tok.Term]; !ok {
			terms = append(terms, tok.Term)
		}
		positions[tok.Term] = append(positions[tok.Term], uint32(tok.Position))
	}
	for _, term := range terms {
		key := makePostingKey(field, term, id)
		if err := w.batch.Set(key, storage.MarshalPositions(positions[term])); err != nil {
			return fmt.Errorf("failed to store posting %q: %w", term, err)
		}
		if _, ok := w.seen[field][term]; ok {
			continue
		}
		w.seen[field][term] = struct{}{}
		if err := w.batch.Set(makeTermKey(field, term), nil); err != nil {
			return fmt.Errorf("failed to store term %q: %w", term, err)
		}
	}
	return nil
}

// Commit flushes the batch and writes the manifest. Documents in the
// manifest is overwritten with the number of documents added.
func (w *IndexWriter) Commit(ctx context.Context, manifest *core.Manifest) error {
	if w.closed {
		return storage.ErrWriterClosed
	}
	if err := ctx.Err(); err != nil {
		w.Rollback()
		return err
	}
	w.flushed = true
	if err := w.batch.Flush(); err != nil {
		w.Rollback()
		return fmt.Errorf("failed to flush index: %w", err)
	}
	manifest.Left = w.schema.Pair().Left
	manifest.Right = w.schema.Pair().Right
	manifest.Documents = w.Count()
	err := w.backend.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(manifestKey), storage.MarshalManifest(manifest))
	})
	if err != nil {
		w.Rollback()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	w.closed = true
	w.logger.Debug("index committed", "pair", w.schema.Pair().String(), "documents", manifest.Documents)
	if w.ownsBackend {
		return w.backend.Close()
	}
	return nil
}

// Rollback discards pending writes. The store itself is closed but its
// directory is left for the caller to remove.
func (w *IndexWriter) Rollback() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if !w.flushed {
		w.batch.Cancel()
	}
	if w.ownsBackend {
		return w.backend.Close()
	}
	return nil
}
