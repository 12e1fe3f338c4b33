package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage"
)

// IndexReader implements storage.IndexReader for BadgerDB.
type IndexReader struct {
	backend     *Backend
	ownsBackend bool
	manifest    *core.Manifest
	schema      *schema.Schema

	mu    sync.Mutex
	terms map[schema.Field]*termDictionary
}

var _ storage.IndexReader = (*IndexReader)(nil)

// OpenIndex opens the committed index in dir read-only.
// Returns storage.ErrNotFound if dir doesn't exist and
// storage.ErrNotCommitted if it holds no manifest.
func OpenIndex(dir string, logger *slog.Logger) (*IndexReader, error) {
	backend, err := OpenBackend(dir, ModeReadOnly, logger)
	if err != nil {
		return nil, err
	}
	r, err := newIndexReader(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	r.ownsBackend = true
	return r, nil
}

func newIndexReader(backend *Backend) (*IndexReader, error) {
	manifest, err := readManifest(backend)
	if err != nil {
		return nil, err
	}
	return &IndexReader{
		backend:  backend,
		manifest: manifest,
		schema:   schema.New(manifest.Pair()),
		terms:    make(map[schema.Field]*termDictionary),
	}, nil
}

// ReadManifest returns the manifest of the index in dir without loading
// anything else.
func ReadManifest(dir string, logger *slog.Logger) (*core.Manifest, error) {
	backend, err := OpenBackend(dir, ModeReadOnly, logger)
	if err != nil {
		return nil, err
	}
	defer backend.Close()
	return readManifest(backend)
}

func readManifest(backend *Backend) (*core.Manifest, error) {
	var manifest *core.Manifest
	err := backend.WithTx(func(tx *badger.Txn) error {
		data, err := get(tx, []byte(manifestKey))
		if err != nil {
			return err
		}
		manifest, err = storage.UnmarshalManifest(data)
		return err
	}, false)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, storage.ErrNotCommitted
	}
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// Manifest returns the index manifest.
func (r *IndexReader) Manifest() *core.Manifest {
	return r.manifest
}

// Schema returns the index schema.
func (r *IndexReader) Schema() *schema.Schema {
	return r.schema
}

// Terms returns the term dictionary of field, loading it on first use.
func (r *IndexReader) Terms(field schema.Field) (storage.TermDictionary, error) {
	if !field.Has(schema.Indexed) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotIndexed, r.schema.Name(field))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if dict, ok := r.terms[field]; ok {
		return dict, nil
	}
	dict, err := loadTermDictionary(r.backend, field)
	if err != nil {
		return nil, err
	}
	r.backend.logger.Debug("term dictionary loaded", "field", r.schema.Name(field), "terms", dict.Len())
	r.terms[field] = dict
	return dict, nil
}

// Postings returns the postings of term in field ordered by document ID.
func (r *IndexReader) Postings(ctx context.Context, field schema.Field, term string) ([]storage.Posting, error) {
	if !field.Has(schema.Indexed) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotIndexed, r.schema.Name(field))
	}
	var postings []storage.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialPostingKey(field, term)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			id, ok := parsePostingID(item.Key())
			if !ok {
				return storage.ErrTruncatedData
			}
			var positions []uint32
			err := item.Value(func(val []byte) error {
				var err error
				positions, err = storage.UnmarshalPositions(val)
				return err
			})
			if err != nil {
				return err
			}
			postings = append(postings, storage.Posting{ID: id, Positions: positions})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

// Document retrieves a stored document by ID.
func (r *IndexReader) Document(ctx context.Context, id core.ID) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		data, err := get(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		doc, err = storage.UnmarshalDocument(data)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Close releases the store.
func (r *IndexReader) Close() error {
	if !r.ownsBackend || r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
