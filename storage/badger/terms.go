package badger

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage"
)

// present marks a term in the trie; patricia treats a nil item as absent.
var present = struct{}{}

// termDictionary is an in-memory patricia trie over the terms of one field.
type termDictionary struct {
	trie  *patricia.Trie
	count int
}

var _ storage.TermDictionary = (*termDictionary)(nil)

func newTermDictionary() *termDictionary {
	return &termDictionary{trie: patricia.NewTrie()}
}

func (d *termDictionary) insert(term string) {
	if d.trie.Insert(patricia.Prefix(term), present) {
		d.count++
	}
}

// Contains reports whether term is in the dictionary.
func (d *termDictionary) Contains(term string) bool {
	return d.trie.Get(patricia.Prefix(term)) != nil
}

// VisitPrefix walks every term that starts with prefix.
func (d *termDictionary) VisitPrefix(prefix string, fn func(term string) error) error {
	return d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		return fn(string(p))
	})
}

// Visit walks every term.
func (d *termDictionary) Visit(fn func(term string) error) error {
	return d.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		return fn(string(p))
	})
}

// Len returns the number of terms.
func (d *termDictionary) Len() int {
	return d.count
}

// loadTermDictionary reads the term keys of field into a trie.
func loadTermDictionary(backend *Backend, field schema.Field) (*termDictionary, error) {
	dict := newTermDictionary()
	prefix := makePartialTermKey(field)
	err := backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			dict.insert(string(key[len(prefix):]))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return dict, nil
}
