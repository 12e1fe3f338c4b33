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


// Package storage defines the index capability used by dictcc.
//
// An index holds the documents of one language pair together with an
// inverted index over the schema's indexed fields. The contracts here
// decouple the importer, searcher and completer from the BadgerDB backend
// in storage/badger.
//
// # Write protocol
//
// An IndexWriter is a single, sequential session: documents are added in
// import order, then the session is committed exactly once. Commit writes
// the manifest last; an index without a manifest is incomplete and cannot
// be opened for reading.
//
//	w, err := badger.NewIndexWriter(dir, pair)
//	if err != nil {
//	    return err
//	}
//	defer w.Rollback()
//	if err := w.Add(ctx, docs...); err != nil {
//	    return err
//	}
//	return w.Commit(ctx, manifest)
//
// # Reading
//
// An IndexReader is immutable once opened and safe for concurrent use.
// Term dictionaries are loaded lazily per field.
//
//	r, err := badger.OpenIndex(dir)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	postings, err := r.Postings(ctx, schema.KeyLeft, "haus")
package storage
