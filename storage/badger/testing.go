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


package badger

import (
	"context"
	"log/slog"

	"github.com/poiesic/dictcc/core"
)

// NewMemoryIndex builds a committed in-memory index for pair from docs and
// returns a reader over it. Intended for tests; the caller must close the
// reader. IDs are assigned to docs in order.
func NewMemoryIndex(pair core.LanguagePair, docs ...*core.Document) (*IndexReader, error) {
	backend, err := OpenBackend("", ModeInMemory, slog.Default())
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	w := newIndexWriter(backend, pair)
	if err := w.Add(ctx, docs...); err != nil {
		w.Rollback()
		backend.Close()
		return nil, err
	}
	if err := w.Commit(ctx, &core.Manifest{SourceName: "memory"}); err != nil {
		backend.Close()
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
