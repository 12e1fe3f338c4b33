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


package ingestion

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/entry"
)

// result is the outcome of processing one row. Exactly one of doc and err
// is set.
type result struct {
	row row
	doc *core.Document
	err error
}

// processor turns source rows into documents on a worker pool.
type processor struct {
	pool *ants.Pool
	// swap is set when the header's left language is stored on the right
	// side of the canonical pair.
	swap bool
}

// process decodes and normalizes rows concurrently. Results keep the
// order of rows.
func (p *processor) process(rows []row) []result {
	results := make([]result, len(rows))
	var wg sync.WaitGroup
	for i, r := range rows {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = p.processRow(r)
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool closed or overloaded; do the work inline.
			task()
		}
	}
	wg.Wait()
	return results
}

func (p *processor) processRow(r row) result {
	raw, err := decodeRow(r)
	if err != nil {
		return result{row: r, err: err}
	}
	if p.swap {
		raw.Left, raw.Right = raw.Right, raw.Left
	}
	if raw.Left == "" && raw.Right == "" {
		return result{row: r, err: fmt.Errorf("line %d: %w", r.line, core.ErrEmptyDocument)}
	}
	left, err := entry.Normalize(raw.Left, true)
	if err != nil {
		return result{row: r, err: fmt.Errorf("line %d: %w", r.line, err)}
	}
	right, err := entry.Normalize(raw.Right, true)
	if err != nil {
		return result{row: r, err: fmt.Errorf("line %d: %w", r.line, err)}
	}
	return result{row: r, doc: &core.Document{
		KeyLeft:       left.Text,
		KeyRight:      right.Text,
		ExtraLeft:     left.Extra,
		ExtraRight:    right.Extra,
		LangLeft:      raw.Left,
		LangRight:     raw.Right,
		WordClasses:   raw.WordClasses,
		SubjectLabels: raw.SubjectLabels,
	}}
}
