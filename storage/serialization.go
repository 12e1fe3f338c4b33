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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/dictcc/core"
)

// documentMUS encodes a Document as its ID followed by the eight field
// strings in schema order.
var documentMUS = documentSer{}

type documentSer struct{}

func (documentSer) fields(d *core.Document) [8]*string {
	return [8]*string{
		&d.KeyLeft, &d.KeyRight, &d.ExtraLeft, &d.ExtraRight,
		&d.LangLeft, &d.LangRight, &d.WordClasses, &d.SubjectLabels,
	}
}

func (s documentSer) Marshal(d core.Document, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(d.Id), bs)
	for _, f := range s.fields(&d) {
		n += ord.String.Marshal(*f, bs[n:])
	}
	return n
}

func (s documentSer) Unmarshal(bs []byte) (d core.Document, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return d, n, err
	}
	d.Id = core.ID(id)
	for _, f := range s.fields(&d) {
		var m int
		*f, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return d, n, err
		}
	}
	return d, n, nil
}

func (s documentSer) Size(d core.Document) (size int) {
	size = varint.Uint64.Size(uint64(d.Id))
	for _, f := range s.fields(&d) {
		size += ord.String.Size(*f)
	}
	return size
}

// manifestMUS encodes a Manifest. ImportedAt is stored as Unix microseconds.
var manifestMUS = manifestSer{}

type manifestSer struct{}

func (manifestSer) Marshal(m core.Manifest, bs []byte) (n int) {
	n = ord.String.Marshal(m.Left, bs)
	n += ord.String.Marshal(m.Right, bs[n:])
	n += varint.Uint64.Marshal(m.Documents, bs[n:])
	n += varint.Uint64.Marshal(m.Skipped, bs[n:])
	n += ord.String.Marshal(m.SourceName, bs[n:])
	n += ord.String.Marshal(m.SourceChecksum, bs[n:])
	n += varint.Uint64.Marshal(uint64(m.ImportedAt.UnixMicro()), bs[n:])
	return n
}

func (manifestSer) Unmarshal(bs []byte) (m core.Manifest, n int, err error) {
	var k int
	step := func(f func([]byte) (int, error)) {
		if err != nil {
			return
		}
		k, err = f(bs[n:])
		n += k
	}
	str := func(dst *string) func([]byte) (int, error) {
		return func(b []byte) (int, error) {
			v, k, err := ord.String.Unmarshal(b)
			*dst = v
			return k, err
		}
	}
	u64 := func(dst *uint64) func([]byte) (int, error) {
		return func(b []byte) (int, error) {
			v, k, err := varint.Uint64.Unmarshal(b)
			*dst = v
			return k, err
		}
	}
	var micros uint64
	step(str(&m.Left))
	step(str(&m.Right))
	step(u64(&m.Documents))
	step(u64(&m.Skipped))
	step(str(&m.SourceName))
	step(str(&m.SourceChecksum))
	step(u64(&micros))
	if err != nil {
		return m, n, err
	}
	m.ImportedAt = time.UnixMicro(int64(micros)).UTC()
	return m, n, nil
}

func (manifestSer) Size(m core.Manifest) int {
	return ord.String.Size(m.Left) +
		ord.String.Size(m.Right) +
		varint.Uint64.Size(m.Documents) +
		varint.Uint64.Size(m.Skipped) +
		ord.String.Size(m.SourceName) +
		ord.String.Size(m.SourceChecksum) +
		varint.Uint64.Size(uint64(m.ImportedAt.UnixMicro()))
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, documentMUS.Size(*doc))
	documentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := documentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: document: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *core.Manifest) []byte {
	buf := make([]byte, manifestMUS.Size(*manifest))
	manifestMUS.Marshal(*manifest, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*core.Manifest, error) {
	manifest, _, err := manifestMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", ErrSerializationFailed, err)
	}
	return &manifest, nil
}

// MarshalPositions delta-encodes ascending token positions as varints.
func MarshalPositions(positions []uint32) []byte {
	size := varint.Uint64.Size(uint64(len(positions)))
	prev := uint32(0)
	for _, p := range positions {
		size += varint.Uint64.Size(uint64(p - prev))
		prev = p
	}
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(len(positions)), buf)
	prev = 0
	for _, p := range positions {
		n += varint.Uint64.Marshal(uint64(p-prev), buf[n:])
		prev = p
	}
	return buf
}

// UnmarshalPositions decodes the output of MarshalPositions.
func UnmarshalPositions(data []byte) ([]uint32, error) {
	count, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: positions: %w", ErrSerializationFailed, err)
	}
	// Every position takes at least one byte.
	if count > uint64(len(data)-n) {
		return nil, ErrTruncatedData
	}
	positions := make([]uint32, count)
	prev := uint32(0)
	for i := range positions {
		delta, k, err := varint.Uint64.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: positions: %w", ErrSerializationFailed, err)
		}
		n += k
		prev += uint32(delta)
		positions[i] = prev
	}
	return positions, nil
}
