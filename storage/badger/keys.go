package badger

import (
	"encoding/binary"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
)

// Key prefixes for different data types
const (
	documentPrefix = "doc:"
	postingPrefix  = "pst:"
	termPrefix     = "trm:"
	manifestKey    = "meta:manifest"
)

// termSeparator ends the term inside a posting key. Analyzed terms consist
// of letters and digits only, so it never occurs inside one.
const termSeparator = 0x00

// makeDocumentKey generates a key for a document by ID.
// Format: prefix:id (8 bytes BigEndian)
func makeDocumentKey(id core.ID) []byte {
	buf := make([]byte, len(documentPrefix)+8)
	offset := copy(buf, documentPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePostingKey generates a composite key for one posting.
// Format: prefix:field:term:0x00:docID
func makePostingKey(field schema.Field, term string, id core.ID) []byte {
	prefix := makePartialPostingKey(field, term)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so postings iterate in ID order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialPostingKey generates the prefix shared by all postings of term.
// Format: prefix:field:term:0x00
func makePartialPostingKey(field schema.Field, term string) []byte {
	buf := make([]byte, len(postingPrefix)+1+len(term)+1)
	offset := copy(buf, postingPrefix)
	buf[offset] = byte(field)
	offset++
	offset += copy(buf[offset:], term)
	buf[offset] = termSeparator
	return buf
}

// parsePostingID extracts the document ID from the tail of a posting key.
func parsePostingID(key []byte) (core.ID, bool) {
	if len(key) < len(postingPrefix)+1+1+8 {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:])), true
}

// makeTermKey generates the term dictionary key for term in field.
// Format: prefix:field:term
func makeTermKey(field schema.Field, term string) []byte {
	prefix := makePartialTermKey(field)
	buf := make([]byte, len(prefix)+len(term))
	offset := copy(buf, prefix)
	copy(buf[offset:], term)
	return buf
}

// makePartialTermKey generates the prefix of all dictionary keys of field.
func makePartialTermKey(field schema.Field) []byte {
	buf := make([]byte, len(termPrefix)+1)
	offset := copy(buf, termPrefix)
	buf[offset] = byte(field)
	return buf
}
