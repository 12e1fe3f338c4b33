package core

import (
	"hash"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID identifies a document inside one language-pair index.
// IDs are assigned sequentially in import order, starting at 1.
type ID uint64

// RawEntry is one record of a dictionary source file after entity decoding
// and canonical composition.
type RawEntry struct {
	Left          string
	Right         string
	WordClasses   string // Optional, e.g. "noun"
	SubjectLabels string // Optional, e.g. "[zool.]"
}

// NormalizedEntry is the searchable form of one side of an entry.
type NormalizedEntry struct {
	Text  string // Core phrase, round groups kept verbatim
	Extra string // Angle-bracket annotations
}

// Document is the persisted form of one dictionary entry.
// The key and extra fields are derived from LangLeft/LangRight at import
// time; the lang fields hold the original display text.
type Document struct {
	Id            ID
	KeyLeft       string
	KeyRight      string
	ExtraLeft     string
	ExtraRight    string
	LangLeft      string
	LangRight     string
	WordClasses   string
	SubjectLabels string
}

// Manifest describes a committed import. Its presence marks an index as
// complete.
type Manifest struct {
	Left           string
	Right          string
	Documents      uint64    // Number of documents committed
	Skipped        uint64    // Rows skipped during import
	SourceName     string    // Base name of the imported file
	SourceChecksum string    // Hex BLAKE2b-256 of the source file
	ImportedAt     time.Time // When the import was committed
}

// Pair returns the language pair the manifest was written for.
func (m *Manifest) Pair() LanguagePair {
	return LanguagePair{Left: m.Left, Right: m.Right}
}

// SearchResult is a matched document with its ranking score (0-1000).
type SearchResult struct {
	Document *Document
	Score    int
}

// Translation is one ranked row ready for display.
type Translation struct {
	Source        string
	Target        string
	WordClasses   string
	SubjectLabels string
	Score         int
}

// NewChecksum returns the BLAKE2b-256 hash used for source checksums.
func NewChecksum() (hash.Hash, error) {
	return blake2b.New(32, nil)
}
