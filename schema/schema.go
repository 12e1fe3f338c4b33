// Package schema declares the field layout shared by import and query.
//
// Every language pair is indexed with the same eight fields. Key fields
// carry the normalized core phrase and are the target of fuzzy and phrase
// queries; extra fields carry angle-bracket annotations and are matched
// exactly; the remaining fields are stored for display only.
package schema

import (
	"fmt"

	"github.com/poiesic/dictcc/core"
)

// Field identifies one of the eight document fields. The numeric value is
// persisted in storage keys and must not change.
type Field uint8

const (
	KeyLeft Field = iota + 1
	KeyRight
	ExtraLeft
	ExtraRight
	LangLeft
	LangRight
	WordClasses
	SubjectLabels
)

// Fields lists all fields in declaration order.
var Fields = []Field{KeyLeft, KeyRight, ExtraLeft, ExtraRight, LangLeft, LangRight, WordClasses, SubjectLabels}

// Option describes how a field is indexed.
type Option uint8

const (
	// Indexed fields are tokenized into the term dictionary.
	Indexed Option = 1 << iota
	// Positions records token positions, required for phrase queries.
	Positions
	// Stored fields are kept verbatim on the document.
	Stored
)

// Options returns the indexing options of f.
func (f Field) Options() Option {
	switch f {
	case KeyLeft, KeyRight, ExtraLeft, ExtraRight:
		return Indexed | Positions | Stored
	default:
		return Stored
	}
}

// Has reports whether f was declared with opt.
func (f Field) Has(opt Option) bool {
	return f.Options()&opt != 0
}

// Value returns the content of f on doc.
func (f Field) Value(doc *core.Document) string {
	switch f {
	case KeyLeft:
		return doc.KeyLeft
	case KeyRight:
		return doc.KeyRight
	case ExtraLeft:
		return doc.ExtraLeft
	case ExtraRight:
		return doc.ExtraRight
	case LangLeft:
		return doc.LangLeft
	case LangRight:
		return doc.LangRight
	case WordClasses:
		return doc.WordClasses
	case SubjectLabels:
		return doc.SubjectLabels
	default:
		return ""
	}
}

// IndexedFields returns the fields that produce postings.
func IndexedFields() []Field {
	var fields []Field
	for _, f := range Fields {
		if f.Has(Indexed) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Side selects one language of a pair.
type Side int

const (
	Left Side = iota
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// KeyField returns the key field of side.
func KeyField(side Side) Field {
	if side == Left {
		return KeyLeft
	}
	return KeyRight
}

// ExtraField returns the annotation field of side.
func ExtraField(side Side) Field {
	if side == Left {
		return ExtraLeft
	}
	return ExtraRight
}

// DisplayField returns the raw text field of side.
func DisplayField(side Side) Field {
	if side == Left {
		return LangLeft
	}
	return LangRight
}

// Schema binds the field layout to a concrete, canonical language pair.
type Schema struct {
	pair core.LanguagePair
}

// New creates the schema for a pair. The pair is canonicalized, so New for
// "en-de" and "de-en" describe the same index.
func New(pair core.LanguagePair) *Schema {
	return &Schema{pair: pair.Canonical()}
}

// Pair returns the canonical pair.
func (s *Schema) Pair() core.LanguagePair {
	return s.pair
}

// Language returns the language code stored on side.
func (s *Schema) Language(side Side) string {
	if side == Left {
		return s.pair.Left
	}
	return s.pair.Right
}

// Name returns the field's name, e.g. "key_de" or "word_classes".
func (s *Schema) Name(f Field) string {
	switch f {
	case KeyLeft:
		return "key_" + s.pair.Left
	case KeyRight:
		return "key_" + s.pair.Right
	case ExtraLeft:
		return "extra_" + s.pair.Left
	case ExtraRight:
		return "extra_" + s.pair.Right
	case LangLeft:
		return s.pair.Left
	case LangRight:
		return s.pair.Right
	case WordClasses:
		return "word_classes"
	case SubjectLabels:
		return "subject_labels"
	default:
		return fmt.Sprintf("field_%d", f)
	}
}

// Resolve maps a source language to the side it is stored on. Languages
// outside the pair fail with *core.LanguageNotAvailableError.
func (s *Schema) Resolve(from string) (Side, error) {
	switch from {
	case s.pair.Left:
		return Left, nil
	case s.pair.Right:
		return Right, nil
	default:
		return Left, &core.LanguageNotAvailableError{
			Language:  from,
			Available: []string{s.pair.Left, s.pair.Right},
		}
	}
}
