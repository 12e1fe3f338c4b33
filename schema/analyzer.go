package schema

import (
	"strings"
	"unicode"
)

// MaxTokenLength is the longest term, in bytes, that is indexed. Longer
// tokens are dropped.
const MaxTokenLength = 255

// Token is one analyzed term and its position in the source text.
type Token struct {
	Term     string
	Position int
}

// Tokenize splits text on every rune that is neither a letter nor a
// number and lowercases the pieces. Import and query share this analyzer.
// Dropped tokens still consume a position.
func Tokenize(text string) []Token {
	var tokens []Token
	position := 0
	for _, word := range strings.FieldsFunc(text, isSeparator) {
		if len(word) <= MaxTokenLength {
			tokens = append(tokens, Token{Term: strings.ToLower(word), Position: position})
		}
		position++
	}
	return tokens
}

// Terms returns only the terms of Tokenize(text).
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.In(r, unicode.Mn, unicode.Mc)
}
