package core

import (
	"fmt"
	"strings"
)

// LanguagePair names a bilingual dictionary, e.g. "de-en".
type LanguagePair struct {
	Left  string
	Right string
}

// Languages splits a pair string into its two codes.
// The input must contain exactly one hyphen.
func Languages(pair string) (string, string, error) {
	left, right, ok := strings.Cut(pair, "-")
	if !ok || strings.Contains(right, "-") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidLanguagePair, pair)
	}
	return left, right, nil
}

// ParseLanguagePair parses and lowercases a pair string such as "DE-EN".
func ParseLanguagePair(pair string) (LanguagePair, error) {
	left, right, err := Languages(strings.ToLower(strings.TrimSpace(pair)))
	if err != nil {
		return LanguagePair{}, err
	}
	p := LanguagePair{Left: left, Right: right}
	if err := ValidateLanguagePair(p); err != nil {
		return LanguagePair{}, err
	}
	return p, nil
}

// String returns "left-right".
func (p LanguagePair) String() string {
	return p.Left + "-" + p.Right
}

// Reversed swaps the two languages.
func (p LanguagePair) Reversed() LanguagePair {
	return LanguagePair{Left: p.Right, Right: p.Left}
}

// Canonical returns the direction-independent form of the pair: whichever
// of "left-right" and "right-left" sorts first.
func (p LanguagePair) Canonical() LanguagePair {
	if r := p.Reversed(); r.String() < p.String() {
		return r
	}
	return p
}

// DirName is the name of the directory holding the pair's index.
func (p LanguagePair) DirName() string {
	return p.Canonical().String()
}

// Contains reports whether lang is one of the pair's languages.
func (p LanguagePair) Contains(lang string) bool {
	return lang == p.Left || lang == p.Right
}
