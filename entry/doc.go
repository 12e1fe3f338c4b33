// Package entry parses dictionary entry text into its searchable parts.
//
// An entry such as
//
//	to go (somewhere) <coll.> {verb}
//
// is scanned into a sequence of typed tokens: plain words, round groups
// ("(somewhere)") and angle groups ("<coll.>"). Words and round groups make
// up the core phrase that is indexed for typo-tolerant search; angle groups
// are annotations that are indexed separately and only matched exactly.
//
// Parsing is strict about round and angle brackets: an unbalanced or
// misnested bracket yields a *ParseError. Square and curly brackets carry no
// structure and are treated as ordinary word characters.
package entry
