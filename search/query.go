package search

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage"
)

// Query is a node of the query algebra evaluated against an index.
type Query interface {
	// Execute returns the IDs of all documents matching the query.
	Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error)
	fmt.Stringer
}

// TermQuery matches documents whose field contains term exactly.
type TermQuery struct {
	Field schema.Field
	Term  string
}

func (q *TermQuery) Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error) {
	postings, err := reader.Postings(ctx, q.Field, q.Term)
	if err != nil {
		return nil, err
	}
	set := make(DocSet, len(postings))
	for _, p := range postings {
		set[p.ID] = struct{}{}
	}
	return set, nil
}

func (q *TermQuery) String() string {
	return fmt.Sprintf("%d:%s", q.Field, q.Term)
}

// FuzzyTermQuery matches documents containing a term within Distance edits
// of Term. The whole term is compared; a distance of 0 is an exact match.
type FuzzyTermQuery struct {
	Field    schema.Field
	Term     string
	Distance uint8
}

func (q *FuzzyTermQuery) Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error) {
	if q.Distance == 0 {
		return (&TermQuery{Field: q.Field, Term: q.Term}).Execute(ctx, reader)
	}
	terms, err := q.expand(reader)
	if err != nil {
		return nil, err
	}
	return unionPostings(ctx, reader, q.Field, terms)
}

// expand lists the dictionary terms within reach of q.Term.
func (q *FuzzyTermQuery) expand(reader storage.IndexReader) ([]string, error) {
	dict, err := reader.Terms(q.Field)
	if err != nil {
		return nil, err
	}
	target := []rune(q.Term)
	limit := int(q.Distance)
	var matches []string
	err = dict.Visit(func(term string) error {
		n := utf8.RuneCountInString(term)
		if d := n - len(target); d > limit || -d > limit {
			return nil
		}
		if editDistance(target, []rune(term), limit) <= limit {
			matches = append(matches, term)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (q *FuzzyTermQuery) String() string {
	return fmt.Sprintf("%d:%s~%d", q.Field, q.Term, q.Distance)
}

// PrefixQuery matches documents containing a term that starts with Prefix
// and has at least one more character.
type PrefixQuery struct {
	Field  schema.Field
	Prefix string
}

func (q *PrefixQuery) Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error) {
	dict, err := reader.Terms(q.Field)
	if err != nil {
		return nil, err
	}
	var terms []string
	err = dict.VisitPrefix(q.Prefix, func(term string) error {
		if len(term) > len(q.Prefix) {
			terms = append(terms, term)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unionPostings(ctx, reader, q.Field, terms)
}

func (q *PrefixQuery) String() string {
	return fmt.Sprintf("%d:%s*", q.Field, q.Prefix)
}

// PhraseQuery matches documents containing Terms at consecutive positions.
type PhraseQuery struct {
	Field schema.Field
	Terms []string
}

func (q *PhraseQuery) Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error) {
	switch len(q.Terms) {
	case 0:
		return DocSet{}, nil
	case 1:
		return (&TermQuery{Field: q.Field, Term: q.Terms[0]}).Execute(ctx, reader)
	}

	// positions[i][id] holds the offsets of q.Terms[i] in document id.
	positions := make([]map[core.ID][]uint32, len(q.Terms))
	var candidates DocSet
	for i, term := range q.Terms {
		postings, err := reader.Postings(ctx, q.Field, term)
		if err != nil {
			return nil, err
		}
		positions[i] = make(map[core.ID][]uint32, len(postings))
		set := make(DocSet, len(postings))
		for _, p := range postings {
			positions[i][p.ID] = p.Positions
			set[p.ID] = struct{}{}
		}
		if candidates == nil {
			candidates = set
		} else {
			candidates = candidates.Intersect(set)
		}
		if len(candidates) == 0 {
			return candidates, nil
		}
	}

	out := make(DocSet)
	for id := range candidates {
		if phraseAt(positions, id) {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// phraseAt reports whether some start offset p has term i at p+i for every i.
func phraseAt(positions []map[core.ID][]uint32, id core.ID) bool {
	following := make([]map[uint32]struct{}, len(positions))
	for i := 1; i < len(positions); i++ {
		following[i] = make(map[uint32]struct{}, len(positions[i][id]))
		for _, p := range positions[i][id] {
			following[i][p] = struct{}{}
		}
	}
	for _, start := range positions[0][id] {
		matched := true
		for i := 1; i < len(positions); i++ {
			if _, ok := following[i][start+uint32(i)]; !ok {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func (q *PhraseQuery) String() string {
	return fmt.Sprintf("%d:%q", q.Field, q.Terms)
}

// BooleanQuery combines clauses. Documents must match every Must clause;
// without Must clauses they must match at least one Should clause. When
// both are present, Should clauses do not restrict the result.
type BooleanQuery struct {
	Must   []Query
	Should []Query
}

func (q *BooleanQuery) Execute(ctx context.Context, reader storage.IndexReader) (DocSet, error) {
	if len(q.Must) > 0 {
		var out DocSet
		for _, clause := range q.Must {
			set, err := clause.Execute(ctx, reader)
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = set
			} else {
				out = out.Intersect(set)
			}
			if len(out) == 0 {
				break
			}
		}
		return out, nil
	}
	out := DocSet{}
	for _, clause := range q.Should {
		set, err := clause.Execute(ctx, reader)
		if err != nil {
			return nil, err
		}
		out = out.Union(set)
	}
	return out, nil
}

func (q *BooleanQuery) String() string {
	return fmt.Sprintf("+%v %v", q.Must, q.Should)
}

// TermsQuery builds an exact query for terms: a term query for one term,
// a phrase query for several, nil for none.
func TermsQuery(field schema.Field, terms []string) Query {
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return &TermQuery{Field: field, Term: terms[0]}
	default:
		return &PhraseQuery{Field: field, Terms: terms}
	}
}

func unionPostings(ctx context.Context, reader storage.IndexReader, field schema.Field, terms []string) (DocSet, error) {
	out := DocSet{}
	for _, term := range terms {
		postings, err := reader.Postings(ctx, field, term)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			out[p.ID] = struct{}{}
		}
	}
	return out, nil
}
