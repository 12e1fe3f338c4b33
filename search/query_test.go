package search

import (
	"context"
	"testing"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b  string
		limit int
		want  int
	}{
		{"haus", "haus", 2, 0},
		{"haus", "hous", 2, 1},
		{"haus", "maus", 2, 1},
		{"hous", "maus", 2, 2},
		{"brot", "bort", 2, 1},
		{"ab", "ba", 2, 1},
		{"", "abc", 5, 3},
		{"abc", "", 5, 3},
		{"größe", "grösse", 2, 2},
		{"kitten", "sitting", 5, 3},
		{"kitten", "sitting", 1, 2},
		{"a", "abcd", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b), tt.limit))
		})
	}
}

func TestDocSet(t *testing.T) {
	a := NewDocSet(3, 1, 2)
	b := NewDocSet(2, 3, 4)

	assert.Equal(t, []core.ID{1, 2, 3, 4}, a.Union(b).IDs())
	assert.Equal(t, []core.ID{2, 3}, a.Intersect(b).IDs())
	assert.Empty(t, a.Intersect(DocSet{}).IDs())
	assert.True(t, a.Contains(1))
	assert.False(t, a.Contains(4))
	// Operands are not modified.
	assert.Len(t, a, 3)
}

func TestQueries(t *testing.T) {
	r := newTestReader(t,
		entry("to go", "gehen"),
		entry("to go out", "ausgehen"),
		entry("going concern", "Unternehmen"),
		entry("go to bed", "ins Bett gehen"),
		entry("goal", "Tor"),
	)
	ctx := context.Background()
	run := func(q Query) []core.ID {
		t.Helper()
		set, err := q.Execute(ctx, r)
		require.NoError(t, err)
		return set.IDs()
	}

	// KeyLeft holds the first column here.
	assert.Equal(t, []core.ID{1, 2, 4}, run(&TermQuery{Field: schema.KeyLeft, Term: "go"}))
	assert.Equal(t, []core.ID{1, 2}, run(&PhraseQuery{Field: schema.KeyLeft, Terms: []string{"to", "go"}}))
	assert.Equal(t, []core.ID{4}, run(&PhraseQuery{Field: schema.KeyLeft, Terms: []string{"go", "to"}}))
	assert.Empty(t, run(&PhraseQuery{Field: schema.KeyLeft, Terms: []string{"bed", "to"}}))
	assert.Empty(t, run(&PhraseQuery{Field: schema.KeyLeft}))

	// Prefix requires at least one more character.
	assert.Equal(t, []core.ID{3, 5}, run(&PrefixQuery{Field: schema.KeyLeft, Prefix: "go"}))

	assert.Equal(t, []core.ID{1, 2, 4}, run(&FuzzyTermQuery{Field: schema.KeyLeft, Term: "go", Distance: 0}))
	assert.Equal(t, []core.ID{1, 2, 4, 5}, run(&FuzzyTermQuery{Field: schema.KeyLeft, Term: "goa", Distance: 1}))

	assert.Equal(t, []core.ID{2}, run(&BooleanQuery{Must: []Query{
		&TermQuery{Field: schema.KeyLeft, Term: "out"},
		&TermQuery{Field: schema.KeyLeft, Term: "go"},
	}}))
	assert.Equal(t, []core.ID{2, 5}, run(&BooleanQuery{Should: []Query{
		&TermQuery{Field: schema.KeyLeft, Term: "out"},
		&TermQuery{Field: schema.KeyLeft, Term: "goal"},
	}}))
	assert.Equal(t, []core.ID{4}, run(&BooleanQuery{
		Must:   []Query{&TermQuery{Field: schema.KeyLeft, Term: "bed"}},
		Should: []Query{&TermQuery{Field: schema.KeyLeft, Term: "goal"}},
	}))
}

func TestTermsQuery(t *testing.T) {
	assert.Nil(t, TermsQuery(schema.ExtraLeft, nil))
	assert.IsType(t, &TermQuery{}, TermsQuery(schema.ExtraLeft, []string{"a"}))
	assert.IsType(t, &PhraseQuery{}, TermsQuery(schema.ExtraLeft, []string{"a", "b"}))
}
