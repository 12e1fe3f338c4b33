package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticSource []string

func (s staticSource) Complete(string) []string { return s }

func runes(words ...string) [][]rune {
	out := make([][]rune, len(words))
	for i, w := range words {
		out[i] = []rune(w)
	}
	return out
}

func TestTabCompleter_Circular(t *testing.T) {
	c := &tabCompleter{source: staticSource{"Haus", "Hausboot", "Maus"}, circular: true}
	suffixes, length := c.Do([]rune("Hau"), 3)
	assert.Equal(t, runes("s", "sboot"), suffixes)
	assert.Equal(t, 3, length)
}

func TestTabCompleter_ListCommonPrefix(t *testing.T) {
	c := &tabCompleter{source: staticSource{"Hausboot", "Hausbau"}}
	suffixes, _ := c.Do([]rune("Hau"), 3)
	assert.Equal(t, runes("sb"), suffixes)
}

func TestTabCompleter_ListShowsCandidates(t *testing.T) {
	var out bytes.Buffer
	c := &tabCompleter{source: staticSource{"Haus", "Hausboot"}, out: &out}
	suffixes, _ := c.Do([]rune("Haus"), 4)
	assert.Equal(t, runes("boot"), suffixes)

	c.source = staticSource{"Haus hüten", "Haus bauen"}
	suffixes, _ = c.Do([]rune("Haus "), 5)
	assert.Nil(t, suffixes)
	assert.Contains(t, out.String(), "Haus hüten")
	assert.Contains(t, out.String(), "Haus bauen")
}

func TestTabCompleter_UsesTextBeforeCursor(t *testing.T) {
	c := &tabCompleter{source: staticSource{"Maus"}, circular: true}
	suffixes, length := c.Do([]rune("Maxyz"), 2)
	assert.Equal(t, runes("us"), suffixes)
	assert.Equal(t, 2, length)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, []rune("ab"), commonPrefix(runes("abc", "abd", "ab")))
	assert.Empty(t, commonPrefix(runes("x", "y")))
}
