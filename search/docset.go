package search

import (
	"maps"
	"slices"

	"github.com/poiesic/dictcc/core"
)

// DocSet is an unordered set of document IDs.
type DocSet map[core.ID]struct{}

// NewDocSet creates a set holding ids.
func NewDocSet(ids ...core.ID) DocSet {
	s := make(DocSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s DocSet) Contains(id core.ID) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set with the members of s and other.
func (s DocSet) Union(other DocSet) DocSet {
	out := make(DocSet, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Intersect returns a new set with the members present in both s and other.
func (s DocSet) Intersect(other DocSet) DocSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(DocSet, len(small))
	for id := range small {
		if large.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// IDs returns the members in ascending order.
func (s DocSet) IDs() []core.ID {
	return slices.Sorted(maps.Keys(s))
}
