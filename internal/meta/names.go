package meta

import (
	"maps"
	"slices"
	"strings"
)

// NameSeparator splits namespace segments in a qualified type name.
const NameSeparator = "."

// SimpleName strips a qualified name down to its last segment.
// "com.acme.Shape" becomes "Shape"; a name without separators is returned as is.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, NameSeparator); i >= 0 {
		return qualified[i+len(NameSeparator):]
	}
	return qualified
}

// NameSet is an unordered set of names.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order, for stable display.
func (s NameSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
