/*
Package glyphset selects glyph subsets at the audit boundary.

A selector indexes all glyph names of a snapshot and resolves subset
arguments: plain names must exist (a usage error otherwise), and a
trailing '*' selects every glyph with the given prefix. An empty
argument list means "all glyphs".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphset

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// Set is a glyph-name index over one font snapshot.
type Set struct {
	names *trie.Trie
	all   []string
}

// New indexes the glyph names of a snapshot.
func New(font *fontmodel.Font) *Set {
	s := &Set{names: trie.New(), all: font.GlyphNames()}
	for _, n := range s.all {
		s.names.Add(n, nil)
	}
	return s
}

// All returns every glyph name, sorted.
func (s *Set) All() []string {
	return s.all
}

// Select resolves subset patterns to a sorted, de-duplicated name list.
// Nil or empty patterns select all glyphs. An unknown plain name or a
// pattern matching nothing is a usage error (core.EMISSING); an
// explicitly empty selection never silently analyzes nothing.
func (s *Set) Select(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return s.all, nil
	}
	picked := make(map[string]bool)
	for _, pat := range patterns {
		if pre, ok := strings.CutSuffix(pat, "*"); ok {
			matches := s.names.PrefixSearch(pre)
			if len(matches) == 0 {
				return nil, core.Error(core.EMISSING, "no glyph matches %q", pat)
			}
			for _, m := range matches {
				picked[m] = true
			}
			continue
		}
		if _, found := s.names.Find(pat); !found {
			return nil, core.Error(core.EMISSING, "unknown glyph %q", pat)
		}
		picked[pat] = true
	}
	names := make([]string, 0, len(picked))
	for n := range picked {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
