package fontmodel

import (
	"sort"
)

// Font is a complete snapshot of a multiple-master font document.
type Font struct {
	FamilyName string
	UnitsPerEm int
	Masters    []Master
	Glyphs     map[string]*Glyph
	Groups     map[string]Group // kerning groups, keyed by name
}

// Master is one named design variant within an interpolatable family.
// The baseline is implicitly at 0.
type Master struct {
	ID        string
	Name      string
	Axes      []float64
	XHeight   float64
	CapHeight float64
	Ascender  float64
	Descender float64 // negative in a well-formed font
	Kerning   map[PairKey]float64
}

// Master returns the master with the given id, or nil.
func (f *Font) Master(id string) *Master {
	for i := range f.Masters {
		if f.Masters[i].ID == id {
			return &f.Masters[i]
		}
	}
	return nil
}

// Glyph returns the glyph with the given name, or nil.
func (f *Font) Glyph(name string) *Glyph {
	if f.Glyphs == nil {
		return nil
	}
	return f.Glyphs[name]
}

// GlyphNames returns all glyph names in sorted order.
func (f *Font) GlyphNames() []string {
	names := make([]string, 0, len(f.Glyphs))
	for n := range f.Glyphs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- Glyphs ----------------------------------------------------------------

// Category is the coarse classification of a glyph.
type Category int

const (
	CatOther Category = iota
	CatLetter
	CatFigure
	CatPunctuation
	CatMark
)

// Case distinguishes upper- and lowercase letters.
type Case int

const (
	CaseNone Case = iota
	CaseUpper
	CaseLower
)

// Glyph is one letterform with a drawing per master.
type Glyph struct {
	Name     string
	Unicode  rune // 0 if unassigned
	Category Category
	Case     Case
	Layers   map[string]*Layer // keyed by master id
}

// Layer returns the glyph's drawing for a master, or nil if the glyph
// has no layer for it. A missing layer is a defect ("partially drawn"),
// reported by the compatibility checker, not an error.
func (g *Glyph) Layer(masterID string) *Layer {
	if g.Layers == nil {
		return nil
	}
	return g.Layers[masterID]
}

// GlyphClass is the measurement class of a glyph, deciding which
// vertical zone and which reference glyph apply to it.
type GlyphClass int

const (
	ClassOther GlyphClass = iota
	ClassUppercase
	ClassLowercase
	ClassFigure
)

var figureNames = map[string]bool{
	"zero": true, "one": true, "two": true, "three": true, "four": true,
	"five": true, "six": true, "seven": true, "eight": true, "nine": true,
}

// Class derives the measurement class of a glyph. Category and case
// information from the provider takes precedence; a name heuristic
// covers snapshots without classification data.
func (g *Glyph) Class() GlyphClass {
	if g.Category == CatFigure {
		return ClassFigure
	}
	if g.Category == CatLetter {
		switch g.Case {
		case CaseUpper:
			return ClassUppercase
		case CaseLower:
			return ClassLowercase
		}
	}
	base := BaseName(g.Name)
	if figureNames[base] {
		return ClassFigure
	}
	if len(base) == 1 {
		c := base[0]
		if c >= 'a' && c <= 'z' {
			return ClassLowercase
		}
		if c >= 'A' && c <= 'Z' {
			return ClassUppercase
		}
	}
	return ClassOther
}

// BaseName strips a suffix like ".sc" or ".ss01" from a glyph name.
func BaseName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' && i > 0 {
			return name[:i]
		}
	}
	return name
}
