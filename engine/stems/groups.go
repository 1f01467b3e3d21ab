package stems

import (
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
)

// StemGroup classifies a glyph for stem measurement. The group selects
// the dominant-stem strategy and tells how the result is judged.
type StemGroup int

const (
	Straight StemGroup = iota // pure stems, measured by frequency
	Round                     // pure round forms
	Mixed                     // stem + bowl, isolate the stem near the reference
	Diagonal                  // diagonal strokes, reported only
	Optical                   // known optical special cases (t, f)
	Figure                    // figures without a bowl group
)

func (g StemGroup) String() string {
	switch g {
	case Straight:
		return "straight"
	case Round:
		return "round"
	case Mixed:
		return "mixed"
	case Diagonal:
		return "diagonal"
	case Optical:
		return "optical"
	case Figure:
		return "figure"
	}
	return "unknown"
}

var stemGroups = map[string]StemGroup{
	// figures
	"zero": Mixed, "three": Mixed, "six": Mixed, "eight": Mixed, "nine": Mixed,
	"one": Figure, "four": Figure, "two": Figure, "five": Figure, "seven": Figure,
	// lowercase
	"n": Straight, "h": Straight, "m": Straight, "u": Straight, "i": Straight,
	"j": Straight, "l": Straight, "r": Straight, "dotlessi": Straight,
	"o": Round, "c": Round,
	"b": Mixed, "d": Mixed, "p": Mixed, "q": Mixed, "g": Mixed, "a": Mixed,
	"e": Mixed, "s": Mixed,
	"v": Diagonal, "w": Diagonal, "x": Diagonal, "y": Diagonal, "z": Diagonal,
	"k": Diagonal,
	"t": Optical, "f": Optical,
	// uppercase
	"H": Straight, "I": Straight, "L": Straight, "T": Straight, "U": Straight,
	"F": Straight, "E": Straight, "K": Straight, "J": Straight,
	"O": Round, "C": Round, "Q": Round,
	"D": Mixed, "B": Mixed, "P": Mixed, "R": Mixed, "G": Mixed,
	"V": Diagonal, "W": Diagonal, "X": Diagonal, "Y": Diagonal, "Z": Diagonal,
	"A": Diagonal, "M": Diagonal, "N": Diagonal,
}

// ClassifyGroup returns the stem measurement group of a glyph.
// Suffixed variants inherit their base glyph's group, unknown glyphs
// default to straight.
func ClassifyGroup(glyphName string) StemGroup {
	if g, ok := stemGroups[fontmodel.BaseName(glyphName)]; ok {
		return g
	}
	return Straight
}

// crossCounterCutoff discards perpendicular readings that crossed a
// counter instead of a single stem wall.
const crossCounterCutoff = 300

// measureDominant measures the dominant vertical and horizontal stem
// of a glyph's decomposed layer. Lowercase glyphs are measured between
// descender and x-height so dots and accents stay out of the data;
// everything else uses descender to cap height.
func measureDominant(font *fontmodel.Font, m *fontmodel.Master, g *fontmodel.Glyph,
	strategy raycast.Strategy, reference, groupTol float64) (vert, horiz float64, vok, hok bool) {
	//
	layer := g.Layer(m.ID)
	if layer == nil || layer.IsEmpty() {
		return 0, 0, false, false
	}
	yMin, yMax := m.Descender, m.CapHeight
	if g.Class() == fontmodel.ClassLowercase {
		yMax = m.XHeight
	}
	clean := layer.Decomposed(font, m.ID)
	vs, hs, _ := raycast.PerpendicularStems(clean, yMin, yMax, crossCounterCutoff)
	vert, vok = raycast.DominantStem(vs, groupTol, strategy, reference)
	horiz, hok = raycast.DominantStem(hs, groupTol, strategy, reference)
	return vert, horiz, vok, hok
}
