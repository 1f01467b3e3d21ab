/*
Package opentype snapshots compiled OpenType/TrueType fonts.

The analysis engine works on master-based sources, but a compiled
binary is often all there is: for auditing a shipped font, or for
comparing a source against its export. Load parses a font with
x/image/font/sfnt and converts its outlines into a single-master
fontmodel snapshot: quadratic TrueType contours become the cubic
segments the ray caster expects, advance widths and vertical metrics
carry over, and pair kerning (where the binary exposes it) lands in
the master's kerning table. A compiled font is flat, so snapshots
never contain components, anchors or kerning groups.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package opentype

import (
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'glyphaudit.core'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.core")
}

// MasterID identifies the single master of a compiled-font snapshot.
const MasterID = "compiled"

// figureNames maps figure runes to their working names.
var figureNames = map[rune]string{
	'0': "zero", '1': "one", '2': "two", '3': "three", '4': "four",
	'5': "five", '6': "six", '7': "seven", '8': "eight", '9': "nine",
}

// Load parses a compiled font and snapshots the given runes as a
// single-master Font. A nil rune list covers the basic latin letters
// and figures. Runes the font does not map are skipped, not an error.
func Load(data []byte, runes []rune) (*fontmodel.Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font binary")
	}
	if runes == nil {
		runes = defaultRunes()
	}
	upem := int(f.UnitsPerEm())
	ppem := fixed.I(upem) // load outlines in font units
	var buf sfnt.Buffer

	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	style, err := f.Name(&buf, sfnt.NameIDSubfamily)
	if err != nil || style == "" {
		style = "Regular"
	}
	metrics, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font has no usable metrics")
	}
	master := fontmodel.Master{
		ID:        MasterID,
		Name:      style,
		Ascender:  f26dot6(metrics.Ascent),
		Descender: -f26dot6(metrics.Descent),
		XHeight:   f26dot6(metrics.XHeight),
		CapHeight: f26dot6(metrics.CapHeight),
		Kerning:   map[fontmodel.PairKey]float64{},
	}

	snapshot := &fontmodel.Font{
		FamilyName: family,
		UnitsPerEm: upem,
		Glyphs:     map[string]*fontmodel.Glyph{},
	}
	indexOf := map[string]sfnt.GlyphIndex{}
	for _, r := range runes {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			continue
		}
		name, cat := nameFor(r)
		layer, err := loadLayer(f, &buf, gi, ppem)
		if err != nil {
			tracer().Infof("skipping glyph %q: %v", name, err)
			continue
		}
		snapshot.Glyphs[name] = &fontmodel.Glyph{
			Name:     name,
			Unicode:  r,
			Category: cat,
			Layers:   map[string]*fontmodel.Layer{MasterID: layer},
		}
		indexOf[name] = gi
	}
	loadKerning(f, &buf, ppem, indexOf, master.Kerning)
	snapshot.Masters = []fontmodel.Master{master}
	tracer().Infof("snapshot of %q: %d glyphs, %d kerning pairs",
		family, len(snapshot.Glyphs), len(master.Kerning))
	return snapshot, nil
}

func loadLayer(f *sfnt.Font, buf *sfnt.Buffer, gi sfnt.GlyphIndex,
	ppem fixed.Int26_6) (*fontmodel.Layer, error) {
	//
	segments, err := f.LoadGlyph(buf, gi, ppem, nil)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot load outline")
	}
	advance, err := f.GlyphAdvance(buf, gi, ppem, font.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot load advance width")
	}
	layer := &fontmodel.Layer{Width: f26dot6(advance)}
	var nodes []fontmodel.Node
	var current arithm.Pair
	flush := func() {
		if p := closeContour(nodes); len(p) > 0 {
			layer.Paths = append(layer.Paths, fontmodel.Path{Nodes: p})
		}
		nodes = nil
	}
	for _, seg := range segments {
		// sfnt's y axis points down
		p0 := point(seg.Args[0])
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			nodes = append(nodes, fontmodel.Node{Pos: p0, Type: fontmodel.Line})
			current = p0
		case sfnt.SegmentOpLineTo:
			nodes = append(nodes, fontmodel.Node{Pos: p0, Type: fontmodel.Line})
			current = p0
		case sfnt.SegmentOpQuadTo:
			end := point(seg.Args[1])
			c1, c2 := quadToCubic(current, p0, end)
			nodes = append(nodes,
				fontmodel.Node{Pos: c1, Type: fontmodel.OffCurve},
				fontmodel.Node{Pos: c2, Type: fontmodel.OffCurve},
				fontmodel.Node{Pos: end, Type: fontmodel.Curve})
			current = end
		case sfnt.SegmentOpCubeTo:
			end := point(seg.Args[2])
			nodes = append(nodes,
				fontmodel.Node{Pos: p0, Type: fontmodel.OffCurve},
				fontmodel.Node{Pos: point(seg.Args[1]), Type: fontmodel.OffCurve},
				fontmodel.Node{Pos: end, Type: fontmodel.Curve})
			current = end
		}
	}
	flush()
	return layer, nil
}

// closeContour drops the duplicate start point of a contour whose
// final segment explicitly returns to the MoveTo position; the model
// treats paths as implicitly closed.
func closeContour(nodes []fontmodel.Node) []fontmodel.Node {
	if len(nodes) < 2 {
		return nil
	}
	first, last := nodes[0], nodes[len(nodes)-1]
	if last.OnCurve() && last.Pos.X() == first.Pos.X() && last.Pos.Y() == first.Pos.Y() {
		nodes = nodes[1:]
	}
	return nodes
}

func loadKerning(f *sfnt.Font, buf *sfnt.Buffer, ppem fixed.Int26_6,
	indexOf map[string]sfnt.GlyphIndex, kerning map[fontmodel.PairKey]float64) {
	//
	for left, li := range indexOf {
		for right, ri := range indexOf {
			v, err := f.Kern(buf, li, ri, ppem, font.HintingNone)
			if err != nil || v == 0 {
				continue
			}
			kerning[fontmodel.PairKey{
				Left:  fontmodel.GlyphKey(left),
				Right: fontmodel.GlyphKey(right),
			}] = f26dot6(v)
		}
	}
}

// quadToCubic raises a quadratic segment from p0 over control q to
// end, to the equivalent cubic control pair.
func quadToCubic(p0, q, end arithm.Pair) (c1, c2 arithm.Pair) {
	c1 = arithm.P(p0.X()+2.0/3.0*(q.X()-p0.X()), p0.Y()+2.0/3.0*(q.Y()-p0.Y()))
	c2 = arithm.P(end.X()+2.0/3.0*(q.X()-end.X()), end.Y()+2.0/3.0*(q.Y()-end.Y()))
	return c1, c2
}

func point(p fixed.Point26_6) arithm.Pair {
	return arithm.P(f26dot6(p.X), -f26dot6(p.Y))
}

func f26dot6(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func nameFor(r rune) (string, fontmodel.Category) {
	if name, ok := figureNames[r]; ok {
		return name, fontmodel.CatFigure
	}
	return string(r), fontmodel.CatLetter
}

func defaultRunes() []rune {
	var runes []rune
	for r := 'a'; r <= 'z'; r++ {
		runes = append(runes, r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		runes = append(runes, r)
	}
	for r := '0'; r <= '9'; r++ {
		runes = append(runes, r)
	}
	return runes
}
