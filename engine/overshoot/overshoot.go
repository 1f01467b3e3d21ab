package overshoot

import (
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of overshoot findings.
const CheckName = "overshoot"

// Form classifies how a glyph meets its alignment zones.
type Form int

const (
	Round       Form = iota // overshoots top and bottom
	RoundBottom             // flat top, round bottom
	Pointed                 // apex or vertex, needs more overshoot than round
)

// overshootForms lists the glyphs worth checking. D is flat on both
// extremes and stays out.
var overshootForms = map[string]Form{
	"O": Round, "C": Round, "G": Round, "Q": Round, "S": Round,
	"U": RoundBottom, "J": RoundBottom,
	"A": Pointed, "V": Pointed, "W": Pointed, "M": Pointed, "N": Pointed,
	"o": Round, "c": Round, "e": Round, "s": Round,
	"b": RoundBottom, "d": RoundBottom, "p": RoundBottom, "q": RoundBottom,
	"g": RoundBottom, "a": RoundBottom, "u": RoundBottom,
	"v": Pointed, "w": Pointed, "y": Pointed,
	"zero": Round, "three": Round, "six": Round, "eight": Round, "nine": Round,
	"two": RoundBottom, "five": RoundBottom,
}

// topApexGlyphs have their pointed extreme at the top.
var topApexGlyphs = map[string]bool{"A": true, "M": true, "N": true}

// bottomVertexGlyphs have their pointed extreme at the bottom.
var bottomVertexGlyphs = map[string]bool{
	"V": true, "W": true, "v": true, "w": true, "y": true,
}

const (
	// minOvershoot is the smallest extent that still counts as an
	// overshoot.
	minOvershoot = 0.5
	// apexSpanPct is the max x-span of near-extreme nodes, as a
	// fraction of the advance width, for an apex to read as pointed.
	apexSpanPct = 0.05
)

// maxOvershootPct is the upper bound on overshoot as a percentage of
// the zone height. Lowercase zones are shorter, so the same absolute
// overshoot yields a higher percentage.
func maxOvershootPct(class fontmodel.GlyphClass) float64 {
	if class == fontmodel.ClassLowercase {
		return 4.0
	}
	return 3.0
}

// PointedApex reports whether the top (or bottom) extreme of a layer
// is pointed rather than flat, judged by the horizontal spread of the
// on-curve nodes near the extreme. span is that spread in units.
func PointedApex(l *fontmodel.Layer, atTop bool) (pointed bool, span float64) {
	bounds := l.Bounds()
	if bounds.IsEmpty() || bounds.Width() == 0 || l.Width <= 0 {
		return false, 0
	}
	target := bounds.MinY
	if atTop {
		target = bounds.MaxY
	}
	tol := math.Max(20, bounds.Height()*0.03)
	minX, maxX := math.Inf(1), math.Inf(-1)
	found := false
	for _, path := range l.Paths {
		for _, node := range path.Nodes {
			if !node.OnCurve() {
				continue
			}
			if math.Abs(node.Pos.Y()-target) < tol {
				minX = math.Min(minX, node.Pos.X())
				maxX = math.Max(maxX, node.Pos.X())
				found = true
			}
		}
	}
	if !found {
		return false, 0
	}
	span = maxX - minX
	return span < l.Width*apexSpanPct, span
}

// Check measures top and bottom overshoots of the given glyphs in
// every given master. A nil glyph list selects all known overshoot
// glyphs the font contains.
func Check(font *fontmodel.Font, masterIDs []string, glyphNames []string) []report.Finding {
	if glyphNames == nil {
		glyphNames = defaultGlyphNames(font)
	}
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkMaster(font, m, glyphNames)...)
	}
	return findings
}

func checkMaster(font *fontmodel.Font, m *fontmodel.Master, glyphNames []string) []report.Finding {
	figTop := figureZoneTop(font, m)
	tracer().Debugf("master %s: figure zone top %.1f", m.Name, figTop)
	var findings []report.Finding
	var roundTops, roundBottoms, pointedTops []float64
	for _, name := range glyphNames {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		layer := g.Layer(m.ID)
		if layer == nil || layer.IsEmpty() {
			continue
		}
		clean := layer.Decomposed(font, m.ID)
		bounds := clean.Bounds()
		if bounds.IsEmpty() || bounds.Width() == 0 {
			continue
		}
		base := fontmodel.BaseName(name)
		form, known := overshootForms[base]
		if !known {
			form = Round
		}
		zoneTop := zoneTopFor(g.Class(), m, figTop)
		if zoneTop <= 0 {
			continue
		}
		top := bounds.MaxY - zoneTop
		bottom := -bounds.MinY
		maxPct := maxOvershootPct(g.Class())

		var issues []string
		switch form {
		case Round, RoundBottom:
			if bottom < minOvershoot {
				issues = append(issues, "no bottom overshoot")
			} else if bottom/zoneTop*100 > maxPct {
				issues = append(issues, "excessive bottom overshoot")
			}
			if form == Round {
				if top < minOvershoot {
					issues = append(issues, "no top overshoot")
				} else if top/zoneTop*100 > maxPct {
					issues = append(issues, "excessive top overshoot")
				}
			}
		case Pointed:
			if topApexGlyphs[base] {
				if pointed, _ := PointedApex(clean, true); pointed && top < minOvershoot {
					issues = append(issues, "pointed apex has no top overshoot")
				}
			}
			if bottomVertexGlyphs[base] {
				if pointed, _ := PointedApex(clean, false); pointed && bottom < minOvershoot {
					issues = append(issues, "pointed vertex has no bottom overshoot")
				}
			}
		}
		if len(issues) > 0 {
			findings = append(findings, report.F(report.Fatal, CheckName, name, m.Name,
				"%s", strings.Join(issues, "; ")))
		} else {
			findings = append(findings, report.Passf(CheckName, name, m.Name))
		}

		if top > 0 {
			if form == Round {
				roundTops = append(roundTops, top)
			} else if form == Pointed {
				pointedTops = append(pointedTops, top)
			}
		}
		if bottom > 0 && form != Pointed {
			roundBottoms = append(roundBottoms, bottom)
		}
	}
	// Pointed extremes must overshoot further than round ones or they
	// look like they fall short of the zone.
	avgRound := average(roundTops)
	avgPointed := average(pointedTops)
	if avgRound > 0 && avgPointed > 0 && avgPointed <= avgRound {
		findings = append(findings, report.F(report.Warning, CheckName,
			"pointed/round", m.Name,
			"pointed forms should overshoot more than round forms"))
	}
	return findings
}

// figureZoneTop derives the flat figure zone from the flat-topped
// figures: one can carry a flag with overshoot and four a diagonal
// apex, so the minimum over the available candidates is the true flat
// zone. Falls back to cap height.
func figureZoneTop(font *fontmodel.Font, m *fontmodel.Master) float64 {
	top := math.Inf(1)
	found := false
	for _, name := range []string{"four", "seven", "one"} {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		layer := g.Layer(m.ID)
		if layer == nil || layer.IsEmpty() {
			continue
		}
		bounds := layer.Decomposed(font, m.ID).Bounds()
		if bounds.IsEmpty() || bounds.Height() <= 0 {
			continue
		}
		top = math.Min(top, bounds.MaxY)
		found = true
	}
	if !found {
		return m.CapHeight
	}
	return top
}

func zoneTopFor(class fontmodel.GlyphClass, m *fontmodel.Master, figTop float64) float64 {
	switch class {
	case fontmodel.ClassFigure:
		return figTop
	case fontmodel.ClassLowercase:
		return m.XHeight
	default:
		return m.CapHeight
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func defaultGlyphNames(font *fontmodel.Font) []string {
	var names []string
	for name := range overshootForms {
		if font.Glyph(name) != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
