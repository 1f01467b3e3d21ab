package stems

import (
	"fmt"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of stem findings.
const CheckName = "stems"

// Check measures the dominant stems of the given glyphs in every given
// master and judges each against its industry pattern. Glyphs without
// a measurable straight reference (n or H missing or empty) are
// skipped; the reference cannot be audited against itself going
// missing.
func Check(font *fontmodel.Font, masterIDs []string, glyphNames []string,
	regs *checkparam.Registers) []report.Finding {
	//
	if glyphNames == nil {
		glyphNames = defaultGlyphNames(font)
	}
	groupTol := regs.Get(checkparam.P_STEM_GROUP_TOL)
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkMaster(font, m, glyphNames, groupTol)...)
	}
	return findings
}

func checkMaster(font *fontmodel.Font, m *fontmodel.Master, glyphNames []string,
	groupTol float64) []report.Finding {
	//
	lcRef, lcOK := measureReference(font, m, "n", groupTol)
	ucRef, ucOK := measureReference(font, m, "H", groupTol)
	if !lcOK && !ucOK {
		tracer().Infof("master %s: no reference stems measurable", m.Name)
		return nil
	}
	var findings []report.Finding
	for _, name := range glyphNames {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		layer := g.Layer(m.ID)
		if layer == nil || layer.IsEmpty() {
			continue // compatibility checks report unfinished glyphs
		}
		upper := g.Class() == fontmodel.ClassUppercase || g.Class() == fontmodel.ClassFigure
		ref, refOK := lcRef, lcOK
		if upper {
			ref, refOK = ucRef, ucOK
		}
		if !refOK {
			continue
		}
		strategy := raycast.Frequency
		group := ClassifyGroup(name)
		if group == Mixed {
			strategy = raycast.NearestRef
		}
		vert, _, vok, _ := measureDominant(font, m, g, strategy, ref, groupTol)
		if !vok {
			findings = append(findings, report.F(report.Partial, CheckName, name, m.Name,
				"no vertical stems measured"))
			continue
		}
		eval := EvaluateStem(name, vert, ref)
		if eval.Severity == report.Pass {
			findings = append(findings, report.Passf(CheckName, name, m.Name))
			continue
		}
		f := report.F(eval.Severity, CheckName, name, m.Name, "%s", eval.Note)
		if eval.Value != "" {
			f = f.Measured(eval.Value, eval.Limit)
		} else {
			f = f.Measured(fmt.Sprintf("%.0f", vert), fmt.Sprintf("ref %.0f", ref))
		}
		findings = append(findings, f)
	}
	return findings
}

// measureReference returns the dominant vertical stem of a straight
// reference glyph.
func measureReference(font *fontmodel.Font, m *fontmodel.Master, refName string,
	groupTol float64) (float64, bool) {
	//
	g := font.Glyph(refName)
	if g == nil {
		return 0, false
	}
	vert, _, vok, _ := measureDominant(font, m, g, raycast.Frequency, 0, groupTol)
	return vert, vok
}

// defaultGlyphNames selects every glyph the pattern table knows that
// the font actually contains, sorted by the font's glyph order.
func defaultGlyphNames(font *fontmodel.Font) []string {
	var names []string
	for _, name := range font.GlyphNames() {
		if _, ok := stemPatterns[fontmodel.BaseName(name)]; ok {
			names = append(names, name)
		}
	}
	return names
}
