package density

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of density findings.
const CheckName = "density"

// Customary lowercase/uppercase mean density band of text faces.
const (
	lcUcRatioLo = 1.10
	lcUcRatioHi = 1.16
)

// Check measures the ink density of the given glyphs in every given
// master and judges each against its expected color pattern. A nil
// glyph list selects every glyph the pattern table knows.
func Check(font *fontmodel.Font, masterIDs []string, glyphNames []string,
	regs *checkparam.Registers) []report.Finding {
	//
	if glyphNames == nil {
		glyphNames = defaultGlyphNames(font)
	}
	resolution := regs.Get(checkparam.P_DENSITY_RESOLUTION)
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkMaster(font, m, glyphNames, resolution)...)
	}
	return findings
}

func checkMaster(font *fontmodel.Font, m *fontmodel.Master, glyphNames []string,
	resolution float64) []report.Finding {
	//
	refLC, lcOK := referenceDensity(font, m, "n", resolution)
	refUC, ucOK := referenceDensity(font, m, "H", resolution)
	if !lcOK && !ucOK {
		tracer().Infof("master %s: no reference densities measurable", m.Name)
	}
	var findings []report.Finding
	for _, name := range glyphNames {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		if f, ok := evaluateGlyph(font, m, g, refLC, lcOK, refUC, ucOK, resolution); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// evaluateGlyph measures one glyph and turns the evaluation into a
// finding. ok is false when the glyph cannot be measured at all
// (empty layer, degenerate zone); compatibility checks already report
// unfinished glyphs.
func evaluateGlyph(font *fontmodel.Font, m *fontmodel.Master, g *fontmodel.Glyph,
	refLC float64, lcOK bool, refUC float64, ucOK bool,
	resolution float64) (report.Finding, bool) {
	//
	layer := g.Layer(m.ID)
	if layer == nil || layer.IsEmpty() {
		return report.Finding{}, false
	}
	ref, refOK := refUC, ucOK
	if g.Class() == fontmodel.ClassLowercase {
		ref, refOK = refLC, lcOK
	}
	measured, ok := measureDensity(font, m, g, resolution)
	if !ok {
		return report.Finding{}, false
	}
	if !refOK {
		f := report.F(report.Partial, CheckName, g.Name, m.Name,
			"no reference glyph for density")
		return f, true
	}
	eval := EvaluateDensity(g.Name, measured, ref)
	if eval.Severity == report.Pass {
		return report.Passf(CheckName, g.Name, m.Name), true
	}
	f := report.F(eval.Severity, CheckName, g.Name, m.Name, "%s", eval.Note)
	if eval.Value != "" {
		f = f.Measured(eval.Value, eval.Limit)
	}
	return f, true
}

// measureDensity measures the ink density of a glyph's layer within
// its case's measurement zone, on the decomposed outline.
func measureDensity(font *fontmodel.Font, m *fontmodel.Master, g *fontmodel.Glyph,
	resolution float64) (float64, bool) {
	//
	layer := g.Layer(m.ID)
	if layer == nil {
		return 0, false
	}
	zone := m.CapHeight
	if g.Class() == fontmodel.ClassLowercase {
		zone = m.XHeight
	}
	return raycast.InkDensity(layer.Decomposed(font, m.ID), 0, zone, resolution)
}

func referenceDensity(font *fontmodel.Font, m *fontmodel.Master, refName string,
	resolution float64) (float64, bool) {
	//
	g := font.Glyph(refName)
	if g == nil {
		return 0, false
	}
	layer := g.Layer(m.ID)
	if layer == nil || layer.IsEmpty() {
		return 0, false
	}
	return measureDensity(font, m, g, resolution)
}

func defaultGlyphNames(font *fontmodel.Font) []string {
	var names []string
	for _, name := range font.GlyphNames() {
		if _, ok := colorPatterns[fontmodel.BaseName(name)]; ok {
			names = append(names, name)
		}
	}
	return names
}

// --- Full-font audit -------------------------------------------------------

// GroupStats summarizes the densities of one case group.
type GroupStats struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
}

// Summary is the per-master result of a full-font color audit.
type Summary struct {
	MasterID    string
	MasterName  string
	ReferenceLC float64
	ReferenceUC float64
	Uppercase   GroupStats
	Lowercase   GroupStats
	Figures     GroupStats
	LCToUCRatio float64 // 0 when either group mean is unavailable
}

// Audit runs the color evaluation over every classifiable glyph of
// the font and aggregates per-case statistics. Besides the per-glyph
// findings it flags a lowercase/uppercase mean density ratio outside
// the customary band of text faces.
func Audit(font *fontmodel.Font, masterIDs []string,
	regs *checkparam.Registers) ([]report.Finding, []Summary) {
	//
	resolution := regs.Get(checkparam.P_DENSITY_RESOLUTION)
	var findings []report.Finding
	var summaries []Summary
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		fs, sum := auditMaster(font, m, resolution)
		findings = append(findings, fs...)
		summaries = append(summaries, sum)
	}
	return findings, summaries
}

func auditMaster(font *fontmodel.Font, m *fontmodel.Master,
	resolution float64) ([]report.Finding, Summary) {
	//
	refLC, lcOK := referenceDensity(font, m, "n", resolution)
	refUC, ucOK := referenceDensity(font, m, "H", resolution)
	sum := Summary{MasterID: m.ID, MasterName: m.Name, ReferenceLC: refLC, ReferenceUC: refUC}
	var findings []report.Finding
	values := map[fontmodel.GlyphClass][]float64{}
	for _, name := range font.GlyphNames() {
		g := font.Glyph(name)
		if g.Class() == fontmodel.ClassOther {
			continue
		}
		layer := g.Layer(m.ID)
		if layer == nil || layer.IsEmpty() {
			continue
		}
		d, ok := measureDensity(font, m, g, resolution)
		if !ok {
			continue
		}
		values[g.Class()] = append(values[g.Class()], d)
		if f, ok := evaluateGlyph(font, m, g, refLC, lcOK, refUC, ucOK, resolution); ok {
			findings = append(findings, f)
		}
	}
	sum.Uppercase = statsOf(values[fontmodel.ClassUppercase])
	sum.Lowercase = statsOf(values[fontmodel.ClassLowercase])
	sum.Figures = statsOf(values[fontmodel.ClassFigure])
	if sum.Uppercase.Mean > 0 && sum.Lowercase.Mean > 0 {
		sum.LCToUCRatio = sum.Lowercase.Mean / sum.Uppercase.Mean
		if sum.LCToUCRatio < lcUcRatioLo || sum.LCToUCRatio > lcUcRatioHi {
			findings = append(findings, report.F(report.Warning, CheckName,
				"lowercase/uppercase", m.Name,
				"mean density ratio outside the customary band of text faces").
				Measured(fmt.Sprintf("%.3f", sum.LCToUCRatio),
					fmt.Sprintf("%.2f–%.2f", lcUcRatioLo, lcUcRatioHi)))
		}
	}
	return findings, sum
}

func statsOf(values []float64) GroupStats {
	if len(values) == 0 {
		return GroupStats{}
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return GroupStats{
		Count:  len(values),
		Mean:   mean,
		Median: sorted[len(sorted)/2],
		StdDev: math.Sqrt(variance),
	}
}
