package density

import (
	"testing"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type DensitySuite struct {
	suite.Suite
	teardown func()
	regs     *checkparam.Registers
}

func TestDensitySuite(t *testing.T) {
	suite.Run(t, new(DensitySuite))
}

func (s *DensitySuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphaudit.engine")
	s.regs = checkparam.NewRegisters()
}

func (s *DensitySuite) TearDownTest() {
	s.teardown()
}

// ---------------------------------------------------------------------------

func rect(x0, y0, x1, y1 float64) fontmodel.Path {
	return fontmodel.Path{Nodes: []fontmodel.Node{
		{Pos: arithm.P(x0, y0), Type: fontmodel.Line},
		{Pos: arithm.P(x1, y0), Type: fontmodel.Line},
		{Pos: arithm.P(x1, y1), Type: fontmodel.Line},
		{Pos: arithm.P(x0, y1), Type: fontmodel.Line},
	}}
}

// barLayer fills the zone with a single full-height bar, so density
// is exactly ink/width.
func barLayer(ink, width, height float64) *fontmodel.Layer {
	return &fontmodel.Layer{
		Paths: []fontmodel.Path{rect(40, 0, 40+ink, height)},
		Width: width,
	}
}

type testGlyph struct {
	category fontmodel.Category
	layer    *fontmodel.Layer
}

func densityFont(glyphs map[string]testGlyph) *fontmodel.Font {
	font := &fontmodel.Font{
		FamilyName: "Testcase",
		UnitsPerEm: 1000,
		Masters:    []fontmodel.Master{{ID: "r", Name: "Regular", XHeight: 500, CapHeight: 700}},
		Glyphs:     map[string]*fontmodel.Glyph{},
	}
	for name, g := range glyphs {
		font.Glyphs[name] = &fontmodel.Glyph{
			Name:     name,
			Category: g.category,
			Layers:   map[string]*fontmodel.Layer{"r": g.layer},
		}
	}
	return font
}

func letter(ink, width, height float64) testGlyph {
	return testGlyph{category: fontmodel.CatLetter, layer: barLayer(ink, width, height)}
}

func bySeverity(findings []report.Finding) map[string]report.Severity {
	m := map[string]report.Severity{}
	for _, f := range findings {
		m[f.Entity] = f.Severity
	}
	return m
}

// ---------------------------------------------------------------------------

func (s *DensitySuite) TestEvaluateDensityVerdicts() {
	cases := []struct {
		glyph    string
		measured float64
		ref      float64
		want     report.Severity
	}{
		{"h", 0.501, 0.5, report.Pass},       // ratio 100.2, spot on
		{"o", 0.545, 0.5, report.Pass},       // 109.0, inside ±10
		{"o", 0.560, 0.5, report.Warning},    // 112.0, compensation zone
		{"o", 0.580, 0.5, report.Fatal},      // 116.0, beyond 1.5×
		{"s", 0.500, 0.5, report.Partial},    // spine varies, unreliable
		{"H", 0.510, 0.5, report.Fatal},      // reference glyph may not drift
		{"h.ss01", 0.501, 0.5, report.Pass},  // suffix strips to base
		{"germandbls", 0.55, 0.5, report.Pass},  // unknown, 110 within ±12
		{"germandbls", 0.57, 0.5, report.Fatal}, // unknown, 114 outside
		{"h", 0.5, 0, report.Partial},        // degenerate reference
	}
	for _, c := range cases {
		eval := EvaluateDensity(c.glyph, c.measured, c.ref)
		s.Equal(c.want, eval.Severity, "glyph %s at %.3f vs %.3f", c.glyph, c.measured, c.ref)
	}
}

func (s *DensitySuite) TestCheckAgainstReference() {
	font := densityFont(map[string]testGlyph{
		"n": letter(200, 400, 500), // density 0.5, the reference itself
		"o": letter(200, 400, 500), // ratio 100.0, expected 100±10
		"r": letter(170, 400, 500), // ratio 85.0, expected 86.3±3
		"l": letter(200, 400, 500), // unreliable construction
		"b": letter(280, 400, 500), // ratio 140.0, far beyond 106.3±9
	})
	findings := Check(font, []string{"r"}, nil, s.regs)
	sev := bySeverity(findings)
	s.Len(sev, 5)
	s.Equal(report.Pass, sev["n"])
	s.Equal(report.Pass, sev["o"])
	s.Equal(report.Pass, sev["r"])
	s.Equal(report.Partial, sev["l"])
	s.Equal(report.Fatal, sev["b"])
}

func (s *DensitySuite) TestMissingReferenceIsPartial() {
	font := densityFont(map[string]testGlyph{
		"o": letter(200, 400, 500),
	})
	findings := Check(font, []string{"r"}, []string{"o"}, s.regs)
	s.Require().Len(findings, 1)
	s.Equal(report.Partial, findings[0].Severity)
	s.Contains(findings[0].Message, "no reference")
}

func (s *DensitySuite) TestAuditStatistics() {
	font := densityFont(map[string]testGlyph{
		"n":   letter(200, 400, 500), // 0.5
		"o":   letter(200, 400, 500), // 0.5
		"H":   letter(200, 450, 700), // 0.4444
		"one": {category: fontmodel.CatFigure, layer: barLayer(200, 480, 700)}, // 0.4167
	})
	findings, summaries := Audit(font, []string{"r"}, s.regs)
	s.Require().Len(summaries, 1)
	sum := summaries[0]
	s.Equal("Regular", sum.MasterName)
	s.Equal(2, sum.Lowercase.Count)
	s.InDelta(0.5, sum.Lowercase.Mean, 1e-9)
	s.InDelta(0.5, sum.Lowercase.Median, 1e-9)
	s.InDelta(0.0, sum.Lowercase.StdDev, 1e-9)
	s.Equal(1, sum.Uppercase.Count)
	s.Equal(1, sum.Figures.Count)
	// 0.5 / 0.4444 = 1.125, inside the customary 1.10–1.16 band
	s.InDelta(1.125, sum.LCToUCRatio, 1e-3)
	for _, f := range findings {
		s.Equal(report.Pass, f.Severity, "finding for %s: %s", f.Entity, f.Message)
	}
}

func (s *DensitySuite) TestAuditFlagsFlatColorRatio() {
	// Lowercase and uppercase equally dark: ratio 1.0, below the band.
	font := densityFont(map[string]testGlyph{
		"n": letter(200, 400, 500),
		"o": letter(200, 400, 500),
		"H": letter(200, 400, 700),
	})
	findings, summaries := Audit(font, []string{"r"}, s.regs)
	s.Require().Len(summaries, 1)
	s.InDelta(1.0, summaries[0].LCToUCRatio, 1e-9)
	var flagged []report.Finding
	for _, f := range findings {
		if f.Severity != report.Pass {
			flagged = append(flagged, f)
		}
	}
	s.Require().Len(flagged, 1)
	s.Equal(report.Warning, flagged[0].Severity)
	s.Equal("lowercase/uppercase", flagged[0].Entity)
	s.Equal("1.000", flagged[0].Value)
}
