package audit

import (
	"strings"
	"testing"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/compat"
	"github.com/npillmayer/glyphaudit/engine/density"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type AuditSuite struct {
	suite.Suite
	teardown func()
	regs     *checkparam.Registers
}

func TestAuditSuite(t *testing.T) {
	suite.Run(t, new(AuditSuite))
}

func (s *AuditSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphaudit.engine")
	s.regs = checkparam.NewRegisters()
}

func (s *AuditSuite) TearDownTest() {
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

func barGlyph(name string, width, height float64) *fontmodel.Glyph {
	layer := func() *fontmodel.Layer {
		return &fontmodel.Layer{
			Width: width,
			Paths: []fontmodel.Path{rect(40, 0, 240, height)},
		}
	}
	return &fontmodel.Glyph{
		Name:     name,
		Category: fontmodel.CatLetter,
		Layers:   map[string]*fontmodel.Layer{"l": layer(), "b": layer()},
	}
}

// auditFont builds a two-master font with identical, trivially
// compatible layers in both masters.
func auditFont(glyphs ...*fontmodel.Glyph) *fontmodel.Font {
	font := &fontmodel.Font{
		FamilyName: "Testcase",
		UnitsPerEm: 1000,
		Masters: []fontmodel.Master{
			{ID: "l", Name: "Light", XHeight: 500, CapHeight: 700,
				Ascender: 750, Descender: -200,
				Kerning: map[fontmodel.PairKey]float64{}},
			{ID: "b", Name: "Bold", XHeight: 500, CapHeight: 700,
				Ascender: 750, Descender: -200,
				Kerning: map[fontmodel.PairKey]float64{}},
		},
		Glyphs: map[string]*fontmodel.Glyph{},
	}
	for _, g := range glyphs {
		font.Glyphs[g.Name] = g
	}
	return font
}

func labelOf(labels []report.Label, entity string) (report.Severity, bool) {
	for _, l := range labels {
		if l.Entity == entity {
			return l.Severity, true
		}
	}
	return report.Pass, false
}

// ---------------------------------------------------------------------------

func (s *AuditSuite) TestUnknownMasterIsUsageError() {
	font := auditFont(barGlyph("n", 400, 500))
	_, err := Run(font, Request{Masters: []string{"zz"}}, s.regs)
	s.Require().Error(err)
	s.Equal(core.EMISSING, core.Code(err))
}

func (s *AuditSuite) TestUnknownGlyphIsUsageError() {
	font := auditFont(barGlyph("n", 400, 500))
	_, err := Run(font, Request{Glyphs: []string{"ampersand"}}, s.regs)
	s.Require().Error(err)
	s.Equal(core.EMISSING, core.Code(err))
}

func (s *AuditSuite) TestUnknownCheckIsUsageError() {
	font := auditFont(barGlyph("n", 400, 500))
	_, err := Run(font, Request{Checks: []string{"colorimetry"}}, s.regs)
	s.Require().Error(err)
	s.Equal(core.EINVALID, core.Code(err))
}

func (s *AuditSuite) TestFontWithoutMasters() {
	font := &fontmodel.Font{FamilyName: "Empty", UnitsPerEm: 1000,
		Glyphs: map[string]*fontmodel.Glyph{}}
	_, err := Run(font, Request{}, s.regs)
	s.Require().Error(err)
	s.Equal(core.EINVALID, core.Code(err))
}

func (s *AuditSuite) TestGlyphSubsetNarrowsPerGlyphChecks() {
	font := auditFont(
		barGlyph("n", 400, 500),
		barGlyph("n.sc", 380, 480),
		barGlyph("o", 400, 500),
	)
	result, err := Run(font, Request{
		Glyphs: []string{"n*"},
		Checks: []string{compat.CheckName},
	}, s.regs)
	s.Require().NoError(err)
	entities := map[string]bool{}
	for _, f := range result.Findings {
		s.Equal(compat.CheckName, f.Check)
		entities[f.Entity] = true
	}
	s.Len(entities, 2)
	s.True(entities["n"])
	s.True(entities["n.sc"])
	_, hasO := labelOf(result.Labels, "o")
	s.False(hasO, "glyph outside the subset must not be analyzed")
}

func (s *AuditSuite) TestWorstSeverityWinsInPlan() {
	font := auditFont(barGlyph("n", 400, 500), barGlyph("o", 400, 500))
	// an extra path in one master makes "o" incompatible
	bold := font.Glyph("o").Layers["b"]
	bold.Paths = append(bold.Paths, rect(300, 0, 320, 500))
	result, err := Run(font, Request{Checks: []string{compat.CheckName}}, s.regs)
	s.Require().NoError(err)
	sev, ok := labelOf(result.Labels, "o")
	s.Require().True(ok)
	s.Equal(report.Fatal, sev)
	sev, ok = labelOf(result.Labels, "n")
	s.Require().True(ok)
	s.Equal(report.Pass, sev)
}

func (s *AuditSuite) TestRepeatedRunIsIdempotent() {
	font := auditFont(
		barGlyph("n", 400, 500),
		barGlyph("o", 400, 500),
		barGlyph("H", 500, 700),
	)
	req := Request{Workers: 4}
	first, err := Run(font, req, s.regs)
	s.Require().NoError(err)
	second, err := Run(font, req, s.regs)
	s.Require().NoError(err)
	s.Equal(first.Findings, second.Findings)
	s.Equal(first.Labels, second.Labels)
	s.Len(first.Density, 2, "full audit collects color statistics per master")
}

func (s *AuditSuite) TestDensityFindingsAreUnique() {
	font := auditFont(
		barGlyph("n", 400, 500),
		barGlyph("o", 400, 500),
		barGlyph("H", 500, 700),
	)
	result, err := Run(font, Request{Checks: []string{density.CheckName}}, s.regs)
	s.Require().NoError(err)
	seen := map[string]int{}
	perGlyph := 0
	for _, f := range result.Findings {
		s.Equal(density.CheckName, f.Check)
		seen[f.Entity+"|"+f.Masters+"|"+f.Message]++
		if font.Glyph(f.Entity) != nil {
			perGlyph++
		}
	}
	for key, n := range seen {
		s.Equalf(1, n, "finding %q emitted %d times", key, n)
	}
	// the full-set audit evaluates each glyph once per master
	s.Equal(2*len(font.Glyphs), perGlyph)
}

func (s *AuditSuite) TestPanicIsConfinedToOneEntity() {
	t := task{check: "compatibility", entity: "q", run: func() []report.Finding {
		panic("corrupt outline")
	}}
	findings := runIsolated(t)
	s.Require().Len(findings, 1)
	s.Equal(report.Partial, findings[0].Severity)
	s.Equal("q", findings[0].Entity)
	s.True(strings.Contains(findings[0].Message, "corrupt outline"))
}
