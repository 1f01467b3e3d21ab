package proportion

import (
	"testing"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type ProportionSuite struct {
	suite.Suite
	teardown func()
}

func TestProportionSuite(t *testing.T) {
	suite.Run(t, new(ProportionSuite))
}

func (s *ProportionSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphaudit.engine")
}

func (s *ProportionSuite) TearDownTest() {
	s.teardown()
}

// ---------------------------------------------------------------------------

// widthFont builds a font where only advance widths matter.
func widthFont(widths map[string]float64) *fontmodel.Font {
	figures := map[string]bool{}
	for _, name := range figureNames {
		figures[name] = true
	}
	font := &fontmodel.Font{
		FamilyName: "Testcase",
		UnitsPerEm: 1000,
		Masters:    []fontmodel.Master{{ID: "r", Name: "Regular", XHeight: 500, CapHeight: 700}},
		Glyphs:     map[string]*fontmodel.Glyph{},
	}
	for name, w := range widths {
		cat := fontmodel.CatLetter
		if figures[name] {
			cat = fontmodel.CatFigure
		}
		font.Glyphs[name] = &fontmodel.Glyph{
			Name:     name,
			Category: cat,
			Layers:   map[string]*fontmodel.Layer{"r": {Width: w}},
		}
	}
	return font
}

func pick(findings []report.Finding, entity string) []report.Finding {
	var out []report.Finding
	for _, f := range findings {
		if f.Entity == entity {
			out = append(out, f)
		}
	}
	return out
}

// ---------------------------------------------------------------------------

func (s *ProportionSuite) TestRelatedGroupOutlier() {
	font := widthFont(map[string]float64{
		"n": 500, "h": 500,
		"b": 520, "d": 520, "p": 520, "q": 560, // q off the b/d/p/q group
	})
	findings := Check(font, []string{"r"}, nil)
	qf := pick(findings, "q")
	s.Require().Len(qf, 1)
	s.Equal(report.Fatal, qf[0].Severity)
	s.Contains(qf[0].Message, "related forms")
	for _, name := range []string{"n", "h", "b", "d", "p"} {
		fs := pick(findings, name)
		s.Require().Len(fs, 1, "findings for %s", name)
		s.Equal(report.Pass, fs[0].Severity, "glyph %s", name)
	}
}

func (s *ProportionSuite) TestWidthOrderingViolation() {
	font := widthFont(map[string]float64{"n": 500, "m": 480})
	findings := Check(font, []string{"r"}, nil)
	ord := pick(findings, "m/n")
	s.Require().Len(ord, 1)
	s.Equal(report.Fatal, ord[0].Severity)
	// m is also far outside its industry range, and n is implicated
	// in the ordering violation, so neither glyph passes.
	mf := pick(findings, "m")
	s.Require().Len(mf, 1)
	s.Equal(report.Warning, mf[0].Severity)
	s.Empty(pick(findings, "n"))
}

func (s *ProportionSuite) TestIndustryRangeOutlier() {
	font := widthFont(map[string]float64{"n": 500, "i": 300})
	findings := Check(font, []string{"r"}, nil)
	fi := pick(findings, "i")
	s.Require().Len(fi, 1)
	s.Equal(report.Warning, fi[0].Severity)
	s.Equal("60.0%", fi[0].Value)
	fn := pick(findings, "n")
	s.Require().Len(fn, 1)
	s.Equal(report.Pass, fn[0].Severity)
}

func (s *ProportionSuite) TestNoReferenceYieldsNothing() {
	font := widthFont(map[string]float64{"o": 500, "i": 250})
	s.Empty(Check(font, []string{"r"}, nil))
}

func (s *ProportionSuite) TestRotatedFigureForms() {
	font := widthFont(map[string]float64{
		"six": 560, "nine": 500, // 112%, rotated forms must match
		"zero": 450, "O": 500, // 90%, inside 65–93
	})
	findings := CheckRelatedForms(font, []string{"r"})
	six := pick(findings, "six/nine")
	s.Require().Len(six, 1)
	s.Equal(report.Fatal, six[0].Severity)
	zero := pick(findings, "zero/O")
	s.Require().Len(zero, 1)
	s.Equal(report.Pass, zero[0].Severity)
}

func (s *ProportionSuite) TestPunctuationPairs() {
	font := widthFont(map[string]float64{
		"parenleft": 300, "parenright": 310, // mirrored, must match
		"colon": 240, "semicolon": 260, // inside ±15%
		"endash": 500, "hyphen": 300, // 166.7%, inside 140–280
	})
	findings := CheckPunctuation(font, []string{"r"})
	parens := pick(findings, "parenleft/parenright")
	s.Require().Len(parens, 1)
	s.Equal(report.Fatal, parens[0].Severity)
	colon := pick(findings, "colon/semicolon")
	s.Require().Len(colon, 1)
	s.Equal(report.Pass, colon[0].Severity)
	dash := pick(findings, "endash/hyphen")
	s.Require().Len(dash, 1)
	s.Equal(report.Pass, dash[0].Severity)
}
