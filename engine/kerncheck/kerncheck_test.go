package kerncheck

import (
	"strings"
	"testing"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type KernSuite struct {
	suite.Suite
	teardown func()
	regs     *checkparam.Registers
}

func TestKernSuite(t *testing.T) {
	suite.Run(t, new(KernSuite))
}

func (s *KernSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphaudit.engine")
	s.regs = checkparam.NewRegisters()
}

func (s *KernSuite) TearDownTest() {
	s.teardown()
}

// ---------------------------------------------------------------------------

// kernFont builds a two-master font with letters T, o, a (each a member
// of a left- and a right-side group) and the groupless letter v.
func kernFont() *fontmodel.Font {
	font := &fontmodel.Font{
		FamilyName: "Testcase",
		UnitsPerEm: 1000,
		Masters: []fontmodel.Master{
			{ID: "l", Name: "Light", Kerning: map[fontmodel.PairKey]float64{}},
			{ID: "b", Name: "Bold", Kerning: map[fontmodel.PairKey]float64{}},
		},
		Glyphs: map[string]*fontmodel.Glyph{},
		Groups: map[string]fontmodel.Group{},
	}
	for _, n := range []string{"T", "o", "a"} {
		font.Glyphs[n] = &fontmodel.Glyph{Name: n, Category: fontmodel.CatLetter}
		font.Groups["L."+n] = fontmodel.Group{
			Name: "L." + n, Side: fontmodel.LeftSide, Members: []string{n}}
		font.Groups["R."+n] = fontmodel.Group{
			Name: "R." + n, Side: fontmodel.RightSide, Members: []string{n}}
	}
	font.Glyphs["v"] = &fontmodel.Glyph{Name: "v", Category: fontmodel.CatLetter}
	return font
}

func pair(l, r string) fontmodel.PairKey {
	key := func(n string) fontmodel.Key {
		if strings.HasPrefix(n, "@") {
			return fontmodel.GroupKey(n[1:])
		}
		return fontmodel.GlyphKey(n)
	}
	return fontmodel.PairKey{Left: key(l), Right: key(r)}
}

func (s *KernSuite) kern(font *fontmodel.Font, master string, pk fontmodel.PairKey, v float64) {
	font.Master(master).Kerning[pk] = v
}

func findingsFor(findings []report.Finding, entity string) []report.Finding {
	var out []report.Finding
	for _, f := range findings {
		if f.Entity == entity {
			out = append(out, f)
		}
	}
	return out
}

func hasMessage(findings []report.Finding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------

func (s *KernSuite) TestSignChangeIsNotMissing() {
	font := kernFont()
	s.kern(font, "l", pair("T", "a"), 50)
	s.kern(font, "b", pair("T", "a"), -50)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "T/a")
	s.True(hasMessage(fs, "sign"), "a +50/-50 pair is a sign change")
	s.False(hasMessage(fs, "missing"), "the pair exists in both masters")
}

func (s *KernSuite) TestMissingPairIsNotSignChange() {
	font := kernFont()
	s.kern(font, "l", pair("T", "a"), 50)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "T/a")
	s.True(hasMessage(fs, "missing"))
	s.False(hasMessage(fs, "sign"))
	for _, f := range fs {
		if strings.Contains(f.Message, "missing") {
			s.Equal(report.Fatal, f.Severity)
			s.Equal("Bold", f.Masters, "names the master the pair is absent from")
		}
	}
}

func (s *KernSuite) TestOutlierValue() {
	font := kernFont()
	s.kern(font, "l", pair("T", "a"), -450)
	s.kern(font, "b", pair("T", "a"), -450)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "T/a")
	s.Len(fs, 2, "one warning per master")
	for _, f := range fs {
		s.Equal(report.Warning, f.Severity)
		s.True(strings.Contains(f.Message, "outlier"))
	}
}

func (s *KernSuite) TestRedundantException() {
	font := kernFont()
	group := pair("@L.T", "@R.o")
	s.kern(font, "l", group, -80)
	s.kern(font, "b", group, -80)
	s.kern(font, "l", pair("T", "o"), -80)
	s.kern(font, "b", pair("T", "o"), -80)
	all := Check(font, []string{"l", "b"}, s.regs)
	fs := findingsFor(all, "T/o")
	s.True(hasMessage(fs, "removed"), "exception equals the group value")
	s.True(hasMessage(findingsFor(all, "@L.T/@R.o"), ""), "group pair itself passes")
	for _, f := range findingsFor(all, "@L.T/@R.o") {
		s.Equal(report.Pass, f.Severity)
	}
}

func (s *KernSuite) TestIntentionalExceptionNotFlagged() {
	font := kernFont()
	group := pair("@L.T", "@R.o")
	s.kern(font, "l", group, -80)
	s.kern(font, "b", group, -80)
	s.kern(font, "l", pair("T", "o"), -20)
	s.kern(font, "b", pair("T", "o"), -20)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "T/o")
	s.False(hasMessage(fs, "removed"))
}

func (s *KernSuite) TestLetterGroupOrphan() {
	font := kernFont()
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "v")
	s.Require().Len(fs, 1)
	s.Equal(report.Warning, fs[0].Severity)
	s.True(strings.Contains(fs[0].Message, "group"))
	// letters with group membership stay quiet
	s.Empty(findingsFor(Check(font, []string{"l", "b"}, s.regs), "T"))
}

func (s *KernSuite) TestDanglingReferenceIsPartial() {
	font := kernFont()
	s.kern(font, "l", pair("T", "missingglyph"), -50)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "T/missingglyph")
	s.Require().Len(fs, 1)
	s.Equal(report.Partial, fs[0].Severity)
}

func (s *KernSuite) TestCleanPairPasses() {
	font := kernFont()
	s.kern(font, "l", pair("o", "a"), -30)
	s.kern(font, "b", pair("o", "a"), -35)
	fs := findingsFor(Check(font, []string{"l", "b"}, s.regs), "o/a")
	s.Require().Len(fs, 1)
	s.Equal(report.Pass, fs[0].Severity)
}
