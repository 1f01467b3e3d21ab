package compat

import (
	"strings"
	"testing"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type CompatSuite struct {
	suite.Suite
	teardown func()
	regs     *checkparam.Registers
}

func TestCompatSuite(t *testing.T) {
	suite.Run(t, new(CompatSuite))
}

func (s *CompatSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphaudit.engine")
	s.regs = checkparam.NewRegisters()
}

func (s *CompatSuite) TearDownTest() {
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

func rotated(p fontmodel.Path, by int) fontmodel.Path {
	n := len(p.Nodes)
	nodes := make([]fontmodel.Node, n)
	for i := range p.Nodes {
		nodes[i] = p.Nodes[(i+by)%n]
	}
	return fontmodel.Path{Nodes: nodes}
}

// twoMasterFont builds a font with masters "l" and "b" and a single
// glyph holding the two given layers.
func twoMasterFont(name string, light, bold *fontmodel.Layer) *fontmodel.Font {
	g := &fontmodel.Glyph{
		Name:     name,
		Category: fontmodel.CatLetter,
		Layers:   map[string]*fontmodel.Layer{"l": light, "b": bold},
	}
	return &fontmodel.Font{
		FamilyName: "Testcase",
		UnitsPerEm: 1000,
		Masters: []fontmodel.Master{
			{ID: "l", Name: "Light"},
			{ID: "b", Name: "Bold"},
		},
		Glyphs: map[string]*fontmodel.Glyph{name: g},
	}
}

func (s *CompatSuite) check(font *fontmodel.Font, name string, masters ...string) []report.Finding {
	if len(masters) == 0 {
		masters = []string{"l", "b"}
	}
	return CheckGlyph(font, font.Glyph(name), masters, s.regs)
}

func worst(findings []report.Finding) report.Severity {
	w := report.Pass
	for _, f := range findings {
		w = report.Worse(w, f.Severity)
	}
	return w
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

func (s *CompatSuite) TestIdenticalLayersCompatible() {
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rect(50, 0, 350, 700)}, Width: 400}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{rect(40, 0, 360, 700)}, Width: 400}
	font := twoMasterFont("I", l, b)
	findings := s.check(font, "I")
	s.Equal(report.Pass, worst(findings))
	s.Len(findings, 1, "a clean glyph yields exactly the passing finding")
}

func (s *CompatSuite) TestSwappedPathOrderIncompatible() {
	left := rect(0, 0, 100, 700)
	right := rect(300, 0, 400, 700)
	l := &fontmodel.Layer{Paths: []fontmodel.Path{left, right}, Width: 500}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{right, left}, Width: 500}
	font := twoMasterFont("H", l, b)
	findings := s.check(font, "H")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "path order"), "swapped drawing order must be caught")
}

func (s *CompatSuite) TestPathCountMismatch() {
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rect(0, 0, 100, 700)}, Width: 500}
	b := &fontmodel.Layer{
		Paths: []fontmodel.Path{rect(0, 0, 100, 700), rect(300, 0, 400, 700)},
		Width: 500,
	}
	font := twoMasterFont("h", l, b)
	findings := s.check(font, "h")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "path count"))
}

func (s *CompatSuite) TestNodeCountMismatch() {
	fiveNodes := rect(0, 0, 100, 700)
	fiveNodes.Nodes = append(fiveNodes.Nodes,
		fontmodel.Node{Pos: arithm.P(0, 350), Type: fontmodel.Line})
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rect(0, 0, 100, 700)}, Width: 200}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{fiveNodes}, Width: 200}
	font := twoMasterFont("l", l, b)
	findings := s.check(font, "l")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "node count"))
}

func (s *CompatSuite) TestDirectionMismatch() {
	p := rect(0, 0, 100, 700)
	l := &fontmodel.Layer{Paths: []fontmodel.Path{p}, Width: 200}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{p.Reversed()}, Width: 200}
	font := twoMasterFont("i", l, b)
	findings := s.check(font, "i")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "winding"))
}

func (s *CompatSuite) TestStartNodeTooFarApart() {
	p := rect(0, 0, 400, 700)
	l := &fontmodel.Layer{Paths: []fontmodel.Path{p}, Width: 500}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{rotated(p, 2)}, Width: 500}
	font := twoMasterFont("O", l, b)
	findings := s.check(font, "O")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "start node"))
}

func (s *CompatSuite) TestStartNodeWithinTolerance() {
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rect(0, 0, 400, 700)}, Width: 500}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{rect(80, 0, 400, 700)}, Width: 500}
	font := twoMasterFont("D", l, b)
	findings := s.check(font, "D")
	s.Equal(report.Pass, worst(findings), "an 80u offset is below the start-node limit")
}

func (s *CompatSuite) TestAsymmetricEmptinessIsPartial() {
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rect(0, 0, 100, 700)}, Width: 200}
	b := &fontmodel.Layer{Width: 200}
	font := twoMasterFont("j", l, b)
	findings := s.check(font, "j")
	s.Equal(report.Partial, worst(findings))
	s.True(hasMessage(findings, "partially drawn"))
}

func (s *CompatSuite) TestBothEmptyIsCompatible() {
	font := twoMasterFont("space",
		&fontmodel.Layer{Width: 250}, &fontmodel.Layer{Width: 250})
	findings := s.check(font, "space")
	s.Equal(report.Pass, worst(findings))
}

func (s *CompatSuite) TestComponentMultisetMismatch() {
	l := &fontmodel.Layer{
		Components: []fontmodel.Component{{Base: "a", Transform: fontmodel.Identity}},
		Width:      200,
	}
	b := &fontmodel.Layer{
		Components: []fontmodel.Component{
			{Base: "a", Transform: fontmodel.Identity},
			{Base: "acutecomb", Transform: fontmodel.Identity},
		},
		Width: 200,
	}
	font := twoMasterFont("aacute", l, b)
	findings := s.check(font, "aacute")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "component"))
}

func (s *CompatSuite) TestAnchorSetMismatch() {
	p := rect(0, 0, 100, 700)
	l := &fontmodel.Layer{
		Paths:   []fontmodel.Path{p},
		Anchors: []fontmodel.Anchor{{Name: "top", Pos: arithm.P(50, 700)}},
		Width:   200,
	}
	b := &fontmodel.Layer{Paths: []fontmodel.Path{p}, Width: 200}
	font := twoMasterFont("n", l, b)
	findings := s.check(font, "n")
	s.Equal(report.Fatal, worst(findings))
	s.True(hasMessage(findings, "anchors"))
}

func (s *CompatSuite) TestWorstStatusOverAllPairs() {
	p := rect(0, 0, 100, 700)
	g := &fontmodel.Glyph{
		Name:     "k",
		Category: fontmodel.CatLetter,
		Layers: map[string]*fontmodel.Layer{
			"l": {Paths: []fontmodel.Path{p}, Width: 200},
			"m": {Paths: []fontmodel.Path{p}, Width: 200},
			"b": {Width: 200}, // not drawn yet
		},
	}
	font := &fontmodel.Font{
		UnitsPerEm: 1000,
		Masters: []fontmodel.Master{
			{ID: "l", Name: "Light"}, {ID: "m", Name: "Medium"}, {ID: "b", Name: "Bold"},
		},
		Glyphs: map[string]*fontmodel.Glyph{"k": g},
	}
	findings := CheckGlyph(font, g, []string{"l", "m", "b"}, s.regs)
	s.Equal(report.Partial, worst(findings))
	labels := report.Plan(findings)
	s.Require().Len(labels, 1)
	s.Equal(report.Partial, labels[0].Severity)
}
