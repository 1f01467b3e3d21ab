package stems

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// diagGroups names sets of diagonal glyphs that should agree on their
// stroke weight, with a spread tolerance in percent of the group
// average.
var diagGroups = []struct {
	members   []string
	tolerance float64
	note      string
}{
	{[]string{"v", "w", "y"}, 18.0, "lowercase open diagonals"},
	{[]string{"V", "A", "W"}, 10.0, "uppercase primary diagonals"},
	{[]string{"X", "Y", "Z"}, 12.0, "uppercase secondary diagonals"},
	{[]string{"M", "N"}, 10.0, "uppercase diagonal verticals"},
}

// diagRatioRange is the plausible diagonal/straight thickness ratio in
// percent, from professional fonts at text weights. Uppercase ranges
// run above 100 because perpendicular measurement of an angled stroke
// reads slightly wide.
var diagRatioRange = map[string][2]float64{
	"v": {85, 101}, "w": {82, 101}, "y": {83, 101},
	"k": {50, 100},
	"V": {87, 110}, "W": {87, 108}, "Y": {85, 108},
	"A": {90, 112}, "K": {87, 115}, "M": {87, 111}, "N": {84, 113},
}

// crossing strokes defeat the perpendicular measurement
var diagUnreliable = map[string]bool{"x": true, "X": true, "z": true, "Z": true}

const (
	// spreads below this many units are rounding noise at thin weights
	diagMinSpread = 4
	// reference stems below this make ratio checks meaningless
	diagMinRef = 30
)

var diagGlyphs = []string{
	"v", "w", "x", "y", "z", "k",
	"V", "W", "X", "Y", "Z", "A", "K", "M", "N",
}

// CheckDiagonals audits diagonal stroke weights: related diagonals
// must agree within their group, and each diagonal's thickness ratio
// to the straight reference stem must stay in the plausible band.
func CheckDiagonals(font *fontmodel.Font, masterIDs []string,
	regs *checkparam.Registers) []report.Finding {
	//
	groupTol := regs.Get(checkparam.P_STEM_GROUP_TOL)
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkDiagonalsMaster(font, m, groupTol)...)
	}
	return findings
}

func checkDiagonalsMaster(font *fontmodel.Font, m *fontmodel.Master,
	groupTol float64) []report.Finding {
	//
	lcRef, lcOK := measureReference(font, m, "n", groupTol)
	ucRef, ucOK := measureReference(font, m, "H", groupTol)
	if !lcOK && !ucOK {
		return nil
	}
	var findings []report.Finding
	stems := make(map[string]float64)
	flagged := make(map[string]bool)
	for _, name := range diagGlyphs {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		layer := g.Layer(m.ID)
		if layer == nil || layer.IsEmpty() {
			continue
		}
		// diagonals register as vertical or horizontal depending on
		// their angle; take whichever the measurement produced
		vert, horiz, vok, hok := measureDominant(font, m, g, raycast.Frequency, 0, groupTol)
		stem := vert
		if !vok {
			stem = horiz
		}
		if !vok && !hok {
			continue
		}
		stems[name] = stem
		if diagUnreliable[name] {
			flagged[name] = true
			findings = append(findings, report.F(report.Partial, CheckName, name, m.Name,
				"crossing strokes, diagonal measurement unreliable"))
			continue
		}
		ref, refOK := lcRef, lcOK
		if g.Class() == fontmodel.ClassUppercase {
			ref, refOK = ucRef, ucOK
		}
		if !refOK || ref < diagMinRef {
			continue // too thin for a meaningful ratio
		}
		ratio := stem / ref * 100
		if band, ok := diagRatioRange[name]; ok && (ratio < band[0] || ratio > band[1]) {
			flagged[name] = true
			findings = append(findings, report.F(report.Warning, CheckName, name, m.Name,
				"diagonal/straight ratio out of range").
				Measured(fmt.Sprintf("%.1f%%", ratio),
					fmt.Sprintf("%.0f–%.0f%%", band[0], band[1])))
		}
	}
	for _, grp := range diagGroups {
		var members []string
		for _, name := range grp.members {
			if _, ok := stems[name]; ok && !diagUnreliable[name] {
				members = append(members, name)
			}
		}
		if len(members) < 2 {
			continue
		}
		lo, hi := stems[members[0]], stems[members[0]]
		sum := 0.0
		for _, name := range members {
			s := stems[name]
			sum += s
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		spread := hi - lo
		if spread <= diagMinSpread {
			continue
		}
		spreadPct := spread / (sum / float64(len(members))) * 100
		if spreadPct <= grp.tolerance {
			continue
		}
		tracer().Infof("master %s: %s spread %.1f%%", m.Name, grp.note, spreadPct)
		sort.Strings(members)
		for _, name := range members {
			flagged[name] = true
			findings = append(findings, report.F(report.Fatal, CheckName, name, m.Name,
				"diagonal weight inconsistent within %s (%s)",
				grp.note, strings.Join(members, " ")).
				Measured(fmt.Sprintf("spread %.1f%%", spreadPct),
					fmt.Sprintf("≤ %.0f%%", grp.tolerance)))
		}
	}
	var passes []string
	for name := range stems {
		if !flagged[name] {
			passes = append(passes, name)
		}
	}
	sort.Strings(passes)
	for _, name := range passes {
		findings = append(findings, report.Passf(CheckName, name, m.Name))
	}
	return findings
}
