package kerncheck

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of kerning findings.
const CheckName = "kerning"

// Check audits the kerning tables of the given masters. It walks the
// union of all pair keys, so a pair present in just one master is
// still seen. Every analyzed pair contributes at least one finding
// (passing pairs a passing one), letter glyphs without group
// membership are flagged on top.
func Check(font *fontmodel.Font, masterIDs []string, regs *checkparam.Registers) []report.Finding {
	masters := make([]*fontmodel.Master, 0, len(masterIDs))
	for _, id := range masterIDs {
		if m := font.Master(id); m != nil {
			masters = append(masters, m)
		}
	}
	var findings []report.Finding
	for _, pk := range unionKeys(masters) {
		findings = append(findings, checkPair(font, masters, pk, regs)...)
	}
	findings = append(findings, checkGroupMembership(font)...)
	return findings
}

// unionKeys collects the pair keys of all masters, sorted for
// deterministic reports.
func unionKeys(masters []*fontmodel.Master) []fontmodel.PairKey {
	seen := make(map[fontmodel.PairKey]bool)
	var keys []fontmodel.PairKey
	for _, m := range masters {
		for pk := range m.Kerning {
			if !seen[pk] {
				seen[pk] = true
				keys = append(keys, pk)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

func checkPair(font *fontmodel.Font, masters []*fontmodel.Master,
	pk fontmodel.PairKey, regs *checkparam.Registers) []report.Finding {
	//
	entity := pk.String()
	var findings []report.Finding
	if !font.KeyExists(pk.Left) || !font.KeyExists(pk.Right) {
		// dangling reference, the table is work in progress
		return []report.Finding{report.F(report.Partial, CheckName, entity, "",
			"pair references a nonexistent glyph or group")}
	}
	var present, absent []*fontmodel.Master
	var firstNeg, firstPos *fontmodel.Master
	for _, m := range masters {
		v, ok := m.Kerning[pk]
		if !ok {
			absent = append(absent, m)
			continue
		}
		present = append(present, m)
		if v < 0 && firstNeg == nil {
			firstNeg = m
		}
		if v > 0 && firstPos == nil {
			firstPos = m
		}
		if limit := regs.Get(checkparam.P_KERN_OUTLIER_PCT) * float64(font.UnitsPerEm); math.Abs(v) > limit {
			findings = append(findings, report.F(report.Warning, CheckName, entity, m.Name,
				"kerning value exceeds outlier threshold").
				Measured(fmt.Sprintf("%.0f", v), fmt.Sprintf("±%.0f", limit)))
		}
	}
	if len(present) > 0 && len(absent) > 0 {
		tracer().Debugf("pair %s missing in %d of %d masters", entity, len(absent), len(masters))
		findings = append(findings, report.F(report.Fatal, CheckName, entity,
			masterNames(absent), "pair missing, interpolates toward zero"))
	}
	if firstNeg != nil && firstPos != nil {
		findings = append(findings, report.F(report.Fatal, CheckName, entity,
			firstNeg.Name+"↔"+firstPos.Name, "kerning sign changes between masters"))
	}
	if !pk.Left.Group && !pk.Right.Group {
		findings = append(findings, checkRedundantException(font, present, pk, regs)...)
	}
	if len(findings) == 0 {
		findings = append(findings, report.Passf(CheckName, entity, ""))
	}
	return findings
}

// checkRedundantException flags a glyph-level pair whose value merely
// repeats the group-level value covering the same sides.
func checkRedundantException(font *fontmodel.Font, present []*fontmodel.Master,
	pk fontmodel.PairKey, regs *checkparam.Registers) []report.Finding {
	//
	eps := regs.Get(checkparam.P_KERN_EPSILON)
	var findings []report.Finding
	for _, m := range present {
		v := m.Kerning[pk]
		gv, ok := font.GroupPairValue(m, pk.Left.Name, pk.Right.Name)
		if !ok {
			continue
		}
		if math.Abs(v-gv) <= eps {
			findings = append(findings, report.F(report.Warning, CheckName, pk.String(), m.Name,
				"exception repeats the group value and can be removed").
				Measured(fmt.Sprintf("%.0f", v), fmt.Sprintf("group %.0f", gv)))
		}
	}
	return findings
}

// checkGroupMembership flags letter glyphs that belong to no kerning
// group on one side or the other. Such orphans silently fall out of
// class kerning.
func checkGroupMembership(font *fontmodel.Font) []report.Finding {
	var findings []report.Finding
	for _, name := range font.GlyphNames() {
		g := font.Glyph(name)
		if g.Category != fontmodel.CatLetter {
			continue
		}
		left, right := font.GroupsOf(name)
		var missing []string
		if left == "" {
			missing = append(missing, "left")
		}
		if right == "" {
			missing = append(missing, "right")
		}
		if len(missing) > 0 {
			findings = append(findings, report.F(report.Warning, CheckName, name, "",
				"letter belongs to no %s kerning group", strings.Join(missing, " or ")))
		}
	}
	return findings
}

func masterNames(masters []*fontmodel.Master) string {
	names := make([]string, len(masters))
	for i, m := range masters {
		names[i] = m.Name
	}
	return strings.Join(names, ",")
}
