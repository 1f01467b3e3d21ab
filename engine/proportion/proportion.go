package proportion

import (
	"fmt"
	"sort"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of width proportion findings.
const CheckName = "proportion"

// Check judges glyph set widths per master: related-form groups must
// agree internally, ordering constraints must hold, and every ratio
// to the case reference should fall into its industry range. A nil
// glyph list selects all basic letters and figures the font contains.
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

type proportionOf struct {
	width float64
	ratio float64 // percent of the case reference width
}

func checkMaster(font *fontmodel.Font, m *fontmodel.Master, glyphNames []string) []report.Finding {
	nW := widthOf(font, m, "n")
	hW := widthOf(font, m, "H")
	if nW == 0 && hW == 0 {
		tracer().Infof("master %s: no reference widths (n, H)", m.Name)
		return nil
	}
	if nW > 0 && hW > 0 {
		tracer().Debugf("master %s: n/H width ratio %.1f%%", m.Name, nW/hW*100)
	}
	props := map[string]proportionOf{}
	for _, name := range glyphNames {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		w := widthOf(font, m, name)
		if w == 0 {
			continue
		}
		ref := nW
		if g.Class() == fontmodel.ClassUppercase || g.Class() == fontmodel.ClassFigure {
			ref = hW
		}
		if ref == 0 {
			continue
		}
		props[name] = proportionOf{width: w, ratio: w / ref * 100}
	}
	var findings []report.Finding
	flagged := map[string]bool{}

	// Related-form groups: flag members off the group's median ratio.
	for _, grp := range widthGroups {
		var members []string
		for _, name := range grp.members {
			if _, ok := props[name]; ok {
				members = append(members, name)
			}
		}
		if len(members) < 2 {
			continue
		}
		lo, hi := props[members[0]].ratio, props[members[0]].ratio
		for _, name := range members[1:] {
			r := props[name].ratio
			if r < lo {
				lo = r
			}
			if r > hi {
				hi = r
			}
		}
		if hi-lo <= grp.tolerance {
			continue
		}
		median := medianRatio(props, members)
		for _, name := range members {
			if r := props[name].ratio; r < median-grp.tolerance || r > median+grp.tolerance {
				findings = append(findings, report.F(report.Fatal, CheckName, name, m.Name,
					"width disagrees with related forms: %s", grp.note).
					Measured(fmt.Sprintf("%.1f%%", r),
						fmt.Sprintf("%.1f±%.1f%%", median, grp.tolerance)))
				flagged[name] = true
			}
		}
	}

	// Ordering constraints.
	for _, ord := range widthOrders {
		pw, okW := props[ord.wider]
		pn, okN := props[ord.narrower]
		if !okW || !okN {
			continue
		}
		if pw.width < pn.width {
			findings = append(findings, report.F(report.Fatal, CheckName,
				ord.wider+"/"+ord.narrower, m.Name, "%s", ord.note).
				Measured(fmt.Sprintf("%.0f vs %.0f", pw.width, pn.width), ""))
			flagged[ord.wider] = true
			flagged[ord.narrower] = true
		}
	}

	// Industry ranges.
	for _, name := range sortedKeys(props) {
		rng, ok := widthRanges[fontmodel.BaseName(name)]
		if !ok {
			continue
		}
		if r := props[name].ratio; r < rng[0] || r > rng[1] {
			findings = append(findings, report.F(report.Warning, CheckName, name, m.Name,
				"width ratio outside the industry range").
				Measured(fmt.Sprintf("%.1f%%", r),
					fmt.Sprintf("%.0f–%.0f%%", rng[0], rng[1])))
			flagged[name] = true
		}
	}

	for _, name := range sortedKeys(props) {
		if !flagged[name] {
			findings = append(findings, report.Passf(CheckName, name, m.Name))
		}
	}
	return findings
}

func widthOf(font *fontmodel.Font, m *fontmodel.Master, name string) float64 {
	g := font.Glyph(name)
	if g == nil {
		return 0
	}
	layer := g.Layer(m.ID)
	if layer == nil {
		return 0
	}
	return layer.Width
}

func medianRatio(props map[string]proportionOf, members []string) float64 {
	ratios := make([]float64, 0, len(members))
	for _, name := range members {
		ratios = append(ratios, props[name].ratio)
	}
	sort.Float64s(ratios)
	return ratios[len(ratios)/2]
}

func sortedKeys(props map[string]proportionOf) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var figureNames = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
}

func defaultGlyphNames(font *fontmodel.Font) []string {
	var names []string
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		names = append(names, string(c))
	}
	names = append(names, figureNames...)
	var present []string
	for _, name := range names {
		if font.Glyph(name) != nil {
			present = append(present, name)
		}
	}
	return present
}
