package spacing

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of spacing findings.
const CheckName = "spacing"

// Reference groups share a sidebearing on their left side: round
// glyphs enter with a bowl, straight ones with a stem. Members missing
// from a font are skipped.
var referenceGroups = []struct {
	name    string
	members []string
	upper   bool
}{
	{"lowercase round", []string{"c", "d", "e", "g", "o", "q"}, false},
	{"lowercase straight", []string{"h", "i", "k", "l", "m", "n", "p", "r"}, false},
	{"uppercase round", []string{"C", "G", "O", "Q"}, true},
	{"uppercase straight", []string{"B", "D", "E", "F", "H", "I", "K", "L", "M", "N", "P", "R"}, true},
}

// mirror-symmetric forms whose left and right sidebearings should agree
var symmetricGlyphs = []string{
	"o", "v", "w", "x", "A", "H", "I", "O", "T", "U", "V", "W", "X", "Y",
}

// straight/round ratio pairs, one per case
var ratioPairs = []struct {
	straight, round string
	upper           bool
}{
	{"n", "o", false},
	{"H", "O", true},
}

// Check measures and audits the sidebearings of the reference glyphs
// in every given master. Measurements that find no ink are skipped,
// not failed; an unfinished font is audited on what is there.
func Check(font *fontmodel.Font, masterIDs []string, regs *checkparam.Registers) []report.Finding {
	var findings []report.Finding
	flagged := make(map[string]bool)
	ratios := make(map[string][]masterRatio) // pair label → per-master ratio
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkMaster(font, m, regs, flagged, ratios)...)
	}
	findings = append(findings, checkDrift(ratios, regs, flagged)...)
	// passing glyphs still need a write-back entry
	measured := make(map[string]bool)
	for _, grp := range referenceGroups {
		for _, name := range grp.members {
			measured[name] = true
		}
	}
	for _, name := range symmetricGlyphs {
		measured[name] = true
	}
	var passes []string
	for name := range measured {
		if font.Glyph(name) != nil && !flagged[name] {
			passes = append(passes, name)
		}
	}
	sort.Strings(passes)
	for _, name := range passes {
		findings = append(findings, report.Passf(CheckName, name, ""))
	}
	return findings
}

type masterRatio struct {
	master string
	ratio  float64
}

func checkMaster(font *fontmodel.Font, m *fontmodel.Master, regs *checkparam.Registers,
	flagged map[string]bool, ratios map[string][]masterRatio) []report.Finding {
	//
	var findings []report.Finding
	flag := func(entity string, f report.Finding) {
		flagged[entity] = true
		findings = append(findings, f)
	}
	lcStem := stemWidth(font, m, "n", false, regs)
	ucStem := stemWidth(font, m, "H", true, regs)

	for _, grp := range referenceGroups {
		stem := lcStem
		if grp.upper {
			stem = ucStem
		}
		type sb struct {
			name        string
			left, right float64
		}
		var sbs []sb
		for _, name := range grp.members {
			left, right, ok := sidebearings(font, m, name, grp.upper)
			if !ok {
				continue
			}
			sbs = append(sbs, sb{name, left, right})
		}
		if len(sbs) < 2 {
			continue
		}
		lefts := make([]float64, len(sbs))
		for i, x := range sbs {
			lefts[i] = x.left
		}
		ref := medianOf(lefts)
		for _, x := range sbs {
			dev := math.Abs(x.left - ref)
			if sev := classify(dev, stem, regs); sev != report.Pass {
				flag(x.name, report.F(sev, CheckName, x.name, m.Name,
					"left sidebearing deviates from %s group", grp.name).
					Measured(fmt.Sprintf("%.1f vs %.1f", x.left, ref),
						fmt.Sprintf("±%.1f", passTolerance(stem, regs))))
			}
		}
	}

	for _, name := range symmetricGlyphs {
		g := font.Glyph(name)
		if g == nil {
			continue
		}
		upper := g.Class() == fontmodel.ClassUppercase
		stem := lcStem
		if upper {
			stem = ucStem
		}
		left, right, ok := sidebearings(font, m, name, upper)
		if !ok {
			continue
		}
		dev := math.Abs(left - right)
		if sev := classify(dev, stem, regs); sev != report.Pass {
			flag(name, report.F(sev, CheckName, name, m.Name,
				"symmetric glyph is spaced asymmetrically").
				Measured(fmt.Sprintf("%.1f / %.1f", left, right),
					fmt.Sprintf("±%.1f", passTolerance(stem, regs))))
		}
	}

	for _, rp := range ratioPairs {
		sl, _, okS := sidebearings(font, m, rp.straight, rp.upper)
		rl, _, okR := sidebearings(font, m, rp.round, rp.upper)
		if !okS || !okR || rl <= 0 {
			continue
		}
		label := rp.straight + "/" + rp.round
		ratio := sl / rl
		ratios[label] = append(ratios[label], masterRatio{m.Name, ratio})
		lo, hi := regs.Get(checkparam.P_RATIO_BAND_LO), regs.Get(checkparam.P_RATIO_BAND_HI)
		if ratio < lo || ratio > hi {
			tracer().Infof("master %s: %s sidebearing ratio %.2f out of band", m.Name, label, ratio)
			flag(label, report.F(report.Warning, CheckName, label, m.Name,
				"straight/round sidebearing ratio out of band").
				Measured(fmt.Sprintf("%.2f", ratio), fmt.Sprintf("%.1f–%.1f", lo, hi)))
		}
	}
	return findings
}

// checkDrift flags the master whose straight/round ratio diverges from
// the other masters'.
func checkDrift(ratios map[string][]masterRatio, regs *checkparam.Registers,
	flagged map[string]bool) []report.Finding {
	//
	maxDrift := regs.Get(checkparam.P_RATIO_DRIFT)
	labels := make([]string, 0, len(ratios))
	for label := range ratios {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	var findings []report.Finding
	for _, label := range labels {
		rs := ratios[label]
		if len(rs) < 2 {
			continue
		}
		values := make([]float64, len(rs))
		for i, r := range rs {
			values[i] = r.ratio
		}
		lo, hi := minMax(values)
		if hi-lo <= maxDrift {
			continue
		}
		med := medianOf(values)
		diverging := rs[0]
		for _, r := range rs[1:] {
			if math.Abs(r.ratio-med) > math.Abs(diverging.ratio-med) {
				diverging = r
			}
		}
		flagged[label] = true
		findings = append(findings, report.F(report.Warning, CheckName, label,
			diverging.master, "sidebearing ratio drifts across masters").
			Measured(fmt.Sprintf("%.2f vs median %.2f", diverging.ratio, med),
				fmt.Sprintf("drift ≤ %.2f", maxDrift)))
	}
	return findings
}

// sidebearings ray-casts a band around the middle of the x-height
// (cap height for uppercase) over the decomposed layer.
func sidebearings(font *fontmodel.Font, m *fontmodel.Master, glyphName string,
	upper bool) (left, right float64, ok bool) {
	//
	g := font.Glyph(glyphName)
	if g == nil {
		return 0, 0, false
	}
	layer := g.Layer(m.ID)
	if layer == nil || layer.IsEmpty() {
		return 0, 0, false
	}
	ref := m.XHeight
	if upper {
		ref = m.CapHeight
	}
	if ref <= 0 {
		return 0, 0, false
	}
	heights := []float64{0.4 * ref, 0.5 * ref, 0.6 * ref}
	return raycast.Sidebearings(layer.Decomposed(font, m.ID), heights)
}

// stemWidth measures the dominant vertical stem of the case's straight
// reference glyph. 0 means unmeasurable; tolerances then fall back to
// their absolute floor.
func stemWidth(font *fontmodel.Font, m *fontmodel.Master, refGlyph string, upper bool,
	regs *checkparam.Registers) float64 {
	//
	g := font.Glyph(refGlyph)
	if g == nil {
		return 0
	}
	layer := g.Layer(m.ID)
	if layer == nil || layer.IsEmpty() {
		return 0
	}
	ref := m.XHeight
	if upper {
		ref = m.CapHeight
	}
	if ref <= 0 {
		return 0
	}
	stems := raycast.StemsAtHeight(layer.Decomposed(font, m.ID), 0.5*ref)
	if len(stems) == 0 {
		return 0
	}
	values := make([]float64, len(stems))
	for i, s := range stems {
		values[i] = s.Thickness()
	}
	dominant, ok := raycast.DominantStem(values,
		regs.Get(checkparam.P_STEM_GROUP_TOL), raycast.Frequency, 0)
	if !ok {
		return 0
	}
	return dominant
}

func passTolerance(stem float64, regs *checkparam.Registers) float64 {
	return math.Max(regs.Get(checkparam.P_SIDEBEARING_MIN),
		regs.Get(checkparam.P_SIDEBEARING_STEM_PCT)*stem)
}

// classify maps a sidebearing deviation to a severity: inside the pass
// tolerance it is fine, up to three times the tolerance it is a minor
// (optical) warning, beyond that a hard defect.
func classify(dev, stem float64, regs *checkparam.Registers) report.Severity {
	tol := passTolerance(stem, regs)
	switch {
	case dev <= tol:
		return report.Pass
	case dev <= 3*tol:
		return report.Warning
	default:
		return report.Fatal
	}
}

func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
