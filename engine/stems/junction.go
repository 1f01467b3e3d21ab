package stems

import (
	"fmt"
	"math"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/raycast"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// junctionGlyphs maps a glyph to the horizontal position (fraction of
// the advance width) of the stem whose thinning is tracked.
var junctionGlyphs = map[string]float64{
	"n": 0.15, "h": 0.15, "m": 0.10, "u": 0.15,
	"a": 0.85, "b": 0.15, "d": 0.85, "p": 0.15, "q": 0.85,
}

// Only the arch group is reliable enough for automated flagging. Bowl
// forms with right-hand stems (d, q) measure poorly at light weights,
// they are reported but never flagged.
var junctionGroups = []struct {
	members   []string
	tolerance float64
	note      string
}{
	{[]string{"n", "m"}, 5.0, "arch junction thinning"},
}

const junctionSweepSteps = 30

// Thinning is the junction profile of one stem: its thickness away
// from the junction and the minimum it thins to where the arch or
// bowl joins.
type Thinning struct {
	MidStem     float64 // average thickness in the 20–60% zone
	JunctionMin float64 // minimum thickness in the 65–95% zone
	JunctionY   float64 // height of the minimum
	Percent     float64 // JunctionMin/MidStem · 100
}

// MeasureJunctionThinning sweeps horizontal rays from the baseline to
// zoneTop and tracks the stem nearest to xPct·width. It returns false
// if the profile is too sparse or the stem too thin to judge.
func MeasureJunctionThinning(layer *fontmodel.Layer, xPct, zoneTop float64) (Thinning, bool) {
	if layer == nil || layer.Width <= 0 || zoneTop <= 0 {
		return Thinning{}, false
	}
	w := layer.Width
	xTarget := w * xPct
	step := zoneTop / junctionSweepSteps
	type sample struct{ y, thickness float64 }
	var profile []sample
	for i := 0; i <= junctionSweepSteps; i++ {
		y := float64(i) * step
		best, bestDist := 0.0, math.Inf(1)
		for _, s := range raycast.StemsAtHeight(layer, y) {
			if s.Start < -5 || s.End > w+5 || s.Thickness() < 3 {
				continue
			}
			if d := math.Abs((s.Start+s.End)/2 - xTarget); d < bestDist {
				bestDist = d
				best = s.Thickness()
			}
		}
		if best > 0 {
			profile = append(profile, sample{y, best})
		}
	}
	if len(profile) < 5 {
		return Thinning{}, false
	}
	midSum, midN := 0.0, 0
	minJct, minY := math.Inf(1), 0.0
	for _, s := range profile {
		if s.y >= 0.2*zoneTop && s.y <= 0.6*zoneTop {
			midSum += s.thickness
			midN++
		}
		if s.y >= 0.65*zoneTop && s.y <= 0.95*zoneTop && s.thickness < minJct {
			minJct = s.thickness
			minY = s.y
		}
	}
	if midN == 0 || math.IsInf(minJct, 1) {
		return Thinning{}, false
	}
	mid := midSum / float64(midN)
	if mid < 5 {
		return Thinning{}, false
	}
	return Thinning{
		MidStem:     mid,
		JunctionMin: minJct,
		JunctionY:   minY,
		Percent:     minJct / mid * 100,
	}, true
}

// CheckJunctions compares junction thinning across related forms.
// Absolute thinning values are design choices and never flagged; only
// disagreement within a group is.
func CheckJunctions(font *fontmodel.Font, masterIDs []string) []report.Finding {
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil || m.XHeight <= 0 {
			continue
		}
		thinnings := make(map[string]Thinning)
		for name, xPct := range junctionGlyphs {
			g := font.Glyph(name)
			if g == nil {
				continue
			}
			layer := g.Layer(m.ID)
			if layer == nil || layer.IsEmpty() {
				continue
			}
			if t, ok := MeasureJunctionThinning(layer.Decomposed(font, m.ID), xPct, m.XHeight); ok {
				thinnings[name] = t
			}
		}
		for _, grp := range junctionGroups {
			var members []string
			for _, name := range grp.members {
				if _, ok := thinnings[name]; ok {
					members = append(members, name)
				}
			}
			if len(members) < 2 {
				continue
			}
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, name := range members {
				p := thinnings[name].Percent
				lo = math.Min(lo, p)
				hi = math.Max(hi, p)
			}
			spread := hi - lo
			if spread <= grp.tolerance {
				for _, name := range members {
					findings = append(findings, report.Passf(CheckName, name, m.Name))
				}
				continue
			}
			for _, name := range members {
				findings = append(findings, report.F(report.Fatal, CheckName, name, m.Name,
					"%s differs between related forms", grp.note).
					Measured(fmt.Sprintf("%.1f%%", thinnings[name].Percent),
						fmt.Sprintf("spread ≤ %.1f%%", grp.tolerance)))
			}
		}
	}
	return findings
}
