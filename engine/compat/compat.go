package compat

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/glyphaudit/core/checkparam"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// CheckName is the report category of compatibility findings.
const CheckName = "compatibility"

// CheckGlyph compares a glyph's layers over every distinct pair of the
// given masters and returns the findings. A glyph without defects
// yields a single passing finding so that the write-back plan covers
// it.
func CheckGlyph(font *fontmodel.Font, g *fontmodel.Glyph, masterIDs []string,
	regs *checkparam.Registers) []report.Finding {
	//
	var findings []report.Finding
	for i := 0; i < len(masterIDs); i++ {
		for j := i + 1; j < len(masterIDs); j++ {
			findings = append(findings, checkPair(font, g, masterIDs[i], masterIDs[j], regs)...)
		}
	}
	if len(findings) == 0 {
		findings = append(findings, report.Passf(CheckName, g.Name, ""))
	}
	return findings
}

func checkPair(font *fontmodel.Font, g *fontmodel.Glyph, idA, idB string,
	regs *checkparam.Registers) []report.Finding {
	//
	masters := pairLabel(font, idA, idB)
	la, lb := g.Layer(idA), g.Layer(idB)
	if la == nil || lb == nil {
		// missing layers are work in progress, not corruption
		return []report.Finding{report.F(report.Partial, CheckName, g.Name, masters,
			"layer missing in one master")}
	}
	emptyA, emptyB := la.IsEmpty(), lb.IsEmpty()
	if emptyA && emptyB {
		return nil
	}
	if emptyA != emptyB {
		return []report.Finding{report.F(report.Partial, CheckName, g.Name, masters,
			"partially drawn: empty in one master")}
	}
	var findings []report.Finding
	fail := func(f report.Finding) {
		findings = append(findings, f)
	}
	fatal := func(format string, args ...interface{}) report.Finding {
		return report.F(report.Fatal, CheckName, g.Name, masters, format, args...)
	}
	if len(la.Paths) != len(lb.Paths) {
		fail(fatal("path count differs").Measured(
			fmt.Sprintf("%d vs %d", len(la.Paths), len(lb.Paths)), "equal"))
		return findings // no path correspondence possible
	}
	perm := correspondence(la, lb)
	for i, j := range perm {
		if i != j {
			tracer().Debugf("glyph %s: path %d of %s corresponds to path %d of %s",
				g.Name, i, idA, j, idB)
			fail(fatal("path order mismatch: path %d corresponds to path %d", i, j))
			break
		}
	}
	for i, j := range perm {
		pa, pb := la.Paths[i], lb.Paths[j]
		if len(pa.Nodes) != len(pb.Nodes) {
			fail(fatal("node count differs on path %d", i).Measured(
				fmt.Sprintf("%d vs %d", len(pa.Nodes), len(pb.Nodes)), "equal"))
			continue
		}
		if !sameTypeSequence(pa.TypeSequence(), pb.TypeSequence()) {
			fail(fatal("node type sequence differs on path %d", i))
		}
		if pa.Direction() != pb.Direction() {
			fail(fatal("winding direction differs on path %d", i).Measured(
				fmt.Sprintf("%s vs %s", pa.Direction(), pb.Direction()), "equal"))
		}
		findings = append(findings, checkStartNodes(g.Name, masters, i, pa, pb,
			math.Max(la.Width, lb.Width), regs)...)
	}
	if diff := multisetDiff(componentNames(la), componentNames(lb)); diff != "" {
		fail(fatal("component references differ: %s", diff))
	}
	if diff := setDiff(anchorNames(la), anchorNames(lb)); diff != "" {
		fail(fatal("anchors differ: %s", diff))
	}
	return findings
}

// checkStartNodes verifies that the first on-curve nodes of two
// corresponding paths are close enough not to produce interpolation
// kinks.
func checkStartNodes(glyph, masters string, pathIdx int, pa, pb fontmodel.Path,
	width float64, regs *checkparam.Registers) []report.Finding {
	//
	sa, okA := pa.StartNode()
	sb, okB := pb.StartNode()
	if !okA || !okB {
		return nil // all-off-curve paths, caught by the type sequence check
	}
	limit := math.Max(regs.Get(checkparam.P_STARTNODE_WIDTH_PCT)*width,
		regs.Get(checkparam.P_STARTNODE_MIN_DIST))
	dist := math.Hypot(sb.Pos.X()-sa.Pos.X(), sb.Pos.Y()-sa.Pos.Y())
	if dist <= limit {
		return nil
	}
	f := report.F(report.Fatal, CheckName, glyph, masters,
		"start node of path %d too far apart", pathIdx).
		Measured(fmt.Sprintf("%.1f", dist), fmt.Sprintf("%.1f", limit))
	return []report.Finding{f}
}

// correspondence matches paths of two layers by nearest bounding-box
// center after normalizing out the advance-width scale, using a greedy
// minimum-distance assignment. Both layers must hold the same number
// of paths. perm[i] = index of la.Paths[i]'s partner in lb.
func correspondence(la, lb *fontmodel.Layer) []int {
	n := len(la.Paths)
	ca := normalizedCenters(la)
	cb := normalizedCenters(lb)
	type cand struct {
		i, j int
		d    float64
	}
	cands := make([]cand, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx, dy := cb[j][0]-ca[i][0], cb[j][1]-ca[i][1]
			cands = append(cands, cand{i, j, math.Hypot(dx, dy)})
		}
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].d != cands[b].d {
			return cands[a].d < cands[b].d
		}
		if cands[a].i != cands[b].i {
			return cands[a].i < cands[b].i
		}
		return cands[a].j < cands[b].j
	})
	perm := make([]int, n)
	usedA := make([]bool, n)
	usedB := make([]bool, n)
	assigned := 0
	for _, c := range cands {
		if usedA[c.i] || usedB[c.j] {
			continue
		}
		perm[c.i] = c.j
		usedA[c.i] = true
		usedB[c.j] = true
		if assigned++; assigned == n {
			break
		}
	}
	return perm
}

func normalizedCenters(l *fontmodel.Layer) [][2]float64 {
	scale := l.Width
	if scale <= 0 {
		scale = 1
	}
	centers := make([][2]float64, len(l.Paths))
	for i, p := range l.Paths {
		c := p.Bounds().Center()
		centers[i] = [2]float64{c.X() / scale, c.Y() / scale}
	}
	return centers
}

func sameTypeSequence(a, b []fontmodel.NodeType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func componentNames(l *fontmodel.Layer) map[string]int {
	m := make(map[string]int)
	for _, c := range l.Components {
		m[c.Base]++
	}
	return m
}

func anchorNames(l *fontmodel.Layer) map[string]int {
	m := make(map[string]int)
	for _, a := range l.Anchors {
		m[a.Name] = 1
	}
	return m
}

// multisetDiff describes how two multisets differ, or "" if they are
// equal. The description lists names with their counts where counts
// differ.
func multisetDiff(a, b map[string]int) string {
	names := make(map[string]bool)
	for n := range a {
		names[n] = true
	}
	for n := range b {
		names[n] = true
	}
	var diffs []string
	for n := range names {
		if a[n] != b[n] {
			diffs = append(diffs, fmt.Sprintf("%s (%d vs %d)", n, a[n], b[n]))
		}
	}
	if len(diffs) == 0 {
		return ""
	}
	sort.Strings(diffs)
	return strings.Join(diffs, ", ")
}

func setDiff(a, b map[string]int) string {
	return multisetDiff(a, b)
}

// pairLabel names a master pair for a finding, preferring master names
// over ids.
func pairLabel(font *fontmodel.Font, idA, idB string) string {
	name := func(id string) string {
		if m := font.Master(id); m != nil && m.Name != "" {
			return m.Name
		}
		return id
	}
	return name(idA) + "↔" + name(idB)
}
