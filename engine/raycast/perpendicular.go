package raycast

import (
	"math"
	"sort"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// Perpendicular measurement limits. Rays are cast 1000 units to either
// side of a node; crossings closer than 0.5u (the node itself) or
// beyond 900u are discarded, and a crossing under 10u next to a second
// one is a junction artifact where an adjacent segment grazes the ray,
// not a stem wall.
const (
	perpReach        = 900.0
	nodeExclusion    = 0.5
	junctionArtifact = 10.0
)

// NodeStem is the stroke thickness measured at one on-curve node.
type NodeStem struct {
	Pos        arithm.Pair
	TangentDeg float64
	Thickness  float64
	Vertical   bool
	Horizontal bool
}

// PerpendicularStems measures the stroke thickness at every on-curve
// node of the layer by casting a ray perpendicular to the outline
// tangent. Only nodes with yMin ≤ y ≤ yMax are measured, which filters
// accessory parts like dots and cedillas; thicknesses above
// maxThickness are discarded as cross-counter readings.
//
// Each measurement is classified by tangent direction: vertical stems
// have tangents in the 60–120° or 240–300° bands, horizontal ones in
// 0–30°, 150–210° or 330–360°. Diagonal strokes register in whichever
// band their angle leans toward, which is exactly what diagonal checks
// want.
func PerpendicularStems(l *fontmodel.Layer, yMin, yMax, maxThickness float64) (vert, horiz []float64, all []NodeStem) {
	if l == nil {
		return nil, nil, nil
	}
	for _, path := range l.Paths {
		for _, seg := range path.Segments() {
			node := seg.From
			if node.Y() < yMin || node.Y() > yMax {
				continue
			}
			angle, ok := tangentDeg(seg)
			if !ok {
				continue
			}
			thickness, ok := thicknessAt(l, node, angle+90)
			if !ok || thickness > maxThickness {
				continue
			}
			norm := math.Mod(angle, 360)
			if norm < 0 {
				norm += 360
			}
			ns := NodeStem{
				Pos:        node,
				TangentDeg: angle,
				Thickness:  thickness,
				Vertical:   (norm >= 60 && norm <= 120) || (norm >= 240 && norm <= 300),
				Horizontal: norm <= 30 || (norm >= 150 && norm <= 210) || norm >= 330,
			}
			all = append(all, ns)
			if ns.Vertical {
				vert = append(vert, thickness)
			} else if ns.Horizontal {
				horiz = append(horiz, thickness)
			}
		}
	}
	return vert, horiz, all
}

// tangentDeg is the outgoing tangent direction at a segment's start
// node, in degrees. ok is false for a degenerate zero-length segment.
func tangentDeg(seg fontmodel.Segment) (float64, bool) {
	to := seg.To
	if seg.Cubic {
		to = seg.C1
	}
	dx, dy := to.X()-seg.From.X(), to.Y()-seg.From.Y()
	if dx == 0 && dy == 0 {
		// collapsed control point, fall back to the chord
		dx, dy = seg.To.X()-seg.From.X(), seg.To.Y()-seg.From.Y()
		if dx == 0 && dy == 0 {
			return 0, false
		}
	}
	return math.Atan2(dy, dx) * 180 / math.Pi, true
}

// thicknessAt casts a ray through pt at angleDeg and returns the
// distance to the nearest real outline wall.
func thicknessAt(l *fontmodel.Layer, pt arithm.Pair, angleDeg float64) (float64, bool) {
	ts := Intersections(l, Through(pt, angleDeg))
	var dists []float64
	for _, t := range ts {
		d := math.Abs(t)
		if d > nodeExclusion && d < perpReach {
			dists = append(dists, d)
		}
	}
	if len(dists) == 0 {
		return 0, false
	}
	sort.Float64s(dists)
	if len(dists) >= 2 && dists[0] < junctionArtifact {
		return dists[1], true
	}
	return dists[0], true
}

// Strategy selects how DominantStem picks among thickness groups.
type Strategy int

const (
	// Frequency picks the most frequent group. It avoids junction
	// inflation where arches meet stems (n, h, m) and is best for
	// comparing stems across glyphs.
	Frequency Strategy = iota
	// Thickest picks the thickest group with at least two members,
	// better for isolated glyphs without junctions.
	Thickest
	// NearestRef picks the group closest to a reference value, for
	// mixed stem-and-bowl glyphs where the straight stem matters.
	NearestRef
)

// DominantStem reduces raw thickness measurements to a single dominant
// value: values are grouped within tolerance of the group start (no
// chaining), a group is chosen by strategy, and the group's median is
// returned. ok is false when there is nothing to measure.
func DominantStem(values []float64, tolerance float64, strategy Strategy, reference float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var groups [][]float64
	current := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-current[0] <= tolerance {
			current = append(current, v)
		} else {
			groups = append(groups, current)
			current = []float64{v}
		}
	}
	groups = append(groups, current)

	best := groups[0]
	switch strategy {
	case Thickest:
		multi := false
		for _, g := range groups {
			if len(g) >= 2 {
				if !multi || g[0] > best[0] {
					best = g
				}
				multi = true
			}
		}
		if !multi {
			for _, g := range groups {
				if g[0] > best[0] {
					best = g
				}
			}
		}
	case NearestRef:
		for _, g := range groups[1:] {
			if math.Abs(median(g)-reference) < math.Abs(median(best)-reference) {
				best = g
			}
		}
	default: // Frequency
		for _, g := range groups[1:] {
			if len(g) > len(best) {
				best = g
			}
		}
	}
	return math.Round(median(best)), true
}

func median(g []float64) float64 {
	return g[len(g)/2]
}
