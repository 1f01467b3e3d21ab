package raycast

import (
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// minStemThickness filters rounding slivers from crossing pairs.
const minStemThickness = 0.5

// Stem is one inside run crossed by a ray.
type Stem struct {
	Start, End float64 // positions along the ray
}

// Thickness of the stem.
func (s Stem) Thickness() float64 {
	return s.End - s.Start
}

// StemsAtHeight casts a horizontal ray at the given height and pairs
// the crossings into stems. An empty result means the glyph has no ink
// at that height.
func StemsAtHeight(l *fontmodel.Layer, height float64) []Stem {
	return pairStems(Intersections(l, Horizontal(height)))
}

// StemsAlong pairs the crossings of an arbitrary ray into stems, for
// diagonal measurement.
func StemsAlong(l *fontmodel.Layer, ray Ray) []Stem {
	return pairStems(Intersections(l, ray))
}

func pairStems(ts []float64) []Stem {
	var stems []Stem
	for i := 0; i+1 < len(ts); i += 2 {
		if ts[i+1]-ts[i] > minStemThickness {
			stems = append(stems, Stem{Start: ts[i], End: ts[i+1]})
		}
	}
	return stems
}

// InkDensity measures the ink coverage of a layer within a vertical
// zone by scanlines: the summed inside lengths divided by the scanned
// box area. Returns 0 (not an error) for an empty layer; ok is false
// if the zone or advance width is degenerate and no measurement makes
// sense.
func InkDensity(l *fontmodel.Layer, zoneBottom, zoneHeight, resolution float64) (float64, bool) {
	if l == nil || zoneHeight <= 0 || l.Width <= 0 || resolution <= 0 {
		return 0, false
	}
	total := 0.0
	filled := 0.0
	for y := zoneBottom + resolution/2; y < zoneBottom+zoneHeight; y += resolution {
		ts := Intersections(l, Horizontal(y))
		for i := 0; i+1 < len(ts); i += 2 {
			lo := clamp(ts[i], 0, l.Width)
			hi := clamp(ts[i+1], 0, l.Width)
			filled += hi - lo
		}
		total += l.Width
	}
	if total == 0 {
		return 0, false
	}
	return filled / total, true
}

// Sidebearings measures the left and right sidebearing of a layer at a
// band of heights: the tightest ink extent over all sample rays wins.
// ok is false if no ray hits ink anywhere in the band (the glyph is
// empty there; callers report, they don't fail).
func Sidebearings(l *fontmodel.Layer, heights []float64) (left, right float64, ok bool) {
	if l == nil {
		return 0, 0, false
	}
	first, last := 0.0, 0.0
	for _, h := range heights {
		ts := Intersections(l, Horizontal(h))
		if len(ts) == 0 {
			continue
		}
		if !ok || ts[0] < first {
			first = ts[0]
		}
		if !ok || ts[len(ts)-1] > last {
			last = ts[len(ts)-1]
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return first, l.Width - last, true
}
