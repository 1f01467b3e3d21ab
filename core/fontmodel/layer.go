package fontmodel

import (
	"github.com/npillmayer/arithm"
)

// Anchor is a named attachment point.
type Anchor struct {
	Name string
	Pos  arithm.Pair
}

// Affine is a 2D affine transform, applied to a point as
//
//	x' = XX·x + YX·y + DX
//	y' = XY·x + YY·y + DY
type Affine struct {
	XX, XY, YX, YY float64
	DX, DY         float64
}

// Identity is the neutral transform.
var Identity = Affine{XX: 1, YY: 1}

// Apply transforms point pt.
func (a Affine) Apply(pt arithm.Pair) arithm.Pair {
	x, y := pt.X(), pt.Y()
	return arithm.P(a.XX*x+a.YX*y+a.DX, a.XY*x+a.YY*y+a.DY)
}

// Compose returns the transform "a after b".
func (a Affine) Compose(b Affine) Affine {
	return Affine{
		XX: a.XX*b.XX + a.YX*b.XY,
		XY: a.XY*b.XX + a.YY*b.XY,
		YX: a.XX*b.YX + a.YX*b.YY,
		YY: a.XY*b.YX + a.YY*b.YY,
		DX: a.XX*b.DX + a.YX*b.DY + a.DX,
		DY: a.XY*b.DX + a.YY*b.DY + a.DY,
	}
}

// Flips is true if the transform inverts orientation (negative
// determinant), e.g. a mirrored component.
func (a Affine) Flips() bool {
	return a.XX*a.YY-a.XY*a.YX < 0
}

// Component is a reference to another glyph's drawing, placed with a
// transform.
type Component struct {
	Base      string
	Transform Affine
}

// Layer is the per-master drawing of a glyph.
type Layer struct {
	Paths      []Path
	Components []Component
	Anchors    []Anchor
	Width      float64 // advance width, non-negative
}

// IsEmpty is true if the layer has neither paths nor components.
// An empty layer opposite a drawn one makes a glyph "partially drawn".
func (l *Layer) IsEmpty() bool {
	return l == nil || (len(l.Paths) == 0 && len(l.Components) == 0)
}

// Bounds is the control box over all paths of the layer. Components are
// not resolved; use Decomposed first when component extents matter.
func (l *Layer) Bounds() Rect {
	r := EmptyRect()
	if l == nil {
		return r
	}
	for _, p := range l.Paths {
		r = r.Union(p.Bounds())
	}
	return r
}

// Anchor returns the anchor with the given name, or ok=false.
func (l *Layer) Anchor(name string) (Anchor, bool) {
	if l == nil {
		return Anchor{}, false
	}
	for _, a := range l.Anchors {
		if a.Name == name {
			return a, true
		}
	}
	return Anchor{}, false
}

// maxComponentDepth caps recursive component resolution. Deeper nesting
// indicates a reference cycle in the snapshot.
const maxComponentDepth = 5

// Decomposed returns a copy of the layer with all component references
// resolved into paths. The copy shares no nodes with the original, so
// measurement code may rotate or transform it freely. Components whose
// base glyph is missing, or which nest deeper than maxComponentDepth,
// are dropped from the copy; the compatibility checker reports such
// defects separately.
func (l *Layer) Decomposed(font *Font, masterID string) *Layer {
	if l == nil {
		return nil
	}
	flat := &Layer{
		Width:   l.Width,
		Anchors: append([]Anchor(nil), l.Anchors...),
	}
	l.decomposeInto(flat, font, masterID, Identity, 0)
	return flat
}

func (l *Layer) decomposeInto(dst *Layer, font *Font, masterID string, xform Affine, depth int) {
	for _, p := range l.Paths {
		q := Path{Nodes: make([]Node, len(p.Nodes))}
		for i, n := range p.Nodes {
			q.Nodes[i] = Node{Pos: xform.Apply(n.Pos), Type: n.Type}
		}
		if xform.Flips() {
			q = q.Reversed()
		}
		dst.Paths = append(dst.Paths, q)
	}
	if depth >= maxComponentDepth {
		tracer().Errorf("component nesting deeper than %d, dropping", maxComponentDepth)
		return
	}
	for _, c := range l.Components {
		base := font.Glyph(c.Base)
		if base == nil {
			tracer().Debugf("component references unknown glyph %q", c.Base)
			continue
		}
		baseLayer := base.Layer(masterID)
		if baseLayer == nil {
			continue
		}
		baseLayer.decomposeInto(dst, font, masterID, xform.Compose(c.Transform), depth+1)
	}
}
