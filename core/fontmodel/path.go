package fontmodel

import (
	"math"

	"github.com/npillmayer/arithm"
)

// NodeType tags an outline node.
type NodeType int

const (
	Line     NodeType = iota // on-curve, straight segment ends here
	Curve                    // on-curve, cubic segment ends here
	OffCurve                 // control point
)

// Node is one point of an outline path.
type Node struct {
	Pos  arithm.Pair
	Type NodeType
}

// OnCurve is true for nodes lying on the outline.
func (n Node) OnCurve() bool {
	return n.Type != OffCurve
}

// Path is a closed outline contour: an ordered, cyclic node sequence.
// Outline paths are closed by construction; the segment following the
// last node wraps around to the first.
type Path struct {
	Nodes []Node
}

// Direction is the winding of a path.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "CW"
	}
	return "CCW"
}

// Direction computes the winding from the signed area of the node
// polygon. The sign is invariant under cyclic rotation of the start
// node and flips under node-order reversal.
func (p Path) Direction() Direction {
	if p.SignedArea() < 0 {
		return Clockwise
	}
	return CounterClockwise
}

// SignedArea is the shoelace area over all nodes of the path polygon,
// control points included. Positive for counter-clockwise winding in a
// y-up coordinate system.
func (p Path) SignedArea() float64 {
	if len(p.Nodes) < 3 {
		return 0
	}
	a := 0.0
	for i, n := range p.Nodes {
		m := p.Nodes[(i+1)%len(p.Nodes)]
		a += n.Pos.X()*m.Pos.Y() - m.Pos.X()*n.Pos.Y()
	}
	return a / 2
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect returns a rectangle that extends any point added to it.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Extend grows r to include point pt.
func (r Rect) Extend(pt arithm.Pair) Rect {
	return Rect{
		MinX: math.Min(r.MinX, pt.X()),
		MinY: math.Min(r.MinY, pt.Y()),
		MaxX: math.Max(r.MaxX, pt.X()),
		MaxY: math.Max(r.MaxY, pt.Y()),
	}
}

// Union merges two rectangles.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, s.MinX),
		MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX),
		MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

// IsEmpty is true if no point was ever added.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX
}

// Width of the rectangle; 0 for an empty one.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height of the rectangle; 0 for an empty one.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center of the rectangle.
func (r Rect) Center() arithm.Pair {
	return arithm.P((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// Bounds is the control box of a path: the bounding box over all nodes,
// control points included. Cubic segments stay within the hull of their
// control points, so the control box always contains the outline.
func (p Path) Bounds() Rect {
	r := EmptyRect()
	for _, n := range p.Nodes {
		r = r.Extend(n.Pos)
	}
	return r
}

// Segment is one drawable piece of a path: a straight line or a cubic
// Bezier from From to To.
type Segment struct {
	From, C1, C2, To arithm.Pair
	Cubic            bool
}

// Segments decomposes the cyclic node sequence into line and cubic
// segments, driven by node types: an on-curve node followed by two
// off-curve controls and a curve node forms a cubic; two consecutive
// on-curve nodes form a line. Malformed runs of off-curve nodes are
// skipped (reported elsewhere as a finding, never an error).
func (p Path) Segments() []Segment {
	n := len(p.Nodes)
	if n < 2 {
		return nil
	}
	start := p.firstOnCurve()
	if start < 0 {
		return nil
	}
	var segs []Segment
	i := start
	for visited := 0; visited < n; {
		from := p.Nodes[i%n]
		j := i + 1
		var controls []Node
		for ; j <= i+n; j++ {
			nd := p.Nodes[j%n]
			if nd.OnCurve() {
				break
			}
			controls = append(controls, nd)
		}
		to := p.Nodes[j%n]
		switch len(controls) {
		case 0:
			segs = append(segs, Segment{From: from.Pos, To: to.Pos})
		case 2:
			segs = append(segs, Segment{
				From: from.Pos, C1: controls[0].Pos, C2: controls[1].Pos,
				To: to.Pos, Cubic: true,
			})
		default:
			tracer().Debugf("path has a run of %d off-curve nodes, skipping", len(controls))
		}
		visited += j - i
		i = j
		if i%n == start && visited > 0 {
			break
		}
	}
	return segs
}

// firstOnCurve returns the index of the first on-curve node, or -1.
func (p Path) firstOnCurve() int {
	for i, n := range p.Nodes {
		if n.OnCurve() {
			return i
		}
	}
	return -1
}

// TypeSequence returns the node types in traversal order, rotated to
// start at the first on-curve node. Two layers of a glyph interpolate
// only if their paths have identical type sequences.
func (p Path) TypeSequence() []NodeType {
	n := len(p.Nodes)
	if n == 0 {
		return nil
	}
	start := p.firstOnCurve()
	if start < 0 {
		start = 0
	}
	seq := make([]NodeType, n)
	for i := 0; i < n; i++ {
		seq[i] = p.Nodes[(start+i)%n].Type
	}
	return seq
}

// StartNode returns the first on-curve node of the path. ok is false
// for a path consisting of off-curve nodes only.
func (p Path) StartNode() (Node, bool) {
	i := p.firstOnCurve()
	if i < 0 {
		return Node{}, false
	}
	return p.Nodes[i], true
}

// Reversed returns a copy of the path with inverted node order (and
// therefore inverted winding).
func (p Path) Reversed() Path {
	rev := Path{Nodes: make([]Node, len(p.Nodes))}
	for i, n := range p.Nodes {
		rev.Nodes[len(p.Nodes)-1-i] = n
	}
	return rev
}
