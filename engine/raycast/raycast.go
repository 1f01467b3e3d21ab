package raycast

import (
	"math"
	"sort"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// tangentEps is the perpendicular nudge applied when a ray grazes a
// node and produces an odd crossing count.
const tangentEps = 1e-3

// Ray is an infinite oriented line through Origin at Angle (radians,
// 0 points in +x direction).
type Ray struct {
	Origin arithm.Pair
	Angle  float64
}

// Horizontal returns a ray along y = height, oriented left to right.
func Horizontal(height float64) Ray {
	return Ray{Origin: arithm.P(0, height)}
}

// Through returns a ray through pt at the given angle in degrees.
func Through(pt arithm.Pair, angleDeg float64) Ray {
	return Ray{Origin: pt, Angle: angleDeg * math.Pi / 180}
}

// Intersections returns the crossing positions of the ray with all
// path boundaries of the layer, as signed distances from the ray
// origin, sorted ascending. For a horizontal ray with origin x = 0 the
// positions are plain x coordinates.
//
// Crossings come in entry/exit pairs under the winding convention the
// outlines imply. If the raw count is odd the ray grazed a node or is
// tangent to a segment; the cast is retried once with the ray nudged
// perpendicularly by a small epsilon, which deterministically resolves
// the tie.
func Intersections(l *fontmodel.Layer, ray Ray) []float64 {
	ts := cast(l, ray)
	if len(ts)%2 != 0 {
		nudged := Ray{
			Origin: arithm.P(
				ray.Origin.X()-tangentEps*math.Sin(ray.Angle),
				ray.Origin.Y()+tangentEps*math.Cos(ray.Angle)),
			Angle: ray.Angle,
		}
		tracer().Debugf("odd crossing count %d, re-casting nudged ray", len(ts))
		ts = cast(l, nudged)
	}
	sort.Float64s(ts)
	return ts
}

func cast(l *fontmodel.Layer, ray Ray) []float64 {
	if l == nil {
		return nil
	}
	sin, cos := math.Sincos(ray.Angle)
	ox, oy := ray.Origin.X(), ray.Origin.Y()
	// into the ray frame: ray origin at (0,0), ray along +x
	frame := func(p arithm.Pair) (float64, float64) {
		dx, dy := p.X()-ox, p.Y()-oy
		return cos*dx + sin*dy, -sin*dx + cos*dy
	}
	var ts []float64
	for _, path := range l.Paths {
		for _, seg := range path.Segments() {
			if seg.Cubic {
				ts = append(ts, crossCubic(seg, frame)...)
			} else if t, ok := crossLine(seg, frame); ok {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// crossLine intersects a straight segment with the ray frame's x axis.
// The segment is half-open at its end point so that a crossing exactly
// on a node shared by two segments is counted once.
func crossLine(seg fontmodel.Segment, frame func(arithm.Pair) (float64, float64)) (float64, bool) {
	x1, y1 := frame(seg.From)
	x2, y2 := frame(seg.To)
	if (y1 <= 0 && y2 <= 0) || (y1 > 0 && y2 > 0) {
		return 0, false
	}
	if y1 == y2 {
		return 0, false // collinear, resolved by the nudge retry
	}
	t := y1 / (y1 - y2)
	return x1 + t*(x2-x1), true
}

// crossCubic intersects a cubic segment with the ray frame's x axis by
// solving the Bernstein cubic in the frame's y coordinate. Roots are
// taken from the half-open parameter interval [0,1).
func crossCubic(seg fontmodel.Segment, frame func(arithm.Pair) (float64, float64)) []float64 {
	x0, y0 := frame(seg.From)
	x1, y1 := frame(seg.C1)
	x2, y2 := frame(seg.C2)
	x3, y3 := frame(seg.To)
	// Bernstein to power basis
	a := -y0 + 3*y1 - 3*y2 + y3
	b := 3*y0 - 6*y1 + 3*y2
	c := -3*y0 + 3*y1
	d := y0
	var xs []float64
	for _, t := range solveCubic(a, b, c, d) {
		if t < 0 || t >= 1 {
			continue
		}
		u := 1 - t
		x := u*u*u*x0 + 3*u*u*t*x1 + 3*u*t*t*x2 + t*t*t*x3
		xs = append(xs, x)
	}
	return xs
}

// solveCubic returns the real roots of a·t³ + b·t² + c·t + d = 0.
// Degenerate leading coefficients fall back to the quadratic and
// linear cases.
func solveCubic(a, b, c, d float64) []float64 {
	const eps = 1e-9
	if math.Abs(a) < eps {
		return solveQuadratic(b, c, d)
	}
	// depressed cubic u³ + p·u + q = 0 with t = u - b/(3a)
	b /= a
	c /= a
	d /= a
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3
	disc := q*q/4 + p*p*p/27
	switch {
	case disc > eps:
		// one real root
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq)
		return []float64{u + shift}
	case disc < -eps:
		// three real roots, trigonometric form
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		return []float64{
			m*math.Cos(phi/3) + shift,
			m*math.Cos((phi+2*math.Pi)/3) + shift,
			m*math.Cos((phi+4*math.Pi)/3) + shift,
		}
	default:
		// borderline: double root
		if math.Abs(q) < eps && math.Abs(p) < eps {
			return []float64{shift}
		}
		u1 := 3 * q / p
		u2 := -3 * q / (2 * p)
		return []float64{u1 + shift, u2 + shift}
	}
}

func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-9
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
