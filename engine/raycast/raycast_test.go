package raycast

import (
	"math"
	"testing"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func rectPath(x0, y0, x1, y1 float64) fontmodel.Path {
	return fontmodel.Path{Nodes: []fontmodel.Node{
		{Pos: arithm.P(x0, y0), Type: fontmodel.Line},
		{Pos: arithm.P(x1, y0), Type: fontmodel.Line},
		{Pos: arithm.P(x1, y1), Type: fontmodel.Line},
		{Pos: arithm.P(x0, y1), Type: fontmodel.Line},
	}}
}

// circlePath approximates a circle with four cubic segments.
func circlePath(cx, cy, r float64) fontmodel.Path {
	k := 0.5523 * r
	n := func(x, y float64, t fontmodel.NodeType) fontmodel.Node {
		return fontmodel.Node{Pos: arithm.P(x, y), Type: t}
	}
	return fontmodel.Path{Nodes: []fontmodel.Node{
		n(cx+r, cy, fontmodel.Curve),
		n(cx+r, cy+k, fontmodel.OffCurve), n(cx+k, cy+r, fontmodel.OffCurve),
		n(cx, cy+r, fontmodel.Curve),
		n(cx-k, cy+r, fontmodel.OffCurve), n(cx-r, cy+k, fontmodel.OffCurve),
		n(cx-r, cy, fontmodel.Curve),
		n(cx-r, cy-k, fontmodel.OffCurve), n(cx-k, cy-r, fontmodel.OffCurve),
		n(cx, cy-r, fontmodel.Curve),
		n(cx+k, cy-r, fontmodel.OffCurve), n(cx+r, cy-k, fontmodel.OffCurve),
	}}
}

func TestRectangleSingleStem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rectPath(50, 0, 250, 700)}, Width: 300}
	stems := StemsAtHeight(l, 350)
	if len(stems) != 1 {
		t.Fatalf("expected exactly one stem, got %d", len(stems))
	}
	if math.Abs(stems[0].Thickness()-200) > 1e-9 {
		t.Errorf("expected thickness 200, got %f", stems[0].Thickness())
	}
	if math.Abs(stems[0].Start-50) > 1e-9 || math.Abs(stems[0].End-250) > 1e-9 {
		t.Errorf("unexpected stem extent [%f, %f]", stems[0].Start, stems[0].End)
	}
}

func TestEmptyHeightYieldsNoStems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rectPath(50, 0, 250, 700)}, Width: 300}
	if stems := StemsAtHeight(l, 900); len(stems) != 0 {
		t.Errorf("expected no stems above the glyph, got %d", len(stems))
	}
}

func TestCircleCrossings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Paths: []fontmodel.Path{circlePath(250, 250, 200)}, Width: 500}
	stems := StemsAtHeight(l, 250.5)
	if len(stems) != 1 {
		t.Fatalf("expected one stem through the equator, got %d", len(stems))
	}
	if math.Abs(stems[0].Thickness()-400) > 1 {
		t.Errorf("expected diameter ~400, got %f", stems[0].Thickness())
	}
	// well above center the chord must be shorter
	upper := StemsAtHeight(l, 380)
	if len(upper) != 1 || upper[0].Thickness() >= stems[0].Thickness() {
		t.Errorf("chord above the equator should be shorter")
	}
}

func TestVertexGrazeIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	diamond := fontmodel.Path{Nodes: []fontmodel.Node{
		{Pos: arithm.P(0, 0), Type: fontmodel.Line},
		{Pos: arithm.P(50, 50), Type: fontmodel.Line},
		{Pos: arithm.P(100, 0), Type: fontmodel.Line},
		{Pos: arithm.P(50, -50), Type: fontmodel.Line},
	}}
	l := &fontmodel.Layer{Paths: []fontmodel.Path{diamond}, Width: 100}
	ts := Intersections(l, Horizontal(0))
	if len(ts)%2 != 0 {
		t.Errorf("crossing count through two vertices must be even, got %d", len(ts))
	}
	a := Intersections(l, Horizontal(50))
	b := Intersections(l, Horizontal(50))
	if len(a) != len(b) {
		t.Errorf("grazing ray must resolve deterministically")
	}
}

func TestAngledRayThroughRectangle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rectPath(0, 0, 100, 100)}, Width: 100}
	// diagonal ray through the center at 45°
	stems := StemsAlong(l, Through(arithm.P(50, 50), 45))
	if len(stems) != 1 {
		t.Fatalf("expected one stem along the diagonal, got %d", len(stems))
	}
	want := 100 * math.Sqrt2
	if math.Abs(stems[0].Thickness()-want) > 1e-6 {
		t.Errorf("expected diagonal %f, got %f", want, stems[0].Thickness())
	}
}

func TestInkDensityOfHalfFilledBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	// a 100-wide bar in a 200-wide advance: density 0.5
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rectPath(0, 0, 100, 500)}, Width: 200}
	d, ok := InkDensity(l, 0, 500, 10)
	if !ok {
		t.Fatalf("expected a measurement")
	}
	if math.Abs(d-0.5) > 1e-9 {
		t.Errorf("expected density 0.5, got %f", d)
	}
}

func TestInkDensityEmptyLayer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Width: 200}
	d, ok := InkDensity(l, 0, 500, 10)
	if !ok || d != 0 {
		t.Errorf("empty layer has density 0, reported not failed (d=%f ok=%v)", d, ok)
	}
}

func TestSidebearings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	l := &fontmodel.Layer{Paths: []fontmodel.Path{rectPath(40, 0, 160, 500)}, Width: 200}
	left, right, ok := Sidebearings(l, []float64{200, 250, 300})
	if !ok {
		t.Fatalf("expected a measurement")
	}
	if math.Abs(left-40) > 1e-9 || math.Abs(right-40) > 1e-9 {
		t.Errorf("expected sidebearings 40/40, got %f/%f", left, right)
	}
}

func TestPerpendicularStemsOfH(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	// crude H: two vertical bars and a crossbar. The crossbar carries
	// mid-edge nodes so its thickness registers away from the bar
	// junctions, like the curve nodes of a real glyph would.
	crossbar := fontmodel.Path{Nodes: []fontmodel.Node{
		{Pos: arithm.P(120, 320), Type: fontmodel.Line},
		{Pos: arithm.P(200, 320), Type: fontmodel.Line},
		{Pos: arithm.P(280, 320), Type: fontmodel.Line},
		{Pos: arithm.P(280, 380), Type: fontmodel.Line},
		{Pos: arithm.P(200, 380), Type: fontmodel.Line},
		{Pos: arithm.P(120, 380), Type: fontmodel.Line},
	}}
	l := &fontmodel.Layer{
		Paths: []fontmodel.Path{
			rectPath(40, 0, 120, 700),
			rectPath(280, 0, 360, 700),
			crossbar,
		},
		Width: 400,
	}
	vert, horiz, all := PerpendicularStems(l, 0, 700, 300)
	if len(all) == 0 {
		t.Fatalf("expected measurements")
	}
	v, ok := DominantStem(vert, 3, Frequency, 0)
	if !ok || math.Abs(v-80) > 3 {
		t.Errorf("expected dominant vertical stem ~80, got %f (ok=%v)", v, ok)
	}
	h, ok := DominantStem(horiz, 3, Frequency, 0)
	if !ok || math.Abs(h-60) > 3 {
		t.Errorf("expected dominant horizontal stem ~60, got %f (ok=%v)", h, ok)
	}
}

func TestDominantStemStrategies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphaudit.engine")
	defer teardown()
	//
	values := []float64{80, 81, 80, 79, 120, 121}
	v, _ := DominantStem(values, 3, Frequency, 0)
	if v != 80 {
		t.Errorf("frequency strategy: expected 80, got %f", v)
	}
	v, _ = DominantStem(values, 3, Thickest, 0)
	if v != 121 {
		t.Errorf("thickest strategy: expected 121, got %f", v)
	}
	v, _ = DominantStem(values, 3, NearestRef, 118)
	if v != 121 {
		t.Errorf("nearest-ref strategy: expected 121, got %f", v)
	}
}
