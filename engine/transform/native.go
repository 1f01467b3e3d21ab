package transform

import (
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// Native implements Filter with plain geometric transforms. Unlike a
// stroke-aware filter plugin it does not compensate stroke weight
// when scaling, and it has no curve harmonizer at all.
type Native struct{}

var _ Filter = Native{}

// Harmonize is not available natively; curvature equalization needs
// an external filter plugin.
func (Native) Harmonize(l *fontmodel.Layer, mode HarmonizeMode) (*fontmodel.Layer, error) {
	return nil, core.Error(core.EMISSING, "harmonizing requires an external filter plugin")
}

// Scale applies an affine scale to outline and anchors, scales the
// advance width, and optionally shifts vertically.
func (Native) Scale(l *fontmodel.Layer, spec ScaleSpec) (*fontmodel.Layer, error) {
	if l == nil {
		return nil, core.Error(core.EINVALID, "no layer to scale")
	}
	if spec.WidthPct <= 0 || spec.HeightPct <= 0 {
		return nil, core.Error(core.EINVALID, "scale percentages must be positive")
	}
	wf := spec.WidthPct / 100
	hf := spec.HeightPct / 100
	out := applyAffine(l, fontmodel.Affine{XX: wf, YY: hf})
	out.Width = math.Round(l.Width*wf + spec.AdjustSpace)
	if spec.VerticalShift != 0 {
		out = applyAffine(out, fontmodel.Affine{XX: 1, YY: 1, DY: spec.VerticalShift})
	}
	tracer().Debugf("scaled layer by %.0f%%/%.0f%%, width %.0f → %.0f",
		spec.WidthPct, spec.HeightPct, l.Width, out.Width)
	return out, nil
}

// Tune interpolates the outline toward another master's layer for
// weight, scales for width and height deltas, and shears for slant.
// Weight interpolation requires structurally compatible layers.
func (Native) Tune(l *fontmodel.Layer, spec TuneSpec) (*fontmodel.Layer, error) {
	if l == nil {
		return nil, core.Error(core.EINVALID, "no layer to tune")
	}
	out := copyLayer(l)
	if spec.Weight != 0 {
		if spec.Toward == nil || spec.AxisRange == 0 {
			return nil, core.Error(core.EINVALID,
				"weight tuning needs an interpolation partner and axis range")
		}
		factor := spec.Weight / spec.AxisRange
		if err := interpolate(out, spec.Toward, factor); err != nil {
			return nil, err
		}
	}
	if spec.Width != 0 || spec.Height != 0 {
		sx, sy := 1.0, 1.0
		if spec.AxisRange != 0 {
			sx += spec.Width / math.Abs(spec.AxisRange)
			sy += spec.Height / math.Abs(spec.AxisRange)
		}
		before := out.Bounds()
		out = applyAffine(out, fontmodel.Affine{XX: sx, YY: sy})
		// advance follows the outline; sidebearings stay put
		out.Width = math.Round(l.Width + out.Bounds().Width() - before.Width())
	}
	if spec.SlantDeg != 0 {
		shear := math.Tan(spec.SlantDeg * math.Pi / 180)
		out = applyAffine(out, fontmodel.Affine{XX: 1, YY: 1, YX: shear})
	}
	if spec.FixedWidth {
		out.Width = l.Width
	}
	return out, nil
}

// Monospace brings the layer to a fixed advance width. Part of the
// delta goes into the sidebearings, the rest scales the outline
// horizontally.
func (Native) Monospace(l *fontmodel.Layer, spec MonoSpec) (*fontmodel.Layer, error) {
	if l == nil {
		return nil, core.Error(core.EINVALID, "no layer to monospace")
	}
	if l.Width <= 0 {
		return nil, core.Error(core.EINVALID, "layer has no advance width")
	}
	if spec.Width <= 0 {
		return nil, core.Error(core.EINVALID, "target width must be positive")
	}
	if spec.Width == l.Width {
		return copyLayer(l), nil
	}
	outlineRatio := (100 - spec.SpacingPct) / 100
	delta := spec.Width - l.Width
	sx := 1 + delta*outlineRatio/l.Width
	out := applyAffine(l, fontmodel.Affine{XX: sx, YY: 1})
	out.Width = spec.Width
	tracer().Debugf("monospaced layer %.0f → %.0f (outline share %.0f%%)",
		l.Width, spec.Width, outlineRatio*100)
	return out, nil
}

// --- Layer geometry helpers ------------------------------------------------

func copyLayer(l *fontmodel.Layer) *fontmodel.Layer {
	return applyAffine(l, fontmodel.Identity)
}

// applyAffine returns a copy of l with outline, component placements
// and anchors transformed.
func applyAffine(l *fontmodel.Layer, a fontmodel.Affine) *fontmodel.Layer {
	out := &fontmodel.Layer{Width: l.Width}
	out.Paths = make([]fontmodel.Path, len(l.Paths))
	for i, p := range l.Paths {
		q := fontmodel.Path{Nodes: make([]fontmodel.Node, len(p.Nodes))}
		for j, n := range p.Nodes {
			q.Nodes[j] = fontmodel.Node{Pos: a.Apply(n.Pos), Type: n.Type}
		}
		out.Paths[i] = q
	}
	if len(l.Components) > 0 {
		out.Components = make([]fontmodel.Component, len(l.Components))
		for i, c := range l.Components {
			out.Components[i] = fontmodel.Component{
				Base:      c.Base,
				Transform: a.Compose(c.Transform),
			}
		}
	}
	if len(l.Anchors) > 0 {
		out.Anchors = make([]fontmodel.Anchor, len(l.Anchors))
		for i, an := range l.Anchors {
			out.Anchors[i] = fontmodel.Anchor{Name: an.Name, Pos: a.Apply(an.Pos)}
		}
	}
	return out
}

// interpolate moves every node of dst by factor toward the
// corresponding node of other, in place. Node coordinates round to
// whole units.
func interpolate(dst *fontmodel.Layer, other *fontmodel.Layer, factor float64) error {
	if len(dst.Paths) != len(other.Paths) {
		return core.Error(core.EINVALID, "path count mismatch: %d vs %d",
			len(dst.Paths), len(other.Paths))
	}
	for i := range dst.Paths {
		tp := &dst.Paths[i]
		op := other.Paths[i]
		if len(tp.Nodes) != len(op.Nodes) {
			return core.Error(core.EINVALID, "path %d node count mismatch: %d vs %d",
				i, len(tp.Nodes), len(op.Nodes))
		}
		for j := range tp.Nodes {
			t := tp.Nodes[j].Pos
			o := op.Nodes[j].Pos
			tp.Nodes[j].Pos = arithm.P(
				math.Round(t.X()+factor*(o.X()-t.X())),
				math.Round(t.Y()+factor*(o.Y()-t.Y())))
		}
	}
	return nil
}
