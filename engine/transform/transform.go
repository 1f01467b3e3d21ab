package transform

import (
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// HarmonizeMode selects what a harmonizing filter smooths.
type HarmonizeMode int

const (
	ModeHarmonize       HarmonizeMode = iota // equalize curvature at smooth nodes
	ModeDekink                               // remove kinks only
	ModeExtractHandles                       // re-derive control handles
	ModeSmoothDiagonals                      // supersmooth diagonal joins
	ModeSmoothAll                            // supersmooth everything
)

// ScaleSpec parameterizes a geometric scale. Percentages of 100 leave
// the respective dimension unchanged.
type ScaleSpec struct {
	WidthPct      float64
	HeightPct     float64
	AdjustSpace   float64 // added to the scaled advance width
	VerticalShift float64
}

// TuneSpec parameterizes weight and proportion tuning of one master's
// layer. Weight moves the outline along the interpolation axis toward
// another master's layer; Width and Height are deltas on the same
// axis scale. Slant shears by degrees.
type TuneSpec struct {
	Weight     float64
	Width      float64
	Height     float64
	SlantDeg   float64
	FixedWidth bool              // keep the original advance width
	Toward     *fontmodel.Layer  // interpolation partner, required for Weight
	AxisRange  float64           // signed axis distance to the partner
}

// MonoSpec parameterizes monospacing. SpacingPct is the share of the
// width delta absorbed by the sidebearings; the rest stretches or
// squeezes the outline.
type MonoSpec struct {
	Width      float64
	SpacingPct float64
}

// Filter is the transform capability over a single layer. Every
// method returns a transformed copy and leaves its input untouched.
type Filter interface {
	Harmonize(l *fontmodel.Layer, mode HarmonizeMode) (*fontmodel.Layer, error)
	Scale(l *fontmodel.Layer, spec ScaleSpec) (*fontmodel.Layer, error)
	Tune(l *fontmodel.Layer, spec TuneSpec) (*fontmodel.Layer, error)
	Monospace(l *fontmodel.Layer, spec MonoSpec) (*fontmodel.Layer, error)
}
