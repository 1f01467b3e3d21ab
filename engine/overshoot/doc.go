/*
Package overshoot checks that curved and pointed extremes cross their
alignment zones.

Round forms must overshoot the baseline and their zone top by a small
amount, customarily one to two percent of the zone height, or they
look too small next to flat forms. Pointed apexes and vertexes need
even more. The check classifies each glyph as round, round-bottom or
pointed, detects whether an apex really is pointed (a truncated apex
needs no overshoot) by the x-span of its near-extreme on-curve nodes,
and measures against the right zone per case. Figures get their own
zone, derived from the flat-topped figures of the font, since lining
figures are often shorter than cap height.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package overshoot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
