/*
Package raycast measures ink geometry by intersecting rays with glyph
outlines.

A ray is an infinite oriented line; intersecting it with every line and
cubic segment of a layer yields an ordered crossing sequence which
alternates outside/inside by the outline's winding. Consecutive crossing
pairs are stems; summed inside lengths over a scanline band give ink
density; perpendicular rays at on-curve nodes give stroke thickness for
straight, round and diagonal shapes alike.

Degenerate situations (a ray grazing a node, a zero-length segment) are
resolved by deterministic epsilon nudging, never surfaced as errors. A
ray with no crossings means the glyph is empty at that height, which is
a perfectly reportable measurement of zero.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package raycast

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphaudit.engine'
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
