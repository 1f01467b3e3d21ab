/*
Package compat checks glyphs for interpolation compatibility across
masters.

For every pair of masters a glyph's layers are compared structurally:
path count, per-path node count and node type sequence, winding
direction, path correspondence and drawing order, starting node
position, component references and anchor names. Any structural
mismatch makes the pair incompatible; a layer that is drawn in one
master and empty in another makes the glyph partially drawn. The
glyph's overall status is the worst observed over all pairs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package compat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
