/*
Package fontmodel holds an immutable in-memory snapshot of a multiple-master
font: masters, glyphs, layers, outline paths, components, anchors and
kerning. The snapshot is handed to the engine by an external font provider
at the start of an analysis run and discarded afterwards; analyzers never
mutate it.

All entities are value objects. Identity is by name or key, not by
reference: two snapshots of the same document compare glyph by glyph
through their names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontmodel

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphaudit.core'
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.core")
}
