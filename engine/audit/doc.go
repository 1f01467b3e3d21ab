/*
Package audit orchestrates a full consistency audit of a font
snapshot.

An audit request names the masters, glyphs and checks to run. The
orchestrator validates the request up front — an unknown master, an
unknown glyph pattern or an empty selection is a usage error, reported
before any analysis starts. Per-glyph checks then fan out over a small
worker pool; a panic inside one glyph's analysis is confined to that
glyph and surfaces as a partial finding, the rest of the audit
continues. Findings from all checks are merged and reduced to a
write-back plan with one worst-severity label per entity. Running the
same request twice yields the same plan.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package audit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
