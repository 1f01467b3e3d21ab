/*
Package proportion checks glyph set widths against typographic
conventions.

Widths are judged as percentage ratios to the straight reference of
the glyph's case (n for lowercase, H for uppercase and figures), on
three levels: related-form groups whose members must agree internally
(b/d/p/q, O/Q), width ordering constraints (m wider than n, I narrower
than H), and industry ranges measured across professional text fonts.

Two further checks cover forms related across categories (six/nine,
zero/O, eight/S) and punctuation: mirrored pairs that must match in
width, structurally related pairs with loose width bands, and the
customary dash and quote ratios.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package proportion

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
