/*
Package density audits typographic color, the even distribution of ink
across a font.

Ink density of a glyph is the ratio of inside scanline length to the
scanned box area within its measurement zone (x-height for lowercase,
cap height for uppercase and figures). Densities are judged as
percentage ratios to a straight reference glyph (n for lowercase, H
for uppercase), against expected ratios derived from professional text
fonts at various weights. A bowl glyph that is a few percent darker
than n is optical compensation, not an error; the same glyph far off
the expected band signals uneven color.

Besides per-glyph verdicts the package produces a full-font audit,
grouping glyphs by case with mean, median and standard deviation per
group, and checking the lowercase/uppercase density ratio against the
customary 1.10–1.16 band of text faces.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package density

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
