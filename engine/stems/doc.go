/*
Package stems compares stem thicknesses against industry patterns.

Stem thickness is measured perpendicular to the outline at every
on-curve node and reduced to a dominant value per glyph. Each glyph's
deviation from the straight reference (n for lowercase, H for
uppercase and figures) is judged against expected optical compensation
patterns derived from professional text fonts: some glyphs must match
the reference closely, round and bowl forms are expected to compensate
within a known signed range, and some shapes cannot be measured
reliably at all. Tolerances scale with stem weight.

The package also checks diagonal stroke groups for internal
consistency and for plausible diagonal/straight ratios, and measures
junction thinning where arches meet stems.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package stems

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
