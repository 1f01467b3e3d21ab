/*
Package kerncheck audits kerning tables across the master set.

Checks operate per kerning-pair key over the union of all masters'
tables: pairs missing from some masters interpolate toward zero and are
hard defects, as are pairs whose sign flips between masters. Oversized
values, glyph-level exceptions that merely repeat the group value and
letters without kerning-group membership are quality warnings.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package kerncheck

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
