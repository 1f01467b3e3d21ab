/*
Package spacing audits sidebearings for group consistency.

Sidebearings are measured geometrically, by ray casting at a band
around the middle of the x-height (cap height for uppercase), so the
checks see the same ink a reader sees. Glyphs of a reference group
(round or straight sided) must agree on their sidebearing within a
tolerance proportional to the measured stem width, mirror-symmetric
glyphs must be spaced symmetrically, and the straight/round ratio must
stay inside its band and stable across masters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package spacing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
