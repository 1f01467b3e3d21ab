/*
Package report turns analyzer findings into a severity plan and a
textual report.

Findings are data, not errors: every check produces zero or more findings
per glyph or kerning pair, each pre-classified on a 4-level scale. The
reporter renders one table per check category, listing only non-passing
entries, with stable row and column ordering so that two runs over an
unchanged snapshot produce byte-identical output. The write-back plan
maps each entity to its worst severity; applying the label is the host
editor's job, not ours.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package report

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphaudit.report'
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.report")
}
