/*
Package transform is the capability boundary for outline transforms.

The analysis engine itself never changes outlines. Workflows built on
top of it do: scaling small caps from capitals, tuning an intermediate
weight, monospacing figures, harmonizing curvature. Those operations
are expressed as the Filter interface over a single layer, with two
kinds of implementations: Native, which performs plain geometric
fallbacks, and adapters to external curve-optimizing filter plugins,
which are stroke-aware but may be absent. Callers pick an
implementation at the boundary; analysis packages do not import this
one.

All operations return transformed copies. Snapshots stay immutable;
writing a result back into a host document is the caller's business.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package transform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.engine")
}
