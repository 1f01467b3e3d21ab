/*
Package fontfind locates installed font files by name.

Audits usually run on a live editing session, but compiled fonts are
loaded from disk, and callers rarely know the full path of an
installed font. Resolve searches the platform's font directories and
accepts either an exact file name or a case-insensitive fragment of
one ("SourceSerif-Bold" matches SourceSerif-Bold.otf).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontfind

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphaudit.core'.
func tracer() tracing.Trace {
	return tracing.Select("glyphaudit.core")
}

var listOnce sync.Once
var fontList []string

// installedFonts caches the system font scan; the installed set will
// not change during an audit.
func installedFonts() []string {
	listOnce.Do(func() {
		fontList = findfont.List()
		tracer().Infof("found %d installed font files", len(fontList))
	})
	return fontList
}

// Resolve returns the path of an installed font file. The name may be
// a complete file name or a fragment of one; a fragment must match
// exactly one installed font. A miss is a core.EMISSING error.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", core.Error(core.EINVALID, "empty font name")
	}
	if path, err := findfont.Find(name); err == nil {
		return path, nil
	}
	var hits []string
	for _, path := range installedFonts() {
		if matches(path, name) {
			hits = append(hits, path)
		}
	}
	switch len(hits) {
	case 0:
		return "", core.Error(core.EMISSING, "no installed font matches %q", name)
	case 1:
		tracer().Debugf("font %q resolved to %s", name, hits[0])
		return hits[0], nil
	default:
		return "", core.Error(core.EINVALID, "font name %q is ambiguous (%d matches)",
			name, len(hits))
	}
}

// matches tests a font file path against a name fragment, ignoring
// case and the file extension.
func matches(path, name string) bool {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	frag := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Contains(strings.ToLower(base), strings.ToLower(frag))
}
