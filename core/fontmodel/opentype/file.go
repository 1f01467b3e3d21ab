package opentype

import (
	"os"

	"github.com/npillmayer/glyphaudit/core"
	"github.com/npillmayer/glyphaudit/core/fontfind"
	"github.com/npillmayer/glyphaudit/core/fontmodel"
)

// LoadFile reads a font file from disk and snapshots it.
func LoadFile(path string, runes []rune) (*fontmodel.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %q", path)
	}
	return Load(data, runes)
}

// LoadInstalled resolves an installed font by name (see
// fontfind.Resolve) and snapshots it.
func LoadInstalled(name string, runes []rune) (*fontmodel.Font, error) {
	path, err := fontfind.Resolve(name)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loading installed font %s", path)
	return LoadFile(path, runes)
}
