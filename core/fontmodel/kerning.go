package fontmodel

// Side tells which side of a pair a kerning group applies to.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

func (s Side) String() string {
	if s == LeftSide {
		return "left"
	}
	return "right"
}

// Group is a named set of glyphs sharing kerning behavior on one side.
type Group struct {
	Name    string
	Side    Side
	Members []string
}

// Contains reports group membership.
func (g Group) Contains(glyphName string) bool {
	for _, m := range g.Members {
		if m == glyphName {
			return true
		}
	}
	return false
}

// Key is one side of a kerning pair: either a glyph name or a group
// reference.
type Key struct {
	Name  string
	Group bool
}

// GlyphKey makes a glyph-level key.
func GlyphKey(name string) Key { return Key{Name: name} }

// GroupKey makes a group-level key.
func GroupKey(name string) Key { return Key{Name: name, Group: true} }

func (k Key) String() string {
	if k.Group {
		return "@" + k.Name
	}
	return k.Name
}

// PairKey identifies a kerning pair.
type PairKey struct {
	Left, Right Key
}

func (pk PairKey) String() string {
	return pk.Left.String() + "/" + pk.Right.String()
}

// KeyExists checks whether a pair-side key refers to an existing glyph
// or group in the font.
func (f *Font) KeyExists(k Key) bool {
	if k.Group {
		_, ok := f.Groups[k.Name]
		return ok
	}
	return f.Glyph(k.Name) != nil
}

// GroupsOf returns the names of the left-side and right-side kerning
// groups a glyph belongs to. Empty strings mean no membership.
func (f *Font) GroupsOf(glyphName string) (left, right string) {
	for name, g := range f.Groups {
		if !g.Contains(glyphName) {
			continue
		}
		if g.Side == LeftSide {
			left = name
		} else {
			right = name
		}
	}
	return left, right
}

// GroupPairValue looks up the group-level kerning value covering a
// glyph-level pair, following each glyph's group membership on the
// matching side. ok is false if no group pair exists.
func (f *Font) GroupPairValue(m *Master, left, right string) (float64, bool) {
	lg, _ := f.GroupsOf(left)
	_, rg := f.GroupsOf(right)
	if lg == "" || rg == "" {
		return 0, false
	}
	v, ok := m.Kerning[PairKey{Left: GroupKey(lg), Right: GroupKey(rg)}]
	return v, ok
}
