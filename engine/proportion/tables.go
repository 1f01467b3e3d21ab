package proportion

// widthGroup is a set of related forms whose width ratios must agree
// within a spread tolerance (percentage points of the reference).
type widthGroup struct {
	members   []string
	tolerance float64
	note      string
}

var widthGroups = []widthGroup{
	{[]string{"b", "d", "p", "q"}, 2.0, "mirrored bowl and stem forms"},
	{[]string{"h", "n"}, 1.0, "arch forms must match"},
	{[]string{"O", "Q"}, 2.0, "Q is based on O"},
	{[]string{"H", "U"}, 10.0, "wide straight forms"},
}

// widthOrder lists pairs where the first glyph must not be narrower
// than the second.
type widthOrder struct {
	wider, narrower string
	note            string
}

var widthOrders = []widthOrder{
	{"m", "n", "m must be wider than n"},
	{"w", "n", "w must be wider than n"},
	{"b", "n", "b must be wider or equal to n"},
	{"n", "r", "r must be narrower than n"},
	{"n", "i", "i must be narrower than n"},
	{"n", "l", "l must be narrower than n"},
	{"n", "f", "f must be narrower than n"},
	{"n", "t", "t must be narrower than n"},
	{"M", "H", "M must be wider than H"},
	{"W", "H", "W must be wider than H"},
	{"H", "I", "I must be narrower than H"},
	{"H", "J", "J must be narrower than H"},
	{"H", "L", "L must be narrower than H"},
	{"H", "E", "E must be narrower than H"},
	{"H", "F", "F must be narrower than H"},
}

// widthRanges holds width ratio ranges (percent of n or H) observed
// across professional text fonts at all weights.
var widthRanges = map[string][2]float64{
	// lowercase, ratio to n
	"a": {83, 115}, "b": {100, 115}, "c": {66, 100}, "d": {100, 115},
	"e": {89, 102}, "f": {53, 82}, "g": {95, 115}, "h": {99, 101},
	"i": {39, 52}, "j": {39, 60}, "k": {80, 110}, "l": {39, 54},
	"m": {139, 160}, "n": {100, 100}, "o": {94, 111}, "p": {100, 115},
	"q": {100, 115}, "r": {56, 74}, "s": {71, 89}, "t": {49, 83},
	"u": {90, 101}, "v": {82, 101}, "w": {126, 155}, "x": {79, 110},
	"y": {83, 107}, "z": {76, 94},
	// uppercase, ratio to H
	"A": {89, 109}, "B": {75, 98}, "C": {67, 106}, "D": {90, 102},
	"E": {72, 88}, "F": {61, 87}, "G": {91, 117}, "H": {100, 100},
	"I": {34, 51}, "J": {51, 77}, "K": {80, 99}, "L": {53, 78},
	"M": {117, 143}, "N": {101, 122}, "O": {98, 123}, "P": {68, 94},
	"Q": {99, 123}, "R": {72, 99}, "S": {69, 89}, "T": {67, 94},
	"U": {90, 101}, "V": {81, 108}, "W": {125, 155}, "X": {70, 114},
	"Y": {78, 101}, "Z": {73, 97},
	// figures, ratio to H
	"zero": {82, 94}, "one": {38, 67}, "two": {73, 84}, "three": {69, 85},
	"four": {72, 100}, "five": {72, 86}, "six": {78, 93}, "seven": {66, 88},
	"eight": {75, 91}, "nine": {78, 93},
}

// pairSeverity ranks how hard a related-pair check is. Rotated forms
// must match, loose traditions merely advise.
type pairSeverity int

const (
	severityLow pairSeverity = iota
	severityMedium
	severityHigh
)

// formPair relates two glyphs by an expected width ratio band,
// width(a)/width(b) in percent.
type formPair struct {
	a, b     string
	lo, hi   float64
	severity pairSeverity
	note     string
}

// relatedFormPairs links figures to letters of similar construction.
var relatedFormPairs = []formPair{
	{"six", "nine", 97, 104, severityHigh, "rotated forms should match width"},
	{"zero", "O", 65, 93, severityMedium, "zero narrower and lighter than O"},
	{"three", "five", 92, 106, severityMedium, "related open-bowl figures"},
	{"three", "B", 78, 99, severityMedium, "three narrower than B"},
	{"eight", "S", 92, 119, severityLow, "eight related to the S shape"},
	{"one", "I", 106, 185, severityLow, "flag and crossbar make one wider than I"},
}

// punctMatch is a pair whose widths must agree within a ± percentage
// deviation from equality.
type punctMatch struct {
	a, b      string
	tolerance float64
	severity  pairSeverity
	note      string
}

var punctWidthMatches = []punctMatch{
	{"parenleft", "parenright", 0.5, severityHigh, "mirrored pair, width must match"},
	{"bracketleft", "bracketright", 0.5, severityHigh, "mirrored pair, width must match"},
	{"braceleft", "braceright", 0.5, severityHigh, "mirrored pair, width must match"},
	{"colon", "semicolon", 15, severityMedium, "colon and semicolon share set width"},
	{"period", "comma", 15, severityMedium, "period and comma share set width"},
	{"quotedblleft", "quotedblright", 8, severityMedium, "double quotes share set width"},
	{"quoteleft", "quoteright", 8, severityMedium, "single quotes share set width"},
	{"guillemotleft", "guillemotright", 1, severityHigh, "guillemets are mirrored, width must match"},
	{"guilsinglleft", "guilsinglright", 1, severityHigh, "single guillemets are mirrored, width must match"},
}

// punctWidthRatios are loose traditional proportions of dashes and
// related punctuation.
var punctWidthRatios = []formPair{
	{"endash", "hyphen", 140, 280, severityLow, "endash traditionally twice the hyphen"},
	{"emdash", "endash", 140, 230, severityLow, "emdash traditionally twice the endash"},
	{"quoteright", "comma", 70, 115, severityLow, "quoteright similar in form to comma"},
	{"exclam", "question", 40, 95, severityLow, "exclamation narrower than question mark"},
}
