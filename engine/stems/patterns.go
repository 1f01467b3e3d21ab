package stems

import (
	"fmt"
	"math"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// pattern is the expected stem behavior of one glyph relative to the
// straight reference, at Regular/Book weight.
//
//	maxDev     hard ± tolerance in units
//	lo, hi     signed deviation range of a known optical compensation
//	unreliable the shape defeats perpendicular measurement
type pattern struct {
	maxDev     float64
	lo, hi     float64
	hasRange   bool
	unreliable bool
	note       string
}

func dev(maxDev float64) pattern { return pattern{maxDev: maxDev} }
func rng(lo, hi float64, note string) pattern {
	return pattern{lo: lo, hi: hi, hasRange: true, note: note}
}
func unrel(note string) pattern { return pattern{unreliable: true, note: note} }

// stemPatterns holds the expected deviation from n (lowercase) or H
// (uppercase and figures), derived from professional text fonts.
var stemPatterns = map[string]pattern{
	// lowercase, relative to n
	"h": dev(1), "i": dev(1), "j": dev(1), "k": dev(1),
	"m": dev(1), "n": dev(1), "q": dev(1), "u": dev(1),
	"b": dev(2), "g": dev(2), "t": dev(2),
	"l": dev(3),
	"a": rng(-4, 0, "slightly thinner stem"),
	"o": rng(0, 7, "round compensation"),
	"c": rng(0, 7, "round compensation"),
	"e": unrel("construction-dependent"),
	"f": unrel("varies by design"),
	"s": unrel("spine inconsistent"),
	"v": unrel("diagonal apex artifact"),
	"w": unrel("diagonal apex artifact"),
	"x": unrel("no vertical stems"),
	"y": unrel("diagonal unreliable"),
	"z": unrel("no vertical stems"),
	"d": unrel("mixed stem/bowl"),
	"p": unrel("mixed stem/bowl"),
	"r": unrel("mixed stem/bowl"),
	// uppercase, relative to H
	"E": dev(1), "F": dev(1), "H": dev(1), "J": dev(1),
	"K": dev(1), "L": dev(1), "U": dev(1),
	"P": dev(2), "T": dev(2),
	"A": rng(-5, -3, "diagonal thinner"),
	"B": rng(0, 4, "double bowl compensation"),
	"C": rng(0, 4, "round compensation"),
	"D": rng(0, 4, "large bowl compensation"),
	"O": rng(0, 4, "round compensation"),
	"Q": rng(0, 4, "round compensation"),
	"R": rng(0, 3, "bowl + leg compensation"),
	"I": rng(0, 3, "mass compensation"),
	"S": rng(-1, 4, "spine varies"),
	"G": rng(0, 5, "mixed round/straight"),
	"M": unrel("diagonal strokes"),
	"N": unrel("diagonal outliers"),
	"V": unrel("diagonal apex"),
	"W": unrel("diagonal apex"),
	"X": unrel("insufficient data"),
	"Y": unrel("diagonal"),
	"Z": unrel("insufficient data"),
	// figures, relative to H
	"zero":  rng(0, 4, "round compensation"),
	"one":   dev(3),
	"two":   unrel("hook varies"),
	"three": unrel("double bowl varies"),
	"four":  rng(-10, 2, "diagonal thinner"),
	"five":  unrel("bowl/flag varies"),
	"six":   rng(0, 5, "round compensation"),
	"seven": rng(0, 10, "thick horizontal dominates"),
	"eight": rng(0, 5, "spine compensation"),
	"nine":  unrel("bowl varies"),
}

// heavyUnreliable lists glyphs whose measurement breaks down above a
// 120u reference stem, from junction compression or construction
// changes at heavy weights.
var heavyUnreliable = map[string]string{
	"m":     "3-stem compression at heavy weight",
	"u":     "arch widens at heavy weight",
	"k":     "diagonal leg interferes at heavy weight",
	"K":     "diagonal leg interferes at heavy weight",
	"t":     "crossbar junction at heavy weight",
	"A":     "diagonal perpendicular unreliable at heavy weight",
	"one":   "flag/serif width dominates at heavy weight",
	"three": "double bowl compression at heavy weight",
	"five":  "bowl/flag junction at heavy weight",
	"six":   "bowl shape changes at heavy weight",
	"seven": "horizontal bar dominates at heavy weight",
	"eight": "spine compression at heavy weight",
}

const heavyReference = 120.0

// Evaluation is the verdict on one glyph's stem measurement.
type Evaluation struct {
	Severity report.Severity
	Note     string
	Value    string // measured value as report column
	Limit    string // violated or applied expectation
}

// EvaluateStem judges a measured dominant stem against the glyph's
// pattern. Tolerances scale with the weight factor reference/100 so
// that a Black master is allowed bigger absolute compensations than a
// Thin one, and signed compensation ranges may reverse direction at
// heavy weights.
func EvaluateStem(glyphName string, measured, reference float64) Evaluation {
	base := fontmodel.BaseName(glyphName)
	deviation := math.Round(measured - reference)
	absDev := math.Abs(deviation)
	factor := math.Max(1, reference/100)

	if reference > heavyReference {
		if note, ok := heavyUnreliable[base]; ok {
			return Evaluation{Severity: report.Partial, Note: note}
		}
	}
	pat, known := stemPatterns[base]
	if !known {
		scaled := math.Max(3, math.Round(3*factor))
		if absDev <= scaled {
			return Evaluation{Severity: report.Pass}
		}
		return Evaluation{
			Severity: report.Fatal,
			Note:     "unknown glyph, stem deviates from reference",
			Value:    fmt.Sprintf("%+.0f", deviation),
			Limit:    fmt.Sprintf("±%.0f", scaled),
		}
	}
	if pat.unreliable {
		return Evaluation{Severity: report.Partial, Note: pat.note}
	}
	if pat.hasRange {
		lo := math.Round(pat.lo * factor)
		hi := math.Round(pat.hi * factor)
		// compensation can reverse direction at heavy weights
		if factor > 1.2 && pat.lo >= 0 {
			lo = -math.Max(1, math.Floor(math.Abs(hi)/2))
		}
		if lo <= deviation && deviation <= hi {
			return Evaluation{Severity: report.Warning, Note: pat.note,
				Value: fmt.Sprintf("%+.0f", deviation),
				Limit: fmt.Sprintf("[%+.0f, %+.0f]", lo, hi)}
		}
		return Evaluation{Severity: report.Fatal,
			Note:  "outside expected compensation range: " + pat.note,
			Value: fmt.Sprintf("%+.0f", deviation),
			Limit: fmt.Sprintf("[%+.0f, %+.0f]", lo, hi)}
	}
	scaled := math.Max(pat.maxDev, math.Round(pat.maxDev*factor))
	if absDev <= scaled {
		return Evaluation{Severity: report.Pass}
	}
	return Evaluation{Severity: report.Fatal,
		Note:  "stem deviates from reference",
		Value: fmt.Sprintf("%+.0f", deviation),
		Limit: fmt.Sprintf("±%.0f", scaled)}
}
