package density

import (
	"fmt"
	"math"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// colorPattern is the expected ink density of one glyph relative to
// the reference glyph of its case, as a percentage.
//
//	expected   density ratio to n (lowercase) or H (uppercase, figures)
//	maxDev     ± tolerance of the ratio, in percentage points
//	unreliable the construction varies too much across designs
type colorPattern struct {
	expected   float64
	maxDev     float64
	unreliable bool
	note       string
}

func expect(pct, maxDev float64) colorPattern {
	return colorPattern{expected: pct, maxDev: maxDev}
}
func unrel(note string) colorPattern { return colorPattern{unreliable: true, note: note} }

// colorPatterns holds expected density ratios derived from
// professional text fonts across weights. Glyphs with a ratio range
// above 10 percentage points between common designs are unreliable.
var colorPatterns = map[string]colorPattern{
	// lowercase, ratio to n
	"n": expect(100.0, 0),
	"h": expect(100.2, 3),
	"m": expect(102.3, 3),
	"r": expect(86.3, 3),
	"u": expect(99.3, 5),
	"k": expect(100.2, 5),
	"f": expect(86.1, 6),
	"c": expect(90.2, 6),
	"v": expect(86.3, 8),
	"b": expect(106.3, 9),
	"d": expect(106.3, 9),
	"p": expect(106.3, 9),
	"q": expect(106.4, 9),
	"o": expect(100.0, 10),
	"w": expect(98.9, 10),
	"a": unrel("construction-dependent"),
	"e": unrel("construction-dependent"),
	"g": unrel("descender varies"),
	"i": unrel("dot proportion varies"),
	"j": unrel("dot and descender vary"),
	"l": unrel("width proportion varies"),
	"s": unrel("spine varies"),
	"t": unrel("crossbar proportion varies"),
	"x": unrel("diagonal varies"),
	"y": unrel("descender varies"),
	"z": unrel("bar varies"),
	// uppercase, ratio to H
	"H": expect(100.0, 0),
	"I": expect(100.2, 7),
	"U": expect(95.4, 5),
	"F": expect(92.9, 5),
	"T": expect(78.0, 7),
	"K": expect(99.6, 8),
	"L": expect(79.2, 8),
	"O": expect(97.1, 9),
	"C": expect(87.7, 10),
	"Y": expect(72.9, 10),
	"V": expect(86.4, 10),
	"J": expect(79.1, 11),
	"D": expect(104.8, 12),
	"A": unrel("varies by apex design"),
	"B": unrel("double bowl varies"),
	"E": unrel("bar proportion varies"),
	"G": unrel("mixed round/spur varies"),
	"M": unrel("diagonal proportion varies"),
	"N": unrel("diagonal varies"),
	"P": unrel("bowl varies"),
	"Q": unrel("tail varies"),
	"R": unrel("bowl and leg vary"),
	"S": unrel("spine varies"),
	"W": unrel("diagonal proportion varies"),
	"X": unrel("diagonal varies"),
	"Z": unrel("bar varies"),
	// figures, ratio to H
	"zero":  expect(108.6, 5),
	"one":   expect(92.4, 7),
	"two":   expect(104.3, 9),
	"three": expect(104.7, 6),
	"seven": expect(84.5, 8),
	"eight": expect(124.5, 5),
	"four":  unrel("open form varies"),
	"five":  unrel("flag/bowl ratio varies"),
	"six":   unrel("open form varies"),
	"nine":  unrel("bowl varies"),
}

// unknownTolerance is the ± ratio band granted to glyphs without a
// pattern entry.
const unknownTolerance = 12.0

// compensationFactor stretches the pass band into a zone where a
// deviation still reads as deliberate optical compensation.
const compensationFactor = 1.5

// Evaluation is the verdict on one glyph's ink density.
type Evaluation struct {
	Severity report.Severity
	Note     string
	Value    string // measured ratio, formatted
	Limit    string // expected band, formatted
}

// EvaluateDensity judges a measured ink density against the expected
// ratio to the reference density. Unreliable constructions and a
// degenerate reference yield a partial verdict rather than a failure.
func EvaluateDensity(glyphName string, measured, reference float64) Evaluation {
	if reference <= 0 {
		return Evaluation{Severity: report.Partial, Note: "reference density is zero"}
	}
	ratio := measured / reference * 100.0
	value := fmt.Sprintf("%.1f%%", ratio)
	p, known := colorPatterns[fontmodel.BaseName(glyphName)]
	if !known {
		if math.Abs(ratio-100.0) <= unknownTolerance {
			return Evaluation{Severity: report.Pass}
		}
		return Evaluation{
			Severity: report.Fatal,
			Note:     fmt.Sprintf("unknown glyph, density ratio %.1f%% off the reference", ratio),
			Value:    value,
			Limit:    fmt.Sprintf("100±%.0f%%", unknownTolerance),
		}
	}
	if p.unreliable {
		return Evaluation{Severity: report.Partial, Note: p.note, Value: value}
	}
	deviation := math.Abs(ratio - p.expected)
	limit := fmt.Sprintf("%.1f±%.0f%%", p.expected, p.maxDev)
	switch {
	case deviation <= p.maxDev:
		return Evaluation{Severity: report.Pass}
	case deviation <= p.maxDev*compensationFactor:
		return Evaluation{
			Severity: report.Warning,
			Note:     "density deviates, likely optical compensation",
			Value:    value,
			Limit:    limit,
		}
	default:
		return Evaluation{
			Severity: report.Fatal,
			Note:     "density ratio far from the expected color",
			Value:    value,
			Limit:    limit,
		}
	}
}
