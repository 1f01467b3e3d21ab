package proportion

import (
	"fmt"

	"github.com/npillmayer/glyphaudit/core/fontmodel"
	"github.com/npillmayer/glyphaudit/engine/report"
)

// RelatedFormsCheckName is the report category of figure/letter
// relation findings.
const RelatedFormsCheckName = "related-forms"

// PunctuationCheckName is the report category of punctuation
// consistency findings.
const PunctuationCheckName = "punctuation"

// CheckRelatedForms compares figures against letters of similar
// construction: rotated forms must match in width, looser relations
// have customary ratio bands.
func CheckRelatedForms(font *fontmodel.Font, masterIDs []string) []report.Finding {
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		findings = append(findings, checkPairs(font, m, RelatedFormsCheckName, relatedFormPairs)...)
	}
	return findings
}

// CheckPunctuation verifies mirrored punctuation pairs for equal set
// widths and dash/quote proportions for their traditional ratios.
func CheckPunctuation(font *fontmodel.Font, masterIDs []string) []report.Finding {
	var findings []report.Finding
	for _, id := range masterIDs {
		m := font.Master(id)
		if m == nil {
			continue
		}
		for _, match := range punctWidthMatches {
			wa := widthOf(font, m, match.a)
			wb := widthOf(font, m, match.b)
			if wa == 0 || wb == 0 {
				continue
			}
			entity := match.a + "/" + match.b
			ratio := wa / wb * 100
			if dev := ratio - 100; dev < -match.tolerance || dev > match.tolerance {
				findings = append(findings, report.F(severityOf(match.severity),
					PunctuationCheckName, entity, m.Name, "%s", match.note).
					Measured(fmt.Sprintf("%.1f%%", ratio),
						fmt.Sprintf("100±%.1f%%", match.tolerance)))
			} else {
				findings = append(findings, report.Passf(PunctuationCheckName, entity, m.Name))
			}
		}
		findings = append(findings, checkPairs(font, m, PunctuationCheckName, punctWidthRatios)...)
	}
	return findings
}

func checkPairs(font *fontmodel.Font, m *fontmodel.Master, check string,
	pairs []formPair) []report.Finding {
	//
	var findings []report.Finding
	for _, pair := range pairs {
		wa := widthOf(font, m, pair.a)
		wb := widthOf(font, m, pair.b)
		if wa == 0 || wb == 0 {
			continue
		}
		entity := pair.a + "/" + pair.b
		ratio := wa / wb * 100
		if ratio < pair.lo || ratio > pair.hi {
			findings = append(findings, report.F(severityOf(pair.severity),
				check, entity, m.Name, "%s", pair.note).
				Measured(fmt.Sprintf("%.1f%%", ratio),
					fmt.Sprintf("%.0f–%.0f%%", pair.lo, pair.hi)))
		} else {
			findings = append(findings, report.Passf(check, entity, m.Name))
		}
	}
	return findings
}

// severityOf maps a pair's rank to a finding severity. Only the
// must-match relations are hard failures.
func severityOf(s pairSeverity) report.Severity {
	if s == severityHigh {
		return report.Fatal
	}
	return report.Warning
}
