package report

import "fmt"

// Finding is one defect (or pass) observed by a check.
type Finding struct {
	Check    string   // check category, e.g. "compatibility"
	Entity   string   // glyph name or kerning pair key
	Masters  string   // masters involved, e.g. "Light↔Black"
	Message  string   // defect description
	Value    string   // measured value, "" if not applicable
	Limit    string   // threshold violated, "" if not applicable
	Severity Severity
}

// Passf makes a passing finding. Passing entries never appear in the
// rendered report but participate in the write-back plan.
func Passf(check, entity, masters string) Finding {
	return Finding{Check: check, Entity: entity, Masters: masters, Severity: Pass}
}

// F makes a non-passing finding with formatted values.
func F(sev Severity, check, entity, masters, format string, args ...interface{}) Finding {
	return Finding{
		Check:    check,
		Entity:   entity,
		Masters:  masters,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	}
}

// Measured attaches a measured-value/threshold column pair.
func (f Finding) Measured(value, limit string) Finding {
	f.Value = value
	f.Limit = limit
	return f
}
