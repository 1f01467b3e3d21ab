package report

// Severity is the 4-level classification of a finding. The numeric
// values are the label codes the host editor understands (a gap at 2
// is deliberate, the host reserves it).
type Severity int

const (
	Fatal   Severity = 0 // incompatible, breaks interpolation
	Partial Severity = 1 // partially drawn or unreliable measurement
	Warning Severity = 3 // optical/quality warning
	Pass    Severity = 4
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Partial:
		return "partial"
	case Warning:
		return "warning"
	case Pass:
		return "pass"
	}
	return "unknown"
}

// Code is the integer label code for the host editor.
func (s Severity) Code() int {
	return int(s)
}

// Worse returns the more severe of two severities. Lower codes are
// worse; the reduction is commutative and associative, so partial
// results from parallel workers may be merged in any order.
func Worse(a, b Severity) Severity {
	if a < b {
		return a
	}
	return b
}
