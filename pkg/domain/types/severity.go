package types

// Severity represents the risk level a scanner assigned to a finding
type Severity string

const (
	SeverityHigh          Severity = "High"
	SeverityMedium        Severity = "Medium"
	SeverityLow           Severity = "Low"
	SeverityInformational Severity = "Informational"
	SeverityFalsePositive Severity = "False Positive"
)

// Severities returns every severity in display order
func Severities() []Severity {
	return []Severity{
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
		SeverityInformational,
		SeverityFalsePositive,
	}
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is one of the known levels
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityInformational, SeverityFalsePositive:
		return true
	default:
		return false
	}
}
